// internal/ledger/ledger.go
//
// Score and streak bookkeeping for one (device, mode) pair. Every game mode
// has its own ledger row so modes never share score or streak.
//
// Scoring rule: points = max(minPoints, basePoints − penaltyPerWrong × wrong).
// Streak rules: a wrong guess zeroes the streak (score untouched); revealing
// or abandoning a round zeroes both.
//
// Every mutation persists immediately through the Store. Award and
// PenalizeReveal settle the round; once settled, further award/penalty calls
// for the same round are no-ops, so rapid duplicate events cannot double-count.
package ledger

import "context"

// Stats is the persisted counter pair.
type Stats struct {
	Score  int `json:"score"`
	Streak int `json:"streak"`
}

// Policy is the per-mode scoring rule.
type Policy struct {
	Base            int
	PenaltyPerWrong int
	Min             int
}

// DefaultPolicy is the standard rule: 100 points minus 25 per wrong guess,
// floored at zero.
var DefaultPolicy = Policy{Base: 100, PenaltyPerWrong: 25, Min: 0}

// Points computes the award for a round solved after wrong wrong guesses.
func (p Policy) Points(wrong int) int {
	if wrong < 0 {
		wrong = 0
	}
	pts := p.Base - p.PenaltyPerWrong*wrong
	if pts < p.Min {
		pts = p.Min
	}
	return pts
}

// Ledger mutates one owner+mode stats row.
type Ledger struct {
	store   Store
	owner   string
	mode    string
	policy  Policy
	settled bool
}

// New binds a ledger to its store, owner (device id), and mode namespace.
func New(store Store, owner, mode string, policy Policy) *Ledger {
	if policy == (Policy{}) {
		policy = DefaultPolicy
	}
	return &Ledger{store: store, owner: owner, mode: mode, policy: policy}
}

// Mode returns the mode namespace this ledger writes to.
func (l *Ledger) Mode() string { return l.mode }

// Stats loads the current counters. A missing row reads as zeros.
func (l *Ledger) Stats(ctx context.Context) (Stats, error) {
	return l.store.Load(ctx, l.owner, l.mode)
}

// BeginRound opens a fresh round: the previous round's settlement no longer
// guards mutations.
func (l *Ledger) BeginRound() { l.settled = false }

// Award credits a solved round and extends the streak. It is a no-op when the
// round is already settled (solved or revealed), guarding double-award.
func (l *Ledger) Award(ctx context.Context, wrong int) (Stats, error) {
	if l.settled {
		return l.Stats(ctx)
	}
	s, err := l.store.Load(ctx, l.owner, l.mode)
	if err != nil {
		return s, err
	}
	s.Score += l.policy.Points(wrong)
	s.Streak++
	if err := l.store.Save(ctx, l.owner, l.mode, s); err != nil {
		return s, err
	}
	l.settled = true
	return s, nil
}

// PenalizeWrong ends the streak; the score is unaffected.
func (l *Ledger) PenalizeWrong(ctx context.Context) (Stats, error) {
	if l.settled {
		return l.Stats(ctx)
	}
	return l.zero(ctx, false)
}

// PenalizeReveal zeroes both counters and settles the round.
func (l *Ledger) PenalizeReveal(ctx context.Context) (Stats, error) {
	if l.settled {
		return l.Stats(ctx)
	}
	s, err := l.zero(ctx, true)
	if err == nil {
		l.settled = true
	}
	return s, err
}

// PenalizeAbandon zeroes both counters for a round abandoned unsolved.
// Settled rounds are exempt: starting the next round after a solve is not
// an abandonment.
func (l *Ledger) PenalizeAbandon(ctx context.Context) (Stats, error) {
	if l.settled {
		return l.Stats(ctx)
	}
	return l.zero(ctx, true)
}

func (l *Ledger) zero(ctx context.Context, score bool) (Stats, error) {
	s, err := l.store.Load(ctx, l.owner, l.mode)
	if err != nil {
		return s, err
	}
	s.Streak = 0
	if score {
		s.Score = 0
	}
	if err := l.store.Save(ctx, l.owner, l.mode, s); err != nil {
		return s, err
	}
	return s, nil
}
