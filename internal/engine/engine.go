// internal/engine/engine.go
//
// Round engine: the presentation-free state machine driving one game mode.
// Responsibilities:
//   - Fetch rounds through a RoundFetcher and guard against stale responses
//     with a sequence number.
//   - Accept guesses, delegate correctness to a GuessVerifier, and apply
//     scoring, obfuscation steps and hint reveals on the outcome.
//   - Enforce the lifecycle: loading → ready → solved/revealed, with
//     abandonment handling when a round is skipped unresolved.
//
// Notes:
//   - Callbacks are invoked outside the engine lock so handlers may call
//     back into the engine.
//   - Verification failures (transport errors) never mutate round state.

package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/BVSTSirop/pokeguess/internal/hint"
	"github.com/BVSTSirop/pokeguess/internal/ledger"
	"github.com/BVSTSirop/pokeguess/internal/names"
	"github.com/BVSTSirop/pokeguess/internal/obfuscate"
)

var (
	// ErrBlankGuess rejects input that normalizes to the empty string.
	ErrBlankGuess = errors.New("blank guess")
	// ErrNotReady is returned while no round is loaded.
	ErrNotReady = errors.New("round not ready")
	// ErrRoundOver is returned after the round was solved or revealed.
	ErrRoundOver = errors.New("round already finished")
	// ErrAlreadyGuessed rejects a repeat of a guess from this round.
	ErrAlreadyGuessed = errors.New("name already guessed this round")
)

// Engine runs the guess loop for a single mode and player.
type Engine struct {
	fetcher  RoundFetcher
	verifier GuessVerifier
	ledger   *ledger.Ledger
	ladder   obfuscate.Ladder
	lang     string
	cb       Callbacks

	mu      sync.Mutex
	started bool
	seq     uint64
	state   State
	round   Round
	hints   *hint.Ladder
	wrong   int
	guessed map[string]struct{}
}

// New builds an engine. The obfuscation ladder comes from the mode; hints use
// the default thresholds.
func New(f RoundFetcher, v GuessVerifier, led *ledger.Ledger, ladder obfuscate.Ladder, lang string) *Engine {
	return &Engine{
		fetcher:  f,
		verifier: v,
		ledger:   led,
		ladder:   ladder,
		lang:     lang,
		state:    StateLoading,
		hints:    hint.NewLadder(),
		guessed:  map[string]struct{}{},
	}
}

// UseHintThresholds swaps in a custom hint policy (e.g. from configuration).
// Call before Start.
func (e *Engine) UseHintThresholds(th [4]int) {
	e.mu.Lock()
	e.hints = hint.NewLadderWithThresholds(th)
	e.mu.Unlock()
}

// Start wires the callbacks and loads the first round. Calling Start again is
// a no-op; restarts go through Next.
func (e *Engine) Start(ctx context.Context, cb Callbacks) error {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return nil
	}
	e.started = true
	e.cb = cb
	e.mu.Unlock()
	return e.Next(ctx)
}

// Next advances to a fresh round. Skipping an unresolved round counts as
// abandonment and zeroes score and streak. Responses from rounds that were
// superseded while in flight are dropped.
func (e *Engine) Next(ctx context.Context) error {
	e.mu.Lock()
	if e.state == StateReady && e.round.Token != "" {
		e.ledger.PenalizeAbandon(ctx)
	}
	e.seq++
	mine := e.seq
	e.state = StateLoading
	e.round = Round{}
	e.wrong = 0
	e.guessed = map[string]struct{}{}
	e.hints.Reset()
	e.ledger.BeginRound()
	e.mu.Unlock()

	r, err := e.fetcher.FetchRound(ctx)

	e.mu.Lock()
	if mine != e.seq {
		// A later Next superseded this fetch; discard quietly.
		e.mu.Unlock()
		return nil
	}
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("fetch round: %w", err)
	}
	e.round = r
	e.state = StateReady
	ev := RoundLoadedEvent{Round: r, Intensity: e.ladder.LevelFor(0)}
	cb := e.cb.OnRoundLoaded
	e.mu.Unlock()

	if cb != nil {
		cb(ev)
	}
	return nil
}

// SubmitGuess verifies one guess and applies the outcome. Guard errors
// (blank, not ready, finished, duplicate) leave all state untouched, as do
// verification transport failures.
func (e *Engine) SubmitGuess(ctx context.Context, raw string) error {
	key := names.Normalize(raw)
	if key == "" {
		return ErrBlankGuess
	}

	e.mu.Lock()
	switch e.state {
	case StateLoading:
		e.mu.Unlock()
		return ErrNotReady
	case StateSolved, StateRevealed:
		e.mu.Unlock()
		return ErrRoundOver
	}
	if _, dup := e.guessed[key]; dup {
		e.mu.Unlock()
		return ErrAlreadyGuessed
	}
	tok := e.round.Token
	mine := e.seq
	e.mu.Unlock()

	v, err := e.verifier.VerifyGuess(ctx, tok, raw, e.lang)

	e.mu.Lock()
	if mine != e.seq || e.state != StateReady {
		e.mu.Unlock()
		return nil
	}
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("verify guess: %w", err)
	}

	if v.Correct {
		e.state = StateSolved
		e.ledger.Award(ctx, e.wrong)
		stats, _ := e.ledger.Stats(ctx)
		ev := CorrectEvent{
			Name:      v.Name,
			Wrong:     e.wrong,
			Intensity: e.ladder.Clear(),
			Stats:     stats,
		}
		cb := e.cb.OnCorrect
		e.mu.Unlock()
		if cb != nil {
			cb(ev)
		}
		return nil
	}

	e.guessed[key] = struct{}{}
	e.wrong++
	e.ledger.PenalizeWrong(ctx)
	newHints := e.hints.MaybeReveal(e.wrong, e.round.Answer, e.round.Meta)
	stats, _ := e.ledger.Stats(ctx)
	ev := WrongEvent{
		Guess:     raw,
		Wrong:     e.wrong,
		Intensity: e.ladder.LevelFor(e.wrong),
		NewHints:  newHints,
		Stats:     stats,
	}
	cb := e.cb.OnWrong
	e.mu.Unlock()
	if cb != nil {
		cb(ev)
	}
	return nil
}

// Reveal forfeits the round: the answer is disclosed at full clarity and both
// score and streak are zeroed.
func (e *Engine) Reveal(ctx context.Context) (string, error) {
	e.mu.Lock()
	switch e.state {
	case StateLoading:
		e.mu.Unlock()
		return "", ErrNotReady
	case StateSolved, StateRevealed:
		e.mu.Unlock()
		return "", ErrRoundOver
	}
	e.state = StateRevealed
	e.ledger.PenalizeReveal(ctx)
	answer := e.round.Answer
	stats, _ := e.ledger.Stats(ctx)
	ev := RevealedEvent{Answer: answer, Intensity: e.ladder.Clear(), Stats: stats}
	cb := e.cb.OnRevealed
	e.mu.Unlock()

	if cb != nil {
		cb(ev)
	}
	return answer, nil
}

// State reports the current lifecycle position.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Wrong reports the round's incorrect guess count.
func (e *Engine) Wrong() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wrong
}

// Intensity recomputes the obfuscation step for the current round, for
// redraws after a resize or reload.
func (e *Engine) Intensity() obfuscate.Intensity {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateSolved || e.state == StateRevealed {
		return e.ladder.Clear()
	}
	return e.ladder.LevelFor(e.wrong)
}

// Guessed reports the normalized guesses already tried this round, for
// suggestion exclusion.
func (e *Engine) Guessed() map[string]struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]struct{}, len(e.guessed))
	for k := range e.guessed {
		out[k] = struct{}{}
	}
	return out
}
