// internal/daily/game.go
//
// Daily challenge orchestration: one shared species per UTC day, per-field
// comparison feedback, and per-device history that survives reloads.

package daily

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/BVSTSirop/pokeguess/internal/names"
	"github.com/BVSTSirop/pokeguess/internal/pokeapi"
)

var (
	// ErrUnknownName rejects guesses that resolve to no species.
	ErrUnknownName = errors.New("unknown species name")
	// ErrFinished marks a day already solved by this device.
	ErrFinished = errors.New("daily challenge already solved")
)

// Game runs the daily challenge.
type Game struct {
	poke  *pokeapi.Client
	store *Store
	salt  string
	log   zerolog.Logger
	now   func() time.Time
}

func NewGame(poke *pokeapi.Client, store *Store, salt string, log zerolog.Logger) *Game {
	return &Game{
		poke:  poke,
		store: store,
		salt:  salt,
		log:   log.With().Str("component", "daily").Logger(),
		now:   time.Now,
	}
}

// Today returns the current challenge date key.
func (g *Game) Today() string { return DateKey(g.now()) }

// GuessResult is the outcome of one daily guess.
type GuessResult struct {
	Correct  bool     `json:"correct"`
	Feedback Feedback `json:"feedback"`
	Answer   string   `json:"answer,omitempty"` // localized answer name, set only on a win
	State    State    `json:"state"`
}

// Guess compares raw against today's species and records the attempt.
func (g *Game) Guess(ctx context.Context, owner, lang, raw string) (GuessResult, error) {
	date := g.Today()

	st, err := g.store.GetState(ctx, owner, date)
	if err != nil {
		return GuessResult{}, err
	}
	if st.Done && st.Win {
		return GuessResult{}, ErrFinished
	}

	lst, err := g.poke.List(ctx)
	if err != nil {
		return GuessResult{}, err
	}
	guessID := g.resolve(lst, lang, raw)
	if guessID == 0 {
		return GuessResult{}, ErrUnknownName
	}

	// Repeats are settled from stored history before any per-species lookup.
	hist, err := g.store.History(ctx, owner, date)
	if err != nil {
		return GuessResult{}, err
	}
	norm := names.Normalize(raw)
	for _, prev := range hist {
		if prev.SpeciesID == guessID || (norm != "" && prev.Norm == norm) {
			return GuessResult{}, ErrDuplicateGuess
		}
	}

	answerID := AnswerID(date, g.salt, lst)

	guessAttrs, err := g.poke.Attrs(ctx, guessID)
	if err != nil {
		return GuessResult{}, err
	}
	answerAttrs, err := g.poke.Attrs(ctx, answerID)
	if err != nil {
		return GuessResult{}, err
	}

	fb, correct := Compare(guessAttrs, answerAttrs)
	if name, err := g.poke.LocalizedName(ctx, guessAttrs.SpeciesID, lang); err == nil {
		fb.Name = name
	}

	rec := Guess{
		SpeciesID: guessAttrs.SpeciesID,
		Norm:      names.Normalize(fb.Name),
		Feedback:  fb,
	}
	if rec.Norm == "" {
		rec.Norm = norm
	}
	if err := g.store.AppendGuess(ctx, owner, date, rec); err != nil {
		return GuessResult{}, err
	}

	st.Guesses++
	if correct {
		st.Done = true
		st.Win = true
	}
	if err := g.store.SetState(ctx, owner, date, st); err != nil {
		// History already holds the guess; state is best effort.
		g.log.Warn().Err(err).Str("owner", owner).Msg("daily state write failed")
	}

	res := GuessResult{Correct: correct, Feedback: fb, State: st}
	if correct {
		if name, err := g.poke.LocalizedName(ctx, answerAttrs.SpeciesID, lang); err == nil {
			res.Answer = name
		}
	}
	return res, nil
}

// History replays the device's guesses and completion state for today.
func (g *Game) History(ctx context.Context, owner string) ([]Guess, State, error) {
	date := g.Today()
	guesses, err := g.store.History(ctx, owner, date)
	if err != nil {
		return nil, State{}, err
	}
	st, err := g.store.GetState(ctx, owner, date)
	if err != nil {
		return nil, State{}, err
	}
	return guesses, st, nil
}

// Translate maps species ids to display names in lang, for re-rendering a
// stored history after a language switch. Unresolvable ids are skipped.
func (g *Game) Translate(ctx context.Context, ids []int, lang string) map[int]string {
	out := make(map[int]string, len(ids))
	for _, id := range ids {
		if name, err := g.poke.LocalizedName(ctx, id, lang); err == nil {
			out[id] = name
		}
	}
	return out
}

// Reset wipes the device's progress for today only.
func (g *Game) Reset(ctx context.Context, owner string) error {
	return g.store.ResetDay(ctx, owner, g.Today())
}

// Leaderboard lists today's fastest solvers.
func (g *Game) Leaderboard(ctx context.Context, limit int) ([]LBRow, error) {
	return g.store.Leaderboard(ctx, g.Today(), limit)
}

// resolve maps a typed guess to a species id using English names, slugs and
// whatever localized names are already cached. No network on the guess path.
func (g *Game) resolve(lst []names.Entry, lang, raw string) int {
	ix := names.BuildIndex(lst, g.poke.CachedNames(lang))
	return ix.Resolve(raw)
}
