package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BVSTSirop/pokeguess/internal/engine"
	"github.com/BVSTSirop/pokeguess/internal/hint"
	"github.com/BVSTSirop/pokeguess/internal/ledger"
	"github.com/BVSTSirop/pokeguess/internal/names"
	"github.com/BVSTSirop/pokeguess/internal/obfuscate"
)

type queueFetcher struct {
	rounds []engine.Round
	n      int
}

func (f *queueFetcher) FetchRound(ctx context.Context) (engine.Round, error) {
	r := f.rounds[f.n%len(f.rounds)]
	f.n++
	return r, nil
}

type fakeVerifier struct {
	answer  string
	display string
	err     error
	calls   int
}

func (v *fakeVerifier) VerifyGuess(ctx context.Context, tok, guess, lang string) (engine.Verdict, error) {
	v.calls++
	if v.err != nil {
		return engine.Verdict{}, v.err
	}
	if names.Normalize(guess) == names.Normalize(v.answer) {
		return engine.Verdict{Correct: true, Name: v.display}, nil
	}
	return engine.Verdict{}, nil
}

func newTestEngine(t *testing.T, answer string) (*engine.Engine, *ledger.Ledger, *fakeVerifier) {
	t.Helper()
	led := ledger.New(ledger.NewMemoryStore(), "dev-1", "sprite", ledger.DefaultPolicy)
	f := &queueFetcher{rounds: []engine.Round{{
		Token:  "7.cafe",
		Answer: answer,
		Meta:   hint.Meta{Color: "yellow", Generation: 1, SpriteURL: "https://img/25.png"},
	}}}
	v := &fakeVerifier{answer: answer, display: answer}
	return engine.New(f, v, led, obfuscate.ForMode("sprite"), "en"), led, v
}

func TestWrongGuessesThenCorrect(t *testing.T) {
	ctx := context.Background()
	e, led, _ := newTestEngine(t, "Pikachu")

	var loaded int
	var wrongs []engine.WrongEvent
	var correct *engine.CorrectEvent
	require.NoError(t, e.Start(ctx, engine.Callbacks{
		OnRoundLoaded: func(engine.RoundLoadedEvent) { loaded++ },
		OnWrong:       func(ev engine.WrongEvent) { wrongs = append(wrongs, ev) },
		OnCorrect:     func(ev engine.CorrectEvent) { correct = &ev },
	}))
	require.Equal(t, 1, loaded)
	require.Equal(t, engine.StateReady, e.State())

	for _, g := range []string{"Bulbasaur", "Charmander", "Squirtle"} {
		require.NoError(t, e.SubmitGuess(ctx, g))
	}
	require.Len(t, wrongs, 3)

	// Third miss crosses the first hint threshold.
	assert.Empty(t, wrongs[0].NewHints)
	assert.Empty(t, wrongs[1].NewHints)
	require.Len(t, wrongs[2].NewHints, 1)
	assert.Equal(t, hint.LevelLetter, wrongs[2].NewHints[0].Level)
	assert.Equal(t, "P", wrongs[2].NewHints[0].Letter)

	// Obfuscation eased three steps from the start.
	assert.Equal(t, 500, wrongs[0].Intensity.ZoomPct+25)
	assert.Equal(t, 425, wrongs[2].Intensity.ZoomPct)

	require.NoError(t, e.SubmitGuess(ctx, "Pikachu"))
	require.NotNil(t, correct)
	assert.Equal(t, engine.StateSolved, e.State())
	assert.Equal(t, 100, correct.Intensity.ZoomPct)
	assert.Equal(t, ledger.Stats{Score: 25, Streak: 1}, correct.Stats)

	stats, err := led.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, ledger.Stats{Score: 25, Streak: 1}, stats)
}

func TestRevealZeroesAndLocksRound(t *testing.T) {
	ctx := context.Background()
	e, led, _ := newTestEngine(t, "Pikachu")
	require.NoError(t, e.Start(ctx, engine.Callbacks{}))

	// Bank some points first so the reset is visible.
	require.NoError(t, e.SubmitGuess(ctx, "Pikachu"))
	require.NoError(t, e.Next(ctx))

	answer, err := e.Reveal(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Pikachu", answer)
	assert.Equal(t, engine.StateRevealed, e.State())

	stats, err := led.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, ledger.Stats{}, stats)

	assert.ErrorIs(t, e.SubmitGuess(ctx, "Pikachu"), engine.ErrRoundOver)
	_, err = e.Reveal(ctx)
	assert.ErrorIs(t, err, engine.ErrRoundOver)
}

func TestGuardErrorsLeaveStateUntouched(t *testing.T) {
	ctx := context.Background()
	e, led, v := newTestEngine(t, "Pikachu")
	require.NoError(t, e.Start(ctx, engine.Callbacks{}))

	assert.ErrorIs(t, e.SubmitGuess(ctx, "   "), engine.ErrBlankGuess)
	assert.Zero(t, v.calls)

	require.NoError(t, e.SubmitGuess(ctx, "Eevee"))
	assert.ErrorIs(t, e.SubmitGuess(ctx, "eevee"), engine.ErrAlreadyGuessed)
	assert.ErrorIs(t, e.SubmitGuess(ctx, "ÉEVEE"), engine.ErrAlreadyGuessed)
	assert.Equal(t, 1, e.Wrong())

	// A transport failure must not count as a wrong guess.
	v.err = errors.New("boom")
	err := e.SubmitGuess(ctx, "Mew")
	require.Error(t, err)
	assert.NotErrorIs(t, err, engine.ErrRoundOver)
	assert.Equal(t, 1, e.Wrong())
	stats, _ := led.Stats(ctx)
	assert.Equal(t, ledger.Stats{}, stats)

	v.err = nil
	require.NoError(t, e.SubmitGuess(ctx, "Mew"))
	assert.Equal(t, 2, e.Wrong())
}

func TestSkipUnresolvedRoundIsAbandonment(t *testing.T) {
	ctx := context.Background()
	e, led, _ := newTestEngine(t, "Pikachu")
	require.NoError(t, e.Start(ctx, engine.Callbacks{}))

	require.NoError(t, e.SubmitGuess(ctx, "Pikachu"))
	stats, _ := led.Stats(ctx)
	require.Equal(t, ledger.Stats{Score: 100, Streak: 1}, stats)

	// Skipping a solved round costs nothing.
	require.NoError(t, e.Next(ctx))
	stats, _ = led.Stats(ctx)
	assert.Equal(t, ledger.Stats{Score: 100, Streak: 1}, stats)

	// Skipping an unresolved one zeroes both counters.
	require.NoError(t, e.Next(ctx))
	stats, _ = led.Stats(ctx)
	assert.Equal(t, ledger.Stats{}, stats)
	assert.Zero(t, e.Wrong())
}

// reentrantFetcher supersedes its own first fetch by requesting another round
// before returning, which is how an impatient skip races an in-flight load.
type reentrantFetcher struct {
	eng    **engine.Engine
	rounds []engine.Round
	n      int
}

func (f *reentrantFetcher) FetchRound(ctx context.Context) (engine.Round, error) {
	idx := f.n
	f.n++
	if idx == 0 {
		if err := (*f.eng).Next(ctx); err != nil {
			return engine.Round{}, err
		}
	}
	return f.rounds[idx], nil
}

func TestStaleRoundResponseIsDropped(t *testing.T) {
	ctx := context.Background()
	led := ledger.New(ledger.NewMemoryStore(), "dev-1", "sprite", ledger.DefaultPolicy)
	var e *engine.Engine
	f := &reentrantFetcher{eng: &e, rounds: []engine.Round{
		{Token: "1.old", Answer: "Bulbasaur"},
		{Token: "2.new", Answer: "Pikachu"},
	}}
	v := &fakeVerifier{answer: "Pikachu", display: "Pikachu"}
	e = engine.New(f, v, led, obfuscate.ForMode("sprite"), "en")

	var loads []engine.RoundLoadedEvent
	require.NoError(t, e.Start(ctx, engine.Callbacks{
		OnRoundLoaded: func(ev engine.RoundLoadedEvent) { loads = append(loads, ev) },
	}))

	// Only the superseding round may surface.
	require.Len(t, loads, 1)
	assert.Equal(t, "2.new", loads[0].Round.Token)
	assert.Equal(t, engine.StateReady, e.State())
	require.NoError(t, e.SubmitGuess(ctx, "Pikachu"))
	assert.Equal(t, engine.StateSolved, e.State())
}

func TestStartIsIdempotent(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newTestEngine(t, "Pikachu")
	var loaded int
	cb := engine.Callbacks{OnRoundLoaded: func(engine.RoundLoadedEvent) { loaded++ }}
	require.NoError(t, e.Start(ctx, cb))
	require.NoError(t, e.Start(ctx, cb))
	assert.Equal(t, 1, loaded)
}

func TestCustomHintThresholds(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newTestEngine(t, "Pikachu")
	e.UseHintThresholds([4]int{1, 2, 3, 4})

	var wrongs []engine.WrongEvent
	require.NoError(t, e.Start(ctx, engine.Callbacks{
		OnWrong: func(ev engine.WrongEvent) { wrongs = append(wrongs, ev) },
	}))

	require.NoError(t, e.SubmitGuess(ctx, "Bulbasaur"))
	require.Len(t, wrongs, 1)
	require.Len(t, wrongs[0].NewHints, 1)
	assert.Equal(t, hint.LevelLetter, wrongs[0].NewHints[0].Level)

	require.NoError(t, e.SubmitGuess(ctx, "Charmander"))
	require.Len(t, wrongs[1].NewHints, 1)
	assert.Equal(t, "yellow", wrongs[1].NewHints[0].Color)
}

func TestDoubleAwardGuard(t *testing.T) {
	ctx := context.Background()
	e, led, _ := newTestEngine(t, "Pikachu")
	require.NoError(t, e.Start(ctx, engine.Callbacks{}))
	require.NoError(t, e.SubmitGuess(ctx, "Pikachu"))
	assert.ErrorIs(t, e.SubmitGuess(ctx, "Pikachu"), engine.ErrRoundOver)

	stats, _ := led.Stats(ctx)
	assert.Equal(t, ledger.Stats{Score: 100, Streak: 1}, stats)
}
