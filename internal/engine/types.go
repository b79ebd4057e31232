// internal/engine/types.go
//
// Core type definitions for the round engine.
// Defines:
//   - State: the round lifecycle enum (loading/ready/solved/revealed).
//   - Round: one hidden-answer challenge as handed over by a round source.
//   - Verdict: the result of delegated guess verification.
//   - The collaborator interfaces and the event callback contract.

package engine

import (
	"context"

	"github.com/BVSTSirop/pokeguess/internal/hint"
	"github.com/BVSTSirop/pokeguess/internal/ledger"
	"github.com/BVSTSirop/pokeguess/internal/obfuscate"
)

// State is the lifecycle position of the active round.
// Transitions: Loading → Ready → {Solved | Revealed}; Ready → Loading when a
// new round supersedes an unresolved one (abandonment).
type State int

const (
	StateLoading State = iota
	StateReady
	StateSolved
	StateRevealed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSolved:
		return "solved"
	case StateRevealed:
		return "revealed"
	}
	return "unknown"
}

// Round is one hidden-answer challenge.
type Round struct {
	// Token is the opaque identifier echoed back on every verification.
	Token string
	// Answer is the display name, known to the engine for hint level 1 and
	// reveal messaging. Correctness is never decided from it locally.
	Answer string
	// Meta carries hint attributes (color, generation, sprite URL).
	Meta hint.Meta
	// Payload is the mode-specific media descriptor passed through to the
	// presentation layer untouched (sprite crop, card image, cry URL, entry
	// text).
	Payload map[string]any
}

// Verdict is the verification outcome for one guess.
type Verdict struct {
	Correct bool
	Name    string // canonical display name, localized
}

// RoundFetcher produces a fresh round. Implemented per game mode.
type RoundFetcher interface {
	FetchRound(ctx context.Context) (Round, error)
}

// GuessVerifier decides correctness for a guess against a round token.
type GuessVerifier interface {
	VerifyGuess(ctx context.Context, tok, guess, lang string) (Verdict, error)
}

// RoundLoadedEvent fires when a new round is ready to render.
type RoundLoadedEvent struct {
	Round     Round
	Intensity obfuscate.Intensity
}

// CorrectEvent fires on a correct guess.
type CorrectEvent struct {
	Name      string
	Wrong     int
	Intensity obfuscate.Intensity
	Stats     ledger.Stats
}

// WrongEvent fires on an incorrect guess.
type WrongEvent struct {
	Guess     string
	Wrong     int
	Intensity obfuscate.Intensity
	NewHints  []hint.Hint
	Stats     ledger.Stats
}

// RevealedEvent fires when the player forfeits the round.
type RevealedEvent struct {
	Answer    string
	Intensity obfuscate.Intensity
	Stats     ledger.Stats
}

// Callbacks is the presentation contract. Nil members are skipped; the engine
// itself holds no rendering logic.
type Callbacks struct {
	OnRoundLoaded func(RoundLoadedEvent)
	OnCorrect     func(CorrectEvent)
	OnWrong       func(WrongEvent)
	OnRevealed    func(RevealedEvent)
}
