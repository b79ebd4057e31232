// internal/daily/compare.go
//
// Per-field comparison between a guessed species and the day's answer.
// Every field reports correct/wrong independently; ordered scalar fields
// (generation, height, weight, evolution stage) add a higher/lower direction
// when wrong. Types are compared per slot, primary and secondary separately.

package daily

import "github.com/BVSTSirop/pokeguess/internal/pokeapi"

const (
	StatusCorrect = "correct"
	StatusWrong   = "wrong"

	DirHigher = "higher"
	DirLower  = "lower"
)

// Evolution relation categories between guess and answer.
const (
	EvoSame       = "same"
	EvoPre        = "pre"
	EvoPost       = "post"
	EvoSameFamily = "same-family"
	EvoUnrelated  = "unrelated"
)

// TypesField compares the two type slots independently.
type TypesField struct {
	Value  []string `json:"value"`
	Status []string `json:"status"`
}

// ScalarField is a binary verdict with a directional hint when wrong.
type ScalarField struct {
	Value  int    `json:"value"`
	Status string `json:"status"`
	Dir    string `json:"dir,omitempty"`
}

// StageValue is the 1-based evolution stage and the path length.
type StageValue struct {
	Stage int `json:"stage"`
	Total int `json:"total"`
}

type StageField struct {
	Value  StageValue `json:"value"`
	Status string     `json:"status"`
	Dir    string     `json:"dir,omitempty"`
}

type ColorField struct {
	Value  string `json:"value"`
	Status string `json:"status"`
}

// Feedback is the full comparison row for one guess.
type Feedback struct {
	Name       string      `json:"name"`
	SpeciesID  int         `json:"species_id"`
	Types      TypesField  `json:"types"`
	Generation ScalarField `json:"generation"`
	Evolution  string      `json:"evolution"`
	EvoStage   StageField  `json:"evo_stage"`
	Height     ScalarField `json:"height"`
	Weight     ScalarField `json:"weight"`
	Color      ColorField  `json:"color"`
}

// Compare builds the feedback row for a guess against the answer and reports
// whether the guess is the answer. A correct species forces the scalar
// fields correct so form-specific sizes never contradict the win.
func Compare(guess, answer pokeapi.Attrs) (Feedback, bool) {
	fb := Feedback{SpeciesID: guess.SpeciesID}

	fb.Types = compareTypes(guess.Types, answer.Types)
	fb.Generation = compareScalar(guess.Generation, answer.Generation)
	fb.Evolution = compareEvolution(guess, answer)
	fb.EvoStage = compareStage(guess, answer)
	fb.Height = compareScalar(guess.Height, answer.Height)
	fb.Weight = compareScalar(guess.Weight, answer.Weight)

	fb.Color = ColorField{Value: guess.Color, Status: StatusWrong}
	if guess.Color != "" && guess.Color == answer.Color {
		fb.Color.Status = StatusCorrect
	}

	correct := guess.SpeciesSlug != "" && guess.SpeciesSlug == answer.SpeciesSlug
	if correct {
		fb.Height = ScalarField{Value: guess.Height, Status: StatusCorrect}
		fb.Weight = ScalarField{Value: guess.Weight, Status: StatusCorrect}
	}
	return fb, correct
}

func compareTypes(guess, answer []string) TypesField {
	fb := TypesField{Value: guess, Status: make([]string, 2)}
	for slot := 0; slot < 2; slot++ {
		var g, a string
		if slot < len(guess) {
			g = guess[slot]
		}
		if slot < len(answer) {
			a = answer[slot]
		}
		// Two empty slots agree: both species are monotyped.
		if g == a {
			fb.Status[slot] = StatusCorrect
		} else {
			fb.Status[slot] = StatusWrong
		}
	}
	return fb
}

func compareScalar(guess, answer int) ScalarField {
	fb := ScalarField{Value: guess, Status: StatusWrong}
	switch {
	case guess == 0 || answer == 0:
	case guess == answer:
		fb.Status = StatusCorrect
	case guess < answer:
		fb.Dir = DirHigher
	default:
		fb.Dir = DirLower
	}
	return fb
}

func compareStage(guess, answer pokeapi.Attrs) StageField {
	fb := StageField{
		Value:  StageValue{Stage: guess.Stage, Total: guess.StageTotal},
		Status: StatusWrong,
	}
	switch {
	case guess.Stage == 0 || answer.Stage == 0:
	case guess.Stage == answer.Stage:
		fb.Status = StatusCorrect
	case guess.Stage < answer.Stage:
		fb.Dir = DirHigher
	default:
		fb.Dir = DirLower
	}
	return fb
}

func compareEvolution(guess, answer pokeapi.Attrs) string {
	if guess.SpeciesSlug == answer.SpeciesSlug {
		return EvoSame
	}
	if _, inFamily := answer.Family[guess.SpeciesSlug]; !inFamily {
		return EvoUnrelated
	}
	gi, gOK := answer.StageOf[guess.SpeciesSlug]
	ai, aOK := answer.StageOf[answer.SpeciesSlug]
	if !gOK || !aOK {
		return EvoSameFamily
	}
	switch {
	case gi < ai:
		return EvoPre
	case gi > ai:
		return EvoPost
	}
	return EvoSame
}
