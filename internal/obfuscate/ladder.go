// internal/obfuscate/ladder.go
//
// Media-obfuscation ladders for every game mode. A ladder is a fixed ordered
// list of intensities from most obscured (index 0, shown before any wrong
// guess) to fully clear (last index). The current intensity is never stored:
// it is recomputed from the round's wrong-guess count whenever a redraw is
// needed, so LevelFor must stay pure and side-effect-free.
//
// On a correct guess or a reveal, the caller switches to Clear() so the full
// media is shown regardless of how many wrong guesses accumulated.
package obfuscate

// Intensity describes how strongly the round's media is obscured.
// Only the fields relevant to the mode's ladder are meaningful.
type Intensity struct {
	ZoomPct  int  `json:"zoom_pct,omitempty"` // sprite-crop background zoom (100 = full view)
	Block    int  `json:"block,omitempty"`    // pixelation block size in CSS pixels (1 = sharp)
	BlurPx   int  `json:"blur_px,omitempty"`  // card blur radius (0 = sharp)
	Obscured bool `json:"obscured"`           // hard mask (silhouette fill, hidden answer)
}

// Ladder is an ordered list of intensities, most obscured first.
// Static ladders (silhouette, cry, entry) do not get clearer on wrong guesses;
// their media flips to Clear() only when the round ends.
type Ladder struct {
	Steps  []Intensity
	Static bool
}

// LevelFor returns the intensity for a wrong-guess count, clamped to the
// ladder's bounds. Negative counts behave like zero.
func (l Ladder) LevelFor(wrong int) Intensity {
	if len(l.Steps) == 0 {
		return Intensity{}
	}
	if wrong < 0 || l.Static {
		wrong = 0
	}
	if wrong >= len(l.Steps) {
		wrong = len(l.Steps) - 1
	}
	return l.Steps[wrong]
}

// Clear returns the fully clear intensity (the last step).
func (l Ladder) Clear() Intensity {
	if len(l.Steps) == 0 {
		return Intensity{}
	}
	return l.Steps[len(l.Steps)-1]
}

// Len reports the number of steps.
func (l Ladder) Len() int { return len(l.Steps) }

// Per-mode step tables. Exact step values are presentation policy; the
// structural contract is that each list is ordered from obscured to clear.
var (
	// pixelBlocks are pixelation block sizes in CSS pixels.
	pixelBlocks = []int{64, 48, 32, 24, 16, 12, 8, 6, 4, 3, 2, 1}

	// blurSteps are card blur radii in pixels. Clears after four wrong guesses.
	blurSteps = []int{20, 14, 8, 4, 0}

	// zoomSteps shrink the sprite-crop background from a tight 500% crop down
	// to the full 100% view in 25-point steps.
	zoomSteps = buildZoomSteps(500, 100, 25)
)

func buildZoomSteps(from, to, step int) []int {
	var out []int
	for z := from; z > to; z -= step {
		out = append(out, z)
	}
	return append(out, to)
}

// ForMode returns the ladder for a mode id. Unknown modes get the binary
// obscured/clear ladder used by the single-step modes.
func ForMode(mode string) Ladder {
	switch mode {
	case "sprite":
		steps := make([]Intensity, len(zoomSteps))
		for i, z := range zoomSteps {
			steps[i] = Intensity{ZoomPct: z, Obscured: z > 100}
		}
		return Ladder{Steps: steps}
	case "pixelate":
		steps := make([]Intensity, len(pixelBlocks))
		for i, b := range pixelBlocks {
			steps[i] = Intensity{Block: b, Obscured: b > 1}
		}
		return Ladder{Steps: steps}
	case "tcg":
		steps := make([]Intensity, len(blurSteps))
		for i, px := range blurSteps {
			steps[i] = Intensity{BlurPx: px, Obscured: px > 0}
		}
		return Ladder{Steps: steps}
	default:
		// silhouette, cry, entry: the media stays obscured until the round
		// ends, then flips to clear.
		return Ladder{Steps: []Intensity{{Obscured: true}, {Obscured: false}}, Static: true}
	}
}
