// internal/hint/ladder.go
//
// Progressive hint disclosure for a round. Four fixed levels are gated by
// wrong-guess thresholds and revealed at most once per round:
//
//  1. starting letter of the answer's display name
//  2. species color
//  3. generation
//  4. silhouette thumbnail
//
// Rules:
//   - Thresholds are strictly increasing policy values (defaults 3/5/7/10);
//     the level order is fixed.
//   - Level 1 needs the answer name to be known; when it is not yet known the
//     level is skipped on this pass and retried on later passes, without
//     blocking levels 2–4.
//   - Levels 2–4 each need their metadata field present; an absent field skips
//     that level only.
//   - Revealed levels are never retracted; re-invocation is idempotent.
//   - Reset clears everything for the next round.
package hint

// Level identifies one hint rung, 1-based to match the timeline rendering.
type Level int

const (
	LevelLetter     Level = 1
	LevelColor      Level = 2
	LevelGeneration Level = 3
	LevelSilhouette Level = 4

	numLevels = 4
)

// DefaultThresholds is the wrong-guess count required for each level.
var DefaultThresholds = [numLevels]int{3, 5, 7, 10}

// Meta carries the answer attributes hints are drawn from. Zero values mean
// "not available" and cause the corresponding level to be skipped.
type Meta struct {
	Color      string `json:"color,omitempty"`
	Generation int    `json:"generation,omitempty"`
	SpriteURL  string `json:"sprite,omitempty"`
}

// Hint is one revealed hint with its display content.
type Hint struct {
	Level      Level  `json:"level"`
	Letter     string `json:"letter,omitempty"`
	Color      string `json:"color,omitempty"`
	Generation int    `json:"generation,omitempty"`
	SpriteURL  string `json:"sprite,omitempty"`
}

// Ladder tracks which levels have been revealed for the active round.
type Ladder struct {
	thresholds [numLevels]int
	revealed   [numLevels + 1]bool
}

// NewLadder builds a ladder with the default thresholds.
func NewLadder() *Ladder {
	return NewLadderWithThresholds(DefaultThresholds)
}

// NewLadderWithThresholds builds a ladder with a custom policy table.
// Thresholds that are not strictly increasing fall back to the defaults.
func NewLadderWithThresholds(th [numLevels]int) *Ladder {
	for i := 1; i < numLevels; i++ {
		if th[i] <= th[i-1] {
			th = DefaultThresholds
			break
		}
	}
	return &Ladder{thresholds: th}
}

// MaybeReveal attempts every not-yet-revealed level in order and returns the
// hints newly revealed by this call. Calling it again with the same arguments
// returns nothing: a level reveals exactly once per round.
func (l *Ladder) MaybeReveal(wrong int, answer string, meta Meta) []Hint {
	var out []Hint
	for lv := LevelLetter; lv <= LevelSilhouette; lv++ {
		if l.revealed[lv] || wrong < l.thresholds[lv-1] {
			continue
		}
		h, ok := build(lv, answer, meta)
		if !ok {
			continue // data not available yet; retried on the next pass
		}
		l.revealed[lv] = true
		out = append(out, h)
	}
	return out
}

func build(lv Level, answer string, meta Meta) (Hint, bool) {
	switch lv {
	case LevelLetter:
		if answer == "" {
			return Hint{}, false
		}
		return Hint{Level: lv, Letter: firstLetter(answer)}, true
	case LevelColor:
		if meta.Color == "" {
			return Hint{}, false
		}
		return Hint{Level: lv, Color: meta.Color}, true
	case LevelGeneration:
		if meta.Generation <= 0 {
			return Hint{}, false
		}
		return Hint{Level: lv, Generation: meta.Generation}, true
	case LevelSilhouette:
		if meta.SpriteURL == "" {
			return Hint{}, false
		}
		return Hint{Level: lv, SpriteURL: meta.SpriteURL}, true
	}
	return Hint{}, false
}

func firstLetter(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// Revealed reports the set of revealed levels in ascending order.
func (l *Ladder) Revealed() []Level {
	var out []Level
	for lv := LevelLetter; lv <= LevelSilhouette; lv++ {
		if l.revealed[lv] {
			out = append(out, lv)
		}
	}
	return out
}

// IsRevealed reports whether a single level has been revealed.
func (l *Ladder) IsRevealed(lv Level) bool {
	return lv >= LevelLetter && lv <= LevelSilhouette && l.revealed[lv]
}

// Threshold returns the wrong-guess gate for a level.
func (l *Ladder) Threshold(lv Level) int {
	if lv < LevelLetter || lv > LevelSilhouette {
		return 0
	}
	return l.thresholds[lv-1]
}

// Reset clears all revealed levels for a new round.
func (l *Ladder) Reset() {
	l.revealed = [numLevels + 1]bool{}
}
