package obfuscate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForClamps(t *testing.T) {
	l := ForMode("pixelate")
	last := l.Len() - 1

	assert.Equal(t, 64, l.LevelFor(0).Block)
	assert.Equal(t, 1, l.LevelFor(last).Block)
	assert.Equal(t, l.LevelFor(last), l.LevelFor(last+1))
	assert.Equal(t, l.LevelFor(last), l.LevelFor(1000))
	assert.Equal(t, l.LevelFor(0), l.LevelFor(-3))
}

func TestPixelateMonotonic(t *testing.T) {
	l := ForMode("pixelate")
	prev := l.LevelFor(0).Block
	for w := 1; w < l.Len()+5; w++ {
		cur := l.LevelFor(w).Block
		assert.LessOrEqual(t, cur, prev, "block size must not grow at wrong=%d", w)
		prev = cur
	}
	assert.Equal(t, 1, l.Clear().Block)
	assert.False(t, l.Clear().Obscured)
}

func TestSpriteZoomMonotonic(t *testing.T) {
	l := ForMode("sprite")
	assert.Equal(t, 500, l.LevelFor(0).ZoomPct)
	prev := l.LevelFor(0).ZoomPct
	for w := 1; w < l.Len(); w++ {
		cur := l.LevelFor(w).ZoomPct
		assert.Less(t, cur, prev)
		prev = cur
	}
	assert.Equal(t, 100, l.Clear().ZoomPct)
}

func TestTCGBlurSteps(t *testing.T) {
	l := ForMode("tcg")
	assert.Equal(t, 20, l.LevelFor(0).BlurPx)
	assert.Equal(t, 0, l.LevelFor(4).BlurPx)
	// Fully clear after four wrong guesses and beyond.
	assert.Equal(t, 0, l.LevelFor(10).BlurPx)
}

func TestStaticModesHoldUntilClear(t *testing.T) {
	for _, mode := range []string{"silhouette", "cry", "entry"} {
		l := ForMode(mode)
		assert.True(t, l.Static, mode)
		for w := 0; w < 20; w++ {
			assert.True(t, l.LevelFor(w).Obscured, "%s must stay obscured at wrong=%d", mode, w)
		}
		assert.False(t, l.Clear().Obscured, mode)
	}
}

func TestEmptyLadder(t *testing.T) {
	var l Ladder
	assert.Equal(t, Intensity{}, l.LevelFor(3))
	assert.Equal(t, Intensity{}, l.Clear())
}
