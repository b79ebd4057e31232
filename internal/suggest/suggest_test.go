package suggest

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BVSTSirop/pokeguess/internal/names"
)

var corpus = []string{
	"Bulbasaur", "Ivysaur", "Venusaur", "Charmander", "Charmeleon",
	"Charizard", "Squirtle", "Wartortle", "Blastoise", "Pikachu", "Raichu",
}

func TestSearchPrefixBeforeSubstring(t *testing.T) {
	got := Search("char", corpus, nil, 20)
	// Prefix matches in corpus order first.
	assert.Equal(t, []string{"Charmander", "Charmeleon", "Charizard"}, got)

	got = Search("saur", corpus, nil, 20)
	assert.Equal(t, []string{"Bulbasaur", "Ivysaur", "Venusaur"}, got)

	got = Search("chu", corpus, nil, 20)
	assert.Equal(t, []string{"Pikachu", "Raichu"}, got)
}

func TestSearchExcludesGuessed(t *testing.T) {
	exclude := map[string]struct{}{
		names.Normalize("Charmander"): {},
	}
	got := Search("char", corpus, exclude, 20)
	assert.Equal(t, []string{"Charmeleon", "Charizard"}, got)
}

func TestSearchEmptyQuery(t *testing.T) {
	assert.Nil(t, Search("", corpus, nil, 20))
	assert.Nil(t, Search("  .  ", corpus, nil, 20))
}

func TestSearchLimit(t *testing.T) {
	got := Search("a", corpus, nil, 3)
	assert.Len(t, got, 3)

	// limit <= 0 falls back to the default.
	got = Search("a", corpus, nil, 0)
	assert.LessOrEqual(t, len(got), DefaultLimit)
}

func TestSearchNormalizesQuery(t *testing.T) {
	got := Search("CHÁR", corpus, nil, 20)
	assert.Equal(t, []string{"Charmander", "Charmeleon", "Charizard"}, got)
}

func TestCursorWrapAround(t *testing.T) {
	c := NewCursor([]string{"a", "b", "c"})

	_, ok := c.Commit()
	assert.False(t, ok, "nothing highlighted initially")

	c.Down()
	assert.Equal(t, 0, c.Active())
	c.Down()
	c.Down()
	assert.Equal(t, 2, c.Active())
	c.Down()
	assert.Equal(t, 0, c.Active(), "down wraps to first")

	c.Up()
	assert.Equal(t, 2, c.Active(), "up wraps to last")

	item, ok := c.Commit()
	require.True(t, ok)
	assert.Equal(t, "c", item)

	c.Dismiss()
	assert.Equal(t, -1, c.Active())
	assert.Empty(t, c.Items())
}

func TestCursorEmptyList(t *testing.T) {
	c := NewCursor(nil)
	c.Down()
	c.Up()
	_, ok := c.Commit()
	assert.False(t, ok)
}

func TestRequesterCoalescesAndDropsStale(t *testing.T) {
	var mu sync.Mutex
	var delivered [][]string

	search := func(q string) []string { return []string{q} }
	deliver := func(items []string) {
		mu.Lock()
		delivered = append(delivered, items)
		mu.Unlock()
	}

	r := NewRequester(20*time.Millisecond, search, deliver)
	r.Query("p")
	r.Query("pi")
	r.Query("pik")
	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, delivered, 1, "rapid queries must coalesce to one delivery")
	assert.Equal(t, []string{"pik"}, delivered[0])
}

func TestRequesterEmptyQueryClearsImmediately(t *testing.T) {
	var mu sync.Mutex
	var last []string
	r := NewRequester(10*time.Millisecond,
		func(q string) []string { return []string{q} },
		func(items []string) {
			mu.Lock()
			last = items
			mu.Unlock()
		})

	r.Query("")
	mu.Lock()
	assert.Nil(t, last)
	mu.Unlock()
}
