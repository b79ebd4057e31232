package pokeapi

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/BVSTSirop/pokeguess/assets"
	"github.com/BVSTSirop/pokeguess/internal/names"
)

var (
	seedOnce sync.Once
	seed     []names.Entry
)

// seedList parses the embedded species list once. Malformed lines are
// dropped; an unreadable asset yields an empty list.
func seedList() []names.Entry {
	seedOnce.Do(func() {
		lines, err := assets.SeedNames()
		if err != nil {
			return
		}
		for _, ln := range lines {
			idStr, slug, ok := strings.Cut(ln, " ")
			if !ok {
				continue
			}
			id, err := strconv.Atoi(idStr)
			if err != nil || id <= 0 || slug == "" {
				continue
			}
			seed = append(seed, names.Entry{ID: id, Slug: slug, DisplayEN: displayFromSlug(slug)})
		}
		sort.Slice(seed, func(i, j int) bool { return seed[i].ID < seed[j].ID })
	})
	return seed
}
