// internal/suggest/suggest.go
//
// Autocomplete over the known-name corpus. Matching is two-tier: entries whose
// normalized form starts with the normalized query rank first (in corpus
// order), followed by entries that merely contain it (also in corpus order).
// Already-guessed names are excluded entirely so the player is never offered a
// suggestion they have burned.
package suggest

import (
	"strings"

	"github.com/BVSTSirop/pokeguess/internal/names"
)

// DefaultLimit caps result length when the caller passes limit <= 0.
const DefaultLimit = 20

// Search returns up to limit display names matching query. The exclude set
// holds normalized names to omit. An empty query yields an empty list.
func Search(query string, corpus []string, exclude map[string]struct{}, limit int) []string {
	qn := names.Normalize(query)
	if qn == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	var starts, contains []string
	seen := make(map[string]struct{}, limit)
	for _, name := range corpus {
		nn := names.Normalize(name)
		if nn == "" {
			continue
		}
		if _, dup := seen[nn]; dup {
			continue
		}
		if exclude != nil {
			if _, skip := exclude[nn]; skip {
				continue
			}
		}
		if strings.HasPrefix(nn, qn) {
			starts = append(starts, name)
			seen[nn] = struct{}{}
			if len(starts) >= limit {
				break
			}
		} else if strings.Contains(nn, qn) {
			contains = append(contains, name)
			seen[nn] = struct{}{}
		}
	}
	if len(starts) >= limit {
		return starts[:limit]
	}
	out := append(starts, contains...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
