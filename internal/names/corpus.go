// internal/names/corpus.go
//
// The known-name corpus: every species with its API slug, English display name,
// and (when cached) localized display names. The corpus backs autocomplete,
// guess-to-id resolution for the daily mode, and the alias sets used by guess
// verification.
//
// Lookups never hit the network; the corpus is filled by the species
// collaborator (internal/pokeapi) and queried here.
package names

// Entry is one species in the corpus.
type Entry struct {
	ID        int    // National Dex species id
	Slug      string // API slug, e.g. "mr-mime"
	DisplayEN string // Title-cased English display, e.g. "Mr Mime"
}

// GenRange is an inclusive National Dex id range for one generation.
type GenRange struct{ Lo, Hi int }

// GenRanges maps generation number (as string, matching the ?gen= query
// parameter) to its dex range.
var GenRanges = map[string]GenRange{
	"1": {1, 151},
	"2": {152, 251},
	"3": {252, 386},
	"4": {387, 493},
	"5": {494, 649},
	"6": {650, 721},
	"7": {722, 809},
	"8": {810, 905},
	"9": {906, 1025},
}

// FilterByGen restricts entries to the given generation selector.
// The selector is "", "all", a single generation ("3"), or a CSV ("1,3,5").
// Unrecognized selectors leave the list unchanged.
func FilterByGen(entries []Entry, gen string) []Entry {
	ranges := parseGenSelector(gen)
	if len(ranges) == 0 {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		for _, r := range ranges {
			if e.ID >= r.Lo && e.ID <= r.Hi {
				out = append(out, e)
				break
			}
		}
	}
	if len(out) == 0 {
		return entries
	}
	return out
}

func parseGenSelector(gen string) []GenRange {
	switch gen {
	case "", "all", "any", "0":
		return nil
	}
	var ranges []GenRange
	start := 0
	for i := 0; i <= len(gen); i++ {
		if i == len(gen) || gen[i] == ',' || gen[i] == '|' {
			part := trimSpaces(gen[start:i])
			start = i + 1
			if part == "" {
				continue
			}
			if r, ok := GenRanges[part]; ok {
				ranges = append(ranges, r)
			}
		}
	}
	return ranges
}

func trimSpaces(s string) string {
	for len(s) > 0 && (s[0] == ' ' || s[0] == '\t') {
		s = s[1:]
	}
	for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t') {
		s = s[:len(s)-1]
	}
	return s
}

// Index maps normalized names to species ids for one language.
// It covers slugs, English display names, and localized display names, so a
// guess typed in any supported rendering resolves to the same id.
type Index map[string]int

// BuildIndex constructs an Index from entries plus localized names keyed by id.
// Localized names win collisions last (they are added after slug/English), but
// in practice the normalized forms rarely collide across species.
func BuildIndex(entries []Entry, localized map[int]string) Index {
	idx := make(Index, len(entries)*2)
	for _, e := range entries {
		if s := Normalize(e.Slug); s != "" {
			idx[s] = e.ID
		}
		if s := Normalize(e.DisplayEN); s != "" {
			idx[s] = e.ID
		}
	}
	for id, name := range localized {
		if s := Normalize(name); s != "" {
			idx[s] = id
		}
	}
	return idx
}

// Resolve returns the species id for a raw guess, or 0 when unknown.
func (ix Index) Resolve(raw string) int {
	return ix[Normalize(raw)]
}
