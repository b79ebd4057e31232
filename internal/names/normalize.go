// internal/names/normalize.go
//
// Canonicalization of free-text Pokémon names for comparison.
// Responsibilities:
//   - Diacritic-insensitive folding (NFKD decomposition + combining-mark strip).
//   - Case folding and locale-specific letter substitutions (ß → ss).
//   - Gender-symbol glyphs mapped to letters (♀ → f, ♂ → m) so "Nidoran♀"
//     matches "Nidoran F".
//   - Everything outside [a-z0-9] removed.
//
// Normalize is a pure, total function: any input (including the empty string)
// yields a deterministic result and never panics. It is used for duplicate-guess
// detection and autocomplete matching; round correctness is always decided by
// the verification endpoint, never by comparing normalized names locally.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a raw name for matching.
// Normalize(Normalize(s)) == Normalize(s) for all s.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = norm.NFKD.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue // strip combining marks left by decomposition
		}
		switch r {
		case 'ß', 'ẞ':
			b.WriteString("ss")
			continue
		case '♀':
			b.WriteByte('f')
			continue
		case '♂':
			b.WriteByte('m')
			continue
		}
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
