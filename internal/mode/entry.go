package mode

import (
	"context"
	"strings"
	"unicode"

	"github.com/BVSTSirop/pokeguess/internal/obfuscate"
)

// entryMode serves a Pokedex flavor text in the player's language. Text has
// no intensity ladder; the round stays as-is until it resolves.
type entryMode struct{}

func init() { register(&entryMode{}) }

func (m *entryMode) ID() string { return "entry" }

func (m *entryMode) Ladder() obfuscate.Ladder { return obfuscate.ForMode("entry") }

func (m *entryMode) BuildRound(ctx context.Context, src *Source, lang, gen string) (Round, error) {
	var lastErr error
	for attempt := 0; attempt < 30; attempt++ {
		entry, err := pickID(ctx, src, gen)
		if err != nil {
			return Round{}, err
		}
		text, err := src.Poke.FlavorText(ctx, entry.ID, lang)
		if err != nil {
			lastErr = errNoMedia("entry", entry.ID)
			continue
		}
		name := localized(ctx, src, entry, lang)
		// Dex text often names its species; blank out both the localized and
		// the English rendering.
		text = maskName(text, name)
		text = maskName(text, entry.DisplayEN)
		art, _, _ := src.Poke.Artwork(ctx, entry.ID)
		return Round{
			ID:      entry.ID,
			Token:   src.Signer.Sign(entry.ID),
			Name:    name,
			Meta:    buildMeta(ctx, src, entry.ID, art),
			Payload: map[string]any{"entry": text, "sprite": art},
		}, nil
	}
	return Round{}, lastErr
}

// maskName replaces every occurrence of name in text with underscores, one
// per letter, keeping non-letter characters. Matching is case-insensitive.
func maskName(text, name string) string {
	if name == "" {
		return text
	}
	haystack := strings.ToLower(text)
	needle := strings.ToLower(name)
	if len(haystack) != len(text) || len(needle) != len(name) {
		// Case folding shifted byte offsets; match exactly instead.
		haystack, needle = text, name
	}
	var b strings.Builder
	for {
		i := strings.Index(haystack, needle)
		if i < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:i])
		for _, r := range text[i : i+len(needle)] {
			if unicode.IsLetter(r) {
				b.WriteByte('_')
			} else {
				b.WriteRune(r)
			}
		}
		text = text[i+len(needle):]
		haystack = haystack[i+len(needle):]
	}
}
