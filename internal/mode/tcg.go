package mode

import (
	"context"

	"github.com/BVSTSirop/pokeguess/internal/obfuscate"
)

// tcgMode serves a trading card image behind a blur that eases per wrong
// guess. Card lookup goes by English display name; not every species has a
// printed card, hence the retry loop.
type tcgMode struct{}

func init() { register(&tcgMode{}) }

func (m *tcgMode) ID() string { return "tcg" }

func (m *tcgMode) Ladder() obfuscate.Ladder { return obfuscate.ForMode("tcg") }

func (m *tcgMode) BuildRound(ctx context.Context, src *Source, lang, gen string) (Round, error) {
	var lastErr error
	for attempt := 0; attempt < 8; attempt++ {
		entry, err := pickID(ctx, src, gen)
		if err != nil {
			return Round{}, err
		}
		card, err := src.TCG.FindCard(ctx, entry.DisplayEN)
		if err != nil {
			lastErr = errNoMedia("tcg", entry.ID)
			continue
		}
		art, _, _ := src.Poke.Artwork(ctx, entry.ID)
		return Round{
			ID:    entry.ID,
			Token: src.Signer.Sign(entry.ID),
			Name:  localized(ctx, src, entry, lang),
			Meta:  buildMeta(ctx, src, entry.ID, art),
			Payload: map[string]any{
				"image":   card.ImageURL,
				"bg_size": "contain",
				"bg_pos":  "center center",
			},
		}, nil
	}
	return Round{}, lastErr
}
