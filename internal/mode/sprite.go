// internal/mode/sprite.go
//
// The three artwork-based modes. They share round assembly and differ only in
// their obfuscation ladder and payload hints for the renderer:
//   - sprite: extreme zoom that eases out per wrong guess
//   - silhouette: blacked-out artwork, cleared only on solve or reveal
//   - pixelate: coarse mosaic that refines per wrong guess

package mode

import (
	"context"

	"github.com/BVSTSirop/pokeguess/internal/obfuscate"
)

type spriteMode struct {
	id string
}

func init() {
	register(&spriteMode{id: "sprite"})
	register(&spriteMode{id: "silhouette"})
	register(&spriteMode{id: "pixelate"})
}

func (m *spriteMode) ID() string { return m.id }

func (m *spriteMode) Ladder() obfuscate.Ladder { return obfuscate.ForMode(m.id) }

func (m *spriteMode) BuildRound(ctx context.Context, src *Source, lang, gen string) (Round, error) {
	var lastErr error
	for attempt := 0; attempt < 15; attempt++ {
		entry, err := pickID(ctx, src, gen)
		if err != nil {
			return Round{}, err
		}
		art, _, err := src.Poke.Artwork(ctx, entry.ID)
		if err != nil {
			lastErr = errNoMedia(m.id, entry.ID)
			continue
		}
		payload := map[string]any{"sprite": art}
		if m.id == "silhouette" {
			// Silhouettes render the full, centered image.
			payload["bg_size"] = "contain"
			payload["bg_pos"] = "center center"
		}
		return Round{
			ID:      entry.ID,
			Token:   src.Signer.Sign(entry.ID),
			Name:    localized(ctx, src, entry, lang),
			Meta:    buildMeta(ctx, src, entry.ID, art),
			Payload: payload,
		}, nil
	}
	return Round{}, lastErr
}
