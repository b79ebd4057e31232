package mode

import (
	"context"

	"github.com/BVSTSirop/pokeguess/internal/obfuscate"
)

// cryMode serves a cry recording. There is nothing to progressively reveal
// about audio, so the ladder is static until the round resolves.
type cryMode struct{}

func init() { register(&cryMode{}) }

func (m *cryMode) ID() string { return "cry" }

func (m *cryMode) Ladder() obfuscate.Ladder { return obfuscate.ForMode("cry") }

func (m *cryMode) BuildRound(ctx context.Context, src *Source, lang, gen string) (Round, error) {
	var lastErr error
	for attempt := 0; attempt < 15; attempt++ {
		entry, err := pickID(ctx, src, gen)
		if err != nil {
			return Round{}, err
		}
		cry, _, err := src.Poke.Cry(ctx, entry.ID)
		if err != nil {
			lastErr = errNoMedia("cry", entry.ID)
			continue
		}
		// The artwork is still needed for the silhouette hint and the
		// post-round reveal.
		art, _, _ := src.Poke.Artwork(ctx, entry.ID)
		return Round{
			ID:      entry.ID,
			Token:   src.Signer.Sign(entry.ID),
			Name:    localized(ctx, src, entry, lang),
			Meta:    buildMeta(ctx, src, entry.ID, art),
			Payload: map[string]any{"cry": cry, "sprite": art},
		}, nil
	}
	return Round{}, lastErr
}
