// internal/mode/mode.go
//
// Game mode registry. Each mode knows how to disguise an answer: which media
// it serves, how the obfuscation eases per wrong guess, and how to assemble a
// fresh round. Modes register themselves at init and are looked up by id.

package mode

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/BVSTSirop/pokeguess/internal/hint"
	"github.com/BVSTSirop/pokeguess/internal/names"
	"github.com/BVSTSirop/pokeguess/internal/obfuscate"
	"github.com/BVSTSirop/pokeguess/internal/pokeapi"
	"github.com/BVSTSirop/pokeguess/internal/tcg"
	"github.com/BVSTSirop/pokeguess/internal/token"
)

// Round is a fully assembled challenge for one mode.
type Round struct {
	ID      int
	Token   string
	Name    string // localized display name
	Meta    hint.Meta
	Payload map[string]any // mode media fields, passed through verbatim
}

// Source bundles the shared collaborators a mode draws on.
type Source struct {
	Poke   *pokeapi.Client
	TCG    *tcg.Client
	Signer *token.Signer
	// Intn is swappable for deterministic tests. Nil means math/rand.
	Intn func(n int) int
}

func (s *Source) intn(n int) int {
	if s.Intn != nil {
		return s.Intn(n)
	}
	return rand.Intn(n)
}

// Mode is one way of hiding the answer.
type Mode interface {
	ID() string
	Ladder() obfuscate.Ladder
	BuildRound(ctx context.Context, src *Source, lang, gen string) (Round, error)
}

var registry = map[string]Mode{}

func register(m Mode) { registry[m.ID()] = m }

// Get looks a mode up by id.
func Get(id string) (Mode, bool) {
	m, ok := registry[id]
	return m, ok
}

// IDs lists the registered mode ids in stable order.
func IDs() []string {
	out := make([]string, 0, len(registry))
	for id := range registry {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// pickID chooses a random species id restricted to the generation selector.
func pickID(ctx context.Context, src *Source, gen string) (names.Entry, error) {
	lst, err := src.Poke.List(ctx)
	if err != nil {
		return names.Entry{}, err
	}
	pool := names.FilterByGen(lst, gen)
	if len(pool) == 0 {
		pool = lst
	}
	return pool[src.intn(len(pool))], nil
}

// buildMeta assembles the hint attributes, tolerating partial data. A hint
// level with no attribute is simply skipped later.
func buildMeta(ctx context.Context, src *Source, id int, spriteURL string) hint.Meta {
	m := hint.Meta{SpriteURL: spriteURL}
	if color, gen, err := src.Poke.SpeciesMeta(ctx, id); err == nil {
		m.Color = color
		m.Generation = gen
	}
	return m
}

func localized(ctx context.Context, src *Source, entry names.Entry, lang string) string {
	if n, err := src.Poke.LocalizedName(ctx, entry.ID, lang); err == nil {
		return n
	}
	return entry.DisplayEN
}

// errNoMedia signals one failed pick inside a retry loop.
func errNoMedia(mode string, id int) error {
	return fmt.Errorf("%s: no media for species %d", mode, id)
}
