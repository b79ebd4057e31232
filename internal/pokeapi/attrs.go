package pokeapi

import (
	"context"
	"fmt"
	"sort"
)

// Attrs are the comparison attributes for one species, assembled for the
// daily game. Height is in decimeters and weight in hectograms, as upstream.
type Attrs struct {
	SpeciesID   int
	SpeciesSlug string
	Types       []string // ordered by slot, primary first
	Height      int
	Weight      int
	Color       string
	Generation  int
	Stage       int            // 1-based position in its evolution path, 0 if unknown
	StageTotal  int            // length of its evolution path, 0 if unknown
	StageOf     map[string]int // family slug -> 0-based stage
	Family      map[string]struct{}
}

// Attrs resolves the species behind id (forms map to their species and the
// default variety) and assembles its comparison attributes.
func (c *Client) Attrs(ctx context.Context, id int) (Attrs, error) {
	pj, err := c.getPokemon(ctx, id)
	if err != nil {
		return Attrs{}, err
	}
	speciesID := id
	if sid, ok := idFromURL(pj.Species.URL); ok {
		speciesID = sid
	}
	sj, err := c.getSpecies(ctx, speciesID)
	if err != nil {
		return Attrs{}, err
	}

	// Compare against the default variety so forms never skew height/weight.
	basePID := speciesID
	for _, v := range sj.Varieties {
		if v.IsDefault {
			if pid, ok := idFromURL(v.Pokemon.URL); ok {
				basePID = pid
			}
			break
		}
	}
	if basePID != id {
		if pj, err = c.getPokemon(ctx, basePID); err != nil {
			return Attrs{}, err
		}
	}

	a := Attrs{
		SpeciesID:   speciesID,
		SpeciesSlug: pj.Species.Name,
		Height:      pj.Height,
		Weight:      pj.Weight,
		Color:       sj.Color.Name,
		StageOf:     map[string]int{},
		Family:      map[string]struct{}{},
	}
	if a.SpeciesSlug == "" {
		a.SpeciesSlug = pj.Name
	}
	if gen, ok := idFromURL(sj.Generation.URL); ok {
		a.Generation = gen
	}

	slots := append(pj.Types[:0:0], pj.Types...)
	sort.Slice(slots, func(i, j int) bool { return slots[i].Slot < slots[j].Slot })
	for _, t := range slots {
		a.Types = append(a.Types, t.Type.Name)
	}

	paths, err := c.evolutionPaths(ctx, sj.EvolutionChain.URL)
	if err != nil {
		// The chain is a hint source, not a hard requirement.
		c.log.Warn().Err(err).Int("species", speciesID).Msg("evolution chain unavailable")
	}
	pathLen := map[string]int{}
	for _, path := range paths {
		for idx, slug := range path {
			a.StageOf[slug] = idx
			pathLen[slug] = len(path)
			a.Family[slug] = struct{}{}
		}
	}
	if idx, ok := a.StageOf[a.SpeciesSlug]; ok {
		a.Stage = idx + 1
		a.StageTotal = pathLen[a.SpeciesSlug]
	}
	return a, nil
}

// evolutionPaths flattens an evolution chain into root-to-leaf slug paths.
func (c *Client) evolutionPaths(ctx context.Context, url string) ([][]string, error) {
	if url == "" {
		return nil, fmt.Errorf("no evolution chain url")
	}
	c.mu.Lock()
	if paths, ok := c.chains[url]; ok {
		c.mu.Unlock()
		return paths, nil
	}
	c.mu.Unlock()

	var doc chainDoc
	if err := c.getJSON(ctx, url, &doc); err != nil {
		return nil, fmt.Errorf("fetch evolution chain: %w", err)
	}
	var paths [][]string
	walkChain(doc.Chain, nil, &paths)

	c.mu.Lock()
	c.chains[url] = paths
	c.mu.Unlock()
	return paths, nil
}

func walkChain(node chainNode, prefix []string, out *[][]string) {
	path := prefix
	if node.Species.Name != "" {
		path = append(append([]string(nil), prefix...), node.Species.Name)
		*out = append(*out, path)
	}
	for _, next := range node.EvolvesTo {
		walkChain(next, path, out)
	}
}
