// internal/pokeapi/client.go
//
// PokeAPI client with in-memory caching.
// Responsibilities:
//   - Fetch and cache the national species list (ids, slugs, display names).
//   - Resolve localized species names with English fallback.
//   - Fetch artwork, cry and flavor text media for a species.
//   - Assemble comparison attributes (types, size, color, generation,
//     evolution stage) for the daily game.
//
// Species data is immutable upstream, so cached entries never expire.

package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/BVSTSirop/pokeguess/internal/names"
)

// DefaultBaseURL is the public PokeAPI endpoint.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// SupportedLangs are the languages we localize names and entries for.
var SupportedLangs = map[string]bool{"en": true, "es": true, "fr": true, "de": true}

// Lang clamps a requested language to the supported set.
func Lang(s string) string {
	l := strings.ToLower(strings.TrimSpace(s))
	if SupportedLangs[l] {
		return l
	}
	return "en"
}

// Client talks to PokeAPI and memoizes everything it fetches.
type Client struct {
	base string
	http *http.Client
	log  zerolog.Logger

	mu       sync.Mutex
	list     []names.Entry
	locNames map[int]map[string]string // id -> lang -> display name
	species  map[int]*speciesDoc
	pokemon  map[int]*pokemonDoc
	chains   map[string][][]string // evolution chain URL -> slug paths
}

// New builds a client. An empty base falls back to the public API.
func New(base string, log zerolog.Logger) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		base:     strings.TrimRight(base, "/"),
		http:     &http.Client{Timeout: 15 * time.Second},
		log:      log.With().Str("component", "pokeapi").Logger(),
		locNames: map[int]map[string]string{},
		species:  map[int]*speciesDoc{},
		pokemon:  map[int]*pokemonDoc{},
		chains:   map[string][][]string{},
	}
}

type named struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type listResp struct {
	Results []named `json:"results"`
}

type speciesDoc struct {
	Names []struct {
		Name     string `json:"name"`
		Language named  `json:"language"`
	} `json:"names"`
	Color      named `json:"color"`
	Generation named `json:"generation"`
	Flavor     []struct {
		Text     string `json:"flavor_text"`
		Language named  `json:"language"`
	} `json:"flavor_text_entries"`
	EvolutionChain struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
	Varieties []struct {
		IsDefault bool  `json:"is_default"`
		Pokemon   named `json:"pokemon"`
	} `json:"varieties"`
}

type spriteSet struct {
	FrontDefault string `json:"front_default"`
}

type pokemonDoc struct {
	Name    string `json:"name"`
	Height  int    `json:"height"` // decimeters
	Weight  int    `json:"weight"` // hectograms
	Species named  `json:"species"`
	Types   []struct {
		Slot int   `json:"slot"`
		Type named `json:"type"`
	} `json:"types"`
	Sprites struct {
		FrontDefault string               `json:"front_default"`
		Other        map[string]spriteSet `json:"other"`
	} `json:"sprites"`
	Cries struct {
		Latest string `json:"latest"`
		Legacy string `json:"legacy"`
	} `json:"cries"`
}

type chainDoc struct {
	Chain chainNode `json:"chain"`
}

type chainNode struct {
	Species   named       `json:"species"`
	EvolvesTo []chainNode `json:"evolves_to"`
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("url", url).Msg("request failed")
		return err
	}
	defer resp.Body.Close()
	c.log.Debug().Str("url", url).Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("response")
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("pokeapi status %d: %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// idFromURL extracts the trailing numeric path segment of a resource URL.
func idFromURL(u string) (int, bool) {
	parts := strings.Split(strings.Trim(u, "/"), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if n, err := strconv.Atoi(parts[i]); err == nil {
			return n, true
		}
	}
	return 0, false
}

// displayFromSlug turns "mr-mime" into "Mr Mime".
func displayFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// List returns the cached national species list, fetching it once.
func (c *Client) List(ctx context.Context) ([]names.Entry, error) {
	c.mu.Lock()
	if len(c.list) > 0 {
		out := c.list
		c.mu.Unlock()
		return out, nil
	}
	c.mu.Unlock()

	var resp listResp
	if err := c.getJSON(ctx, c.base+"/pokemon?limit=20000", &resp); err != nil {
		// Serve the bundled list but leave the cache empty so the next
		// call retries upstream.
		if seed := seedList(); len(seed) > 0 {
			c.log.Warn().Err(err).Int("count", len(seed)).Msg("species list unavailable, using bundled seed")
			return seed, nil
		}
		return nil, fmt.Errorf("fetch species list: %w", err)
	}
	lst := make([]names.Entry, 0, len(resp.Results))
	for _, item := range resp.Results {
		id, ok := idFromURL(item.URL)
		if !ok {
			continue
		}
		lst = append(lst, names.Entry{ID: id, Slug: item.Name, DisplayEN: displayFromSlug(item.Name)})
	}
	sort.Slice(lst, func(i, j int) bool { return lst[i].ID < lst[j].ID })

	c.mu.Lock()
	c.list = lst
	c.mu.Unlock()
	c.log.Info().Int("count", len(lst)).Msg("species list loaded")
	return lst, nil
}

func (c *Client) getSpecies(ctx context.Context, id int) (*speciesDoc, error) {
	c.mu.Lock()
	if doc, ok := c.species[id]; ok {
		c.mu.Unlock()
		return doc, nil
	}
	c.mu.Unlock()

	var doc speciesDoc
	if err := c.getJSON(ctx, fmt.Sprintf("%s/pokemon-species/%d", c.base, id), &doc); err != nil {
		return nil, fmt.Errorf("fetch species %d: %w", id, err)
	}
	c.mu.Lock()
	c.species[id] = &doc
	c.mu.Unlock()
	return &doc, nil
}

func (c *Client) getPokemon(ctx context.Context, id int) (*pokemonDoc, error) {
	c.mu.Lock()
	if doc, ok := c.pokemon[id]; ok {
		c.mu.Unlock()
		return doc, nil
	}
	c.mu.Unlock()

	var doc pokemonDoc
	if err := c.getJSON(ctx, fmt.Sprintf("%s/pokemon/%d", c.base, id), &doc); err != nil {
		return nil, fmt.Errorf("fetch pokemon %d: %w", id, err)
	}
	c.mu.Lock()
	c.pokemon[id] = &doc
	c.mu.Unlock()
	return &doc, nil
}

// LocalizedName returns the display name for the species in lang, falling
// back to English when the localization is missing.
func (c *Client) LocalizedName(ctx context.Context, id int, lang string) (string, error) {
	lang = Lang(lang)

	c.mu.Lock()
	if m, ok := c.locNames[id]; ok {
		if n, ok := m[lang]; ok {
			c.mu.Unlock()
			return n, nil
		}
	}
	c.mu.Unlock()

	if lang == "en" {
		lst, err := c.List(ctx)
		if err == nil {
			for _, p := range lst {
				if p.ID == id {
					return p.DisplayEN, nil
				}
			}
		}
	}

	doc, err := c.getSpecies(ctx, id)
	if err != nil {
		return "", err
	}
	m := map[string]string{}
	for _, entry := range doc.Names {
		code := entry.Language.Name
		if entry.Name == "" {
			continue
		}
		if SupportedLangs[code] {
			m[code] = entry.Name
		}
	}
	c.mu.Lock()
	if c.locNames[id] == nil {
		c.locNames[id] = map[string]string{}
	}
	for k, v := range m {
		c.locNames[id][k] = v
	}
	c.mu.Unlock()

	if n, ok := m[lang]; ok {
		return n, nil
	}
	if n, ok := m["en"]; ok {
		return n, nil
	}
	return "", fmt.Errorf("species %d: no name for %q", id, lang)
}

// CachedNames returns the localized names already fetched for lang, keyed by
// species id. It never touches the network; guess resolution must stay local.
func (c *Client) CachedNames(lang string) map[int]string {
	lang = Lang(lang)
	c.mu.Lock()
	defer c.mu.Unlock()
	out := map[int]string{}
	for id, m := range c.locNames {
		if n, ok := m[lang]; ok {
			out[id] = n
		}
	}
	return out
}

// FillLanguage prefetches localized names for every listed species. Errors on
// individual species are logged and skipped.
func (c *Client) FillLanguage(ctx context.Context, lang string) {
	lang = Lang(lang)
	if lang == "en" {
		return
	}
	lst, err := c.List(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("fill language: species list unavailable")
		return
	}
	for _, p := range lst {
		c.mu.Lock()
		_, have := c.locNames[p.ID][lang]
		c.mu.Unlock()
		if have {
			continue
		}
		if _, err := c.LocalizedName(ctx, p.ID, lang); err != nil {
			c.log.Warn().Err(err).Int("id", p.ID).Msg("localized name fetch failed")
		}
	}
}

// SpeciesMeta returns the color and generation number for a species, the two
// lightweight attributes used as mid-round hints.
func (c *Client) SpeciesMeta(ctx context.Context, id int) (string, int, error) {
	doc, err := c.getSpecies(ctx, id)
	if err != nil {
		return "", 0, err
	}
	gen, _ := idFromURL(doc.Generation.URL)
	return doc.Color.Name, gen, nil
}

// Artwork returns the best available artwork URL and the slug for a species.
// Official artwork is preferred, then the front sprite, then any other set.
func (c *Client) Artwork(ctx context.Context, id int) (string, string, error) {
	doc, err := c.getPokemon(ctx, id)
	if err != nil {
		return "", "", err
	}
	art := doc.Sprites.Other["official-artwork"].FrontDefault
	if art == "" {
		art = doc.Sprites.FrontDefault
	}
	if art == "" {
		for _, set := range doc.Sprites.Other {
			if set.FrontDefault != "" {
				art = set.FrontDefault
				break
			}
		}
	}
	if art == "" {
		return "", "", fmt.Errorf("pokemon %d: no artwork", id)
	}
	return art, doc.Name, nil
}

// Cry returns the cry audio URL for a species, preferring the latest
// recording over the legacy one.
func (c *Client) Cry(ctx context.Context, id int) (string, string, error) {
	doc, err := c.getPokemon(ctx, id)
	if err != nil {
		return "", "", err
	}
	cry := doc.Cries.Latest
	if cry == "" {
		cry = doc.Cries.Legacy
	}
	if cry == "" {
		return "", "", fmt.Errorf("pokemon %d: no cry", id)
	}
	return cry, doc.Name, nil
}

// FlavorText returns a cleaned Pokedex entry in lang, falling back to English
// and then to any available language.
func (c *Client) FlavorText(ctx context.Context, id int, lang string) (string, error) {
	lang = Lang(lang)
	doc, err := c.getSpecies(ctx, id)
	if err != nil {
		return "", err
	}
	tryLang := func(code string) string {
		for _, e := range doc.Flavor {
			if e.Language.Name == code && e.Text != "" {
				return cleanFlavor(e.Text)
			}
		}
		return ""
	}
	if t := tryLang(lang); t != "" {
		return t, nil
	}
	if t := tryLang("en"); t != "" {
		return t, nil
	}
	for _, e := range doc.Flavor {
		if e.Text != "" {
			return cleanFlavor(e.Text), nil
		}
	}
	return "", fmt.Errorf("species %d: no flavor text", id)
}

// cleanFlavor flattens the form feeds and newlines PokeAPI keeps from the
// original game data.
func cleanFlavor(s string) string {
	s = strings.NewReplacer("\f", " ", "\n", " ", "\r", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
