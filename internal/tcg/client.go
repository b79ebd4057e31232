// internal/tcg/client.go
//
// TCGdex client: finds a trading card image for a species by its English
// display name. Results are cached for 24 hours per name; card inventories
// change rarely but do change.

package tcg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the TCGdex v2 English card endpoint.
const DefaultBaseURL = "https://api.tcgdex.net/v2/en/cards"

const cacheTTL = 24 * time.Hour

// Card is a playable card image match for a species.
type Card struct {
	ImageURL string
	ID       string
}

type cacheEntry struct {
	card Card
	exp  time.Time
}

// Client queries TCGdex and caches image lookups by display name.
type Client struct {
	base string
	http *http.Client
	log  zerolog.Logger
	now  func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

func New(base string, log zerolog.Logger) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		http:  &http.Client{Timeout: 10 * time.Second},
		log:   log.With().Str("component", "tcg").Logger(),
		now:   time.Now,
		cache: map[string]cacheEntry{},
	}
}

type cardDoc struct {
	ID      string `json:"id"`
	LocalID string `json:"localId"`
	Image   string `json:"image"`
}

// FindCard returns a card image for the English display name. The full name
// is tried first, then the first word as a broader fallback for hyphenated
// and multi-word species. When several cards match, one is picked at random.
func (c *Client) FindCard(ctx context.Context, displayEN string) (Card, error) {
	now := c.now()
	c.mu.Lock()
	if e, ok := c.cache[displayEN]; ok && e.exp.After(now) {
		c.mu.Unlock()
		return e.card, nil
	}
	c.mu.Unlock()

	candidates, err := c.search(ctx, displayEN)
	if err != nil {
		return Card{}, err
	}
	if len(candidates) == 0 {
		if first, _, found := strings.Cut(displayEN, " "); found {
			candidates, err = c.search(ctx, first)
			if err != nil {
				return Card{}, err
			}
		}
	}
	if len(candidates) == 0 {
		return Card{}, fmt.Errorf("no card image for %q", displayEN)
	}
	card := candidates[rand.Intn(len(candidates))]
	c.log.Debug().Str("name", displayEN).Str("card", card.ID).Msg("card selected")

	c.mu.Lock()
	c.cache[displayEN] = cacheEntry{card: card, exp: now.Add(cacheTTL)}
	c.mu.Unlock()
	return card, nil
}

func (c *Client) search(ctx context.Context, name string) ([]Card, error) {
	u := c.base + "?name=" + url.QueryEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("name", name).Msg("card search failed")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("tcgdex status %d: %s", resp.StatusCode, string(body))
	}
	var cards []cardDoc
	if err := json.NewDecoder(resp.Body).Decode(&cards); err != nil {
		return nil, err
	}

	var out []Card
	for _, card := range cards {
		if card.Image == "" {
			continue
		}
		id := card.ID
		if id == "" {
			id = card.LocalID
		}
		out = append(out, Card{ImageURL: imageURL(card.Image), ID: id})
	}
	c.log.Debug().Str("name", name).Int("candidates", len(out)).Msg("card search")
	return out, nil
}

// imageURL completes TCGdex asset references, which omit the quality and
// extension suffix.
func imageURL(img string) string {
	lower := strings.ToLower(img)
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".webp"} {
		if strings.HasSuffix(lower, ext) {
			return img
		}
	}
	return strings.TrimRight(img, "/") + "/high.png"
}
