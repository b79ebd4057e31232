// internal/play/client.go
//
// HTTP adapter over the game API for the terminal client. Implements the
// engine's RoundFetcher and GuessVerifier so the state machine never knows it
// is talking to a server. The cookie jar keeps the device identity stable
// across requests, which is what ties stats to one player.

package play

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/BVSTSirop/pokeguess/internal/engine"
	"github.com/BVSTSirop/pokeguess/internal/hint"
)

// Client talks to one server for one mode, language and generation filter.
type Client struct {
	base string
	mode string
	lang string
	gen  string
	http *http.Client
	log  zerolog.Logger
}

var (
	_ engine.RoundFetcher  = (*Client)(nil)
	_ engine.GuessVerifier = (*Client)(nil)
)

func NewClient(base, mode, lang, gen string, log zerolog.Logger) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		base: strings.TrimRight(base, "/"),
		mode: mode,
		lang: lang,
		gen:  gen,
		http: &http.Client{Timeout: 15 * time.Second, Jar: jar},
		log:  log.With().Str("component", "play").Logger(),
	}
}

func (c *Client) query() string {
	q := url.Values{}
	if c.lang != "" {
		q.Set("lang", c.lang)
	}
	if c.gen != "" {
		q.Set("gen", c.gen)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

type roundDoc struct {
	Token string         `json:"token"`
	Name  string         `json:"name"`
	Meta  hint.Meta      `json:"meta"`
	Media map[string]any `json:"media"`
}

// FetchRound requests a fresh round for the client's mode.
func (c *Client) FetchRound(ctx context.Context) (engine.Round, error) {
	var doc roundDoc
	if err := c.getJSON(ctx, "/api/round/"+c.mode+c.query(), &doc); err != nil {
		return engine.Round{}, err
	}
	return engine.Round{
		Token:   doc.Token,
		Answer:  doc.Name,
		Meta:    doc.Meta,
		Payload: doc.Media,
	}, nil
}

// VerifyGuess submits one guess for stateless verification against the round
// token.
func (c *Client) VerifyGuess(ctx context.Context, tok, guess, lang string) (engine.Verdict, error) {
	body, err := json.Marshal(map[string]string{"token": tok, "guess": guess, "lang": lang})
	if err != nil {
		return engine.Verdict{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/check-guess", bytes.NewReader(body))
	if err != nil {
		return engine.Verdict{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Msg("check guess failed")
		return engine.Verdict{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return engine.Verdict{}, apiError(resp)
	}
	var v engine.Verdict
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return engine.Verdict{}, err
	}
	return v, nil
}

// Names lists display names for the client's language and generation filter,
// for the suggestion corpus.
func (c *Client) Names(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.getJSON(ctx, "/api/all-names"+c.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("request failed")
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// apiError surfaces the server's error code when the body carries one.
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return fmt.Errorf("server: %s", e.Error)
	}
	return fmt.Errorf("server status %d", resp.StatusCode)
}
