// internal/play/session.go
//
// One interactive play session: the round engine joined to the suggestion
// machinery. Every name the engine has seen guessed this round feeds straight
// into the suggestion exclusion set, and the hint thresholds come from
// configuration rather than the built-in defaults.

package play

import (
	"context"
	"sync"
	"time"

	"github.com/BVSTSirop/pokeguess/internal/engine"
	"github.com/BVSTSirop/pokeguess/internal/ledger"
	"github.com/BVSTSirop/pokeguess/internal/obfuscate"
	"github.com/BVSTSirop/pokeguess/internal/suggest"
)

// Options tune a session. Zero values take the defaults.
type Options struct {
	// Thresholds are the wrong-guess counts unlocking each hint level. The
	// zero table keeps the engine's defaults.
	Thresholds [4]int
	// Debounce is the suggestion coalescing window.
	Debounce time.Duration
	// Limit caps suggestions per query.
	Limit int
	// OnSuggestions is called after each delivery, once the cursor holds the
	// new list. Optional.
	OnSuggestions func(items []string)
}

// Session drives one mode for one player.
type Session struct {
	Engine *engine.Engine

	client *Client
	req    *suggest.Requester
	limit  int
	onSugg func([]string)

	mu     sync.Mutex
	corpus []string
	cursor suggest.Cursor
}

func NewSession(c *Client, led *ledger.Ledger, ladder obfuscate.Ladder, opts Options) *Session {
	s := &Session{client: c, limit: opts.Limit, onSugg: opts.OnSuggestions}
	if s.limit <= 0 {
		s.limit = suggest.DefaultLimit
	}
	s.Engine = engine.New(c, c, led, ladder, c.lang)
	if opts.Thresholds != ([4]int{}) {
		s.Engine.UseHintThresholds(opts.Thresholds)
	}
	s.req = suggest.NewRequester(opts.Debounce, s.search, s.deliver)
	return s
}

// LoadCorpus fetches the suggestion corpus once up front. Play works without
// it; only suggestions go quiet.
func (s *Session) LoadCorpus(ctx context.Context) error {
	corpus, err := s.client.Names(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.corpus = corpus
	s.mu.Unlock()
	return nil
}

func (s *Session) search(q string) []string {
	s.mu.Lock()
	corpus := s.corpus
	s.mu.Unlock()
	return suggest.Search(q, corpus, s.Engine.Guessed(), s.limit)
}

func (s *Session) deliver(items []string) {
	s.mu.Lock()
	s.cursor.SetItems(items)
	s.mu.Unlock()
	if s.onSugg != nil {
		s.onSugg(items)
	}
}

// Suggest schedules a typeahead query; the newest result lands in the cursor.
func (s *Session) Suggest(q string) { s.req.Query(q) }

// Suggestions returns the currently delivered list.
func (s *Session) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.Items()
}

// Down moves the suggestion highlight forward, wrapping at the end.
func (s *Session) Down() {
	s.mu.Lock()
	s.cursor.Down()
	s.mu.Unlock()
}

// Up moves the suggestion highlight backward, wrapping at the start.
func (s *Session) Up() {
	s.mu.Lock()
	s.cursor.Up()
	s.mu.Unlock()
}

// Active returns the highlighted index, -1 when none.
func (s *Session) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.Active()
}

// Pick returns the highlighted suggestion and dismisses the list.
func (s *Session) Pick() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.cursor.Commit()
	if ok {
		s.cursor.Dismiss()
	}
	return item, ok
}
