// internal/suggest/requester.go
//
// Debounced suggestion querying. Keystrokes arrive faster than we want to hit
// the corpus provider, so queries are coalesced (~250ms) and a generation
// counter drops results of queries superseded before they resolved.

package suggest

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// SearchFunc resolves a query to a suggestion list. It may be slow (network).
type SearchFunc func(query string) []string

// DeliverFunc receives the results of the newest query.
type DeliverFunc func(items []string)

// Requester coalesces rapid queries and delivers only the newest result.
type Requester struct {
	mu       sync.Mutex
	gen      uint64
	debounce func(func())
	search   SearchFunc
	deliver  DeliverFunc
}

// NewRequester builds a Requester with the given debounce interval.
// Intervals <= 0 default to 250ms.
func NewRequester(interval time.Duration, search SearchFunc, deliver DeliverFunc) *Requester {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return &Requester{
		debounce: debounce.New(interval),
		search:   search,
		deliver:  deliver,
	}
}

// Query schedules a search for q. Queries issued within the debounce window
// replace each other; a result is delivered only if no newer query exists by
// the time it resolves. An empty query delivers an empty list immediately.
func (r *Requester) Query(q string) {
	r.mu.Lock()
	r.gen++
	mine := r.gen
	r.mu.Unlock()

	if q == "" {
		r.deliver(nil)
		return
	}

	r.debounce(func() {
		items := r.search(q)
		r.mu.Lock()
		stale := mine != r.gen
		r.mu.Unlock()
		if stale {
			return
		}
		r.deliver(items)
	})
}
