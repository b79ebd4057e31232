// internal/httpserver/routes_names.go
//
// Name list and typeahead endpoints. Both serve display names in the
// requested language from the cached localization tables; they must never
// fan out into per-species upstream calls.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/BVSTSirop/pokeguess/internal/names"
	"github.com/BVSTSirop/pokeguess/internal/suggest"
)

const defaultSuggestLimit = 20

func (s *Server) mountNames() {
	s.r.Get("/api/all-names", s.handleAllNames)
	s.r.Get("/api/suggest", s.handleSuggest)
}

// handleAllNames lists display names for the language and generation
// selection, in national dex order.
func (s *Server) handleAllNames(w http.ResponseWriter, r *http.Request) {
	lst, err := s.poke.List(r.Context())
	if err != nil {
		http.Error(w, `{"error":"upstream_unavailable"}`, http.StatusBadGateway)
		return
	}
	lst = names.FilterByGen(lst, r.URL.Query().Get("gen"))
	_ = json.NewEncoder(w).Encode(s.displayNames(lst, s.lang(r)))
}

// handleSuggest returns typeahead completions for q. Prefix matches rank
// before substring matches; the limit is clamped to 1..50. Names listed in
// exclude (comma separated, any rendering) are omitted, so a client can strip
// what the player already guessed this round.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	limit := defaultSuggestLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 50 {
			limit = n
		}
	}
	var exclude map[string]struct{}
	if raw := r.URL.Query().Get("exclude"); raw != "" {
		exclude = map[string]struct{}{}
		for _, part := range strings.Split(raw, ",") {
			if n := names.Normalize(part); n != "" {
				exclude[n] = struct{}{}
			}
		}
	}
	lst, err := s.poke.List(r.Context())
	if err != nil {
		http.Error(w, `{"error":"upstream_unavailable"}`, http.StatusBadGateway)
		return
	}
	lst = names.FilterByGen(lst, r.URL.Query().Get("gen"))
	out := suggest.Search(r.URL.Query().Get("q"), s.displayNames(lst, s.lang(r)), exclude, limit)
	if out == nil {
		out = []string{}
	}
	_ = json.NewEncoder(w).Encode(out)
}

// displayNames maps entries to display names in lang, falling back to each
// entry's English display when no localization is cached. The first request
// for a non-English language kicks off a background prefetch; until it lands
// the English names stand in.
func (s *Server) displayNames(lst []names.Entry, l string) []string {
	if l != "en" {
		if _, started := s.prefetched.LoadOrStore(l, struct{}{}); !started {
			go s.poke.FillLanguage(context.Background(), l)
		}
	}
	cached := s.poke.CachedNames(l)
	out := make([]string, 0, len(lst))
	for _, e := range lst {
		if n, ok := cached[e.ID]; ok {
			out = append(out, n)
			continue
		}
		out = append(out, e.DisplayEN)
	}
	return out
}
