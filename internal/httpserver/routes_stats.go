// internal/httpserver/routes_stats.go
//
// Per-device score and streak endpoints, one row per game mode.
//   - GET  /api/stats/{mode} → current counters for the device cookie
//   - POST /api/stats/{mode} → apply a round event and return the new counters
//
// The server holds no round state, so settlement guarding across requests is
// the client's job; within one event the ledger still applies its policy.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BVSTSirop/pokeguess/internal/ledger"
	"github.com/BVSTSirop/pokeguess/internal/mode"
)

func (s *Server) mountStats() {
	s.r.Get("/api/stats/{mode}", s.handleStatsGet)
	s.r.Post("/api/stats/{mode}", s.handleStatsEvent)
}

// modeLedger binds a ledger to the device cookie and the path's mode id.
// Returns nil after writing the error response when the mode is unknown.
func (s *Server) modeLedger(w http.ResponseWriter, r *http.Request) *ledger.Ledger {
	id := chi.URLParam(r, "mode")
	if _, ok := mode.Get(id); !ok {
		http.Error(w, `{"error":"unknown_mode"}`, http.StatusNotFound)
		return nil
	}
	return ledger.New(s.stats, s.ensureAnonID(w, r), id, ledger.DefaultPolicy)
}

func (s *Server) handleStatsGet(w http.ResponseWriter, r *http.Request) {
	led := s.modeLedger(w, r)
	if led == nil {
		return
	}
	st, err := led.Stats(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("stats load")
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(st)
}

type statsEventReq struct {
	Event string `json:"event"` // solve | wrong | reveal | abandon
	Wrong int    `json:"wrong"` // wrong-guess count, solve events only
}

func (s *Server) handleStatsEvent(w http.ResponseWriter, r *http.Request) {
	led := s.modeLedger(w, r)
	if led == nil {
		return
	}
	var p statsEventReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	var (
		st  ledger.Stats
		err error
	)
	switch p.Event {
	case "solve":
		st, err = led.Award(r.Context(), p.Wrong)
	case "wrong":
		st, err = led.PenalizeWrong(r.Context())
	case "reveal":
		st, err = led.PenalizeReveal(r.Context())
	case "abandon":
		st, err = led.PenalizeAbandon(r.Context())
	default:
		http.Error(w, `{"error":"unknown_event"}`, http.StatusBadRequest)
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("event", p.Event).Msg("stats event")
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(st)
}
