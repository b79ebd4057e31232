// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily challenge.
//   - POST /api/daily/guess       → submit a guess, get per-attribute feedback
//   - GET  /api/daily/state       → current progress and full guess history
//   - POST /api/daily/translate   → localized names for already-guessed ids
//   - POST /api/daily/reset       → wipe the device's progress for today
//   - GET  /api/daily/leaderboard → today's winners ordered by guess count
//
// Everyone solves the same species per UTC day; the answer is derived from
// the date so no schedule table is needed. Identity is the anonymous device
// cookie.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/BVSTSirop/pokeguess/internal/daily"
	"github.com/BVSTSirop/pokeguess/internal/pokeapi"
)

func (s *Server) mountDaily() {
	s.r.Post("/api/daily/guess", s.handleDailyGuess)
	s.r.Get("/api/daily/state", s.handleDailyState)
	s.r.Post("/api/daily/translate", s.handleDailyTranslate)
	s.r.Post("/api/daily/reset", s.handleDailyReset)
	s.r.Get("/api/daily/leaderboard", s.handleDailyLeaderboard)
}

type dailyGuessReq struct {
	Guess string `json:"guess"`
	Lang  string `json:"lang"`
}

// handleDailyGuess resolves and scores one guess for today's challenge.
func (s *Server) handleDailyGuess(w http.ResponseWriter, r *http.Request) {
	owner := s.ensureAnonID(w, r)

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	l := s.lang(r)
	if p.Lang != "" {
		l = pokeapi.Lang(p.Lang)
	}

	res, err := s.daily.Guess(r.Context(), owner, l, p.Guess)
	switch {
	case errors.Is(err, daily.ErrUnknownName):
		http.Error(w, `{"error":"unknown_name"}`, http.StatusBadRequest)
		return
	case errors.Is(err, daily.ErrDuplicateGuess):
		http.Error(w, `{"error":"duplicate_guess"}`, http.StatusConflict)
		return
	case errors.Is(err, daily.ErrFinished):
		http.Error(w, `{"error":"already_finished"}`, http.StatusConflict)
		return
	case err != nil:
		s.log.Error().Err(err).Msg("daily guess")
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

type dailyStateRes struct {
	Date    string        `json:"date"`
	State   daily.State   `json:"state"`
	Guesses []daily.Guess `json:"history"`
}

// handleDailyState returns today's progress and the full ordered history for
// the device, so a reload can rebuild the board.
func (s *Server) handleDailyState(w http.ResponseWriter, r *http.Request) {
	owner := s.ensureAnonID(w, r)
	hist, st, err := s.daily.History(r.Context(), owner)
	if err != nil {
		s.log.Error().Err(err).Msg("daily state")
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	if hist == nil {
		hist = []daily.Guess{}
	}
	_ = json.NewEncoder(w).Encode(dailyStateRes{Date: s.daily.Today(), State: st, Guesses: hist})
}

type translateReq struct {
	IDs  []int  `json:"ids"`
	Lang string `json:"lang"`
}

// handleDailyTranslate maps species ids to display names in the requested
// language. Ids that cannot be localized are simply omitted.
func (s *Server) handleDailyTranslate(w http.ResponseWriter, r *http.Request) {
	var p translateReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if len(p.IDs) > 200 {
		http.Error(w, `{"error":"too_many_ids"}`, http.StatusBadRequest)
		return
	}
	out := s.daily.Translate(r.Context(), p.IDs, pokeapi.Lang(p.Lang))
	_ = json.NewEncoder(w).Encode(map[string]any{"names": out})
}

// handleDailyReset wipes today's progress for the device.
func (s *Server) handleDailyReset(w http.ResponseWriter, r *http.Request) {
	owner := s.ensureAnonID(w, r)
	if err := s.daily.Reset(r.Context(), owner); err != nil {
		s.log.Error().Err(err).Msg("daily reset")
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(`{"ok":true}`))
}

type dailyLBRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleDailyLeaderboard returns today's winners, fewest guesses first.
func (s *Server) handleDailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := s.daily.Leaderboard(r.Context(), 20)
	if err != nil {
		s.log.Error().Err(err).Msg("daily leaderboard")
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []daily.LBRow{}
	}
	_ = json.NewEncoder(w).Encode(dailyLBRes{Date: s.daily.Today(), Top: rows})
}
