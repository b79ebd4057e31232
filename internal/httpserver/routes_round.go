// internal/httpserver/routes_round.go
//
// Round lifecycle endpoints.
//   - GET  /api/round/{mode}  → a fresh signed round for the mode
//   - POST /api/check-guess   → stateless verification against the token
//
// The response to check-guess never includes the answer unless the guess was
// correct; a wrong guess only learns that it was wrong.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BVSTSirop/pokeguess/internal/hint"
	"github.com/BVSTSirop/pokeguess/internal/mode"
	"github.com/BVSTSirop/pokeguess/internal/names"
	"github.com/BVSTSirop/pokeguess/internal/pokeapi"
)

func (s *Server) mountRounds() {
	s.r.Get("/api/round/{mode}", s.handleRound)
	s.r.Post("/api/check-guess", s.handleCheckGuess)
}

// roundRes carries the localized display name alongside the media so clients
// can render the letter hint and the reveal message without a second call.
// Correctness is still decided only against the signed token.
type roundRes struct {
	Mode  string         `json:"mode"`
	Token string         `json:"token"`
	Name  string         `json:"name"`
	Meta  hint.Meta      `json:"meta"`
	Media map[string]any `json:"media"`
}

// handleRound builds a fresh round for the requested mode.
func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "mode")
	m, ok := mode.Get(id)
	if !ok {
		http.Error(w, `{"error":"unknown_mode"}`, http.StatusNotFound)
		return
	}
	gen := r.URL.Query().Get("gen")

	round, err := m.BuildRound(r.Context(), s.src, s.lang(r), gen)
	if err != nil {
		s.log.Error().Err(err).Str("mode", id).Msg("build round")
		http.Error(w, `{"error":"round_unavailable"}`, http.StatusBadGateway)
		return
	}
	_ = json.NewEncoder(w).Encode(roundRes{
		Mode:  id,
		Token: round.Token,
		Name:  round.Name,
		Meta:  round.Meta,
		Media: round.Payload,
	})
}

type checkGuessReq struct {
	Token string `json:"token"`
	Guess string `json:"guess"`
	Lang  string `json:"lang"`
}

type checkGuessRes struct {
	Correct bool   `json:"correct"`
	Name    string `json:"name,omitempty"` // canonical localized name, on correct only
}

// handleCheckGuess verifies a guess against the token's species. The guess
// may arrive in any supported language or as the API slug; all renderings of
// the species name are accepted.
func (s *Server) handleCheckGuess(w http.ResponseWriter, r *http.Request) {
	var req checkGuessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	id, ok := s.src.Signer.Verify(req.Token)
	if !ok {
		http.Error(w, `{"error":"invalid_token"}`, http.StatusBadRequest)
		return
	}
	norm := names.Normalize(req.Guess)
	if norm == "" {
		http.Error(w, `{"error":"empty_guess"}`, http.StatusBadRequest)
		return
	}

	lst, err := s.poke.List(r.Context())
	if err != nil {
		http.Error(w, `{"error":"upstream_unavailable"}`, http.StatusBadGateway)
		return
	}
	l := s.lang(r)
	if req.Lang != "" {
		l = pokeapi.Lang(req.Lang)
	}
	ix := names.BuildIndex(lst, s.poke.CachedNames(l))

	correct := ix.Resolve(req.Guess) == id
	if !correct {
		// The localized answer name may not be cached yet; compare directly.
		if loc, err := s.poke.LocalizedName(r.Context(), id, l); err == nil {
			correct = names.Normalize(loc) == norm
		}
	}
	res := checkGuessRes{Correct: correct}
	if correct {
		if loc, err := s.poke.LocalizedName(r.Context(), id, l); err == nil {
			res.Name = loc
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}
