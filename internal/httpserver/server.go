// internal/httpserver/server.go
//
// HTTP wiring for the guessing game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Round endpoints: GET /api/round/{mode}, POST /api/check-guess.
//   - Name endpoints: GET /api/all-names, GET /api/suggest.
//   - Daily challenge endpoints under /api/daily.
//   - Per-device score/streak stats under /api/stats/{mode}.
//
// Players are identified by an anonymous device cookie; there are no
// accounts. Round answers travel only inside signed tokens, so the server
// keeps no per-round session state.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BVSTSirop/pokeguess/internal/config"
	"github.com/BVSTSirop/pokeguess/internal/daily"
	"github.com/BVSTSirop/pokeguess/internal/ledger"
	"github.com/BVSTSirop/pokeguess/internal/mode"
	"github.com/BVSTSirop/pokeguess/internal/pokeapi"
	"github.com/BVSTSirop/pokeguess/internal/tcg"
	"github.com/BVSTSirop/pokeguess/internal/token"
)

// Server bundles the router, clients and stores.
type Server struct {
	r     *chi.Mux
	db    *sql.DB
	cfg   config.Config
	log   zerolog.Logger
	poke  *pokeapi.Client
	src   *mode.Source
	daily *daily.Game
	stats ledger.Store

	prefetched sync.Map // languages with a name prefetch already started
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, db *sql.DB, log zerolog.Logger) *Server {
	poke := pokeapi.New(cfg.PokeAPIBase, log)
	signer := token.NewSigner(cfg.Secret)
	s := &Server{
		r:    chi.NewRouter(),
		db:   db,
		cfg:  cfg,
		log:  log.With().Str("component", "http").Logger(),
		poke: poke,
		src: &mode.Source{
			Poke:   poke,
			TCG:    tcg.New(cfg.TCGBase, log),
			Signer: signer,
		},
		daily: daily.NewGame(poke, daily.NewStore(db), cfg.Secret, log),
		stats: ledger.NewSQLiteStore(db),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(30 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"pokeguess","endpoints":["/health","GET /api/round/{mode}","POST /api/check-guess","GET /api/all-names","GET /api/suggest","/api/daily/*","/api/stats/{mode}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/api/modes", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(mode.IDs())
	})

	s.mountRounds()
	s.mountNames()
	s.mountDaily()
	s.mountStats()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------- device identity ---------------------------------

const anonCookieName = "pokeguess_device"

// ensureAnonID returns an existing device cookie or sets a new one. Stats and
// daily history hang off this identifier.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   os.Getenv("APP_ENV") == "production",
		SameSite: func() http.SameSite {
			if os.Getenv("APP_ENV") == "production" {
				return http.SameSiteNoneMode
			}
			return http.SameSiteLaxMode
		}(),
		Expires: time.Now().Add(180 * 24 * time.Hour),
	})
	return id
}

// lang clamps the request's lang parameter, defaulting to the configured
// language.
func (s *Server) lang(r *http.Request) string {
	if l := r.URL.Query().Get("lang"); l != "" {
		return pokeapi.Lang(l)
	}
	return pokeapi.Lang(s.cfg.DefaultLang)
}
