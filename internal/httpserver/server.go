// internal/httpserver/server.go
//
// HTTP server wiring for the word bomb stats API.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Read-only stats: /players, /players/{name}, /players/{name}/analytics,
//     /leaderboard.
//   - Admin: POST /auth/token (password -> JWT, rate limited) and
//     DELETE /players/{name} (requires that JWT).
//
// Notes:
//   - The API reads the same stores the terminal game writes; it never
//     starts or plays matches.
//   - Admin login is disabled unless an admin password hash is configured.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/robalobadob/wordbomb/internal/leaderboard"
	"github.com/robalobadob/wordbomb/internal/profile"
)

// Config carries the admin auth settings.
type Config struct {
	AdminHash string
	JWTSecret string
	TokenTTL  time.Duration
}

// Server bundles the router and the stores it reads.
type Server struct {
	r        *chi.Mux
	profiles *profile.Manager
	board    *leaderboard.Board
	cfg      Config
	login    *rate.Limiter
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(profiles *profile.Manager, board *leaderboard.Board, cfg Config) *Server {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 12 * time.Hour
	}
	s := &Server{
		r:        chi.NewRouter(),
		profiles: profiles,
		board:    board,
		cfg:      cfg,
		login:    rate.NewLimiter(rate.Every(time.Second), 5),
		now:      time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(requestLogger)
	s.r.Use(jsonContentType)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "wordbomb",
			"endpoints": []string{"/health", "/players", "/players/{name}", "/players/{name}/analytics", "/leaderboard", "POST /auth/token", "DELETE /players/{name}"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	// --- stats (public) ---
	s.r.Get("/players", s.handlePlayers)
	s.r.Get("/players/{name}", s.handlePlayer)
	s.r.Get("/players/{name}/analytics", s.handleAnalytics)
	s.r.Get("/leaderboard", s.handleLeaderboard)

	// --- admin ---
	s.r.Post("/auth/token", s.handleToken)
	s.r.With(s.requireAdmin()).Delete("/players/{name}", s.handleDeletePlayer)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
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

// requestLogger logs one debug line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		t0 := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(t0)).
			Str("reqId", chimw.GetReqID(r.Context())).
			Msg("http")
	})
}

// ------------------------------- stats -------------------------------------

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	names, err := s.profiles.GetAllPlayers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list players")
		writeError(w, http.StatusInternalServerError, "store_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"players": names})
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	p, ok := s.findProfile(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, profile.Summarize(p))
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	p, ok := s.findProfile(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, profile.LetterAnalytics(p))
}

// findProfile loads the {name} profile or writes the error response.
func (s *Server) findProfile(w http.ResponseWriter, r *http.Request) (*profile.Profile, bool) {
	name := chi.URLParam(r, "name")
	p, err := s.profiles.Find(r.Context(), name)
	if errors.Is(err, profile.ErrUnknownPlayer) {
		writeError(w, http.StatusNotFound, "unknown_player")
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Str("player", name).Msg("load profile")
		writeError(w, http.StatusInternalServerError, "store_error")
		return nil, false
	}
	return p, true
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := leaderboard.MaxEntries
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": s.board.GetTopScores(limit)})
}

// ------------------------------- admin -------------------------------------

func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ok, err := s.profiles.DeletePlayer(r.Context(), name)
	if err != nil {
		log.Error().Err(err).Str("player", name).Msg("delete profile")
		writeError(w, http.StatusInternalServerError, "store_error")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_player")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
