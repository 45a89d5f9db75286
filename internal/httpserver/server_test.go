package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/wordbomb/internal/game"
	"github.com/robalobadob/wordbomb/internal/leaderboard"
	"github.com/robalobadob/wordbomb/internal/profile"
	"github.com/robalobadob/wordbomb/internal/store"
)

const password = "correct horse"

func setupServer(t *testing.T) (*Server, *profile.Manager) {
	t.Helper()
	ctx := context.Background()

	profiles := profile.NewManager(store.NewMemoryStore())
	board, err := leaderboard.Open(ctx, store.NewMemoryStore())
	require.NoError(t, err)

	s, err := game.NewSession([]string{"Ann", "Bob"}, game.Normal, game.DefaultSettings())
	require.NoError(t, err)
	s.Players[0].Score = 42
	s.Players[1].Lives = 0
	s.State = game.GameOver
	perfs := []game.RoundPerformance{
		{Letters: "AT", Success: true, WordUsed: "cat", TimeRemaining: 9},
		{Letters: "AT", Success: false},
	}
	for _, p := range s.Players {
		_, err := profiles.SaveMatch(ctx, p, s, time.Now(), perfs)
		require.NoError(t, err)
		require.NoError(t, board.AddEntry(ctx, p.Name, p.Score, string(s.Difficulty)))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	srv := New(profiles, board, Config{AdminHash: string(hash), JWTSecret: "test-secret", TokenTTL: time.Hour})
	return srv, profiles
}

func do(t *testing.T, srv *Server, method, path, body, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func adminToken(t *testing.T, srv *Server) string {
	t.Helper()
	rec, out := do(t, srv, http.MethodPost, "/auth/token", `{"password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	tok, _ := out["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func TestHealth(t *testing.T) {
	srv, _ := setupServer(t)
	rec, out := do(t, srv, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["ok"])
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestPlayers(t *testing.T) {
	srv, _ := setupServer(t)
	rec, out := do(t, srv, http.MethodGet, "/players", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"ann", "bob"}, out["players"])
}

func TestPlayerStats(t *testing.T) {
	srv, _ := setupServer(t)

	rec, out := do(t, srv, http.MethodGet, "/players/ANN", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ann", out["playerName"])
	assert.Equal(t, float64(1), out["totalMatches"])
	assert.Equal(t, float64(100), out["winRate"])
	assert.Equal(t, float64(42), out["bestScore"])

	rec, out = do(t, srv, http.MethodGet, "/players/nobody", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown_player", out["error"])
}

func TestPlayerAnalytics(t *testing.T) {
	srv, _ := setupServer(t)

	rec, out := do(t, srv, http.MethodGet, "/players/bob/analytics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, out["insufficientData"])
	assert.Equal(t, float64(50), out["overallSuccessRate"])
	best := out["best"].([]any)
	require.Len(t, best, 1)
	assert.Equal(t, "AT", best[0].(map[string]any)["letters"])
}

func TestLeaderboard(t *testing.T) {
	srv, _ := setupServer(t)

	rec, out := do(t, srv, http.MethodGet, "/leaderboard", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	entries := out["entries"].([]any)
	require.Len(t, entries, 2)
	assert.Equal(t, "Ann", entries[0].(map[string]any)["playerName"])

	_, out = do(t, srv, http.MethodGet, "/leaderboard?limit=1", "", "")
	assert.Len(t, out["entries"], 1)

	rec, _ = do(t, srv, http.MethodGet, "/leaderboard?limit=zero", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeletePlayer_RequiresAdmin(t *testing.T) {
	srv, profiles := setupServer(t)

	rec, _ := do(t, srv, http.MethodDelete, "/players/bob", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = do(t, srv, http.MethodDelete, "/players/bob", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok := adminToken(t, srv)
	rec, out := do(t, srv, http.MethodDelete, "/players/bob", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["deleted"])

	rec, _ = do(t, srv, http.MethodDelete, "/players/bob", "", tok)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	names, err := profiles.GetAllPlayers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ann"}, names)
}

func TestToken(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"bad json", `{`, http.StatusBadRequest},
		{"wrong password", `{"password":"nope"}`, http.StatusUnauthorized},
		{"ok", `{"password":"` + password + `"}`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := setupServer(t)
			rec, _ := do(t, srv, http.MethodPost, "/auth/token", tt.body, "")
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestToken_AdminDisabled(t *testing.T) {
	srv := New(profile.NewManager(store.NewMemoryStore()), nil, Config{JWTSecret: "x"})
	rec, out := do(t, srv, http.MethodPost, "/auth/token", `{"password":"x"}`, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "admin_disabled", out["error"])
}

func TestToken_RateLimited(t *testing.T) {
	srv, _ := setupServer(t)
	var last int
	for i := 0; i < 10; i++ {
		rec, _ := do(t, srv, http.MethodPost, "/auth/token", `{"password":"guess"}`, "")
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestToken_Expired(t *testing.T) {
	srv, _ := setupServer(t)
	tok := adminToken(t, srv)

	srv.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	rec, out := do(t, srv, http.MethodDelete, "/players/ann", "", tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_token", out["error"])
}

func TestToken_WrongSecret(t *testing.T) {
	srv, _ := setupServer(t)
	tok := adminToken(t, srv)

	srv.cfg.JWTSecret = "rotated"
	rec, _ := do(t, srv, http.MethodDelete, "/players/ann", "", tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNotFound(t *testing.T) {
	srv, _ := setupServer(t)
	rec, out := do(t, srv, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", out["error"])
}
