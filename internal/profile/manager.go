// internal/profile/manager.go
//
// Manager loads, updates and persists player profiles on top of a
// store.Store.
//
// Behavior:
//   - Profiles are keyed by SafeName(playerName).
//   - A missing or unparsable record yields a fresh profile; corruption is
//     logged, never fatal.
//   - SaveMatch rewrites the whole profile (history included). Write
//     failures are returned to the caller; in-memory game state is never
//     touched by a failed save.

package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordbomb/internal/game"
	"github.com/robalobadob/wordbomb/internal/store"
)

// RecentMatches is how many matches Stats reports.
const RecentMatches = 5

// Manager is the profile store.
type Manager struct {
	st  store.Store
	now func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager constructs a Manager over st.
func NewManager(st store.Store, opts ...Option) *Manager {
	m := &Manager{st: st, now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

// SafeName maps a player name to its storage key: trimmed, lowercased, with
// path-invalid and control characters replaced by '_'. A leading '.' also
// becomes '_' so keys are never hidden files, "." or "..".
func SafeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	key := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(`<>:"/\|?*`, r) {
			return '_'
		}
		return r
	}, name)
	if strings.HasPrefix(key, ".") {
		key = "_" + key[1:]
	}
	return key
}

func (m *Manager) fresh(name string) *Profile {
	now := m.now()
	return &Profile{
		PlayerName:   name,
		CreatedDate:  now,
		LastPlayed:   now,
		MatchHistory: []MatchRecord{},
	}
}

// LoadOrCreateProfile returns the stored profile for name, or a fresh one
// when none exists or the stored record cannot be parsed.
func (m *Manager) LoadOrCreateProfile(ctx context.Context, name string) (*Profile, error) {
	key := SafeName(name)
	if key == "" {
		return nil, errors.New("profile: empty player name")
	}

	b, err := m.st.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return m.fresh(name), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", key, err)
	}

	return m.decode(name, b), nil
}

// decode parses a stored record; corrupt records are logged and replaced by
// a fresh profile.
func (m *Manager) decode(name string, b []byte) *Profile {
	var p Profile
	if err := json.Unmarshal(b, &p); err != nil {
		log.Warn().Err(err).Str("player", SafeName(name)).Msg("corrupt profile, starting fresh")
		return m.fresh(name)
	}
	if p.PlayerName == "" {
		p.PlayerName = name
	}
	if p.MatchHistory == nil {
		p.MatchHistory = []MatchRecord{}
	}
	return &p
}

// Save persists p, replacing any previous record.
func (m *Manager) Save(ctx context.Context, p *Profile) error {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", p.PlayerName, err)
	}
	if err := m.st.Put(ctx, SafeName(p.PlayerName), b); err != nil {
		return fmt.Errorf("save profile %s: %w", p.PlayerName, err)
	}
	return nil
}

// SaveMatch appends a record of the finished session to the player's
// profile, bumps the counters and persists the profile.
func (m *Manager) SaveMatch(ctx context.Context, p *game.Player, s *game.Session, matchStart time.Time, perfs []game.RoundPerformance) (*Profile, error) {
	prof, err := m.LoadOrCreateProfile(ctx, p.Name)
	if err != nil {
		return nil, err
	}

	now := m.now()
	rec := MatchRecord{
		ID:                uuid.NewString(),
		MatchDate:         matchStart,
		Difficulty:        string(s.Difficulty),
		Score:             p.Score,
		RoundsPlayed:      s.RoundsPlayed(),
		LivesRemaining:    p.Lives,
		Won:               p.Alive() && s.Winner() == p,
		WordsUsed:         append([]string{}, p.UsedWords...),
		TotalPlayTime:     Seconds(now.Sub(matchStart)),
		RoundPerformances: append([]game.RoundPerformance{}, perfs...),
	}

	prof.MatchHistory = append(prof.MatchHistory, rec)
	prof.LastPlayed = now
	prof.TotalMatches++
	prof.TotalScore += p.Score
	if rec.Won {
		prof.TotalWins++
	}
	if p.Score > prof.BestScore {
		prof.BestScore = p.Score
	}

	if err := m.Save(ctx, prof); err != nil {
		return nil, err
	}
	log.Info().Str("player", p.Name).Int("score", p.Score).Bool("won", rec.Won).
		Int("matches", prof.TotalMatches).Msg("match saved")
	return prof, nil
}

// GetAllPlayers lists the stored profile keys.
func (m *Manager) GetAllPlayers(ctx context.Context) ([]string, error) {
	return m.st.Keys(ctx)
}

// DeletePlayer removes a stored profile and reports whether one existed.
func (m *Manager) DeletePlayer(ctx context.Context, name string) (bool, error) {
	key := SafeName(name)
	if key == "" {
		return false, nil
	}
	ok, err := m.st.Delete(ctx, key)
	if err != nil {
		return false, fmt.Errorf("delete profile %s: %w", key, err)
	}
	if ok {
		log.Info().Str("player", key).Msg("profile deleted")
	}
	return ok, nil
}

// Stats is the summary shown for one player.
type Stats struct {
	PlayerName     string        `json:"playerName"`
	TotalMatches   int           `json:"totalMatches"`
	TotalWins      int           `json:"totalWins"`
	WinRate        float64       `json:"winRate"`
	BestScore      int           `json:"bestScore"`
	AverageScore   float64       `json:"averageScore"`
	TotalWordsUsed int           `json:"totalWordsUsed"`
	LastPlayed     time.Time     `json:"lastPlayed"`
	Recent         []MatchRecord `json:"recent"`
}

// Summarize builds Stats for p, with the most recent matches first.
func Summarize(p *Profile) Stats {
	recent := append([]MatchRecord{}, p.MatchHistory...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].MatchDate.After(recent[j].MatchDate)
	})
	if len(recent) > RecentMatches {
		recent = recent[:RecentMatches]
	}
	return Stats{
		PlayerName:     p.PlayerName,
		TotalMatches:   p.TotalMatches,
		TotalWins:      p.TotalWins,
		WinRate:        p.WinRate(),
		BestScore:      p.BestScore,
		AverageScore:   p.AverageScore(),
		TotalWordsUsed: p.TotalWordsUsed(),
		LastPlayed:     p.LastPlayed,
		Recent:         recent,
	}
}

// Stats loads the profile for name and summarizes it.
func (m *Manager) Stats(ctx context.Context, name string) (Stats, error) {
	p, err := m.LoadOrCreateProfile(ctx, name)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(p), nil
}

// ErrUnknownPlayer is returned by Find when no profile is stored.
var ErrUnknownPlayer = errors.New("profile: unknown player")

// Find returns a stored profile without creating one.
func (m *Manager) Find(ctx context.Context, name string) (*Profile, error) {
	key := SafeName(name)
	if key == "" {
		return nil, ErrUnknownPlayer
	}
	b, err := m.st.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnknownPlayer
	}
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", key, err)
	}
	return m.decode(name, b), nil
}
