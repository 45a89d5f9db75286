// internal/leaderboard/board.go
//
// Global high-score table.
// Responsibilities:
//   - Loading the table from a store.Store (key "leaderboard").
//   - Inserting results and keeping at most MaxEntries, highest score first.
//   - Persisting the whole table on every change.
//
// A corrupt or unreadable stored table is logged and treated as empty; the
// next AddEntry overwrites it.

package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordbomb/internal/store"
)

const (
	// Key is the store key holding the table.
	Key = "leaderboard"
	// MaxEntries is the table size.
	MaxEntries = 10
)

// Entry is one leaderboard row.
type Entry struct {
	PlayerName string    `json:"playerName"`
	Score      int       `json:"score"`
	Difficulty string    `json:"difficulty"`
	Date       time.Time `json:"date"`
}

// Board is the in-memory leaderboard backed by a store.
type Board struct {
	mu      sync.RWMutex
	st      store.Store
	now     func() time.Time
	entries []Entry
}

// Option configures a Board.
type Option func(*Board)

// WithClock overrides time.Now for entry dates.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// Open loads the board from st.
func Open(ctx context.Context, st store.Store, opts ...Option) (*Board, error) {
	b := &Board{st: st, now: time.Now}
	for _, o := range opts {
		o(b)
	}

	raw, err := st.Get(ctx, Key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return b, nil
	case err != nil:
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Warn().Err(err).Msg("corrupt leaderboard, starting empty")
		return b, nil
	}
	b.entries = normalize(entries)
	return b, nil
}

// normalize sorts by score (stable) and truncates to MaxEntries.
func normalize(entries []Entry) []Entry {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}

// AddEntry records a score and persists the table. Ties keep insertion
// order, so an equal later score ranks below the earlier one. The in-memory
// table is only replaced once the write succeeds.
func (b *Board) AddEntry(ctx context.Context, name string, score int, difficulty string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := make([]Entry, 0, len(b.entries)+1)
	next = append(next, b.entries...)
	next = append(next, Entry{
		PlayerName: name,
		Score:      score,
		Difficulty: difficulty,
		Date:       b.now(),
	})
	next = normalize(next)

	raw, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}
	if err := b.st.Put(ctx, Key, raw); err != nil {
		return fmt.Errorf("save leaderboard: %w", err)
	}
	b.entries = next
	return nil
}

// GetTopScores returns up to n entries, best first. n <= 0 returns all.
func (b *Board) GetTopScores(n int) []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n <= 0 || n > len(b.entries) {
		n = len(b.entries)
	}
	out := make([]Entry, n)
	copy(out, b.entries[:n])
	return out
}

// Rank returns the 1-based position a score would take, or 0 if it would
// not make the table.
func (b *Board) Rank(score int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	pos := 1
	for _, e := range b.entries {
		if score > e.Score {
			break
		}
		pos++
	}
	if pos > MaxEntries {
		return 0
	}
	return pos
}
