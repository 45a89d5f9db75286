package leaderboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordbomb/internal/store"
)

var day = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func openBoard(t *testing.T, st store.Store) *Board {
	t.Helper()
	b, err := Open(context.Background(), st, WithClock(func() time.Time { return day }))
	require.NoError(t, err)
	return b
}

func TestAddEntry_OrdersAndTruncates(t *testing.T) {
	ctx := context.Background()
	b := openBoard(t, store.NewMemoryStore())

	for i := 1; i <= 12; i++ {
		require.NoError(t, b.AddEntry(ctx, "p", i*10, "Normal"))
	}

	top := b.GetTopScores(0)
	require.Len(t, top, MaxEntries)
	assert.Equal(t, 120, top[0].Score)
	assert.Equal(t, 30, top[MaxEntries-1].Score)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Score, top[i].Score)
	}
	assert.Equal(t, day, top[0].Date)
}

func TestAddEntry_TiesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	b := openBoard(t, store.NewMemoryStore())

	require.NoError(t, b.AddEntry(ctx, "first", 50, "Easy"))
	require.NoError(t, b.AddEntry(ctx, "second", 50, "Hard"))
	require.NoError(t, b.AddEntry(ctx, "top", 60, "Normal"))

	top := b.GetTopScores(3)
	assert.Equal(t, []string{"top", "first", "second"}, []string{top[0].PlayerName, top[1].PlayerName, top[2].PlayerName})
}

func TestGetTopScores_Limits(t *testing.T) {
	ctx := context.Background()
	b := openBoard(t, store.NewMemoryStore())
	assert.Empty(t, b.GetTopScores(5))

	require.NoError(t, b.AddEntry(ctx, "a", 1, "Easy"))
	require.NoError(t, b.AddEntry(ctx, "b", 2, "Easy"))

	assert.Len(t, b.GetTopScores(1), 1)
	assert.Len(t, b.GetTopScores(10), 2)
	assert.Len(t, b.GetTopScores(-1), 2)

	// Callers cannot mutate the board through the returned slice.
	got := b.GetTopScores(1)
	got[0].Score = 999
	assert.Equal(t, 2, b.GetTopScores(1)[0].Score)
}

func TestOpen_ReloadsPersistedTable(t *testing.T) {
	ctx := context.Background()
	st := store.NewFileStore(t.TempDir())

	b := openBoard(t, st)
	require.NoError(t, b.AddEntry(ctx, "Ann", 42, "Hard"))

	again := openBoard(t, st)
	top := again.GetTopScores(0)
	require.Len(t, top, 1)
	assert.Equal(t, Entry{PlayerName: "Ann", Score: 42, Difficulty: "Hard", Date: day}, top[0])
}

func TestOpen_CorruptTableIsEmpty(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Put(ctx, Key, []byte("[{broken")))

	b := openBoard(t, st)
	assert.Empty(t, b.GetTopScores(0))

	require.NoError(t, b.AddEntry(ctx, "Ann", 5, "Easy"))
	assert.Len(t, openBoard(t, st).GetTopScores(0), 1)
}

type failingStore struct{ store.Store }

func (failingStore) Put(context.Context, string, []byte) error { return errors.New("read-only") }

func TestAddEntry_WriteFailureKeepsTable(t *testing.T) {
	b := openBoard(t, failingStore{store.NewMemoryStore()})

	err := b.AddEntry(context.Background(), "Ann", 5, "Easy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")
	assert.Empty(t, b.GetTopScores(0))
}

func TestRank(t *testing.T) {
	ctx := context.Background()
	b := openBoard(t, store.NewMemoryStore())
	assert.Equal(t, 1, b.Rank(0))

	for i := 1; i <= MaxEntries; i++ {
		require.NoError(t, b.AddEntry(ctx, "p", i*10, "Normal"))
	}
	assert.Equal(t, 1, b.Rank(500))
	assert.Equal(t, 2, b.Rank(95))
	assert.Equal(t, 0, b.Rank(10))
	assert.Equal(t, 0, b.Rank(5))
}
