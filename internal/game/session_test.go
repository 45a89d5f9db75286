package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, names ...string) *Session {
	t.Helper()
	s, err := NewSession(names, Normal, DefaultSettings())
	require.NoError(t, err)
	return s
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, " Ann ", "Bob")

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, s.RoundNumber)
	assert.Equal(t, AwaitingTurn, s.State)
	assert.Equal(t, "Ann", s.CurrentPlayer().Name)
	for _, p := range s.Players {
		assert.Equal(t, 3, p.Lives)
		assert.Zero(t, p.Score)
	}
}

func TestNewSession_Rejects(t *testing.T) {
	_, err := NewSession(nil, Normal, DefaultSettings())
	assert.ErrorIs(t, err, ErrNoPlayers)

	_, err = NewSession([]string{"ann", "ANN"}, Normal, DefaultSettings())
	assert.ErrorIs(t, err, ErrDuplicatePlayer)

	_, err = NewSession([]string{"ann", "  "}, Normal, DefaultSettings())
	assert.Error(t, err)
}

func TestNextPlayer_Cycles(t *testing.T) {
	s := newTestSession(t, "a", "b", "c")

	var order []string
	for i := 0; i < 6; i++ {
		s.NextPlayer()
		order = append(order, s.CurrentPlayer().Name)
	}
	assert.Equal(t, []string{"b", "c", "a", "b", "c", "a"}, order)
}

func TestNextPlayer_SkipsEliminated(t *testing.T) {
	s := newTestSession(t, "a", "b", "c", "d")
	s.Players[1].Lives = 0
	s.Players[2].Lives = 0

	for i := 0; i < 10; i++ {
		s.NextPlayer()
		assert.True(t, s.CurrentPlayer().Alive(), "landed on %s", s.CurrentPlayer().Name)
	}
}

func TestNextPlayer_ReturnsToSoleSurvivor(t *testing.T) {
	s := newTestSession(t, "a", "b", "c", "d")
	s.CurrentIndex = 2
	for i, p := range s.Players {
		if i != 2 {
			p.Lives = 0
		}
	}

	s.NextPlayer()
	// With one survivor the skip loop is not entered.
	assert.Equal(t, 3, s.CurrentIndex)

	for i := 0; i < len(s.Players); i++ {
		if s.CurrentIndex == 2 {
			break
		}
		s.NextPlayer()
	}
	assert.Equal(t, 2, s.CurrentIndex)
}

func TestNextPlayer_TerminatesWithNoSurvivors(t *testing.T) {
	s := newTestSession(t, "a", "b", "c")
	for _, p := range s.Players {
		p.Lives = 0
	}
	s.NextPlayer()
	assert.Equal(t, 1, s.CurrentIndex)
}

func TestWinner_ForEveryAliveCount(t *testing.T) {
	const n = 4
	for alive := 0; alive <= n; alive++ {
		s := newTestSession(t, "a", "b", "c", "d")
		for i, p := range s.Players {
			if i >= alive {
				p.Lives = 0
			}
		}
		w := s.Winner()
		if alive == 1 {
			require.NotNil(t, w, "alive=%d", alive)
			assert.Equal(t, "a", w.Name)
		} else {
			assert.Nil(t, w, "alive=%d", alive)
		}
	}
}

func TestIsOver(t *testing.T) {
	s := newTestSession(t, "a", "b")
	assert.False(t, s.IsOver())
	s.Players[0].Lives = 0
	assert.True(t, s.IsOver())

	solo := newTestSession(t, "solo")
	assert.False(t, solo.IsOver())
	assert.Equal(t, solo.Players[0], solo.Winner())
	solo.Players[0].Lives = 0
	assert.True(t, solo.IsOver())
	assert.Nil(t, solo.Winner())
}

func TestApply_AcceptedAndRejected(t *testing.T) {
	s := newTestSession(t, "a", "b")
	a, b := s.Players[0], s.Players[1]

	err := s.Apply(&Round{Letters: "AT", Player: a}, Result{Outcome: Accepted, Word: "cat", Points: 23})
	require.NoError(t, err)
	assert.Equal(t, 23, a.Score)
	assert.True(t, a.HasUsedWord("CAT"))
	assert.Equal(t, 3, a.Lives)
	assert.Equal(t, 2, s.RoundNumber)
	assert.Equal(t, b, s.CurrentPlayer())
	assert.Equal(t, AwaitingTurn, s.State)

	err = s.Apply(&Round{Letters: "AT", Player: b}, Result{Outcome: InvalidWord, Word: "bat"})
	require.NoError(t, err)
	assert.Equal(t, 2, b.Lives)
	assert.Zero(t, b.Score)
	assert.Equal(t, 3, s.RoundNumber)
	assert.Equal(t, a, s.CurrentPlayer())
}

func TestApply_GameOver(t *testing.T) {
	s := newTestSession(t, "a", "b")
	s.Players[1].Lives = 1
	s.CurrentIndex = 1

	require.NoError(t, s.Apply(&Round{Player: s.Players[1]}, Result{Outcome: TimeUp}))

	assert.Equal(t, GameOver, s.State)
	assert.Equal(t, s.Players[0], s.Winner())
	assert.Equal(t, 1, s.RoundsPlayed())
	assert.ErrorIs(t, s.Apply(&Round{Player: s.Players[0]}, Result{Outcome: TimeUp}), ErrGameOver)
}

func TestApply_StaleRound(t *testing.T) {
	s := newTestSession(t, "a", "b")
	err := s.Apply(&Round{Player: s.Players[1]}, Result{Outcome: TimeUp})
	assert.ErrorIs(t, err, ErrStaleRound)
	assert.Equal(t, 1, s.RoundNumber)
}

func TestPlayer_UsedWordsCaseInsensitive(t *testing.T) {
	p := NewPlayer("x", 3)
	p.AddUsedWord(" Cat ")
	p.AddUsedWord("CAT")

	assert.Equal(t, []string{"cat"}, p.UsedWords)
	assert.True(t, p.HasUsedWord("cAt"))
}

func TestPlayer_LivesNeverNegative(t *testing.T) {
	p := NewPlayer("x", 1)
	p.LoseLife()
	p.LoseLife()
	assert.Zero(t, p.Lives)
	assert.False(t, p.Alive())
}

func TestParseDifficulty(t *testing.T) {
	assert.Equal(t, Easy, ParseDifficulty("easy"))
	assert.Equal(t, Hard, ParseDifficulty(" HARD "))
	assert.Equal(t, Normal, ParseDifficulty("nightmare"))
}

func TestSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 2, s.LetterCount(Easy))
	assert.Equal(t, 3, s.LetterCount(Hard))
	assert.Equal(t, s.NormalTimeLimit, s.TimeLimit(Difficulty("other")))
}
