// internal/game/session.go
//
// Session: one complete game from player setup to a single survivor.
//
// Turn cycle:
//   AwaitingTurn → RoundInProgress → RoundResolved → (AwaitingTurn | GameOver)
//
// Rules:
//   - Turn order is cyclic and skips eliminated players while more than one
//     player is alive.
//   - The round number increments after every turn, success or failure.
//   - The game ends when at most one player is alive, or, for a solo game,
//     when the only player runs out of lives.

package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNoPlayers       = errors.New("game: at least one player is required")
	ErrDuplicatePlayer = errors.New("game: duplicate player name")
	ErrGameOver        = errors.New("game: session is over")
	ErrStaleRound      = errors.New("game: round does not belong to the current player")
)

// Session holds players and turn state for one game.
type Session struct {
	ID           string
	Players      []*Player
	CurrentIndex int
	RoundNumber  int
	Difficulty   Difficulty
	State        State
}

// NewSession creates a session. Names are trimmed and must be non-empty
// and unique (case-insensitive).
func NewSession(names []string, d Difficulty, settings Settings) (*Session, error) {
	if len(names) == 0 {
		return nil, ErrNoPlayers
	}
	seen := make(map[string]struct{}, len(names))
	players := make([]*Player, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return nil, fmt.Errorf("game: empty player name")
		}
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, n)
		}
		seen[key] = struct{}{}
		players = append(players, NewPlayer(n, settings.StartingLives))
	}
	return &Session{
		ID:          uuid.NewString(),
		Players:     players,
		RoundNumber: 1,
		Difficulty:  d,
		State:       AwaitingTurn,
	}, nil
}

// CurrentPlayer returns the player whose turn it is.
func (s *Session) CurrentPlayer() *Player {
	return s.Players[s.CurrentIndex]
}

// AlivePlayers returns the players with lives left, in seat order.
func (s *Session) AlivePlayers() []*Player {
	var out []*Player
	for _, p := range s.Players {
		if p.Alive() {
			out = append(out, p)
		}
	}
	return out
}

func (s *Session) aliveCount() int {
	n := 0
	for _, p := range s.Players {
		if p.Alive() {
			n++
		}
	}
	return n
}

// NextPlayer advances the turn cyclically, skipping eliminated players
// while more than one player is alive. The alive count is checked before
// each further step, so the loop ends even with zero or one survivor.
func (s *Session) NextPlayer() {
	n := len(s.Players)
	if n == 0 {
		return
	}
	s.CurrentIndex = (s.CurrentIndex + 1) % n
	for steps := 1; steps < n && s.aliveCount() > 1 && !s.CurrentPlayer().Alive(); steps++ {
		s.CurrentIndex = (s.CurrentIndex + 1) % n
	}
}

// Winner returns the sole alive player, or nil.
func (s *Session) Winner() *Player {
	var last *Player
	for _, p := range s.Players {
		if p.Alive() {
			if last != nil {
				return nil
			}
			last = p
		}
	}
	return last
}

// Solo reports whether this is a single-player session.
func (s *Session) Solo() bool { return len(s.Players) == 1 }

// IsOver is the terminal-state test.
func (s *Session) IsOver() bool {
	if s.Solo() {
		return !s.Players[0].Alive()
	}
	return s.aliveCount() <= 1
}

// Apply records a resolved round against its player and moves the state
// machine on: accepted words score and are remembered, anything else costs
// a life. The round number always increments.
func (s *Session) Apply(r *Round, res Result) error {
	if s.State == GameOver {
		return ErrGameOver
	}
	if r == nil || r.Player != s.CurrentPlayer() {
		return ErrStaleRound
	}

	p := r.Player
	if res.Accepted() {
		p.AddScore(res.Points)
		p.AddUsedWord(res.Word)
	} else {
		p.LoseLife()
	}
	s.RoundNumber++
	s.State = RoundResolved

	if s.IsOver() {
		s.State = GameOver
		return nil
	}
	s.NextPlayer()
	s.State = AwaitingTurn
	return nil
}

// RoundsPlayed is the number of completed turns.
func (s *Session) RoundsPlayed() int { return s.RoundNumber - 1 }
