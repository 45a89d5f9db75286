// internal/game/types.go
//
// Core type definitions for the word bomb game.
// Defines:
//   - Difficulty and Settings: time limit and letter count presets.
//   - Player: lives, score and the words a player has used this session.
//   - State: the session's turn state machine.
//   - Round: one player's single timed turn.
//   - Outcome/Result: tagged result of resolving a round.
//   - RoundPerformance: per-round record kept for analytics.

package game

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty is one of the fixed presets.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Normal Difficulty = "Normal"
	Hard   Difficulty = "Hard"
)

// Difficulties lists the presets in menu order.
var Difficulties = []Difficulty{Easy, Normal, Hard}

// ParseDifficulty is case-insensitive; unknown values map to Normal.
func ParseDifficulty(s string) Difficulty {
	for _, d := range Difficulties {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d
		}
	}
	return Normal
}

// Settings holds per-difficulty presets and the starting lives.
type Settings struct {
	EasyTimeLimit     time.Duration
	NormalTimeLimit   time.Duration
	HardTimeLimit     time.Duration
	StartingLives     int
	LetterCountEasy   int
	LetterCountNormal int
	LetterCountHard   int
}

// DefaultSettings returns the stock presets.
func DefaultSettings() Settings {
	return Settings{
		EasyTimeLimit:     20 * time.Second,
		NormalTimeLimit:   15 * time.Second,
		HardTimeLimit:     10 * time.Second,
		StartingLives:     3,
		LetterCountEasy:   2,
		LetterCountNormal: 3,
		LetterCountHard:   3,
	}
}

// TimeLimit returns the round time limit for d.
func (s Settings) TimeLimit(d Difficulty) time.Duration {
	switch d {
	case Easy:
		return s.EasyTimeLimit
	case Hard:
		return s.HardTimeLimit
	default:
		return s.NormalTimeLimit
	}
}

// LetterCount returns the letter-sequence length for d.
func (s Settings) LetterCount(d Difficulty) int {
	switch d {
	case Easy:
		return s.LetterCountEasy
	case Hard:
		return s.LetterCountHard
	default:
		return s.LetterCountNormal
	}
}

// Player is one participant in a session.
type Player struct {
	Name      string
	Lives     int
	Score     int
	UsedWords []string // lowercase, in the order used

	used map[string]struct{}
}

// NewPlayer creates a player with the given starting lives.
func NewPlayer(name string, lives int) *Player {
	return &Player{Name: name, Lives: lives, used: map[string]struct{}{}}
}

// Alive reports whether the player has lives left.
func (p *Player) Alive() bool { return p.Lives > 0 }

// LoseLife removes one life, never going below zero.
func (p *Player) LoseLife() {
	if p.Lives > 0 {
		p.Lives--
	}
}

// AddScore adds non-negative points.
func (p *Player) AddScore(points int) {
	if points > 0 {
		p.Score += points
	}
}

// HasUsedWord is case-insensitive.
func (p *Player) HasUsedWord(word string) bool {
	_, ok := p.used[normalizeWord(word)]
	return ok
}

// AddUsedWord records word; repeats are ignored.
func (p *Player) AddUsedWord(word string) {
	w := normalizeWord(word)
	if w == "" {
		return
	}
	if p.used == nil {
		p.used = map[string]struct{}{}
	}
	if _, ok := p.used[w]; ok {
		return
	}
	p.used[w] = struct{}{}
	p.UsedWords = append(p.UsedWords, w)
}

func normalizeWord(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// State is the session's position in the turn cycle.
type State int

const (
	AwaitingTurn State = iota
	RoundInProgress
	RoundResolved
	GameOver
)

func (s State) String() string {
	switch s {
	case AwaitingTurn:
		return "awaiting_turn"
	case RoundInProgress:
		return "round_in_progress"
	case RoundResolved:
		return "round_resolved"
	case GameOver:
		return "game_over"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Round is one timed turn. Created fresh per turn and discarded after
// resolution.
type Round struct {
	Letters   string
	TimeLimit time.Duration
	StartedAt time.Time
	Player    *Player
}

// Elapsed returns the time since the round started, never negative.
func (r *Round) Elapsed(now time.Time) time.Duration {
	if d := now.Sub(r.StartedAt); d > 0 {
		return d
	}
	return 0
}

// TimeUp reports whether the time limit has been reached at now.
func (r *Round) TimeUp(now time.Time) bool {
	return r.Elapsed(now) >= r.TimeLimit
}

// RemainingSeconds is the whole seconds left at now, floored at zero.
// Elapsed time is truncated to whole seconds first.
func (r *Round) RemainingSeconds(now time.Time) int {
	left := int(r.TimeLimit/time.Second) - int(r.Elapsed(now)/time.Second)
	if left < 0 {
		return 0
	}
	return left
}

// Outcome tags the result of resolving a round.
type Outcome int

const (
	Accepted Outcome = iota
	TimeUp
	AlreadyUsed
	InvalidWord
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case TimeUp:
		return "time up"
	case AlreadyUsed:
		return "already used"
	case InvalidWord:
		return "invalid word"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result is the resolution of one round. Points is set only for Accepted.
// Remaining is the whole seconds left at the instant of resolution.
type Result struct {
	Outcome   Outcome
	Word      string
	Points    int
	Remaining int
}

// Accepted reports whether the word was accepted.
func (r Result) Accepted() bool { return r.Outcome == Accepted }

// Message is a short player-facing description of the result.
func (r Result) Message(letters string) string {
	switch r.Outcome {
	case Accepted:
		return fmt.Sprintf("Correct! +%d points", r.Points)
	case TimeUp:
		return "Time's up!"
	case AlreadyUsed:
		return "You already used that word!"
	default:
		return fmt.Sprintf("Invalid word! It must contain '%s'", letters)
	}
}

// RoundPerformance records how a single round went, for analytics.
type RoundPerformance struct {
	Letters       string `json:"letters"`
	Success       bool   `json:"success"`
	WordUsed      string `json:"wordUsed,omitempty"`
	TimeRemaining int    `json:"timeRemaining"`
}
