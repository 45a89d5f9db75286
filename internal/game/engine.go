// internal/game/engine.go
//
// Engine: starts rounds, validates answers and scores them.
// Responsibilities:
//   - Create a round for the session's current player with a generated
//     letter sequence and the difficulty's time limit.
//   - Validate a submitted word: time, repetition, dictionary + substring,
//     checked in that order.
//   - Score accepted words: base + whole seconds remaining + word length.
//
// Notes:
//   - Time-up is pulled on demand when a word is checked; no timers run.
//   - ValidateAnswer samples the clock once and derives both the time-up
//     check and the points from that instant.
//   - The clock is injected so tests can fix time.

package game

import (
	"time"
	"unicode/utf8"
)

// BaseScore is awarded for every accepted word.
const BaseScore = 10

// LetterSource produces the letter sequence for a round.
type LetterSource interface {
	Generate(length int) string
}

// WordChecker validates words; *words.Dictionary satisfies it.
type WordChecker interface {
	IsValidWord(word, required string) bool
}

// Clock returns the current time.
type Clock func() time.Time

// Engine wires settings, letter generation and the dictionary.
type Engine struct {
	settings Settings
	letters  LetterSource
	dict     WordChecker
	now      Clock
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock overrides the wall clock.
func WithClock(c Clock) EngineOption {
	return func(e *Engine) { e.now = c }
}

// NewEngine constructs an Engine.
func NewEngine(settings Settings, letters LetterSource, dict WordChecker, opts ...EngineOption) *Engine {
	e := &Engine{settings: settings, letters: letters, dict: dict, now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Settings returns the engine's presets.
func (e *Engine) Settings() Settings { return e.settings }

// StartNewRound begins a turn for the session's current player.
func (e *Engine) StartNewRound(s *Session) (*Round, error) {
	if s.State == GameOver || s.IsOver() {
		s.State = GameOver
		return nil, ErrGameOver
	}
	r := &Round{
		Letters:   e.letters.Generate(e.settings.LetterCount(s.Difficulty)),
		TimeLimit: e.settings.TimeLimit(s.Difficulty),
		StartedAt: e.now(),
		Player:    s.CurrentPlayer(),
	}
	s.State = RoundInProgress
	return r, nil
}

// ValidateAnswer checks word against round at the current instant.
// Accepted results carry the points computed at that same instant.
func (e *Engine) ValidateAnswer(word string, r *Round) Result {
	return e.resolveAt(word, r, e.now())
}

// CalculateScore returns the points word would earn in r right now.
func (e *Engine) CalculateScore(r *Round, word string) int {
	return scoreAt(r, word, e.now())
}

// Timeout resolves a round that ended without any submission.
func (e *Engine) Timeout(r *Round) Result {
	return Result{Outcome: TimeUp, Remaining: r.RemainingSeconds(e.now())}
}

func (e *Engine) resolveAt(word string, r *Round, now time.Time) Result {
	w := normalizeWord(word)
	res := Result{Word: w, Remaining: r.RemainingSeconds(now)}
	switch {
	case r.TimeUp(now):
		res.Outcome = TimeUp
	case r.Player.HasUsedWord(w):
		res.Outcome = AlreadyUsed
	case !e.dict.IsValidWord(w, r.Letters):
		res.Outcome = InvalidWord
	default:
		res.Outcome = Accepted
		res.Points = scoreAt(r, w, now)
	}
	return res
}

func scoreAt(r *Round, word string, now time.Time) int {
	return BaseScore + r.RemainingSeconds(now) + utf8.RuneCountInString(normalizeWord(word))
}

// Performance converts a resolved round into its analytics record.
func Performance(r *Round, res Result) RoundPerformance {
	p := RoundPerformance{
		Letters:       r.Letters,
		Success:       res.Accepted(),
		TimeRemaining: res.Remaining,
	}
	if res.Accepted() {
		p.WordUsed = res.Word
	}
	return p
}
