// internal/profile/types.go
//
// Durable per-player records.
// Defines:
//   - Profile: cumulative counters plus the full match history.
//   - MatchRecord: one completed match, with its per-round performances.
//   - Seconds: a duration serialized as (fractional) seconds.
//
// Counters are maintained additively on every save; they are never
// recalculated from MatchHistory, which is kept for analytics and display.

package profile

import (
	"encoding/json"
	"time"

	"github.com/robalobadob/wordbomb/internal/game"
)

// Profile is the stored record for one player.
type Profile struct {
	PlayerName   string        `json:"playerName"`
	CreatedDate  time.Time     `json:"createdDate"`
	LastPlayed   time.Time     `json:"lastPlayed"`
	TotalMatches int           `json:"totalMatches"`
	TotalWins    int           `json:"totalWins"`
	TotalScore   int           `json:"totalScore"`
	BestScore    int           `json:"bestScore"`
	MatchHistory []MatchRecord `json:"matchHistory"`
}

// MatchRecord is one completed match from one player's point of view.
type MatchRecord struct {
	ID                string                  `json:"id"`
	MatchDate         time.Time               `json:"matchDate"`
	Difficulty        string                  `json:"difficulty"`
	Score             int                     `json:"score"`
	RoundsPlayed      int                     `json:"roundsPlayed"`
	LivesRemaining    int                     `json:"livesRemaining"`
	Won               bool                    `json:"won"`
	WordsUsed         []string                `json:"wordsUsed"`
	TotalPlayTime     Seconds                 `json:"totalPlayTime"`
	RoundPerformances []game.RoundPerformance `json:"roundPerformances"`
}

// WinRate is wins over matches, as a percentage.
func (p *Profile) WinRate() float64 {
	if p.TotalMatches == 0 {
		return 0
	}
	return float64(p.TotalWins) / float64(p.TotalMatches) * 100
}

// AverageScore is total score over matches.
func (p *Profile) AverageScore() float64 {
	if p.TotalMatches == 0 {
		return 0
	}
	return float64(p.TotalScore) / float64(p.TotalMatches)
}

// TotalWordsUsed counts words across the stored history.
func (p *Profile) TotalWordsUsed() int {
	n := 0
	for _, m := range p.MatchHistory {
		n += len(m.WordsUsed)
	}
	return n
}

// Seconds is a time.Duration stored as seconds in JSON.
type Seconds time.Duration

func (s Seconds) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(s).Seconds())
}

func (s *Seconds) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*s = Seconds(time.Duration(f * float64(time.Second)))
	return nil
}

// Duration converts back to time.Duration.
func (s Seconds) Duration() time.Duration { return time.Duration(s) }
