// internal/profile/analytics.go
//
// Letter analytics: how well a player does on each letter sequence.
//
// Every RoundPerformance across the whole match history is grouped by its
// letter sequence. Sequences seen fewer than MinAttempts times are
// dropped. The rest are ranked by success rate: best first (ties broken by
// higher average time left), worst first (ties broken by lower average time
// left). Alphabetical order breaks any remaining tie.

package profile

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

const (
	// MinAttempts is the minimum number of rounds for a sequence to count.
	MinAttempts = 2
	// TopLetters is how many sequences each ranking reports.
	TopLetters = 5
)

// LetterStat aggregates one letter sequence.
type LetterStat struct {
	Letters          string  `json:"letters"`
	Successes        int     `json:"successes"`
	Failures         int     `json:"failures"`
	TimeSum          int     `json:"timeSum"`
	SuccessRate      float64 `json:"successRate"`
	AvgTimeRemaining float64 `json:"avgTimeRemaining"`
}

// Attempts is successes plus failures.
func (s LetterStat) Attempts() int { return s.Successes + s.Failures }

// Analytics is the report for one player.
type Analytics struct {
	PlayerName         string       `json:"playerName"`
	Insufficient       bool         `json:"insufficientData"`
	Best               []LetterStat `json:"best,omitempty"`
	Worst              []LetterStat `json:"worst,omitempty"`
	OverallSuccessRate float64      `json:"overallSuccessRate"`
	Recommendations    []string     `json:"recommendations,omitempty"`
}

// AggregateLetters groups every round in p's history by letter sequence.
// The result includes sequences below MinAttempts; it is sorted by letters.
func AggregateLetters(p *Profile) []LetterStat {
	byLetters := map[string]*LetterStat{}
	for _, m := range p.MatchHistory {
		for _, r := range m.RoundPerformances {
			key := strings.ToUpper(r.Letters)
			st, ok := byLetters[key]
			if !ok {
				st = &LetterStat{Letters: key}
				byLetters[key] = st
			}
			if r.Success {
				st.Successes++
				st.TimeSum += r.TimeRemaining
			} else {
				st.Failures++
			}
		}
	}

	out := make([]LetterStat, 0, len(byLetters))
	for _, st := range byLetters {
		if n := st.Attempts(); n > 0 {
			st.SuccessRate = float64(st.Successes) / float64(n) * 100
		}
		if st.Successes > 0 {
			st.AvgTimeRemaining = float64(st.TimeSum) / float64(st.Successes)
		}
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Letters < out[j].Letters })
	return out
}

// LetterAnalytics builds the best/worst report for p.
func LetterAnalytics(p *Profile) Analytics {
	a := Analytics{PlayerName: p.PlayerName}

	var eligible []LetterStat
	for _, st := range AggregateLetters(p) {
		if st.Attempts() >= MinAttempts {
			eligible = append(eligible, st)
		}
	}
	if len(eligible) == 0 {
		a.Insufficient = true
		return a
	}

	best := append([]LetterStat{}, eligible...)
	sort.SliceStable(best, func(i, j int) bool {
		if best[i].SuccessRate != best[j].SuccessRate {
			return best[i].SuccessRate > best[j].SuccessRate
		}
		return best[i].AvgTimeRemaining > best[j].AvgTimeRemaining
	})
	worst := append([]LetterStat{}, eligible...)
	sort.SliceStable(worst, func(i, j int) bool {
		if worst[i].SuccessRate != worst[j].SuccessRate {
			return worst[i].SuccessRate < worst[j].SuccessRate
		}
		return worst[i].AvgTimeRemaining < worst[j].AvgTimeRemaining
	})

	a.Best = best[:min(TopLetters, len(best))]
	a.Worst = worst[:min(TopLetters, len(worst))]

	var sum float64
	for _, st := range eligible {
		sum += st.SuccessRate
	}
	a.OverallSuccessRate = sum / float64(len(eligible))

	w, b := a.Worst[0], a.Best[0]
	a.Recommendations = []string{
		fmt.Sprintf("Practice '%s': %.0f%% success rate", w.Letters, w.SuccessRate),
		fmt.Sprintf("You're strong on '%s': %.0f%% success rate", b.Letters, b.SuccessRate),
		fmt.Sprintf("Average success rate: %.1f%%", a.OverallSuccessRate),
	}
	return a
}

// Analytics loads name's profile and reports on it.
func (m *Manager) Analytics(ctx context.Context, name string) (Analytics, error) {
	p, err := m.LoadOrCreateProfile(ctx, name)
	if err != nil {
		return Analytics{}, err
	}
	return LetterAnalytics(p), nil
}
