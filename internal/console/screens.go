// internal/console/screens.go
//
// Read-only screens (stats, analytics, leaderboard, players) and the main
// menu that ties them to the match flow.

package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/robalobadob/wordbomb/internal/game"
	"github.com/robalobadob/wordbomb/internal/profile"
)

const dateLayout = "2006-01-02 15:04"

func (c *Console) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(c.st.table).
		Headers(headers...)
}

// ShowStats prints the summary for one player.
func (c *Console) ShowStats(ctx context.Context, name string) error {
	p, err := c.profiles.Find(ctx, name)
	if errors.Is(err, profile.ErrUnknownPlayer) {
		c.println(c.st.warn.Render(fmt.Sprintf("No profile found for %q.", name)))
		return nil
	}
	if err != nil {
		return err
	}
	st := profile.Summarize(p)

	c.header("STATS: " + st.PlayerName)
	c.printf("Matches played: %d\n", st.TotalMatches)
	c.printf("Wins:           %d (%.1f%%)\n", st.TotalWins, st.WinRate)
	c.printf("Best score:     %d\n", st.BestScore)
	c.printf("Average score:  %.1f\n", st.AverageScore)
	c.printf("Words used:     %d\n", st.TotalWordsUsed)
	c.printf("Last played:    %s\n", st.LastPlayed.Local().Format(dateLayout))

	if len(st.Recent) == 0 {
		return nil
	}
	t := c.newTable("Date", "Difficulty", "Score", "Rounds", "Result")
	for _, m := range st.Recent {
		result := "Lost"
		if m.Won {
			result = "Won"
		}
		t.Row(m.MatchDate.Local().Format(dateLayout), m.Difficulty,
			strconv.Itoa(m.Score), strconv.Itoa(m.RoundsPlayed), result)
	}
	c.println(c.st.dim.Render("Recent matches"))
	c.println(t.Render())
	return nil
}

// ShowAnalytics prints the letter analytics for one player.
func (c *Console) ShowAnalytics(ctx context.Context, name string) error {
	p, err := c.profiles.Find(ctx, name)
	if errors.Is(err, profile.ErrUnknownPlayer) {
		c.println(c.st.warn.Render(fmt.Sprintf("No profile found for %q.", name)))
		return nil
	}
	if err != nil {
		return err
	}
	a := profile.LetterAnalytics(p)

	c.header("LETTER ANALYTICS: " + a.PlayerName)
	if a.Insufficient {
		c.println(c.st.dim.Render(fmt.Sprintf(
			"Not enough data yet. Play more rounds: each letter combination needs %d attempts.",
			profile.MinAttempts)))
		return nil
	}

	c.println(c.st.good.Render("Strongest letters"))
	c.println(c.letterTable(a.Best))
	c.println(c.st.bad.Render("Weakest letters"))
	c.println(c.letterTable(a.Worst))
	for _, r := range a.Recommendations {
		c.println("• " + r)
	}
	return nil
}

func (c *Console) letterTable(stats []profile.LetterStat) string {
	t := c.newTable("Letters", "Success", "Attempts", "Avg time left")
	for _, s := range stats {
		t.Row(s.Letters, fmt.Sprintf("%.0f%%", s.SuccessRate), strconv.Itoa(s.Attempts()),
			fmt.Sprintf("%.1fs", s.AvgTimeRemaining))
	}
	return t.Render()
}

// ShowLeaderboard prints the top n entries (all when n <= 0).
func (c *Console) ShowLeaderboard(n int) {
	c.header("LEADERBOARD")
	entries := c.board.GetTopScores(n)
	if len(entries) == 0 {
		c.println(c.st.dim.Render("No scores yet."))
		return
	}
	t := c.newTable("#", "Player", "Score", "Difficulty", "Date")
	for i, e := range entries {
		t.Row(strconv.Itoa(i+1), e.PlayerName, strconv.Itoa(e.Score), e.Difficulty,
			e.Date.Local().Format(dateLayout))
	}
	c.println(t.Render())
}

// ShowPlayers lists every stored profile.
func (c *Console) ShowPlayers(ctx context.Context) error {
	names, err := c.profiles.GetAllPlayers(ctx)
	if err != nil {
		return err
	}
	c.header("PLAYERS")
	if len(names) == 0 {
		c.println(c.st.dim.Render("No saved players."))
		return nil
	}
	for _, n := range names {
		c.println("  " + n)
	}
	return nil
}

// DeletePlayer removes a profile and reports the outcome.
func (c *Console) DeletePlayer(ctx context.Context, name string) error {
	ok, err := c.profiles.DeletePlayer(ctx, name)
	if err != nil {
		return err
	}
	if ok {
		c.println(c.st.good.Render(fmt.Sprintf("Deleted %s.", profile.SafeName(name))))
	} else {
		c.println(c.st.warn.Render(fmt.Sprintf("No profile found for %q.", name)))
	}
	return nil
}

// Menu runs the interactive main menu until the player quits or input ends.
func (c *Console) Menu(ctx context.Context, def game.Difficulty) error {
	items := []string{"Multiplayer", "Solo practice", "Player stats", "Letter analytics", "Leaderboard", "Players", "Quit"}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.header("WORD BOMB")
		for i, it := range items {
			c.printf("  %d) %s\n", i+1, it)
		}
		choice, err := c.readLine("Choose: ")
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = c.Play(ctx, PlayOptions{Default: def})
		case "2":
			err = c.Play(ctx, PlayOptions{Solo: true, Default: def, Title: "SOLO PRACTICE"})
		case "3", "4":
			var name string
			if name, err = c.readLine("Player name: "); err == nil {
				if choice == "3" {
					err = c.ShowStats(ctx, name)
				} else {
					err = c.ShowAnalytics(ctx, name)
				}
			}
		case "5":
			c.ShowLeaderboard(0)
		case "6":
			err = c.ShowPlayers(ctx)
		case "7", "q", "Q":
			return nil
		default:
			c.println(c.st.bad.Render("Unknown choice."))
		}

		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
