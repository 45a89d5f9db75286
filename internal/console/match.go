// internal/console/match.go
//
// Match flow: setup prompts, the round loop and end-of-match bookkeeping.

package console

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordbomb/internal/game"
	"github.com/robalobadob/wordbomb/internal/profile"
)

// PlayOptions selects what kind of match Play sets up.
type PlayOptions struct {
	Solo bool
	// Difficulty is asked for when empty.
	Difficulty game.Difficulty
	// Default is offered when asking for a difficulty.
	Default game.Difficulty
	Title   string
}

// Play asks for players (and difficulty when not fixed) and runs a match.
func (c *Console) Play(ctx context.Context, opts PlayOptions) error {
	title := opts.Title
	if title == "" {
		title = "WORD BOMB"
	}
	c.header(title)

	count := 1
	if !opts.Solo {
		n, err := c.askPlayerCount()
		if err != nil {
			return err
		}
		count = n
	}
	names, err := c.askNames(count)
	if err != nil {
		return err
	}

	d := opts.Difficulty
	if d == "" {
		def := opts.Default
		if def == "" {
			def = game.Normal
		}
		if d, err = c.askDifficulty(def); err != nil {
			return err
		}
	}

	_, err = c.RunMatch(ctx, names, d)
	return err
}

// RunMatch plays one full match with the given players and records the
// results. It returns the finished session.
func (c *Console) RunMatch(ctx context.Context, names []string, d game.Difficulty) (*game.Session, error) {
	if err := distinctProfiles(names); err != nil {
		return nil, err
	}
	s, err := game.NewSession(names, d, c.engine.Settings())
	if err != nil {
		return nil, err
	}
	log.Info().Str("session", s.ID).Strs("players", names).Str("difficulty", string(d)).Msg("match started")

	start := c.now()
	perfs := make(map[*game.Player][]game.RoundPerformance, len(s.Players))

	for {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		r, err := c.engine.StartNewRound(s)
		if errors.Is(err, game.ErrGameOver) {
			break
		}
		if err != nil {
			return s, err
		}

		c.renderRound(s, r)
		word, err := c.readLine(c.st.accent.Render("> ") + " ")
		if err != nil {
			return s, err
		}

		res := c.engine.ValidateAnswer(word, r)
		perfs[r.Player] = append(perfs[r.Player], game.Performance(r, res))
		if err := s.Apply(r, res); err != nil {
			return s, err
		}
		c.renderResult(r, res)
	}

	c.renderGameOver(s)
	c.record(ctx, s, start, perfs)
	return s, nil
}

// distinctProfiles rejects names that would share one stored profile.
func distinctProfiles(names []string) error {
	seen := make(map[string]string, len(names))
	for _, n := range names {
		key := profile.SafeName(n)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: %q and %q share a profile", game.ErrDuplicatePlayer, prev, n)
		}
		seen[key] = n
	}
	return nil
}

func hearts(lives int) string {
	if lives <= 0 {
		return "-"
	}
	return strings.Repeat("♥", lives)
}

func (c *Console) renderRound(s *game.Session, r *game.Round) {
	p := r.Player
	c.println("")
	c.println(c.st.dim.Render(fmt.Sprintf("Round %d", s.RoundNumber)))
	c.printf("%s  %s  Score: %d\n", c.st.accent.Render(p.Name), c.st.bad.Render(hearts(p.Lives)), p.Score)
	c.printf("Type a word containing %s  (%ds)\n",
		c.st.title.Render(r.Letters), int(r.TimeLimit/time.Second))
}

func (c *Console) renderResult(r *game.Round, res game.Result) {
	if res.Accepted() {
		c.println(c.st.good.Render(res.Message(r.Letters)))
		return
	}
	c.println(c.st.bad.Render(res.Message(r.Letters)))
	c.printf("%s lives left: %s\n", r.Player.Name, hearts(r.Player.Lives))
	if c.hints == nil {
		return
	}
	if ws := c.hints.WordsContaining(r.Letters, hintWords); len(ws) > 0 {
		c.println(c.st.dim.Render("You could have played: " + strings.Join(ws, ", ")))
	}
}

func (c *Console) renderGameOver(s *game.Session) {
	c.header("GAME OVER")
	if !s.Solo() {
		if w := s.Winner(); w != nil {
			c.println(c.st.good.Render(fmt.Sprintf("%s wins!", w.Name)))
		} else {
			c.println(c.st.warn.Render("No one survived."))
		}
	}

	standings := append([]*game.Player(nil), s.Players...)
	sort.SliceStable(standings, func(i, j int) bool { return standings[i].Score > standings[j].Score })
	for i, p := range standings {
		c.printf("%d. %-16s %5d pts  %d words\n", i+1, p.Name, p.Score, len(p.UsedWords))
	}
	c.println(c.st.dim.Render(fmt.Sprintf("Rounds played: %d", s.RoundsPlayed())))
}

// record saves every player's match and leaderboard entry. Failures are
// reported but do not stop the remaining saves.
func (c *Console) record(ctx context.Context, s *game.Session, start time.Time, perfs map[*game.Player][]game.RoundPerformance) {
	for _, p := range s.Players {
		if c.profiles != nil {
			if _, err := c.profiles.SaveMatch(ctx, p, s, start, perfs[p]); err != nil {
				log.Error().Err(err).Str("player", p.Name).Msg("save match")
				c.println(c.st.warn.Render(fmt.Sprintf("Could not save %s's profile.", p.Name)))
			}
		}
		if c.board != nil {
			rank := c.board.Rank(p.Score)
			if err := c.board.AddEntry(ctx, p.Name, p.Score, string(s.Difficulty)); err != nil {
				log.Error().Err(err).Str("player", p.Name).Msg("save leaderboard entry")
				c.println(c.st.warn.Render("Could not update the leaderboard."))
			} else if rank > 0 && p.Score > 0 {
				c.println(c.st.good.Render(fmt.Sprintf("%s placed #%d on the leaderboard!", p.Name, rank)))
			}
		}
	}
}
