// internal/console/console.go
//
// Terminal front end for the game.
// Responsibilities:
//   - Reading player input line by line (names, difficulty, answers).
//   - Rendering rounds, results and summary screens with lipgloss.
//   - Handing finished matches to the profile manager and leaderboard.
//
// Notes:
//   - Console only talks to io.Reader / io.Writer so tests can script a
//     whole match.
//   - Time-up is checked when an answer is submitted; the prompt itself
//     never times out.
//   - Persistence failures are logged and reported on screen; they never
//     abort the program.

package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordbomb/internal/game"
	"github.com/robalobadob/wordbomb/internal/leaderboard"
	"github.com/robalobadob/wordbomb/internal/profile"
)

// ErrQuit is returned when input ends before the console is done.
var ErrQuit = errors.New("console: input closed")

const (
	minPlayers = 2
	maxPlayers = 6
	hintWords  = 3
)

// Hinter suggests words for a letter sequence; *words.Dictionary satisfies it.
type Hinter interface {
	WordsContaining(seq string, limit int) []string
}

type styles struct {
	title  lipgloss.Style
	good   lipgloss.Style
	bad    lipgloss.Style
	warn   lipgloss.Style
	dim    lipgloss.Style
	accent lipgloss.Style
	table  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Padding(0, 1),
		good:   r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		bad:    r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warn:   r.NewStyle().Foreground(lipgloss.Color("214")),
		dim:    r.NewStyle().Foreground(lipgloss.Color("8")),
		accent: r.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		table:  r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Console runs games and screens over a line-oriented terminal.
type Console struct {
	in       *bufio.Scanner
	out      io.Writer
	engine   *game.Engine
	hints    Hinter
	profiles *profile.Manager
	board    *leaderboard.Board
	now      func() time.Time
	st       styles
}

// Option configures a Console.
type Option func(*Console)

// WithHints enables word suggestions after failed rounds.
func WithHints(h Hinter) Option {
	return func(c *Console) { c.hints = h }
}

// WithClock overrides time.Now for match timing.
func WithClock(now func() time.Time) Option {
	return func(c *Console) { c.now = now }
}

// New builds a Console. profiles and board may be nil, in which case
// results are not persisted.
func New(in io.Reader, out io.Writer, engine *game.Engine, profiles *profile.Manager, board *leaderboard.Board, opts ...Option) *Console {
	c := &Console{
		in:       bufio.NewScanner(in),
		out:      out,
		engine:   engine,
		profiles: profiles,
		board:    board,
		now:      time.Now,
		st:       newStyles(out),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// --------------------------------- output ----------------------------------

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}

func (c *Console) header(title string) {
	c.println("")
	c.println(c.st.title.Render(title))
}

// ---------------------------------- input ----------------------------------

// readLine prints prompt and returns the next trimmed input line.
func (c *Console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrQuit
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// askPlayerCount asks until a number in [minPlayers, maxPlayers] is given.
func (c *Console) askPlayerCount() (int, error) {
	for {
		line, err := c.readLine(fmt.Sprintf("How many players? (%d-%d): ", minPlayers, maxPlayers))
		if err != nil {
			return 0, err
		}
		var n int
		if _, err := fmt.Sscanf(line, "%d", &n); err == nil && n >= minPlayers && n <= maxPlayers {
			return n, nil
		}
		c.println(c.st.bad.Render(fmt.Sprintf("Enter a number from %d to %d.", minPlayers, maxPlayers)))
	}
}

// askNames collects count non-empty player names with distinct profile keys.
func (c *Console) askNames(count int) ([]string, error) {
	names := make([]string, 0, count)
	seen := map[string]bool{}
	for len(names) < count {
		name, err := c.readLine(fmt.Sprintf("Player %d, enter your name: ", len(names)+1))
		if err != nil {
			return nil, err
		}
		key := profile.SafeName(name)
		switch {
		case name == "":
			c.println(c.st.bad.Render("Name cannot be empty."))
		case seen[key]:
			c.println(c.st.bad.Render(fmt.Sprintf("%q is already playing.", name)))
		default:
			seen[key] = true
			names = append(names, name)
		}
	}
	return names, nil
}

// askDifficulty reads a difficulty; an empty answer keeps def.
func (c *Console) askDifficulty(def game.Difficulty) (game.Difficulty, error) {
	line, err := c.readLine(fmt.Sprintf("Difficulty [Easy/Normal/Hard] (default %s): ", def))
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return game.ParseDifficulty(line), nil
}
