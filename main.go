// main.go
//
// Entrypoint for wordbomb.
// Responsibilities:
//   - Load .env + configuration, configure zerolog.
//   - Build the dictionary, letter generator, engine and stores once.
//   - Dispatch subcommands:
//       play (default)   interactive menu
//       solo             one single-player match
//       daily            single-player match with today's shared letters
//       stats NAME       profile summary
//       analytics NAME   letter analytics
//       leaderboard      top scores (-n limit)
//       players          saved profiles
//       delete NAME      remove a profile
//       serve            stats HTTP API (-port)

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordbomb/internal/config"
	"github.com/robalobadob/wordbomb/internal/console"
	"github.com/robalobadob/wordbomb/internal/daily"
	"github.com/robalobadob/wordbomb/internal/game"
	"github.com/robalobadob/wordbomb/internal/httpserver"
	"github.com/robalobadob/wordbomb/internal/leaderboard"
	"github.com/robalobadob/wordbomb/internal/letters"
	"github.com/robalobadob/wordbomb/internal/profile"
	"github.com/robalobadob/wordbomb/internal/store"
	"github.com/robalobadob/wordbomb/internal/words"
)

const usage = `usage: wordbomb [command]

commands:
  play              interactive menu (default)
  solo              single-player practice match
  daily             today's daily challenge
  stats NAME        player summary
  analytics NAME    letter analytics
  leaderboard [-n]  top scores
  players           list saved players
  delete NAME       delete a player profile
  serve [-port]     run the stats HTTP API
`

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	defer a.Close()

	if err := a.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, console.ErrQuit) {
			return
		}
		log.Error().Err(err).Msg("wordbomb")
		a.Close()
		os.Exit(1)
	}
}

// app holds everything built once at startup.
type app struct {
	cfg      *config.Config
	dict     *words.Dictionary
	pool     []string
	profiles *profile.Manager
	board    *leaderboard.Board
	db       *sql.DB
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}

	var err error
	if cfg.DictionaryPath == "" {
		a.dict, err = words.LoadEmbedded()
	} else {
		a.dict, err = words.Load(cfg.DictionaryPath)
	}
	if err != nil {
		log.Warn().Err(err).Msg("dictionary unavailable, every word will be rejected")
	}
	log.Debug().Int("words", a.dict.WordCount()).Msg("dictionary loaded")
	a.pool = letters.PoolOrEmbedded(cfg.LetterPoolPath)

	var profiles, board store.Store
	switch cfg.Storage {
	case config.StorageSQLite:
		db, err := store.OpenSQLite(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		a.db = db
		profiles = store.NewSQLiteStore(db, "players")
		board = store.NewSQLiteStore(db, "meta")
	case config.StorageJSON:
		profiles = store.NewFileStore(cfg.PlayersDir())
		board = store.NewFileStore(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}

	a.profiles = profile.NewManager(profiles)
	if a.board, err = leaderboard.Open(ctx, board); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Close releases the database handle, if any.
func (a *app) Close() {
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
	}
}

// engine builds a game engine whose letters come from src.
func (a *app) engine(src letters.Source) *game.Engine {
	settings := game.DefaultSettings()
	settings.StartingLives = a.cfg.StartingLives
	gen := letters.New(a.dict, src, letters.WithPool(a.pool), letters.WithVowelChance(a.cfg.VowelChance))
	return game.NewEngine(settings, gen, a.dict)
}

func (a *app) console(src letters.Source) *console.Console {
	return console.New(os.Stdin, os.Stdout, a.engine(src), a.profiles, a.board, console.WithHints(a.dict))
}

func clockSource() *rand.Rand {
	return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
}

func (a *app) run(ctx context.Context, args []string) error {
	cmd := "play"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}
	def := game.ParseDifficulty(a.cfg.Difficulty)

	switch cmd {
	case "play":
		return a.console(clockSource()).Menu(ctx, def)

	case "solo":
		return a.console(clockSource()).Play(ctx, console.PlayOptions{Solo: true, Default: def, Title: "SOLO PRACTICE"})

	case "daily":
		today := time.Now()
		title := "DAILY CHALLENGE " + daily.DateKey(today)
		log.Info().Str("date", daily.DateKey(today)).Msg("daily challenge")
		return a.console(daily.Source(today, a.cfg.DailySalt)).
			Play(ctx, console.PlayOptions{Solo: true, Difficulty: game.Normal, Title: title})

	case "stats", "analytics", "delete":
		if len(args) != 1 {
			return fmt.Errorf("%s needs a player name\n\n%s", cmd, usage)
		}
		c := a.console(clockSource())
		switch cmd {
		case "stats":
			return c.ShowStats(ctx, args[0])
		case "analytics":
			return c.ShowAnalytics(ctx, args[0])
		default:
			return c.DeletePlayer(ctx, args[0])
		}

	case "leaderboard":
		fs := flag.NewFlagSet("leaderboard", flag.ContinueOnError)
		n := fs.Int("n", leaderboard.MaxEntries, "number of entries to show")
		if err := fs.Parse(args); err != nil {
			return err
		}
		a.console(clockSource()).ShowLeaderboard(*n)
		return nil

	case "players":
		return a.console(clockSource()).ShowPlayers(ctx)

	case "serve":
		fs := flag.NewFlagSet("serve", flag.ContinueOnError)
		port := fs.String("port", a.cfg.Port, "listen port")
		if err := fs.Parse(args); err != nil {
			return err
		}
		srv := httpserver.New(a.profiles, a.board, httpserver.Config{
			AdminHash: a.cfg.AdminHash,
			JWTSecret: a.cfg.JWTSecret,
			TokenTTL:  a.cfg.TokenTTL,
		})
		log.Info().Str("port", *port).Msg("starting wordbomb api")
		return srv.Start(":" + *port)

	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	}
	return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
}
