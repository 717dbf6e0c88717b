package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connect4/communication/client"
	"connect4/communication/server"
	"connect4/config"
	"connect4/engine"
	"connect4/experiments"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/gamemaster"
	"connect4/player"
	"connect4/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: connect4 <command> [flags]

commands:
  serve     serve engines over HTTP and websocket
  play      play a game against the engine in the terminal
  arena     run a tier-vs-tier tournament and store the results
  latency   time move requests per tier and store the results`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Default().FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "serve":
		err = serve(ctx, cfg, os.Args[2:])
	case "play":
		err = play(ctx, cfg, os.Args[2:])
	case "arena":
		err = arena(ctx, cfg, os.Args[2:])
	case "latency":
		err = latency(ctx, cfg, os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Msgf("%s failed", os.Args[1])
		os.Exit(1)
	}
}

// commonFlags registers the settings every subcommand shares.
func commonFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.PrettyLogs, "pretty", cfg.PrettyLogs, "Human readable logs instead of JSON")
	fs.IntVar(&cfg.TableCeiling, "table", cfg.TableCeiling, "Transposition table ceiling per engine")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed, 0 for the clock")
}

func parse(fs *flag.FlagSet, args []string, cfg *config.Config) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	setupLogging(*cfg)
	return nil
}

func setupLogging(cfg config.Config) {
	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if cfg.PrettyLogs {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
}

func agentOptions(cfg config.Config) []agent.Option {
	if cfg.Seed == 0 {
		return nil
	}
	return []agent.Option{agent.WithSeed(cfg.Seed)}
}

func serve(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	commonFlags(fs, &cfg)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Idle time before a session is dropped")
	fs.DurationVar(&cfg.MaintenanceInterval, "maintenance", cfg.MaintenanceInterval, "Table maintenance interval")
	if err := parse(fs, args, &cfg); err != nil {
		return err
	}

	s := server.NewServer(
		server.WithSessionTTL(cfg.SessionTTL),
		server.WithMaintenanceInterval(cfg.MaintenanceInterval),
		server.WithEngineFactory(func() *engine.LocalEngine {
			return engine.NewLocalEngine(engine.WithTableCeiling(cfg.TableCeiling), engine.WithAgentOptions(agentOptions(cfg)...))
		}),
	)
	return s.ListenAndServe(ctx, cfg.Addr)
}

func play(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	commonFlags(fs, &cfg)
	difficulty := fs.Int("difficulty", 3, "Engine difficulty, 1 to 5")
	first := fs.Bool("first", true, "Move first")
	remote := fs.String("remote", "", "Server URL to play against instead of a local engine")
	if err := parse(fs, args, &cfg); err != nil {
		return err
	}

	var e engine.Engine
	if *remote != "" {
		cc := client.NewClientCommunicator(*remote)
		defer cc.Close(context.Background())
		e = engine.NewRemoteEngine(cc)
	} else {
		e = engine.NewLocalEngine(engine.WithTableCeiling(cfg.TableCeiling), engine.WithAgentOptions(agentOptions(cfg)...))
	}

	human := player.NewTerminalPlayer("you", os.Stdin, os.Stdout)
	opponent := player.NewEnginePlayer(fmt.Sprintf("engine (tier %d)", agent.TierFor(*difficulty).Level), e, *difficulty)

	starting := game.Player
	if !*first {
		starting = game.AI
	}
	result, err := gamemaster.NewGameMaster(human, opponent).Run(ctx, starting)
	if err != nil {
		return err
	}

	human.Show(result.Board)
	switch result.Winner {
	case game.Player:
		fmt.Println("You win!")
	case game.AI:
		fmt.Println("The engine wins.")
	default:
		fmt.Println("Draw.")
	}
	return nil
}

func arena(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("arena", flag.ExitOnError)
	commonFlags(fs, &cfg)
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite file for the results")
	games := fs.Int("games", experiments.NumGames, "Games per match up")
	if err := parse(fs, args, &cfg); err != nil {
		return err
	}

	tournament := experiments.TierTournament(*games)
	tournament.TableCeiling = cfg.TableCeiling
	tournament.Seed = cfg.Seed

	w, err := metrics.NewWriter(cfg.DBPath, tournament.Name)
	if err != nil {
		return err
	}
	defer w.Close()

	_, err = experiments.RunTournament(ctx, tournament, w)
	return err
}

func latency(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("latency", flag.ExitOnError)
	commonFlags(fs, &cfg)
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite file for the results")
	samples := fs.Int("samples", 20, "Move requests per tier")
	if err := parse(fs, args, &cfg); err != nil {
		return err
	}

	w, err := metrics.NewWriter(cfg.DBPath, "latency")
	if err != nil {
		return err
	}
	defer w.Close()

	_, err = experiments.RunLatency(ctx, agent.Tiers(), *samples, cfg.Seed, w)
	return err
}
