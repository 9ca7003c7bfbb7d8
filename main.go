package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tilemerge/engine"
	"tilemerge/experiments"
	"tilemerge/game"
	"tilemerge/gamemaster"
	"tilemerge/meta"
	"tilemerge/searcher"
	"tilemerge/searcher/agent"
	"tilemerge/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "tui", "One of tui, headless or experiment")
	size := flag.Int("size", game.StandardSize, "Grid side length")
	depth := flag.Int("depth", game.StandardDepth, "Search depth in plies")
	spawnTwo := flag.Float64("spawn-two", game.StandardSpawnTwo, "Probability that a spawned tile is a 2")
	emptyWeight := flag.Float64("empty-weight", game.StandardEmptyWeight, "Heuristic weight per empty cell")
	maxWeight := flag.Float64("max-weight", game.StandardMaxWeight, "Heuristic weight of the highest tile")
	seed := flag.Uint64("seed", 0, "Spawn seed, 0 picks one from the clock")
	numGoroutines := flag.Int("goroutines", 1, "Number of goroutines for the top-level search")
	interval := flag.Duration("interval", meta.TICK_INTERVAL, "Delay between automatic moves")
	experiment := flag.String("experiment", "depth", "Experiment to run in experiment mode: depth, weights or throughput")
	games := flag.Int("games", meta.GAMES_PER_CONFIG, "Games per agent config in experiment mode")
	outDir := flag.String("out-dir", meta.EXPERIMENTS_DIR, "Output directory for experiment records")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := game.Config{
		Size:        *size,
		SpawnTwo:    *spawnTwo,
		SpawnFour:   1 - *spawnTwo,
		EmptyWeight: *emptyWeight,
		MaxWeight:   *maxWeight,
		Depth:       *depth,
		Seed:        *seed,
	}

	var err error
	switch *mode {
	case "tui":
		err = runTUI(ctx, config, *numGoroutines, *interval, *logLevel)
	case "headless":
		setupLogging(os.Stderr, *logLevel)
		err = runHeadless(ctx, config, *numGoroutines, *interval)
	case "experiment":
		setupLogging(os.Stderr, *logLevel)
		err = runExperiment(ctx, *experiment, *outDir, *games)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func setupLogging(w io.Writer, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: w != os.Stderr})
	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level, using info")
	}
}

func newPlayer(config game.Config, numGoroutines int) (*gamemaster.Session, agent.Agent, error) {
	session, err := gamemaster.NewSession(config)
	if err != nil {
		return nil, nil, err
	}
	e, err := searcher.NewExpectimax(
		searcher.WithConfig(config),
		searcher.WithGoroutines(numGoroutines),
		searcher.WithMetrics(),
	)
	if err != nil {
		return nil, nil, err
	}
	return session, agent.NewEvaluationAgent(e), nil
}

// runTUI logs to a file while the terminal UI owns the screen.
func runTUI(ctx context.Context, config game.Config, numGoroutines int, interval time.Duration, logLevel string) error {
	f, err := os.OpenFile(meta.LOG_FILE, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("error opening log file: %w", err)
	}
	defer f.Close()
	setupLogging(f, logLevel)

	session, a, err := newPlayer(config, numGoroutines)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(tui.New(ctx, session, a, interval), tea.WithContext(ctx)).Run()
	return err
}

func runHeadless(ctx context.Context, config game.Config, numGoroutines int, interval time.Duration) error {
	session, a, err := newPlayer(config, numGoroutines)
	if err != nil {
		return err
	}

	gameMetric, _, err := engine.NewAutoPlayer(session, a).Run(ctx, interval)
	if err != nil {
		return err
	}
	fmt.Println(session.Grid())
	fmt.Printf("Score: %d  Max tile: %d  Moves: %d\n", gameMetric.Score, gameMetric.MaxTile, gameMetric.TotalMoves)
	return nil
}

func runExperiment(ctx context.Context, name, outDir string, games int) error {
	var result experiments.Result
	var err error
	switch name {
	case "depth":
		result, err = experiments.RunDepthExperiment(ctx, outDir, games)
	case "weights":
		result, err = experiments.RunWeightExperiment(ctx, outDir, games)
	case "throughput":
		result, err = experiments.RunThroughputExperiment(ctx, outDir, games)
	default:
		return fmt.Errorf("unknown experiment %q", name)
	}
	if err != nil {
		return err
	}
	log.Info().Str("dir", result.Dir).Int("games", len(result.GameRecords)).Msg("experiment stored")
	return nil
}
