package experiments

import (
	"context"
	"fmt"

	"tilemerge/engine"
	"tilemerge/experiments/metrics"
	"tilemerge/game"
	"tilemerge/gamemaster"
	"tilemerge/meta"
	"tilemerge/searcher"
	"tilemerge/searcher/agent"
	"tilemerge/utils"

	"github.com/rs/zerolog/log"
)

// Result is everything one experiment recorded.
type Result struct {
	Dir         string
	Configs     []metrics.AgentConfig
	GameRecords []metrics.GameRecord
	MoveRecords []metrics.MoveRecord
}

var depthConfigs = []metrics.AgentConfig{
	{ID: 0, Random: true}, // Baseline
	{ID: 1, Depth: 1, Goroutines: 1, EmptyWeight: game.StandardEmptyWeight, MaxWeight: game.StandardMaxWeight},
	{ID: 2, Depth: 2, Goroutines: 1, EmptyWeight: game.StandardEmptyWeight, MaxWeight: game.StandardMaxWeight},
	{ID: 3, Depth: 3, Goroutines: 1, EmptyWeight: game.StandardEmptyWeight, MaxWeight: game.StandardMaxWeight},
}

var weightConfigs = []metrics.AgentConfig{
	{ID: 1, Depth: game.StandardDepth, Goroutines: 1, EmptyWeight: 0, MaxWeight: 1},
	{ID: 2, Depth: game.StandardDepth, Goroutines: 1, EmptyWeight: 1, MaxWeight: 0},
	{ID: 3, Depth: game.StandardDepth, Goroutines: 1, EmptyWeight: 1, MaxWeight: 1},
	{ID: 4, Depth: game.StandardDepth, Goroutines: 1, EmptyWeight: game.StandardEmptyWeight, MaxWeight: game.StandardMaxWeight},
	{ID: 5, Depth: game.StandardDepth, Goroutines: 1, EmptyWeight: 100, MaxWeight: 1},
}

// RunDepthExperiment compares search depths against the random baseline.
func RunDepthExperiment(ctx context.Context, root string, numGames int) (Result, error) {
	return runExperiment(ctx, root, "depth", depthConfigs, numGames)
}

// RunWeightExperiment compares heuristic weightings at the standard depth.
func RunWeightExperiment(ctx context.Context, root string, numGames int) (Result, error) {
	return runExperiment(ctx, root, "weights", weightConfigs, numGames)
}

// runExperiment plays numGames games per config and stores the records under
// root/name. Game i of every config uses seed i+1, so all configs face the
// same spawn source.
func runExperiment(ctx context.Context, root, name string, configs []metrics.AgentConfig, numGames int) (Result, error) {
	if numGames <= 0 {
		return Result{}, fmt.Errorf("number of games must be positive, got %d", numGames)
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for ci, config := range configs {
		log.Info().Msgf("starting config %d of %d with agent=%+v...", ci+1, len(configs), config)

		configRecords := []metrics.GameRecord{}
		for i := 0; i < numGames; i++ {
			seed := uint64(i + 1)
			gameMetric, moveMetrics, err := runGame(ctx, config, seed)
			if err != nil {
				return Result{}, fmt.Errorf("config %d game %d: %w", config.ID, i+1, err)
			}

			count++
			record := metrics.GameRecord{
				ID:         count,
				Agent:      config.ID,
				Seed:       seed,
				GameMetric: gameMetric,
			}
			gameRecords = append(gameRecords, record)
			configRecords = append(configRecords, record)
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed config %d of %d game %d with score %d and max tile %d",
				ci+1, len(configs), i+1, gameMetric.Score, gameMetric.MaxTile)
		}

		wins := utils.Count(configRecords, func(r metrics.GameRecord) bool {
			return r.MaxTile >= meta.WIN_TILE
		})
		log.Info().Msgf("completed config %d of %d, reached %d in %d of %d games",
			ci+1, len(configs), meta.WIN_TILE, wins, numGames)
	}

	log.Info().Msgf("completed %s experiment", name)

	dir, err := store(root, name, configs, gameRecords, moveRecords)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Dir:         dir,
		Configs:     configs,
		GameRecords: gameRecords,
		MoveRecords: moveRecords,
	}, nil
}

func store(root, name string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", err
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", err
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runGame plays one standard game with the given agent until no legal move
// is left.
func runGame(ctx context.Context, config metrics.AgentConfig, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	c := game.DefaultConfig()
	c.Seed = seed
	session, err := gamemaster.NewSession(c)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	a, err := createAgent(config, seed)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	return engine.NewAutoPlayer(session, a).Run(ctx, 0)
}

func createAgent(config metrics.AgentConfig, seed uint64) (agent.Agent, error) {
	if config.Random {
		return agent.NewRandomAgent(seed), nil
	}

	options := []searcher.Option{
		searcher.WithDepth(config.Depth),
		searcher.WithEvaluationFn(game.WeightedEvaluate(config.EmptyWeight, config.MaxWeight)),
		searcher.WithMetrics(),
	}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}

	e, err := searcher.NewExpectimax(options...)
	if err != nil {
		return nil, err
	}
	return agent.NewEvaluationAgent(e), nil
}
