package experiments

import (
	"context"
	"time"

	"tilemerge/experiments/metrics"
	"tilemerge/game"

	"github.com/rs/zerolog/log"
)

var throughputConfigs = []metrics.AgentConfig{
	{ID: 1, Depth: game.StandardDepth, Goroutines: 1, EmptyWeight: game.StandardEmptyWeight, MaxWeight: game.StandardMaxWeight},
	{ID: 2, Depth: game.StandardDepth, Goroutines: 2, EmptyWeight: game.StandardEmptyWeight, MaxWeight: game.StandardMaxWeight},
	{ID: 3, Depth: game.StandardDepth, Goroutines: 4, EmptyWeight: game.StandardEmptyWeight, MaxWeight: game.StandardMaxWeight},
}

// RunThroughputExperiment measures how the number of search goroutines
// affects time per move. Play is identical across configs for the same seed,
// only the timings differ.
func RunThroughputExperiment(ctx context.Context, root string, numGames int) (Result, error) {
	result, err := runExperiment(ctx, root, "throughput", throughputConfigs, numGames)
	if err != nil {
		return Result{}, err
	}

	games := map[int]int{} // Game ID to agent ID
	for _, record := range result.GameRecords {
		games[record.ID] = record.Agent
	}
	durations := map[int]time.Duration{}
	moves := map[int]int{}
	for _, record := range result.MoveRecords {
		id := games[record.Game]
		durations[id] += record.Duration
		moves[id]++
	}

	for _, config := range throughputConfigs {
		if moves[config.ID] == 0 {
			continue
		}
		log.Info().
			Int("agent", config.ID).
			Int("goroutines", config.Goroutines).
			Dur("per_move", durations[config.ID]/time.Duration(moves[config.ID])).
			Msg("search throughput")
	}
	return result, nil
}
