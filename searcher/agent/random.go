package agent

import (
	"context"

	"tilemerge/experiments/metrics"
	"tilemerge/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that picks uniformly among the
// legal directions.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(ctx context.Context, g *game.Grid) (game.Direction, bool, metrics.SearchMetric, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, metrics.SearchMetric{}, err
	}
	legal := make([]game.Direction, 0, len(game.SearchOrder))
	for _, d := range game.SearchOrder {
		if _, ok := game.Simulate(g, d); ok {
			legal = append(legal, d)
		}
	}
	if len(legal) == 0 {
		return 0, false, metrics.SearchMetric{}, nil
	}
	return legal[a.rng.Intn(len(legal))], true, metrics.SearchMetric{}, nil
}
