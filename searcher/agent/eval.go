package agent

import (
	"context"

	"tilemerge/experiments/metrics"
	"tilemerge/game"
	"tilemerge/searcher"
)

type evaluationAgent struct {
	expectimax *searcher.Expectimax
}

// NewEvaluationAgent returns the expectimax agent used for actual play.
func NewEvaluationAgent(e *searcher.Expectimax) Agent {
	return evaluationAgent{expectimax: e}
}

func (a evaluationAgent) FindMove(ctx context.Context, g *game.Grid) (game.Direction, bool, metrics.SearchMetric, error) {
	return a.expectimax.FindMove(ctx, g)
}
