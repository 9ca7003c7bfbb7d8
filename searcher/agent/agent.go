package agent

import (
	"context"

	"tilemerge/experiments/metrics"
	"tilemerge/game"
)

type Agent interface {
	// FindMove returns a direction for g and search metrics (if collected), or
	// ok=false when the grid has no legal move.
	FindMove(ctx context.Context, g *game.Grid) (d game.Direction, ok bool, metric metrics.SearchMetric, err error)
}
