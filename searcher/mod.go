package searcher

import (
	"context"
	"math"

	"tilemerge/experiments/metrics"
	"tilemerge/game"
)

// DeadEnd scores a branch with no legal continuation so that a maximising
// parent never prefers it.
var DeadEnd = math.Inf(-1)

type MoveFinder interface {
	// FindMove returns the best direction for g, or ok=false when no direction
	// is legal.
	FindMove(ctx context.Context, g *game.Grid) (d game.Direction, ok bool, metric metrics.SearchMetric, err error)
}
