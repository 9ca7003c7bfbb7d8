package engine

import (
	"context"
	"time"

	"tilemerge/experiments/metrics"
)

const MaxMoves = 100000

type Engine interface {
	// Run ticks until game over, until MaxMoves moves were made or until ctx
	// is done.
	Run(ctx context.Context, interval time.Duration) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
