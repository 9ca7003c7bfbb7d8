package searcher

import (
	"context"
	"fmt"

	"tilemerge/experiments/metrics"
	"tilemerge/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Option func(e *Expectimax)

// Expectimax searches alternating player (max) and spawn (expectation) plies
// down to a fixed depth. A single Expectimax must not run concurrent
// FindMove calls since they share the metrics collector.
type Expectimax struct {
	depth      int
	goroutines int
	evaluate   game.Evaluate
	spawnTwo   float64
	spawnFour  float64
	metrics    metrics.Collector
}

func WithDepth(depth int) Option {
	return func(e *Expectimax) {
		e.depth = depth
	}
}

// WithGoroutines evaluates the top-level directions in parallel when
// goroutines > 1.
func WithGoroutines(goroutines int) Option {
	return func(e *Expectimax) {
		if goroutines > 0 {
			e.goroutines = goroutines
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(e *Expectimax) {
		if evaluate != nil {
			e.evaluate = evaluate
		}
	}
}

// WithSpawnWeights sets the probabilities of a spawned 2 and 4.
func WithSpawnWeights(two, four float64) Option {
	return func(e *Expectimax) {
		e.spawnTwo = two
		e.spawnFour = four
	}
}

func WithMetrics() Option {
	return func(e *Expectimax) {
		e.metrics = metrics.NewCollector()
	}
}

// WithConfig applies depth, heuristic weights and spawn probabilities from c.
func WithConfig(c game.Config) Option {
	return func(e *Expectimax) {
		e.depth = c.Depth
		e.evaluate = c.Evaluate()
		e.spawnTwo = c.SpawnTwo
		e.spawnFour = c.SpawnFour
	}
}

func NewExpectimax(options ...Option) (*Expectimax, error) {
	e := &Expectimax{ // Default values
		depth:      game.StandardDepth,
		goroutines: 1,
		evaluate:   game.EvaluateEmptyMax,
		spawnTwo:   game.StandardSpawnTwo,
		spawnFour:  game.StandardSpawnFour,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}

	if e.depth <= 0 {
		return nil, fmt.Errorf("search depth must be positive, got %d: %w", e.depth, game.ErrInvalidConfig)
	}
	if err := game.ValidateSpawnWeights(e.spawnTwo, e.spawnFour); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Expectimax) Depth() int {
	return e.depth
}

type branch struct {
	legal bool
	score float64
}

// FindMove scores every legal direction by a chance ply at depth-1 and
// returns the best one. Directions are tried in game.SearchOrder and a later
// direction only wins with a strictly higher score. Cancellation is checked
// between top-level directions.
func (e *Expectimax) FindMove(ctx context.Context, g *game.Grid) (game.Direction, bool, metrics.SearchMetric, error) {
	e.metrics.Start(e.goroutines, e.depth)

	var branches []branch
	var err error
	if e.goroutines > 1 {
		branches, err = e.searchParallel(ctx, g)
	} else {
		branches, err = e.searchSequential(ctx, g)
	}
	metric := e.metrics.Complete()
	if err != nil {
		return 0, false, metric, err
	}

	best, found := pickBest(branches)
	if !found {
		log.Debug().Int("depth", e.depth).Msg("no legal move")
		return 0, false, metric, nil
	}

	d := game.SearchOrder[best]
	log.Debug().
		Str("direction", d.String()).
		Float64("score", branches[best].score).
		Int("nodes", metric.Nodes).
		Int("leaves", metric.Leaves).
		Dur("duration", metric.Duration).
		Msg("best-move")
	return d, true, metric, nil
}

// Evaluate scores g with a player ply when agentPly is true, otherwise with a
// spawn ply.
func (e *Expectimax) Evaluate(g *game.Grid, depth int, agentPly bool) float64 {
	if agentPly {
		return e.decision(g, depth)
	}
	return e.chance(g, depth)
}

func (e *Expectimax) searchSequential(ctx context.Context, g *game.Grid) ([]branch, error) {
	branches := make([]branch, len(game.SearchOrder))
	for i, d := range game.SearchOrder {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		branches[i] = e.scoreDirection(g, d)
	}
	return branches, nil
}

// searchParallel gives every top-level direction its own goroutine. Each one
// simulates on a private copy and writes only its own slot.
func (e *Expectimax) searchParallel(ctx context.Context, g *game.Grid) ([]branch, error) {
	branches := make([]branch, len(game.SearchOrder))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.goroutines)
	for i, d := range game.SearchOrder {
		i, d := i, d
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			branches[i] = e.scoreDirection(g, d)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return branches, nil
}

func (e *Expectimax) scoreDirection(g *game.Grid, d game.Direction) branch {
	out, ok := game.Simulate(g, d)
	if !ok {
		return branch{}
	}
	return branch{legal: true, score: e.chance(out.Grid, e.depth-1)}
}

// pickBest keeps the first legal branch and replaces it only on a strictly
// higher score, so a legal move is returned even when every branch is a dead
// end.
func pickBest(branches []branch) (int, bool) {
	best := -1
	for i, b := range branches {
		if !b.legal {
			continue
		}
		if best < 0 || b.score > branches[best].score {
			best = i
		}
	}
	return best, best >= 0
}

func (e *Expectimax) leaf(g *game.Grid) float64 {
	e.metrics.AddLeaf()
	return e.evaluate(g)
}
