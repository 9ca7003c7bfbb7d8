package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tilemerge/experiments/metrics"
	"tilemerge/game"
	"tilemerge/gamemaster"
	"tilemerge/searcher/agent"

	"github.com/rs/zerolog/log"
)

// ErrNoEffect reports a move that left the grid unchanged.
var ErrNoEffect = errors.New("move has no effect")

// AutoPlayer asks an agent for a move on every tick and applies it to the
// session until the agent finds no legal move.
type AutoPlayer struct {
	Session  *gamemaster.Session
	Agent    agent.Agent
	running  bool
	gameOver bool
	step     int
}

var _ Engine = (*AutoPlayer)(nil)

func NewAutoPlayer(session *gamemaster.Session, a agent.Agent) *AutoPlayer {
	return &AutoPlayer{
		Session: session,
		Agent:   a,
		running: true,
	}
}

func (p *AutoPlayer) Running() bool {
	return p.running
}

// GameOver reports whether the agent ran out of legal moves.
func (p *AutoPlayer) GameOver() bool {
	return p.gameOver
}

// Stop halts play without waiting for game over.
func (p *AutoPlayer) Stop() {
	p.running = false
}

// Decision is an agent's answer for the grid it was asked about.
type Decision struct {
	Grid      *game.Grid
	Direction game.Direction
	Found     bool // False when the grid has no legal move
	Search    metrics.SearchMetric
}

// Decide asks the agent for a move on a copy of the live grid. It leaves the
// session and the player untouched, so it may run off the goroutine that
// applies moves.
func (p *AutoPlayer) Decide(ctx context.Context) (Decision, error) {
	g := p.Session.Grid()
	d, ok, searchMetric, err := p.Agent.FindMove(ctx, g)
	if err != nil {
		return Decision{}, err
	}
	return Decision{Grid: g, Direction: d, Found: ok, Search: searchMetric}, nil
}

// Apply plays a decision. played is false once the game is over or the
// player was stopped. A direction that does not change the grid is an
// agent error.
func (p *AutoPlayer) Apply(decision Decision) (move metrics.MoveMetric, played bool, err error) {
	if !p.running {
		return metrics.MoveMetric{}, false, nil
	}
	if !decision.Found {
		p.running = false
		p.gameOver = true
		log.Info().Str("session", p.Session.ID()).Int("score", p.Session.Score()).Msg("no legal move, stopping")
		return metrics.MoveMetric{}, false, nil
	}

	result, err := p.Session.ApplyMove(decision.Direction)
	if err != nil {
		return metrics.MoveMetric{}, false, err
	}
	if !result.Moved {
		return metrics.MoveMetric{}, false, fmt.Errorf("agent chose %s: %w", decision.Direction, ErrNoEffect)
	}

	p.step++
	return metrics.MoveMetric{
		Step:         p.step,
		Direction:    decision.Direction.String(),
		Gained:       result.Gained,
		Score:        p.Session.Score(),
		SearchMetric: decision.Search,
	}, true, nil
}

// Tick decides and plays a single move.
func (p *AutoPlayer) Tick(ctx context.Context) (move metrics.MoveMetric, played bool, err error) {
	if !p.running {
		return metrics.MoveMetric{}, false, nil
	}
	decision, err := p.Decide(ctx)
	if err != nil {
		return metrics.MoveMetric{}, false, err
	}
	return p.Apply(decision)
}

// Run drives Tick every interval, or back to back when interval is 0.
func (p *AutoPlayer) Run(ctx context.Context, interval time.Duration) (metrics.GameMetric, []metrics.MoveMetric, error) {
	start := time.Now()
	var ticks <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	log.Info().Str("session", p.Session.ID()).Dur("interval", interval).Msg("autoplay started")

	var moveMetrics []metrics.MoveMetric
	var err error
	for p.running && p.step < MaxMoves {
		if ticks != nil {
			select {
			case <-ctx.Done():
				err = ctx.Err()
			case <-ticks:
			}
			if err != nil {
				break
			}
		}

		move, played, tickErr := p.Tick(ctx)
		if tickErr != nil {
			err = tickErr
			break
		}
		if played {
			moveMetrics = append(moveMetrics, move)
		}
	}

	if p.running && err == nil {
		log.Warn().Int("moves", p.step).Msg("stopped at move limit before game over")
	}

	snapshot := p.Session.Snapshot()
	grid := p.Session.Grid()
	end := time.Now()
	gameMetric := metrics.GameMetric{
		SessionID:  snapshot.ID,
		Score:      snapshot.Score,
		MaxTile:    grid.MaxTile(),
		GameOver:   p.gameOver,
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
		TotalMoves: p.step,
	}
	log.Info().
		Str("session", snapshot.ID).
		Int("score", gameMetric.Score).
		Int("max_tile", gameMetric.MaxTile).
		Int("moves", gameMetric.TotalMoves).
		Bool("game_over", gameMetric.GameOver).
		Msg("autoplay finished")
	return gameMetric, moveMetrics, err
}
