package gamemaster

import (
	"fmt"

	"tilemerge/game"

	"github.com/rs/zerolog/log"
)

// MoveResult describes what a move did to the live session.
type MoveResult struct {
	Moved        bool
	Gained       int
	Spawned      game.Cell
	SpawnedValue int
	Terminal     bool
}

// RequestMove is the input entry point: it parses a direction name and
// applies it. Unknown names are rejected without touching the session.
func (s *Session) RequestMove(name string) (MoveResult, error) {
	d, err := game.ParseDirection(name)
	if err != nil {
		return MoveResult{}, err
	}
	return s.ApplyMove(d)
}

// ApplyMove slides the live grid. A move that changes nothing leaves grid and
// score untouched and spawns nothing. Otherwise the score grows by the merged
// tiles, one tile spawns and the grid is checked for game over.
func (s *Session) ApplyMove(d game.Direction) (MoveResult, error) {
	if !d.Valid() {
		return MoveResult{}, fmt.Errorf("cannot move %s: %w", d, game.ErrInvalidDirection)
	}

	s.Lock()
	out, moved := game.Slide(s.grid, d)
	if !moved {
		s.Unlock()
		log.Debug().Str("direction", d.String()).Msg("move had no effect")
		return MoveResult{}, nil
	}

	s.grid = out.Grid
	s.score += out.Gained
	s.moves++
	cell, value, _ := s.spawner.Spawn(s.grid)
	s.terminal = game.IsTerminal(s.grid)
	snapshot := s.snapshot()
	s.Unlock()

	result := MoveResult{
		Moved:        true,
		Gained:       out.Gained,
		Spawned:      cell,
		SpawnedValue: value,
		Terminal:     snapshot.Terminal,
	}
	log.Debug().
		Str("session", snapshot.ID).
		Str("direction", d.String()).
		Int("gained", out.Gained).
		Int("score", snapshot.Score).
		Msg("move applied")
	if result.Terminal {
		log.Info().Str("session", snapshot.ID).Int("score", snapshot.Score).Int("moves", snapshot.Moves).Msg("game over")
	}

	s.notify(snapshot)
	return result, nil
}
