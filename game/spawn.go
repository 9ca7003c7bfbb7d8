package game

import "fmt"

// Spawner places new tiles. It is the only stochastic transition of the game.
type Spawner struct {
	src     Source
	probTwo float64
}

func NewSpawner(src Source, probTwo float64) (*Spawner, error) {
	if src == nil {
		return nil, fmt.Errorf("nil random source: %w", ErrInvalidConfig)
	}
	if !isProbability(probTwo) {
		return nil, fmt.Errorf("spawn probability %v outside [0,1]: %w", probTwo, ErrInvalidConfig)
	}
	return &Spawner{src: src, probTwo: probTwo}, nil
}

// Spawn sets a uniformly chosen empty cell of g to 2 with probability
// probTwo, otherwise 4. It reports false when g has no empty cell.
func (s *Spawner) Spawn(g *Grid) (Cell, int, bool) {
	empty := g.EmptyCells()
	if len(empty) == 0 {
		return Cell{}, 0, false
	}
	c := empty[s.src.Intn(len(empty))]
	value := 4
	if s.src.Float64() < s.probTwo {
		value = 2
	}
	g.cells[c.Row][c.Col] = value
	return c, value, true
}
