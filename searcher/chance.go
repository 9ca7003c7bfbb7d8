package searcher

import "tilemerge/game"

// chance is the spawn ply: every empty cell is equally likely and each one
// receives a 2 or a 4 with the configured weights.
func (e *Expectimax) chance(g *game.Grid, depth int) float64 {
	if depth <= 0 {
		return e.leaf(g)
	}
	e.metrics.AddNode()

	empty := g.EmptyCells()
	if len(empty) == 0 {
		// Nothing can spawn; a grid that also cannot move is lost one ply early
		if !game.HasLegalMove(g) {
			e.metrics.AddDeadEnd()
			return DeadEnd
		}
		return e.leaf(g)
	}

	outcomes := [...]struct {
		value  int
		weight float64
	}{
		{2, e.spawnTwo},
		{4, e.spawnFour},
	}

	total := 0.0
	for _, c := range empty {
		for _, o := range outcomes {
			if o.weight == 0 {
				continue
			}
			total += o.weight * e.decision(g.WithTile(c, o.value), depth-1)
		}
	}
	return total / float64(len(empty))
}
