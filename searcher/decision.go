package searcher

import (
	"math"

	"tilemerge/game"
)

// decision is the player ply: the best spawn ply reachable by one legal move.
func (e *Expectimax) decision(g *game.Grid, depth int) float64 {
	if depth <= 0 {
		return e.leaf(g)
	}
	e.metrics.AddNode()

	best := DeadEnd
	for _, d := range game.SearchOrder {
		out, ok := game.Simulate(g, d)
		if !ok {
			continue
		}
		best = math.Max(best, e.chance(out.Grid, depth-1))
	}
	if math.IsInf(best, -1) {
		e.metrics.AddDeadEnd()
	}
	return best
}
