package game

// EvaluateEmptyMax scores a grid by its free space and its highest tile with
// the standard weights.
var EvaluateEmptyMax = WeightedEvaluate(StandardEmptyWeight, StandardMaxWeight)

// WeightedEvaluate returns emptyCells*emptyWeight + maxTile*maxWeight. With
// non-negative weights the score never drops when a grid gains an empty cell
// or a higher tile.
func WeightedEvaluate(emptyWeight, maxWeight float64) Evaluate {
	return func(g *Grid) float64 {
		empties, highest := g.emptiesAndMax()
		return float64(empties)*emptyWeight + float64(highest)*maxWeight
	}
}

func (g *Grid) emptiesAndMax() (empties, highest int) {
	for _, row := range g.cells {
		for _, v := range row {
			if v == 0 {
				empties++
			} else if v > highest {
				highest = v
			}
		}
	}
	return empties, highest
}
