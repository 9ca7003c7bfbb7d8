package game

// Outcome is the result of a move that changed the grid, before any tile is
// spawned.
type Outcome struct {
	Grid   *Grid
	Gained int
}

// Slide resolves a move on a private copy of g: rotate so the move becomes a
// slide towards column 0, merge every row, rotate back. moved is false when no
// row changed. g is never modified.
func Slide(g *Grid, d Direction) (out Outcome, moved bool) {
	k := d.turns()
	work := g
	for i := 0; i < k; i++ {
		work = work.Rotate()
	}
	if k == 0 {
		work = g.Copy()
	}

	for i, row := range work.cells {
		merged, gained := MergeRow(row)
		if !equalRows(row, merged) {
			moved = true
		}
		work.cells[i] = merged
		out.Gained += gained
	}

	for i := 0; i < (4-k)%4; i++ {
		work = work.Rotate()
	}
	out.Grid = work
	return out, moved
}

// Simulate is Slide for search: it never spawns and reports ok=false when the
// move is illegal.
func Simulate(g *Grid, d Direction) (out Outcome, ok bool) {
	out, ok = Slide(g, d)
	if !ok {
		return Outcome{}, false
	}
	return out, true
}

// HasLegalMove reports whether any direction changes the grid.
func HasLegalMove(g *Grid) bool {
	for _, d := range SearchOrder {
		if _, ok := Simulate(g, d); ok {
			return true
		}
	}
	return false
}
