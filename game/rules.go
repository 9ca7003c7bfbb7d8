package game

// MergeRow slides a row towards index 0 and merges equal neighbours in a
// single left-to-right pass. A merged tile is consumed and cannot merge again
// in the same pass, so [2,2,2,0] becomes [4,2,0,0]. gained is the sum of the
// merged tiles.
func MergeRow(row []int) (merged []int, gained int) {
	tiles := make([]int, 0, len(row))
	for _, v := range row {
		if v != 0 {
			tiles = append(tiles, v)
		}
	}

	merged = make([]int, 0, len(row))
	for i := 0; i < len(tiles); {
		if i+1 < len(tiles) && tiles[i] == tiles[i+1] {
			v := tiles[i] * 2
			merged = append(merged, v)
			gained += v
			i += 2
			continue
		}
		merged = append(merged, tiles[i])
		i++
	}

	for len(merged) < len(row) {
		merged = append(merged, 0)
	}
	return merged, gained
}

// IsTerminal reports whether the grid is full and no two orthogonal
// neighbours are equal.
func IsTerminal(g *Grid) bool {
	n := g.size
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := g.cells[i][j]
			if v == 0 {
				return false
			}
			if j+1 < n && g.cells[i][j+1] == v {
				return false
			}
			if i+1 < n && g.cells[i+1][j] == v {
				return false
			}
		}
	}
	return true
}

func equalRows(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
