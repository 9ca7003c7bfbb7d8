package game

import (
	"fmt"
	"strings"
)

// Cell addresses one square of a Grid.
type Cell struct {
	Row int
	Col int
}

// Grid is an NxN matrix of tile values where 0 marks an empty cell and every
// other value is a power of two >= 2. Its size never changes.
type Grid struct {
	size  int
	cells [][]int
}

// NewGrid returns an empty size x size grid.
func NewGrid(size int) (*Grid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("grid size %d: %w", size, ErrInvalidConfig)
	}
	return newGrid(size), nil
}

// GridFromRows builds a grid from explicit rows, checking that it is square
// and that every value is 0 or a power of two >= 2.
func GridFromRows(rows [][]int) (*Grid, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("no rows: %w", ErrInvalidGrid)
	}
	g := newGrid(n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(row), n, ErrInvalidGrid)
		}
		for j, v := range row {
			if !isTileValue(v) {
				return nil, fmt.Errorf("cell (%d,%d) holds %d: %w", i, j, v, ErrInvalidGrid)
			}
			g.cells[i][j] = v
		}
	}
	return g, nil
}

func newGrid(size int) *Grid {
	cells := make([][]int, size)
	for i := range cells {
		cells[i] = make([]int, size)
	}
	return &Grid{size: size, cells: cells}
}

// MaxTileValue bounds the tiles a grid may be built from, leaving room for
// merges without overflowing int.
const MaxTileValue = 1 << 30

func isTileValue(v int) bool {
	if v == 0 {
		return true
	}
	return v >= 2 && v <= MaxTileValue && v&(v-1) == 0
}

func (g *Grid) Size() int {
	return g.size
}

// At returns the value at row i, column j.
func (g *Grid) At(i, j int) int {
	return g.cells[i][j]
}

// Rows returns a deep copy of the cell values.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.size)
	for i, row := range g.cells {
		rows[i] = append([]int(nil), row...)
	}
	return rows
}

// Copy returns a deep copy of the grid.
func (g *Grid) Copy() *Grid {
	return &Grid{size: g.size, cells: g.Rows()}
}

func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.size != other.size {
		return false
	}
	for i := range g.cells {
		for j := range g.cells[i] {
			if g.cells[i][j] != other.cells[i][j] {
				return false
			}
		}
	}
	return true
}

// EmptyCells lists empty cells in row-major order.
func (g *Grid) EmptyCells() []Cell {
	var empty []Cell
	for i := range g.cells {
		for j, v := range g.cells[i] {
			if v == 0 {
				empty = append(empty, Cell{Row: i, Col: j})
			}
		}
	}
	return empty
}

func (g *Grid) TileCount() int {
	return g.size*g.size - len(g.EmptyCells())
}

func (g *Grid) MaxTile() int {
	_, highest := g.emptiesAndMax()
	return highest
}

// WithTile returns a copy of g with a spawned tile of value at c. Search uses
// it to enumerate spawn outcomes without touching g.
func (g *Grid) WithTile(c Cell, value int) *Grid {
	out := g.Copy()
	out.cells[c.Row][c.Col] = value
	return out
}

// Rotate turns the grid a quarter so that R[i][j] = M[j][N-1-i]. Four
// rotations restore the original grid.
func (g *Grid) Rotate() *Grid {
	n := g.size
	out := newGrid(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.cells[i][j] = g.cells[j][n-1-i]
		}
	}
	return out
}

func (g *Grid) String() string {
	var b strings.Builder
	for i, row := range g.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, v := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%5d", v)
		}
	}
	return b.String()
}
