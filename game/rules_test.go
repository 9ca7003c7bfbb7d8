package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestMergeRow(t *testing.T) {
	tests := []struct {
		name   string
		row    []int
		want   []int
		gained int
	}{
		{"three equal tiles merge only the leftmost pair", []int{2, 2, 2, 0}, []int{4, 2, 0, 0}, 4},
		{"gaps are compacted before merging", []int{2, 0, 2, 2}, []int{4, 2, 0, 0}, 4},
		{"two independent pairs both merge", []int{4, 4, 8, 8}, []int{8, 16, 0, 0}, 24},
		{"empty row stays empty", []int{0, 0, 0, 0}, []int{0, 0, 0, 0}, 0},
		{"alternating tiles never merge", []int{2, 4, 2, 4}, []int{2, 4, 2, 4}, 0},
		{"four equal tiles merge into two", []int{2, 2, 2, 2}, []int{4, 4, 0, 0}, 8},
		{"merged tile does not merge again", []int{4, 2, 2, 0}, []int{4, 4, 0, 0}, 4},
		{"tiles slide past gaps", []int{0, 0, 0, 8}, []int{8, 0, 0, 0}, 0},
		{"rows longer than four", []int{2, 2, 0, 4, 4, 8}, []int{4, 8, 8, 0, 0, 0}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := append([]int(nil), tt.row...)

			got, gained := MergeRow(tt.row)

			require.Equal(t, tt.want, got, "Merged row should match")
			require.Equal(t, tt.gained, gained, "Score gained should be the sum of merged tiles")
			require.Equal(t, input, tt.row, "Input row should not be modified")
		})
	}
}

func TestIsTerminal(t *testing.T) {
	t.Run("full grid without equal neighbours is terminal", func(t *testing.T) {
		g := mustGrid(t, [][]int{
			{2, 4, 2, 4},
			{4, 2, 4, 2},
			{2, 4, 2, 4},
			{4, 2, 4, 2},
		})

		require.True(t, IsTerminal(g))
	})

	t.Run("grid with an empty cell is not terminal", func(t *testing.T) {
		g := mustGrid(t, [][]int{
			{2, 4, 2, 4},
			{4, 2, 4, 2},
			{2, 4, 0, 4},
			{4, 2, 4, 2},
		})

		require.False(t, IsTerminal(g))
	})

	t.Run("full grid with a vertical pair is not terminal", func(t *testing.T) {
		g := mustGrid(t, [][]int{
			{2, 4, 2, 4},
			{4, 2, 4, 2},
			{2, 4, 2, 4},
			{2, 8, 4, 2},
		})

		require.False(t, IsTerminal(g))
	})

	t.Run("full grid with a horizontal pair in the last row is not terminal", func(t *testing.T) {
		g := mustGrid(t, [][]int{
			{2, 4, 2, 4},
			{4, 2, 4, 2},
			{2, 4, 2, 4},
			{4, 2, 2, 8},
		})

		require.False(t, IsTerminal(g))
	})

	t.Run("agrees with a brute-force reference on random grids", func(t *testing.T) {
		r := rand.New(rand.NewSource(7))
		values := []int{0, 2, 4, 8, 16}
		for n := 0; n < 2000; n++ {
			size := 2 + r.Intn(3)
			rows := make([][]int, size)
			for i := range rows {
				rows[i] = make([]int, size)
				for j := range rows[i] {
					// Mostly full grids so terminal states actually occur
					if r.Float64() < 0.95 {
						rows[i][j] = values[1+r.Intn(len(values)-1)]
					}
				}
			}
			g := mustGrid(t, rows)
			if g.TileCount() == 0 {
				continue
			}

			require.Equal(t, bruteForceTerminal(rows), IsTerminal(g), "grid:\n%s", g)
			require.Equal(t, !HasLegalMove(g), IsTerminal(g), "terminal iff no direction moves:\n%s", g)
		}
	})
}

// bruteForceTerminal counts empties and equal neighbour pairs in every
// direction.
func bruteForceTerminal(rows [][]int) bool {
	n := len(rows)
	empties, pairs := 0, 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if rows[i][j] == 0 {
				empties++
			}
			for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				y, x := i+d[0], j+d[1]
				if y >= 0 && y < n && x >= 0 && x < n && rows[y][x] == rows[i][j] {
					pairs++
				}
			}
		}
	}
	return empties == 0 && pairs == 0
}
