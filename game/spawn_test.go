package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestSpawnerSpawn(t *testing.T) {
	t.Run("places a 2 in the chosen empty cell", func(t *testing.T) {
		g := mustGrid(t, [][]int{{2, 0}, {0, 4}})
		s, err := NewSpawner(&scriptedSource{ints: []int{1}, floats: []float64{0.5}}, StandardSpawnTwo)
		require.NoError(t, err)

		cell, value, ok := s.Spawn(g)

		require.True(t, ok)
		require.Equal(t, Cell{Row: 1, Col: 0}, cell, "Second empty cell in row-major order")
		require.Equal(t, 2, value)
		require.Equal(t, [][]int{{2, 0}, {2, 4}}, g.Rows())
	})

	t.Run("places a 4 when the draw exceeds the probability of a 2", func(t *testing.T) {
		g := mustGrid(t, [][]int{{2, 0}, {0, 4}})
		s, err := NewSpawner(&scriptedSource{ints: []int{0}, floats: []float64{0.95}}, StandardSpawnTwo)
		require.NoError(t, err)

		_, value, ok := s.Spawn(g)

		require.True(t, ok)
		require.Equal(t, 4, value)
		require.Equal(t, 4, g.At(0, 1))
	})

	t.Run("does nothing on a full grid", func(t *testing.T) {
		g := mustGrid(t, [][]int{{2, 4}, {4, 2}})
		s, err := NewSpawner(&scriptedSource{}, StandardSpawnTwo)
		require.NoError(t, err)

		_, _, ok := s.Spawn(g)

		require.False(t, ok)
		require.Equal(t, [][]int{{2, 4}, {4, 2}}, g.Rows())
	})

	t.Run("spawns mostly twos from a seeded source", func(t *testing.T) {
		s, err := NewSpawner(rand.New(rand.NewSource(11)), StandardSpawnTwo)
		require.NoError(t, err)

		twos := 0
		const trials = 5000
		for i := 0; i < trials; i++ {
			g := newGrid(4)
			_, value, ok := s.Spawn(g)
			require.True(t, ok)
			require.Contains(t, []int{2, 4}, value)
			if value == 2 {
				twos++
			}
		}

		require.InDelta(t, StandardSpawnTwo, float64(twos)/trials, 0.03)
	})

	t.Run("picks every empty cell about equally often", func(t *testing.T) {
		s, err := NewSpawner(rand.New(rand.NewSource(23)), StandardSpawnTwo)
		require.NoError(t, err)
		g := mustGrid(t, [][]int{
			{2, 0, 4, 0},
			{0, 8, 0, 0},
			{16, 0, 0, 2},
			{0, 0, 4, 0},
		})
		empty := g.EmptyCells()

		counts := map[Cell]int{}
		const trials = 11000
		for i := 0; i < trials; i++ {
			c, _, ok := s.Spawn(g.Copy())
			require.True(t, ok)
			counts[c]++
		}

		require.Len(t, counts, len(empty), "Only empty cells are chosen")
		want := float64(trials) / float64(len(empty))
		for _, c := range empty {
			require.InDelta(t, want, float64(counts[c]), want*0.15, "cell %+v", c)
		}
	})

	t.Run("rejects invalid arguments", func(t *testing.T) {
		_, err := NewSpawner(nil, 0.9)
		require.ErrorIs(t, err, ErrInvalidConfig)

		_, err = NewSpawner(&scriptedSource{}, 1.5)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("rejects NaN probability", func(t *testing.T) {
		_, err := NewSpawner(&scriptedSource{}, math.NaN())

		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}
