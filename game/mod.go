package game

import "errors"

var (
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrInvalidGrid      = errors.New("invalid grid")
)

// Source is the random source behind tile spawning. *rand.Rand from
// golang.org/x/exp/rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Evaluate scores a grid at the search cutoff. Higher is better for the player.
type Evaluate func(g *Grid) float64
