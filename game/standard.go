package game

import (
	"fmt"
	"math"
)

const (
	StandardSize        = 4
	StandardSpawnTwo    = 0.9
	StandardSpawnFour   = 0.1
	StandardEmptyWeight = 10.0
	StandardMaxWeight   = 1.0
	StandardDepth       = 3
)

const probabilityTolerance = 1e-9

// Config holds the tunable parameters of a game and its search.
type Config struct {
	Size        int     // Grid side length
	SpawnTwo    float64 // Probability that a spawned tile is a 2
	SpawnFour   float64 // Probability that a spawned tile is a 4
	EmptyWeight float64 // Heuristic weight per empty cell
	MaxWeight   float64 // Heuristic weight of the highest tile
	Depth       int     // Search depth in plies
	Seed        uint64  // Seed of the spawn source, 0 picks one from the clock
}

func DefaultConfig() Config {
	return Config{
		Size:        StandardSize,
		SpawnTwo:    StandardSpawnTwo,
		SpawnFour:   StandardSpawnFour,
		EmptyWeight: StandardEmptyWeight,
		MaxWeight:   StandardMaxWeight,
		Depth:       StandardDepth,
	}
}

// Validate rejects configurations that cannot be played.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("grid size must be positive, got %d: %w", c.Size, ErrInvalidConfig)
	}
	if c.Depth <= 0 {
		return fmt.Errorf("search depth must be positive, got %d: %w", c.Depth, ErrInvalidConfig)
	}
	if err := ValidateSpawnWeights(c.SpawnTwo, c.SpawnFour); err != nil {
		return err
	}
	if !isWeight(c.EmptyWeight) || !isWeight(c.MaxWeight) {
		return fmt.Errorf("heuristic weights must be finite and non-negative, got %v and %v: %w", c.EmptyWeight, c.MaxWeight, ErrInvalidConfig)
	}
	return nil
}

// ValidateSpawnWeights requires both probabilities in [0,1] and summing to 1.
// NaN fails every check.
func ValidateSpawnWeights(two, four float64) error {
	if !isProbability(two) || !isProbability(four) {
		return fmt.Errorf("spawn probabilities must lie in [0,1], got %v and %v: %w", two, four, ErrInvalidConfig)
	}
	if math.Abs(two+four-1) > probabilityTolerance {
		return fmt.Errorf("spawn probabilities must sum to 1, got %v: %w", two+four, ErrInvalidConfig)
	}
	return nil
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}

func isWeight(w float64) bool {
	return w >= 0 && !math.IsInf(w, 1)
}

// Evaluate returns the heuristic described by the configured weights.
func (c Config) Evaluate() Evaluate {
	return WeightedEvaluate(c.EmptyWeight, c.MaxWeight)
}
