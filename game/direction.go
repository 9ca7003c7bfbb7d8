package game

import (
	"fmt"
	"strings"

	"tilemerge/utils"
)

// Direction is a slide direction. Its value is the number of quarter turns
// that normalise the move to a slide towards column 0.
type Direction int

const (
	Left Direction = iota
	Up
	Right
	Down
)

// SearchOrder is the order directions are tried in when choosing a move.
// Ties go to the earliest entry.
var SearchOrder = [...]Direction{Up, Down, Left, Right}

var directionNames = []string{"left", "up", "right", "down"}

// ParseDirection maps a direction name, case-insensitively, to a Direction.
func ParseDirection(name string) (Direction, error) {
	i := utils.FindIndex(directionNames, strings.ToLower(strings.TrimSpace(name)))
	if i < 0 {
		return 0, fmt.Errorf("%q: %w", name, ErrInvalidDirection)
	}
	return Direction(i), nil
}

func (d Direction) Valid() bool {
	return d >= Left && d <= Down
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

func (d Direction) turns() int {
	return int(d)
}
