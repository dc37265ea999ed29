package circuit

import "fmt"

// Position represents a cell on the grid.
// Row increases downward, Col increases to the right.
type Position struct {
	Row int
	Col int
}

// P is a convenience constructor for Position.
func P(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Step returns the position one step in the given direction.
func (p Position) Step(d Direction) Position {
	dr, dc := d.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// InBounds reports whether the position lies on an n×n grid.
func (p Position) InBounds(n int) bool {
	return p.Row >= 0 && p.Row < n && p.Col >= 0 && p.Col < n
}

// Manhattan returns the Manhattan distance to another position.
func (p Position) Manhattan(other Position) int {
	return abs(p.Row-other.Row) + abs(p.Col-other.Col)
}

// DirectionBetween returns the direction of the single grid step from a to b.
// It fails with ErrInvalidAdjacency when b is not exactly one step from a.
func DirectionBetween(a, b Position) (Direction, error) {
	for _, d := range AllDirections() {
		if a.Step(d) == b {
			return d, nil
		}
	}
	return North, fmt.Errorf("%w: %s -> %s", ErrInvalidAdjacency, a, b)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
