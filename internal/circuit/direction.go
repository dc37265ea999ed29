// Package circuit generates solvable tile-rotation circuit puzzles.
// This package is UI-agnostic and deterministic for a given seed.
package circuit

// Direction represents one of the four grid directions.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// clockwise lists the directions in clockwise order starting at North.
// Rotation math indexes into this array instead of relying on constant values.
var clockwise = [4]Direction{North, East, South, West}

// AllDirections returns the four valid directions.
func AllDirections() [4]Direction {
	return clockwise
}

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return clockwiseIndex(d) >= 0
}

// Delta returns the (dRow, dCol) offset for one step in this direction.
// Rows grow downward, columns grow to the right.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return d
	}
}

// Rotate turns the direction clockwise by r.
func (d Direction) Rotate(r Rotation) Direction {
	i := clockwiseIndex(d)
	if i < 0 {
		return d
	}
	return clockwise[(i+r.steps())%4]
}

// Horizontal reports whether d lies on the East-West axis.
func (d Direction) Horizontal() bool {
	return d == East || d == West
}

func clockwiseIndex(d Direction) int {
	for i, c := range clockwise {
		if c == d {
			return i
		}
	}
	return -1
}

// rotationBetween returns the clockwise rotation that turns from into to.
func rotationBetween(from, to Direction) Rotation {
	i, j := clockwiseIndex(from), clockwiseIndex(to)
	if i < 0 || j < 0 {
		return Rot0
	}
	return Rotation(((j - i + 4) % 4) * 90)
}
