package circuit

import (
	"fmt"
	"slices"
)

// TileKind identifies what a grid cell contains.
type TileKind uint8

const (
	Empty TileKind = iota
	PowerSource
	Terminal
	Straight
	Corner
)

// String returns the string representation of a tile kind.
func (k TileKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case PowerSource:
		return "power_source"
	case Terminal:
		return "terminal"
	case Straight:
		return "straight"
	case Corner:
		return "corner"
	default:
		return "unknown"
	}
}

// ParseTileKind converts a string to a TileKind.
func ParseTileKind(s string) (TileKind, bool) {
	switch s {
	case "empty":
		return Empty, true
	case "power_source":
		return PowerSource, true
	case "terminal":
		return Terminal, true
	case "straight":
		return Straight, true
	case "corner":
		return Corner, true
	default:
		return Empty, false
	}
}

// Rotatable reports whether tiles of this kind can be turned by the player.
func (k TileKind) Rotatable() bool {
	return k == Straight || k == Corner
}

// baseOpenings returns the sides a tile of this kind connects at rotation 0.
//
//	Straight:    East + West
//	Corner:      North + East
//	PowerSource: East
//	Terminal:    West
func (k TileKind) baseOpenings() []Direction {
	switch k {
	case Straight:
		return []Direction{East, West}
	case Corner:
		return []Direction{North, East}
	case PowerSource:
		return []Direction{East}
	case Terminal:
		return []Direction{West}
	default:
		return nil
	}
}

// Rotation is a clockwise tile rotation in degrees.
type Rotation int

const (
	Rot0   Rotation = 0
	Rot90  Rotation = 90
	Rot180 Rotation = 180
	Rot270 Rotation = 270
)

// AllRotations returns the four valid rotations.
func AllRotations() [4]Rotation {
	return [4]Rotation{Rot0, Rot90, Rot180, Rot270}
}

// Valid reports whether r is one of 0, 90, 180, 270.
func (r Rotation) Valid() bool {
	return r == Rot0 || r == Rot90 || r == Rot180 || r == Rot270
}

// Normalize maps any multiple of 90 into [0, 360).
func (r Rotation) Normalize() Rotation {
	return ((r % 360) + 360) % 360
}

// Next returns the rotation after one clockwise click.
func (r Rotation) Next() Rotation {
	return (r + 90).Normalize()
}

func (r Rotation) steps() int {
	return int(r.Normalize()) / 90
}

// Tile is a single cell of a level.
type Tile struct {
	Pos       Position
	Kind      TileKind
	Rotation  Rotation
	Clickable bool
	Accepted  []Rotation // Rotations that complete the circuit; empty for fixed tiles
}

// String returns a short description of the tile.
func (t Tile) String() string {
	return fmt.Sprintf("%s@%s/%d", t.Kind, t.Pos, t.Rotation)
}

// Openings returns the sides the tile connects in its current rotation.
func (t Tile) Openings() []Direction {
	return t.OpeningsAt(t.Rotation)
}

// OpeningsAt returns the sides the tile would connect at rotation r.
func (t Tile) OpeningsAt(r Rotation) []Direction {
	base := t.Kind.baseOpenings()
	out := make([]Direction, len(base))
	for i, d := range base {
		out[i] = d.Rotate(r)
	}
	return out
}

// Accepts reports whether r is one of the tile's accepted rotations.
func (t Tile) Accepts(r Rotation) bool {
	return slices.Contains(t.Accepted, r.Normalize())
}

// TileState is the rotation of one clickable tile in the initial board.
type TileState struct {
	Pos      Position
	Rotation Rotation
}

// Level is the complete output of a successful generation run.
// It is immutable once returned; consumers keep their own live rotations.
type Level struct {
	GridSize   int
	Difficulty Tier
	Seed       uint64 // Effective RNG seed, reproduces this level

	Solution []Tile      // Every grid cell, row-major
	Initial  []TileState // Starting rotation of every clickable tile, in path order
	Path     []Position  // Power source to terminal inclusive

	MovableCount   int
	CornerCount    int
	StraightCount  int
	ScrambledCount int // Clickable tiles that start outside their accepted set
	MinMoves       int // Fewest clockwise clicks needed to solve
	Attempts       int // Generation attempts used
}

// TileAt returns the solution tile at p.
func (l *Level) TileAt(p Position) (Tile, bool) {
	if !p.InBounds(l.GridSize) || len(l.Solution) != l.GridSize*l.GridSize {
		return Tile{}, false
	}
	return l.Solution[p.Row*l.GridSize+p.Col], true
}

// PowerSource returns the power source position.
func (l *Level) PowerSource() Position {
	return l.Path[0]
}

// Terminal returns the terminal position.
func (l *Level) Terminal() Position {
	return l.Path[len(l.Path)-1]
}

// InitialRotations returns the starting rotations keyed by position.
func (l *Level) InitialRotations() map[Position]Rotation {
	out := make(map[Position]Rotation, len(l.Initial))
	for _, s := range l.Initial {
		out[s.Pos] = s.Rotation
	}
	return out
}

// IsSolvedBy reports whether every clickable tile's live rotation is accepted.
// Tiles missing from live fall back to their initial rotation, then to the
// solution rotation.
func (l *Level) IsSolvedBy(live map[Position]Rotation) bool {
	initial := l.InitialRotations()
	for _, t := range l.Solution {
		if !t.Clickable {
			continue
		}
		r, ok := live[t.Pos]
		if !ok {
			if r, ok = initial[t.Pos]; !ok {
				r = t.Rotation
			}
		}
		if !t.Accepts(r) {
			return false
		}
	}
	return true
}
