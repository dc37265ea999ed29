package circuit

import "fmt"

// sidePair is an ordered pair of tile sides.
type sidePair struct {
	a, b Direction
}

// cornerRotations maps the two sides a corner must connect to its single
// accepted rotation. A corner at 0 connects North and East; each clockwise
// quarter turn moves both openings one side on. Both orders of every pair are
// listed so lookups never depend on travel direction.
var cornerRotations = map[sidePair]Rotation{
	{North, East}: Rot0,
	{East, North}: Rot0,
	{East, South}: Rot90,
	{South, East}: Rot90,
	{South, West}: Rot180,
	{West, South}: Rot180,
	{West, North}: Rot270,
	{North, West}: Rot270,
}

// AssignGeometry turns a path into solution tiles covering the whole n×n
// grid in row-major order.
//
// For an interior cell the path arrives moving dirIn and leaves moving
// dirOut. The cell must open towards the previous cell (Opposite(dirIn)) and
// towards the next cell (dirOut):
//   - equal or opposite motion gives a Straight at 0 (East-West) or 90 (North-South)
//   - a perpendicular pair gives a Corner from cornerRotations
//
// The power source faces path[1] and the terminal faces path[len-2].
func AssignGeometry(n int, path []Position) ([]Tile, error) {
	if len(path) < 3 {
		return nil, fmt.Errorf("%w: path has %d cells", ErrInvalidPathGeometry, len(path))
	}

	tiles := make([]Tile, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			tiles[r*n+c] = Tile{Pos: P(r, c), Kind: Empty, Rotation: Rot0}
		}
	}
	set := func(t Tile) error {
		if !t.Pos.InBounds(n) {
			return fmt.Errorf("%w: %s outside %dx%d grid", ErrInvalidPathGeometry, t.Pos, n, n)
		}
		tiles[t.Pos.Row*n+t.Pos.Col] = t
		return nil
	}

	last := len(path) - 1
	for i, cur := range path {
		var (
			t   Tile
			err error
		)
		switch i {
		case 0:
			t, err = endpointTile(PowerSource, cur, path[1])
		case last:
			t, err = endpointTile(Terminal, cur, path[last-1])
		default:
			t, err = interiorTile(path[i-1], cur, path[i+1])
		}
		if err != nil {
			return nil, err
		}
		if err := set(t); err != nil {
			return nil, err
		}
	}
	return tiles, nil
}

// interiorTile classifies the middle cell of three consecutive path cells.
func interiorTile(prev, cur, next Position) (Tile, error) {
	dirIn, err := DirectionBetween(prev, cur)
	if err != nil {
		return Tile{}, fmt.Errorf("%w: entering %s: %v", ErrInvalidPathGeometry, cur, err)
	}
	dirOut, err := DirectionBetween(cur, next)
	if err != nil {
		return Tile{}, fmt.Errorf("%w: leaving %s: %v", ErrInvalidPathGeometry, cur, err)
	}

	if dirIn == dirOut || dirIn == dirOut.Opposite() {
		if dirOut.Horizontal() {
			return Tile{Pos: cur, Kind: Straight, Rotation: Rot0, Clickable: true,
				Accepted: []Rotation{Rot0, Rot180}}, nil
		}
		return Tile{Pos: cur, Kind: Straight, Rotation: Rot90, Clickable: true,
			Accepted: []Rotation{Rot90, Rot270}}, nil
	}

	rot, ok := cornerRotations[sidePair{dirIn.Opposite(), dirOut}]
	if !ok {
		return Tile{}, fmt.Errorf("%w: cannot classify %s %s %s (in %s, out %s)",
			ErrInvalidPathGeometry, prev, cur, next, dirIn, dirOut)
	}
	return Tile{Pos: cur, Kind: Corner, Rotation: rot, Clickable: true,
		Accepted: []Rotation{rot}}, nil
}

// endpointTile builds a fixed power source or terminal facing its neighbour.
func endpointTile(kind TileKind, pos, neighbor Position) (Tile, error) {
	side, err := DirectionBetween(pos, neighbor)
	if err != nil {
		return Tile{}, fmt.Errorf("%w: %s at %s: %v", ErrInvalidPathGeometry, kind, pos, err)
	}
	base := kind.baseOpenings()[0]
	return Tile{Pos: pos, Kind: kind, Rotation: rotationBetween(base, side)}, nil
}

// countKinds returns the number of straight and corner tiles.
func countKinds(tiles []Tile) (straights, corners int) {
	for _, t := range tiles {
		switch t.Kind {
		case Straight:
			straights++
		case Corner:
			corners++
		}
	}
	return straights, corners
}
