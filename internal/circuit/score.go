package circuit

// Star thresholds: share of the time limit used and moves over the optimum.
const (
	threeStarTime  = 0.5
	twoStarTime    = 0.75
	threeStarMoves = 1.25
	twoStarMoves   = 1.5
)

// ClicksToSolve returns the clockwise clicks needed to bring a tile from
// rotation r into its accepted set, or 0 for fixed tiles.
func ClicksToSolve(t Tile, r Rotation) int {
	if !t.Clickable || len(t.Accepted) == 0 {
		return 0
	}
	r = r.Normalize()
	for clicks := 0; clicks < 4; clicks++ {
		if t.Accepts(r) {
			return clicks
		}
		r = r.Next()
	}
	return 0
}

// MinMoves returns the fewest clockwise clicks that solve the initial board.
func MinMoves(n int, tiles []Tile, state []TileState) int {
	total := 0
	for _, s := range state {
		if !s.Pos.InBounds(n) {
			continue
		}
		total += ClicksToSolve(tiles[s.Pos.Row*n+s.Pos.Col], s.Rotation)
	}
	return total
}

// StarRating grades a finished level from 1 to 3 stars.
// elapsed and limit share a unit; a non-positive limit or optimum counts as
// a neutral ratio of 1.
func StarRating(moves, optimal int, elapsed, limit float64) int {
	timeRatio := 1.0
	if limit > 0 {
		timeRatio = elapsed / limit
	}
	movesRatio := 1.0
	if optimal > 0 {
		movesRatio = float64(moves) / float64(optimal)
	}

	switch {
	case timeRatio <= threeStarTime && movesRatio <= threeStarMoves:
		return 3
	case timeRatio <= twoStarTime && movesRatio <= twoStarMoves:
		return 2
	default:
		return 1
	}
}
