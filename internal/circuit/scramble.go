package circuit

import "math"

// ratioEpsilon absorbs float error so 10*0.7 rounds up to 7, not 8.
const ratioEpsilon = 1e-9

// RequiredScrambles returns how many clickable tiles must start outside their
// accepted set: ceil(movable*ratio), at least one, never more than movable.
func RequiredScrambles(movable int, ratio float64) int {
	if movable <= 0 {
		return 0
	}
	k := int(math.Ceil(float64(movable)*ratio - ratioEpsilon))
	if k < 1 {
		k = 1
	}
	if k > movable {
		k = movable
	}
	return k
}

// Scramble picks the initial rotation of every clickable tile along path.
// A random subset of RequiredScrambles tiles gets a rotation drawn uniformly
// from outside its accepted set; the rest keep their solution rotation.
// Fixed tiles are not part of the result.
func Scramble(n int, tiles []Tile, path []Position, ratio float64, rng *RNG) []TileState {
	clickable := clickableAlong(n, tiles, path)
	state := make([]TileState, len(clickable))
	for i, t := range clickable {
		state[i] = TileState{Pos: t.Pos, Rotation: t.Rotation}
	}

	for _, i := range rng.Sample(len(clickable), RequiredScrambles(len(clickable), ratio)) {
		wrong := rejectedRotations(clickable[i])
		state[i].Rotation = wrong[rng.Intn(len(wrong))]
	}
	return state
}

// rejectedRotations lists the rotations outside the tile's accepted set.
// Accepted sets hold at most two of the four rotations, so this is never empty.
func rejectedRotations(t Tile) []Rotation {
	out := make([]Rotation, 0, 4)
	for _, r := range AllRotations() {
		if !t.Accepts(r) {
			out = append(out, r)
		}
	}
	return out
}

// clickableAlong returns the clickable tiles in path order.
func clickableAlong(n int, tiles []Tile, path []Position) []Tile {
	out := make([]Tile, 0, len(path))
	for _, p := range path {
		if !p.InBounds(n) {
			continue
		}
		if t := tiles[p.Row*n+p.Col]; t.Clickable {
			out = append(out, t)
		}
	}
	return out
}

// countScrambled returns how many states sit outside their tile's accepted set.
func countScrambled(n int, tiles []Tile, state []TileState) int {
	count := 0
	for _, s := range state {
		if !s.Pos.InBounds(n) {
			continue
		}
		if !tiles[s.Pos.Row*n+s.Pos.Col].Accepts(s.Rotation) {
			count++
		}
	}
	return count
}
