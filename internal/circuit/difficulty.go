package circuit

import (
	"fmt"
	"strings"
)

// Tier is a difficulty tier. Tiers are ordered by intended challenge.
type Tier uint8

const (
	Easy Tier = iota
	Normal
	Hard
	Hell
)

// AllTiers returns the tiers from easiest to hardest.
func AllTiers() []Tier {
	return []Tier{Easy, Normal, Hard, Hell}
}

// String returns the string representation of a tier.
func (t Tier) String() string {
	switch t {
	case Easy:
		return "easy"
	case Normal:
		return "normal"
	case Hard:
		return "hard"
	case Hell:
		return "hell"
	default:
		return "unknown"
	}
}

// Valid reports whether t is one of the defined tiers.
func (t Tier) Valid() bool {
	return t <= Hell
}

// ParseTier converts a case-insensitive name to a Tier.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "normal":
		return Normal, nil
	case "hard":
		return Hard, nil
	case "hell":
		return Hell, nil
	default:
		return Easy, fmt.Errorf("circuit: unknown difficulty %q (want easy, normal, hard or hell)", s)
	}
}

// Range is a closed integer interval.
type Range struct {
	Min int
	Max int
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// String returns the range as "min-max".
func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// Profile holds the generation bounds for one tier.
type Profile struct {
	Movable       Range   // Clickable tiles on the path
	Corners       Range   // Corner tiles on the path
	ScrambleRatio float64 // Minimum share of clickable tiles that start wrong, in (0, 1]
	GridSize      Range   // Side length of the square grid
}

var profiles = map[Tier]Profile{
	Easy: {
		Movable:       Range{3, 8},
		Corners:       Range{1, 6},
		ScrambleRatio: 0.7,
		GridSize:      Range{4, 5},
	},
	Normal: {
		Movable:       Range{4, 10},
		Corners:       Range{2, 8},
		ScrambleRatio: 0.8,
		GridSize:      Range{5, 6},
	},
	Hard: {
		Movable:       Range{5, 12},
		Corners:       Range{3, 10},
		ScrambleRatio: 0.9,
		GridSize:      Range{6, 7},
	},
	Hell: {
		Movable:       Range{6, 15},
		Corners:       Range{4, 12},
		ScrambleRatio: 1.0,
		GridSize:      Range{7, 8},
	},
}

// ProfileFor returns the static profile for a tier.
// Unknown tiers get the Easy profile.
func ProfileFor(t Tier) Profile {
	if p, ok := profiles[t]; ok {
		return p
	}
	return profiles[Easy]
}

// PickGridSize samples a grid size uniformly from the profile's range.
func (p Profile) PickGridSize(rng *RNG) int {
	return rng.IntRange(p.GridSize.Min, p.GridSize.Max)
}

// Allows reports whether a path with these counts satisfies the profile.
func (p Profile) Allows(movable, corners int) bool {
	return p.Movable.Contains(movable) && p.Corners.Contains(corners)
}

// Check validates the profile's own fields.
func (p Profile) Check() error {
	switch {
	case p.Movable.Min < 1 || p.Movable.Max < p.Movable.Min:
		return fmt.Errorf("%w: movable range %s", ErrInvalidParams, p.Movable)
	case p.Corners.Min < 0 || p.Corners.Max < p.Corners.Min:
		return fmt.Errorf("%w: corner range %s", ErrInvalidParams, p.Corners)
	case p.ScrambleRatio <= 0 || p.ScrambleRatio > 1:
		return fmt.Errorf("%w: scramble ratio %.2f outside (0, 1]", ErrInvalidParams, p.ScrambleRatio)
	case p.GridSize.Min < 2 || p.GridSize.Max < p.GridSize.Min:
		return fmt.Errorf("%w: grid size range %s", ErrInvalidParams, p.GridSize)
	}
	return nil
}

// minEndpointDistance is the Manhattan distance a straight path needs to hold
// the profile's minimum number of movable tiles, clamped to what an n×n grid allows.
func (p Profile) minEndpointDistance(n int) int {
	d := p.Movable.Min + 1
	if limit := 2 * (n - 1); d > limit {
		d = limit
	}
	if d < 2 {
		d = 2
	}
	return d
}
