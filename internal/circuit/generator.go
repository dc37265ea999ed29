package circuit

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultMaxAttempts is the retry limit used when GenParams leaves it unset.
const DefaultMaxAttempts = 50

// GenParams configures a generation run.
type GenParams struct {
	Difficulty  Tier
	Profile     *Profile // Replaces ProfileFor(Difficulty) when set
	GridSize    int      // 0 = sample from the profile's range
	MaxAttempts int      // Attempts before giving up
	Seed        uint64   // RNG seed (0 = derived from the clock)

	MaxSearchSteps int         // Node expansions per path search (0 = scaled to the grid)
	Logger         *log.Logger // nil = discard
}

// DefaultGenParams returns sensible defaults for a tier.
func DefaultGenParams(t Tier) GenParams {
	return GenParams{
		Difficulty:  t,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Generate is the one-call entry point: gridSize 0 samples the tier's range
// and seed 0 derives a seed from the clock.
func Generate(difficulty Tier, gridSize, maxAttempts int, seed uint64) (*Level, error) {
	p := DefaultGenParams(difficulty)
	p.GridSize = gridSize
	p.MaxAttempts = maxAttempts
	p.Seed = seed
	return GenerateLevel(p)
}

type genState uint8

const (
	stateAttempting genState = iota
	stateDone
)

// Per-attempt rejections. They are expected variance and stay inside the loop.
var (
	errNoPath        = errors.New("no path found")
	errBadPath       = errors.New("path is not simple")
	errOutOfProfile  = errors.New("counts outside profile")
	errAlreadySolved = errors.New("scrambled board already conducts")
)

// GenerateLevel runs attempts until one produces a valid level or
// MaxAttempts is spent, in which case it returns an *ExhaustedError.
// Parameters no attempt could satisfy give an *ExhaustedError with zero
// attempts that also matches ErrInvalidParams.
// Every attempt starts from a clean search state; only the RNG carries over,
// so a fixed seed always yields the same level.
func GenerateLevel(p GenParams) (*Level, error) {
	invalid := func(format string, args ...any) error {
		return &ExhaustedError{
			Difficulty: p.Difficulty,
			Reason:     fmt.Errorf("%w: "+format, append([]any{ErrInvalidParams}, args...)...),
		}
	}

	if !p.Difficulty.Valid() {
		return nil, invalid("unknown difficulty %d", uint8(p.Difficulty))
	}
	profile := ProfileFor(p.Difficulty)
	if p.Profile != nil {
		profile = *p.Profile
	}
	if err := profile.Check(); err != nil {
		return nil, &ExhaustedError{Difficulty: p.Difficulty, Reason: err}
	}
	if p.MaxAttempts < 1 {
		return nil, invalid("max attempts %d", p.MaxAttempts)
	}

	logger := p.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	seed := p.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := NewRNG(seed)

	n := p.GridSize
	if n == 0 {
		n = profile.PickGridSize(rng)
	}
	if n < 2 {
		return nil, invalid("grid size %d", n)
	}

	limits := LimitsFor(profile)
	limits.MaxSteps = p.MaxSearchSteps

	var level *Level
	attempts := 0
	for state := stateAttempting; state == stateAttempting; {
		if attempts == p.MaxAttempts {
			state = stateDone
			continue
		}
		attempts++

		lvl, err := attempt(n, profile, limits, rng)
		switch {
		case err == nil:
			level = lvl
			state = stateDone
		case errors.Is(err, ErrInvalidPathGeometry):
			logger.Warn("discarding attempt with unclassifiable path", "attempt", attempts, "err", err)
		default:
			logger.Debug("attempt rejected", "attempt", attempts, "reason", err)
		}
	}

	if level == nil {
		return nil, &ExhaustedError{Attempts: attempts, Difficulty: p.Difficulty}
	}

	level.Difficulty = p.Difficulty
	level.Seed = seed
	level.Attempts = attempts
	logger.Info("level generated",
		"difficulty", p.Difficulty,
		"grid", n,
		"path", len(level.Path),
		"movable", level.MovableCount,
		"corners", level.CornerCount,
		"scrambled", level.ScrambledCount,
		"attempts", attempts,
	)
	return level, nil
}

// attempt runs one pass of the pipeline:
// endpoints, path search, geometry, validation, scramble.
func attempt(n int, profile Profile, limits SearchLimits, rng *RNG) (*Level, error) {
	power, terminal, err := SelectEndpoints(n, profile.minEndpointDistance(n), rng)
	if err != nil {
		return nil, err
	}

	path, ok := FindPath(n, power, terminal, limits, rng)
	if !ok {
		return nil, errNoPath
	}
	if !IsSimplePath(n, path) {
		return nil, errBadPath
	}

	tiles, err := AssignGeometry(n, path)
	if err != nil {
		return nil, err
	}

	straights, corners := countKinds(tiles)
	movable := len(path) - 2
	if !profile.Allows(movable, corners) {
		return nil, fmt.Errorf("%w: movable %d, corners %d", errOutOfProfile, movable, corners)
	}

	initial := Scramble(n, tiles, path, profile.ScrambleRatio, rng)
	lvl := &Level{
		GridSize:       n,
		Solution:       tiles,
		Initial:        initial,
		Path:           path,
		MovableCount:   movable,
		CornerCount:    corners,
		StraightCount:  straights,
		ScrambledCount: countScrambled(n, tiles, initial),
		MinMoves:       MinMoves(n, tiles, initial),
	}
	if Trace(n, tiles, lvl.InitialRotations()).Connected {
		return nil, errAlreadySolved
	}
	return lvl, nil
}
