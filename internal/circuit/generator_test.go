package circuit_test

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/circuitgen/internal/circuit"
)

func quietParams(t circuit.Tier, seed uint64) circuit.GenParams {
	p := circuit.DefaultGenParams(t)
	p.Seed = seed
	p.Logger = log.New(io.Discard)
	return p
}

func TestGenerateEasyFourByFour(t *testing.T) {
	level, err := circuit.Generate(circuit.Easy, 4, 50, 1)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if level.GridSize != 4 || len(level.Solution) != 16 {
		t.Errorf("grid %d with %d tiles, expected 4 and 16", level.GridSize, len(level.Solution))
	}
	if level.MovableCount < 3 || level.MovableCount > 8 {
		t.Errorf("movable = %d, expected 3-8", level.MovableCount)
	}
	if level.CornerCount < 1 || level.CornerCount > 6 {
		t.Errorf("corners = %d, expected 1-6", level.CornerCount)
	}
	if need := circuit.RequiredScrambles(level.MovableCount, 0.7); level.ScrambledCount < need {
		t.Errorf("scrambled = %d, expected at least %d", level.ScrambledCount, need)
	}
	if level.Seed != 1 || level.Difficulty != circuit.Easy {
		t.Errorf("seed %d difficulty %v, expected 1 and easy", level.Seed, level.Difficulty)
	}
	if level.Attempts < 1 || level.Attempts > 50 {
		t.Errorf("attempts = %d", level.Attempts)
	}
}

func TestGeneratedLevelsVerify(t *testing.T) {
	for _, tier := range circuit.AllTiers() {
		t.Run(tier.String(), func(t *testing.T) {
			profile := circuit.ProfileFor(tier)
			for seed := uint64(1); seed <= 8; seed++ {
				level, err := circuit.GenerateLevel(quietParams(tier, seed))
				if err != nil {
					t.Fatalf("seed %d: GenerateLevel failed: %v", seed, err)
				}
				if !profile.GridSize.Contains(level.GridSize) {
					t.Errorf("seed %d: grid %d outside %s", seed, level.GridSize, profile.GridSize)
				}
				if err := circuit.Verify(level, profile); err != nil {
					t.Errorf("seed %d: Verify failed: %v", seed, err)
				}

				res := circuit.Trace(level.GridSize, level.Solution, nil)
				if !res.Connected || !reflect.DeepEqual(res.Route, level.Path) {
					t.Errorf("seed %d: solution route %v, expected %v", seed, res.Route, level.Path)
				}
				if circuit.Trace(level.GridSize, level.Solution, level.InitialRotations()).Connected {
					t.Errorf("seed %d: initial board already conducts", seed)
				}
				if level.MinMoves < level.ScrambledCount {
					t.Errorf("seed %d: min moves %d below scrambled %d", seed, level.MinMoves, level.ScrambledCount)
				}
			}
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := circuit.GenerateLevel(quietParams(circuit.Normal, 42))
	if err != nil {
		t.Fatalf("GenerateLevel failed: %v", err)
	}
	b, err := circuit.GenerateLevel(quietParams(circuit.Normal, 42))
	if err != nil {
		t.Fatalf("GenerateLevel failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different levels")
	}

	c, err := circuit.GenerateLevel(quietParams(circuit.Normal, 43))
	if err != nil {
		t.Fatalf("GenerateLevel failed: %v", err)
	}
	if reflect.DeepEqual(a.Path, c.Path) && reflect.DeepEqual(a.Initial, c.Initial) {
		t.Error("different seeds produced identical levels")
	}
}

func TestGenerateClockSeed(t *testing.T) {
	level, err := circuit.GenerateLevel(quietParams(circuit.Easy, 0))
	if err != nil {
		t.Fatalf("GenerateLevel failed: %v", err)
	}
	if level.Seed == 0 {
		t.Error("seed 0 should be replaced by a clock-derived seed")
	}

	p := quietParams(circuit.Easy, level.Seed)
	again, err := circuit.GenerateLevel(p)
	if err != nil {
		t.Fatalf("GenerateLevel failed: %v", err)
	}
	if !reflect.DeepEqual(level, again) {
		t.Error("reported seed does not reproduce the level")
	}
}

func TestGenerateExhausted(t *testing.T) {
	// Three movable tiles can never hold five corners.
	impossible := circuit.Profile{
		Movable:       circuit.Range{Min: 3, Max: 3},
		Corners:       circuit.Range{Min: 5, Max: 6},
		ScrambleRatio: 0.5,
		GridSize:      circuit.Range{Min: 4, Max: 4},
	}
	p := quietParams(circuit.Hard, 9)
	p.Profile = &impossible
	p.MaxAttempts = 5

	_, err := circuit.GenerateLevel(p)
	if !errors.Is(err, circuit.ErrGenerationExhausted) {
		t.Fatalf("error = %v, expected ErrGenerationExhausted", err)
	}
	var exhausted *circuit.ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error %T is not *ExhaustedError", err)
	}
	if exhausted.Attempts != 5 || exhausted.Difficulty != circuit.Hard {
		t.Errorf("exhausted = %+v, expected 5 attempts on hard", exhausted)
	}
}

func TestGenerateInvalidParams(t *testing.T) {
	badRatio := circuit.ProfileFor(circuit.Easy)
	badRatio.ScrambleRatio = 0

	tests := []struct {
		name   string
		modify func(*circuit.GenParams)
	}{
		{"zero attempts", func(p *circuit.GenParams) { p.MaxAttempts = 0 }},
		{"grid too small", func(p *circuit.GenParams) { p.GridSize = 1 }},
		{"bad ratio", func(p *circuit.GenParams) { p.Profile = &badRatio }},
		{"unknown tier", func(p *circuit.GenParams) { p.Difficulty = circuit.Tier(9) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := quietParams(circuit.Easy, 1)
			tc.modify(&p)
			_, err := circuit.GenerateLevel(p)
			if !errors.Is(err, circuit.ErrInvalidParams) {
				t.Errorf("error = %v, expected ErrInvalidParams", err)
			}
			if !errors.Is(err, circuit.ErrGenerationExhausted) {
				t.Errorf("error = %v, expected ErrGenerationExhausted", err)
			}
			var exhausted *circuit.ExhaustedError
			if errors.As(err, &exhausted) && exhausted.Attempts != 0 {
				t.Errorf("attempts = %d, expected 0", exhausted.Attempts)
			}
		})
	}
}

func TestGenerateWritesNoLogs(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	t.Cleanup(func() { log.SetDefault(prev) })

	if _, err := circuit.Generate(circuit.Easy, 4, 50, 1); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := circuit.Generate(circuit.Hell, 0, 0, 1); err == nil {
		t.Fatal("expected an error for zero attempts")
	}
	if buf.Len() != 0 {
		t.Errorf("Generate wrote log output: %q", buf.String())
	}
}

func TestVerifyCatchesTampering(t *testing.T) {
	profile := circuit.ProfileFor(circuit.Easy)
	fresh := func(t *testing.T) *circuit.Level {
		t.Helper()
		level, err := circuit.GenerateLevel(quietParams(circuit.Easy, 5))
		if err != nil {
			t.Fatalf("GenerateLevel failed: %v", err)
		}
		return level
	}

	tests := []struct {
		name   string
		modify func(*circuit.Level)
		code   string
	}{
		{"truncated grid", func(l *circuit.Level) { l.Solution = l.Solution[1:] }, "BAD_GRID"},
		{"broken path", func(l *circuit.Level) { l.Path = l.Path[:2] }, "BAD_PATH"},
		{"wrong corner count", func(l *circuit.Level) { l.CornerCount++ }, "BAD_COUNT"},
		{"solved start", func(l *circuit.Level) {
			for i, s := range l.Initial {
				tile, _ := l.TileAt(s.Pos)
				l.Initial[i].Rotation = tile.Rotation
			}
			l.ScrambledCount = 0
		}, "UNDER_SCRAMBLED"},
		{"missing initial", func(l *circuit.Level) { l.Initial = l.Initial[1:] }, "BAD_INITIAL"},
		{"rotated solution", func(l *circuit.Level) {
			i := l.Path[1].Row*l.GridSize + l.Path[1].Col
			l.Solution[i].Rotation = l.Solution[i].Rotation.Next()
		}, "BAD_TILE"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			level := fresh(t)
			tc.modify(level)

			err := circuit.Verify(level, profile)
			var verr circuit.VerifyError
			if !errors.As(err, &verr) {
				t.Fatalf("error = %v, expected VerifyError", err)
			}
			if verr.Code != tc.code {
				t.Errorf("code = %s, expected %s (%s)", verr.Code, tc.code, verr.Message)
			}
		})
	}
}

func TestIsSolvedBy(t *testing.T) {
	level, err := circuit.GenerateLevel(quietParams(circuit.Easy, 3))
	if err != nil {
		t.Fatalf("GenerateLevel failed: %v", err)
	}
	if level.IsSolvedBy(nil) {
		t.Error("initial board should not count as solved")
	}

	live := map[circuit.Position]circuit.Rotation{}
	for _, tile := range level.Solution {
		if tile.Clickable {
			live[tile.Pos] = tile.Accepted[len(tile.Accepted)-1]
		}
	}
	if !level.IsSolvedBy(live) {
		t.Error("accepted rotations should solve the level")
	}
}

func TestRNGSample(t *testing.T) {
	rng := circuit.NewRNG(99)
	for k := 0; k <= 6; k++ {
		got := rng.Sample(6, k)
		if len(got) != k {
			t.Fatalf("Sample(6, %d) returned %d indices", k, len(got))
		}
		seen := map[int]bool{}
		for _, i := range got {
			if i < 0 || i >= 6 || seen[i] {
				t.Errorf("Sample(6, %d) = %v has a bad index", k, got)
			}
			seen[i] = true
		}
	}
	if got := rng.Sample(3, 5); len(got) != 3 {
		t.Errorf("Sample(3, 5) returned %d indices, expected 3", len(got))
	}
}
