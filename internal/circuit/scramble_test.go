package circuit_test

import (
	"testing"

	"github.com/vovakirdan/circuitgen/internal/circuit"
)

func TestRequiredScrambles(t *testing.T) {
	tests := []struct {
		movable  int
		ratio    float64
		expected int
	}{
		{10, 0.7, 7},
		{4, 0.7, 3},
		{1, 0.1, 1},
		{0, 0.7, 0},
		{5, 1.0, 5},
		{3, 0.5, 2},
		{10, 0.8, 8},
		{15, 0.9, 14},
	}

	for _, tc := range tests {
		if got := circuit.RequiredScrambles(tc.movable, tc.ratio); got != tc.expected {
			t.Errorf("RequiredScrambles(%d, %.1f) = %d, expected %d", tc.movable, tc.ratio, got, tc.expected)
		}
	}
}

// snakePath is a 6x6 route with a mix of straights and corners.
func snakePath() []circuit.Position {
	return []circuit.Position{
		circuit.P(0, 0), circuit.P(0, 1), circuit.P(0, 2), circuit.P(1, 2),
		circuit.P(2, 2), circuit.P(2, 3), circuit.P(2, 4), circuit.P(3, 4),
		circuit.P(4, 4), circuit.P(4, 5), circuit.P(5, 5),
	}
}

func TestScrambleCounts(t *testing.T) {
	path := snakePath()
	tiles, err := circuit.AssignGeometry(6, path)
	if err != nil {
		t.Fatalf("AssignGeometry failed: %v", err)
	}
	movable := len(path) - 2

	for _, ratio := range []float64{0.1, 0.5, 0.7, 0.9, 1.0} {
		for seed := uint64(1); seed <= 20; seed++ {
			state := circuit.Scramble(6, tiles, path, ratio, circuit.NewRNG(seed))
			if len(state) != movable {
				t.Fatalf("ratio %.1f seed %d: %d states, expected %d", ratio, seed, len(state), movable)
			}

			wrong := 0
			for i, s := range state {
				if s.Pos != path[i+1] {
					t.Errorf("state %d at %v, expected path order %v", i, s.Pos, path[i+1])
				}
				if !s.Rotation.Valid() {
					t.Errorf("state %v has invalid rotation", s)
				}
				if !tileAt(tiles, 6, s.Pos).Accepts(s.Rotation) {
					wrong++
				}
			}
			if need := circuit.RequiredScrambles(movable, ratio); wrong != need {
				t.Errorf("ratio %.1f seed %d: %d tiles wrong, expected %d", ratio, seed, wrong, need)
			}
		}
	}
}

func TestScrambleLeavesFixedTilesOut(t *testing.T) {
	path := snakePath()
	tiles, err := circuit.AssignGeometry(6, path)
	if err != nil {
		t.Fatalf("AssignGeometry failed: %v", err)
	}
	for _, s := range circuit.Scramble(6, tiles, path, 1.0, circuit.NewRNG(3)) {
		if s.Pos == path[0] || s.Pos == path[len(path)-1] {
			t.Errorf("endpoint %v was scrambled", s.Pos)
		}
	}
}
