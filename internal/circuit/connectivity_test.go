package circuit_test

import (
	"slices"
	"testing"

	"github.com/vovakirdan/circuitgen/internal/circuit"
)

func TestTraceFollowsSolution(t *testing.T) {
	path := snakePath()
	tiles, err := circuit.AssignGeometry(6, path)
	if err != nil {
		t.Fatalf("AssignGeometry failed: %v", err)
	}

	res := circuit.Trace(6, tiles, nil)
	if !res.Connected {
		t.Fatalf("solution does not conduct: powered %v", res.Powered)
	}
	if !slices.Equal(res.Route, path) {
		t.Errorf("route = %v, expected %v", res.Route, path)
	}
}

func TestTraceBreaksOnAnyWrongTile(t *testing.T) {
	path := snakePath()
	tiles, err := circuit.AssignGeometry(6, path)
	if err != nil {
		t.Fatalf("AssignGeometry failed: %v", err)
	}

	for _, p := range path[1 : len(path)-1] {
		tile := tileAt(tiles, 6, p)
		for _, r := range circuit.AllRotations() {
			rotations := map[circuit.Position]circuit.Rotation{p: r}
			connected := circuit.Trace(6, tiles, rotations).Connected
			if connected != tile.Accepts(r) {
				t.Errorf("%v at %d: connected = %v, accepted = %v", tile, r, connected, tile.Accepts(r))
			}
		}
	}
}

func TestTraceIgnoresFixedOverrides(t *testing.T) {
	path := snakePath()
	tiles, err := circuit.AssignGeometry(6, path)
	if err != nil {
		t.Fatalf("AssignGeometry failed: %v", err)
	}

	rotations := map[circuit.Position]circuit.Rotation{
		path[0]:           circuit.Rot180,
		path[len(path)-1]: circuit.Rot90,
	}
	if !circuit.Trace(6, tiles, rotations).Connected {
		t.Error("overrides on fixed tiles should be ignored")
	}
}

func TestTraceWithoutSource(t *testing.T) {
	res := circuit.Trace(2, make([]circuit.Tile, 4), nil)
	if res.Connected || len(res.Powered) != 0 {
		t.Errorf("empty board trace = %+v", res)
	}
	if res := circuit.Trace(3, make([]circuit.Tile, 4), nil); res.Connected {
		t.Error("mismatched tile count should not conduct")
	}
}
