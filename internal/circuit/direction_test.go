package circuit

import (
	"errors"
	"testing"
)

func TestDirectionDeltaAndOpposite(t *testing.T) {
	tests := []struct {
		dir      Direction
		dr, dc   int
		opposite Direction
	}{
		{North, -1, 0, South},
		{East, 0, 1, West},
		{South, 1, 0, North},
		{West, 0, -1, East},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			dr, dc := tc.dir.Delta()
			if dr != tc.dr || dc != tc.dc {
				t.Errorf("Delta() = (%d,%d), expected (%d,%d)", dr, dc, tc.dr, tc.dc)
			}
			if got := tc.dir.Opposite(); got != tc.opposite {
				t.Errorf("Opposite() = %v, expected %v", got, tc.opposite)
			}
			if got := tc.dir.Opposite().Opposite(); got != tc.dir {
				t.Errorf("double Opposite() = %v, expected %v", got, tc.dir)
			}
		})
	}
}

func TestDirectionInvalid(t *testing.T) {
	bad := Direction(9)
	if bad.Valid() {
		t.Error("Direction(9) should not be valid")
	}
	if dr, dc := bad.Delta(); dr != 0 || dc != 0 {
		t.Errorf("invalid Delta() = (%d,%d), expected (0,0)", dr, dc)
	}
	for _, d := range AllDirections() {
		if !d.Valid() {
			t.Errorf("%v should be valid", d)
		}
	}
}

func TestDirectionRotate(t *testing.T) {
	tests := []struct {
		dir      Direction
		rot      Rotation
		expected Direction
	}{
		{North, Rot0, North},
		{North, Rot90, East},
		{North, Rot180, South},
		{North, Rot270, West},
		{West, Rot90, North},
		{South, Rot270, East},
		{East, Rotation(450), South},
	}

	for _, tc := range tests {
		if got := tc.dir.Rotate(tc.rot); got != tc.expected {
			t.Errorf("%v.Rotate(%d) = %v, expected %v", tc.dir, tc.rot, got, tc.expected)
		}
	}
}

func TestRotationBetweenInvertsRotate(t *testing.T) {
	for _, from := range AllDirections() {
		for _, to := range AllDirections() {
			r := rotationBetween(from, to)
			if got := from.Rotate(r); got != to {
				t.Errorf("%v rotated by %d = %v, expected %v", from, r, got, to)
			}
		}
	}
}

func TestDirectionBetween(t *testing.T) {
	center := P(2, 2)
	for _, d := range AllDirections() {
		got, err := DirectionBetween(center, center.Step(d))
		if err != nil {
			t.Fatalf("DirectionBetween to %v neighbour failed: %v", d, err)
		}
		if got != d {
			t.Errorf("DirectionBetween = %v, expected %v", got, d)
		}
	}

	for _, far := range []Position{P(2, 2), P(3, 3), P(0, 2), P(2, 5)} {
		if _, err := DirectionBetween(center, far); !errors.Is(err, ErrInvalidAdjacency) {
			t.Errorf("DirectionBetween(%v, %v) error = %v, expected ErrInvalidAdjacency", center, far, err)
		}
	}
}

func TestPositionHelpers(t *testing.T) {
	p := P(1, 2)
	if got := p.Manhattan(P(3, 0)); got != 4 {
		t.Errorf("Manhattan() = %d, expected 4", got)
	}
	if !p.InBounds(3) || p.InBounds(2) {
		t.Error("InBounds() wrong for (1,2)")
	}
	if got := p.String(); got != "(1,2)" {
		t.Errorf("String() = %q", got)
	}
}

func TestRotationHelpers(t *testing.T) {
	if got := Rot270.Next(); got != Rot0 {
		t.Errorf("Rot270.Next() = %d, expected 0", got)
	}
	if got := Rotation(-90).Normalize(); got != Rot270 {
		t.Errorf("Normalize(-90) = %d, expected 270", got)
	}
	if Rotation(45).Valid() {
		t.Error("45 should not be a valid rotation")
	}
}
