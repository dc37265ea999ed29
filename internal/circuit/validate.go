package circuit

import (
	"fmt"
	"slices"
)

// Verify checks every structural invariant of a level against a profile:
//   - the path is simple and its ends hold the power source and terminal
//   - off-path cells are empty, fixed and unrotated
//   - tile kinds and rotations match the path geometry
//   - counts match the tiles and fall inside the profile's ranges
//   - every clickable tile has exactly one initial rotation and enough start wrong
//   - the solution conducts and the initial board does not
func Verify(l *Level, p Profile) error {
	n := l.GridSize
	if n < 2 || len(l.Solution) != n*n {
		return VerifyError{Code: "BAD_GRID", Message: fmt.Sprintf("grid %d with %d tiles", n, len(l.Solution))}
	}
	for i, t := range l.Solution {
		if t.Pos != P(i/n, i%n) {
			return VerifyError{Code: "BAD_GRID", Message: fmt.Sprintf("tile %d is at %s", i, t.Pos)}
		}
	}
	if !IsSimplePath(n, l.Path) {
		return VerifyError{Code: "BAD_PATH", Message: "path is not a simple adjacent walk of 3+ cells"}
	}

	if err := verifyTiles(l); err != nil {
		return err
	}
	if err := verifyCounts(l, p); err != nil {
		return err
	}
	if err := verifyInitial(l, p); err != nil {
		return err
	}

	if !Trace(n, l.Solution, nil).Connected {
		return VerifyError{Code: "NOT_SOLVABLE", Message: "solution does not conduct to the terminal"}
	}
	if Trace(n, l.Solution, l.InitialRotations()).Connected {
		return VerifyError{Code: "ALREADY_SOLVED", Message: "initial board already conducts to the terminal"}
	}
	return nil
}

func verifyTiles(l *Level) error {
	n := l.GridSize
	want, err := AssignGeometry(n, l.Path)
	if err != nil {
		return VerifyError{Code: "BAD_GEOMETRY", Message: err.Error()}
	}
	for i, t := range l.Solution {
		w := want[i]
		if t.Kind != w.Kind || t.Rotation != w.Rotation || t.Clickable != w.Clickable {
			return VerifyError{
				Code:    "BAD_TILE",
				Message: fmt.Sprintf("tile %s, want %s (clickable %v)", t, w, w.Clickable),
			}
		}
		if !t.Clickable {
			if len(t.Accepted) != 0 {
				return VerifyError{Code: "BAD_TILE", Message: fmt.Sprintf("fixed tile %s has accepted rotations", t)}
			}
			continue
		}

		size := 1
		if t.Kind == Straight {
			size = 2
		}
		if len(t.Accepted) != size || !t.Accepts(t.Rotation) {
			return VerifyError{
				Code:    "BAD_ACCEPTED",
				Message: fmt.Sprintf("tile %s accepts %v", t, t.Accepted),
			}
		}
		sorted := slices.Clone(t.Accepted)
		slices.Sort(sorted)
		if size == 2 && sorted[1]-sorted[0] != Rot180 {
			return VerifyError{Code: "BAD_ACCEPTED", Message: fmt.Sprintf("straight %s accepts %v", t, t.Accepted)}
		}
	}
	return nil
}

func verifyCounts(l *Level, p Profile) error {
	straights, corners := countKinds(l.Solution)
	switch {
	case l.MovableCount != len(l.Path)-2 || l.MovableCount != straights+corners:
		return VerifyError{
			Code:    "BAD_COUNT",
			Message: fmt.Sprintf("movable %d for path of %d cells", l.MovableCount, len(l.Path)),
		}
	case l.CornerCount != corners || l.StraightCount != straights:
		return VerifyError{
			Code:    "BAD_COUNT",
			Message: fmt.Sprintf("corners %d straights %d, tiles have %d and %d", l.CornerCount, l.StraightCount, corners, straights),
		}
	case !p.Movable.Contains(l.MovableCount):
		return VerifyError{
			Code:    "OUT_OF_RANGE",
			Message: fmt.Sprintf("movable %d outside %s", l.MovableCount, p.Movable),
		}
	case !p.Corners.Contains(l.CornerCount):
		return VerifyError{
			Code:    "OUT_OF_RANGE",
			Message: fmt.Sprintf("corners %d outside %s", l.CornerCount, p.Corners),
		}
	}
	return nil
}

func verifyInitial(l *Level, p Profile) error {
	n := l.GridSize
	seen := make(map[Position]bool, len(l.Initial))
	for _, s := range l.Initial {
		t, ok := l.TileAt(s.Pos)
		if !ok || !t.Clickable {
			return VerifyError{Code: "BAD_INITIAL", Message: fmt.Sprintf("initial rotation for fixed cell %s", s.Pos)}
		}
		if seen[s.Pos] || !s.Rotation.Valid() {
			return VerifyError{Code: "BAD_INITIAL", Message: fmt.Sprintf("initial rotation %d at %s", s.Rotation, s.Pos)}
		}
		seen[s.Pos] = true
	}
	if len(seen) != l.MovableCount {
		return VerifyError{
			Code:    "BAD_INITIAL",
			Message: fmt.Sprintf("%d initial rotations for %d clickable tiles", len(seen), l.MovableCount),
		}
	}

	scrambled := countScrambled(n, l.Solution, l.Initial)
	if need := RequiredScrambles(l.MovableCount, p.ScrambleRatio); scrambled < need {
		return VerifyError{
			Code:    "UNDER_SCRAMBLED",
			Message: fmt.Sprintf("%d tiles start wrong, need %d", scrambled, need),
		}
	}
	if scrambled != l.ScrambledCount {
		return VerifyError{
			Code:    "BAD_COUNT",
			Message: fmt.Sprintf("scrambled count %d, board has %d", l.ScrambledCount, scrambled),
		}
	}
	return nil
}
