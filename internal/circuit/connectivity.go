package circuit

import "slices"

// TraceResult is the outcome of following current from the power source.
type TraceResult struct {
	Connected bool       // Current reaches the terminal
	Powered   []Position // Cells reached, in BFS order
	Route     []Position // Power source to terminal when Connected
}

// Trace follows current from the power source through matching openings.
// rotations overrides the tiles' own rotation for the cells it names; pass
// nil to trace the tiles as given. Two neighbours conduct only when each
// opens towards the other.
func Trace(n int, tiles []Tile, rotations map[Position]Rotation) TraceResult {
	if len(tiles) != n*n {
		return TraceResult{}
	}
	at := func(p Position) Tile {
		t := tiles[p.Row*n+p.Col]
		if r, ok := rotations[p]; ok && t.Kind.Rotatable() {
			t.Rotation = r
		}
		return t
	}

	var source Position
	found := false
	for _, t := range tiles {
		if t.Kind == PowerSource {
			source, found = t.Pos, true
			break
		}
	}
	if !found {
		return TraceResult{}
	}

	parent := map[Position]Position{source: source}
	queue := []Position{source}
	var res TraceResult

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		res.Powered = append(res.Powered, cur)

		tile := at(cur)
		if tile.Kind == Terminal {
			res.Connected = true
			res.Route = rebuildRoute(parent, source, cur)
			continue
		}

		for _, d := range tile.Openings() {
			next := cur.Step(d)
			if !next.InBounds(n) {
				continue
			}
			if _, seen := parent[next]; seen {
				continue
			}
			nt := at(next)
			if nt.Kind == Empty || !slices.Contains(nt.Openings(), d.Opposite()) {
				continue
			}
			parent[next] = cur
			queue = append(queue, next)
		}
	}
	return res
}

func rebuildRoute(parent map[Position]Position, source, end Position) []Position {
	route := []Position{end}
	for cur := end; cur != source; {
		cur = parent[cur]
		route = append(route, cur)
	}
	slices.Reverse(route)
	return route
}
