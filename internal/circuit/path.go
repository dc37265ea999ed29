package circuit

import "fmt"

// stepsPerCell scales the default node-expansion budget with the grid area.
const stepsPerCell = 256

// SearchLimits bounds a path search.
type SearchLimits struct {
	MinLength int // Fewest cells, endpoints included; the terminal is not entered before this
	MaxLength int // Most cells, endpoints included (0 = n*n)
	MaxSteps  int // Node expansions before giving up (0 = n*n*stepsPerCell)
}

// LimitsFor derives search limits from a profile: a path carries
// movable+2 cells.
func LimitsFor(p Profile) SearchLimits {
	return SearchLimits{
		MinLength: p.Movable.Min + 2,
		MaxLength: p.Movable.Max + 2,
	}
}

func (l SearchLimits) normalize(n int) SearchLimits {
	area := n * n
	if l.MinLength < 3 {
		l.MinLength = 3
	}
	if l.MaxLength <= 0 || l.MaxLength > area {
		l.MaxLength = area
	}
	if l.MaxSteps <= 0 {
		l.MaxSteps = area * stepsPerCell
	}
	return l
}

// SelectEndpoints picks a power source and terminal uniformly among all
// ordered cell pairs at least minDist apart.
func SelectEndpoints(n, minDist int, rng *RNG) (Position, Position, error) {
	if minDist < 1 {
		minDist = 1
	}
	count := 0
	eachPair(n, minDist, func(_, _ Position) bool {
		count++
		return true
	})
	if count == 0 {
		return Position{}, Position{}, fmt.Errorf("%w: no endpoints %d apart on a %dx%d grid",
			ErrInvalidParams, minDist, n, n)
	}

	pick := rng.Intn(count)
	var power, terminal Position
	eachPair(n, minDist, func(a, b Position) bool {
		if pick == 0 {
			power, terminal = a, b
			return false
		}
		pick--
		return true
	})
	return power, terminal, nil
}

// eachPair visits ordered pairs in row-major order until fn returns false.
func eachPair(n, minDist int, fn func(a, b Position) bool) {
	for ar := 0; ar < n; ar++ {
		for ac := 0; ac < n; ac++ {
			for br := 0; br < n; br++ {
				for bc := 0; bc < n; bc++ {
					a, b := P(ar, ac), P(br, bc)
					if a.Manhattan(b) < minDist {
						continue
					}
					if !fn(a, b) {
						return
					}
				}
			}
		}
	}
}

// searchFrame is one level of the explicit DFS stack.
type searchFrame struct {
	pos  Position
	next []Position // Shuffled candidate neighbours
	i    int        // Next candidate to try
}

// FindPath runs a randomized depth-first search for a simple path from start
// to end on an n×n grid. Cells are released again on backtrack so other
// branches may route through them. It returns false when the search space or
// the step budget is exhausted.
func FindPath(n int, start, end Position, lim SearchLimits, rng *RNG) ([]Position, bool) {
	if n < 2 || start == end || !start.InBounds(n) || !end.InBounds(n) {
		return nil, false
	}
	lim = lim.normalize(n)
	if start.Manhattan(end)+1 > lim.MaxLength {
		return nil, false
	}

	visited := make([]bool, n*n)
	index := func(p Position) int { return p.Row*n + p.Col }

	path := make([]Position, 0, lim.MaxLength)
	path = append(path, start)
	visited[index(start)] = true
	stack := []searchFrame{{pos: start, next: shuffledNeighbors(n, start, visited, index, rng)}}
	steps := 0

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.i >= len(top.next) {
			// Dead end: free the cell and report failure one level up.
			visited[index(top.pos)] = false
			stack = stack[:len(stack)-1]
			path = path[:len(path)-1]
			continue
		}

		nb := top.next[top.i]
		top.i++
		if visited[index(nb)] {
			continue
		}
		if nb == end {
			if len(path)+1 < lim.MinLength {
				continue
			}
			out := make([]Position, len(path)+1)
			copy(out, path)
			out[len(path)] = end
			return out, true
		}
		if len(path)+1+nb.Manhattan(end) > lim.MaxLength || len(stack) >= n*n {
			continue
		}

		steps++
		if steps > lim.MaxSteps {
			return nil, false
		}
		visited[index(nb)] = true
		path = append(path, nb)
		stack = append(stack, searchFrame{pos: nb, next: shuffledNeighbors(n, nb, visited, index, rng)})
	}

	return nil, false
}

// shuffledNeighbors returns in-bounds unvisited neighbours in random order.
func shuffledNeighbors(n int, p Position, visited []bool, index func(Position) int, rng *RNG) []Position {
	out := make([]Position, 0, 4)
	for _, d := range AllDirections() {
		q := p.Step(d)
		if q.InBounds(n) && !visited[index(q)] {
			out = append(out, q)
		}
	}
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// IsSimplePath reports whether path has at least three cells, stays on the
// grid, moves one step at a time and never revisits a cell.
func IsSimplePath(n int, path []Position) bool {
	if len(path) < 3 {
		return false
	}
	seen := make(map[Position]bool, len(path))
	for i, p := range path {
		if !p.InBounds(n) || seen[p] {
			return false
		}
		seen[p] = true
		if i > 0 && path[i-1].Manhattan(p) != 1 {
			return false
		}
	}
	return true
}
