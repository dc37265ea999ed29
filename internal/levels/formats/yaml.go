// Package formats provides level file format parsers and writers.
package formats

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/circuitgen/internal/circuit"
)

// maxGridSize bounds the grid a level file may declare.
const maxGridSize = 64

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID         string            `yaml:"id"`
	Name       string            `yaml:"name,omitempty"`
	Difficulty string            `yaml:"difficulty"`
	GridSize   int               `yaml:"grid_size"`
	Seed       string            `yaml:"seed"` // Hex, e.g. 0x2a
	Stats      YAMLStats         `yaml:"stats"`
	Tiles      []YAMLTile        `yaml:"tiles"` // Non-empty cells only
	Initial    []YAMLState       `yaml:"initial"`
	Path       [][2]int          `yaml:"path,flow"`
	Metadata   map[string]string `yaml:"metadata,omitempty"`
}

// YAMLStats holds the level counters.
type YAMLStats struct {
	Movable   int `yaml:"movable"`
	Corners   int `yaml:"corners"`
	Straights int `yaml:"straights"`
	Scrambled int `yaml:"scrambled"`
	MinMoves  int `yaml:"min_moves"`
	Attempts  int `yaml:"attempts,omitempty"`
}

// YAMLTile is one solution tile.
type YAMLTile struct {
	Row      int    `yaml:"row"`
	Col      int    `yaml:"col"`
	Kind     string `yaml:"kind"`
	Rotation int    `yaml:"rotation"`
	Accepted []int  `yaml:"accepted,flow,omitempty"`
}

// YAMLState is the starting rotation of one clickable tile.
type YAMLState struct {
	Row      int `yaml:"row"`
	Col      int `yaml:"col"`
	Rotation int `yaml:"rotation"`
}

// Meta carries the file-level fields that are not part of a circuit.Level.
type Meta struct {
	ID       string
	Name     string
	Metadata map[string]string
}

// Level represents a parsed level ready for use.
type Level struct {
	Meta
	Puzzle *circuit.Level
}

// MarshalYAML encodes a level and its metadata as a YAML document.
func MarshalYAML(l *circuit.Level, meta Meta) ([]byte, error) {
	yl := YAMLLevel{
		ID:         meta.ID,
		Name:       meta.Name,
		Difficulty: l.Difficulty.String(),
		GridSize:   l.GridSize,
		Seed:       fmt.Sprintf("%#x", l.Seed),
		Stats: YAMLStats{
			Movable:   l.MovableCount,
			Corners:   l.CornerCount,
			Straights: l.StraightCount,
			Scrambled: l.ScrambledCount,
			MinMoves:  l.MinMoves,
			Attempts:  l.Attempts,
		},
		Metadata: meta.Metadata,
	}

	for _, t := range l.Solution {
		if t.Kind == circuit.Empty {
			continue
		}
		yt := YAMLTile{Row: t.Pos.Row, Col: t.Pos.Col, Kind: t.Kind.String(), Rotation: int(t.Rotation)}
		for _, r := range t.Accepted {
			yt.Accepted = append(yt.Accepted, int(r))
		}
		yl.Tiles = append(yl.Tiles, yt)
	}
	for _, s := range l.Initial {
		yl.Initial = append(yl.Initial, YAMLState{Row: s.Pos.Row, Col: s.Pos.Col, Rotation: int(s.Rotation)})
	}
	for _, p := range l.Path {
		yl.Path = append(yl.Path, [2]int{p.Row, p.Col})
	}

	data, err := yaml.Marshal(&yl)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// ParseYAML parses a YAML level file. It checks the document is well formed;
// puzzle invariants are left to circuit.Verify.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	tier, err := circuit.ParseTier(yl.Difficulty)
	if err != nil {
		return Level{}, err
	}
	n := yl.GridSize
	if n < 2 || n > maxGridSize {
		return Level{}, fmt.Errorf("grid size %d outside 2-%d", n, maxGridSize)
	}
	var seed uint64
	if yl.Seed != "" {
		if seed, err = strconv.ParseUint(yl.Seed, 0, 64); err != nil {
			return Level{}, fmt.Errorf("seed %q: %w", yl.Seed, err)
		}
	}

	lvl := &circuit.Level{
		GridSize:       n,
		Difficulty:     tier,
		Seed:           seed,
		Solution:       make([]circuit.Tile, n*n),
		MovableCount:   yl.Stats.Movable,
		CornerCount:    yl.Stats.Corners,
		StraightCount:  yl.Stats.Straights,
		ScrambledCount: yl.Stats.Scrambled,
		MinMoves:       yl.Stats.MinMoves,
		Attempts:       yl.Stats.Attempts,
	}
	for i := range lvl.Solution {
		lvl.Solution[i] = circuit.Tile{Pos: circuit.P(i/n, i%n), Kind: circuit.Empty}
	}

	for _, yt := range yl.Tiles {
		tile, err := parseTile(yt, n)
		if err != nil {
			return Level{}, err
		}
		lvl.Solution[yt.Row*n+yt.Col] = tile
	}
	for _, ys := range yl.Initial {
		r := circuit.Rotation(ys.Rotation)
		if !r.Valid() {
			return Level{}, fmt.Errorf("initial rotation %d at (%d,%d)", ys.Rotation, ys.Row, ys.Col)
		}
		lvl.Initial = append(lvl.Initial, circuit.TileState{Pos: circuit.P(ys.Row, ys.Col), Rotation: r})
	}
	for _, p := range yl.Path {
		lvl.Path = append(lvl.Path, circuit.P(p[0], p[1]))
	}

	return Level{
		Meta:   Meta{ID: yl.ID, Name: yl.Name, Metadata: yl.Metadata},
		Puzzle: lvl,
	}, nil
}

func parseTile(yt YAMLTile, n int) (circuit.Tile, error) {
	pos := circuit.P(yt.Row, yt.Col)
	if !pos.InBounds(n) {
		return circuit.Tile{}, fmt.Errorf("tile %s outside %dx%d grid", pos, n, n)
	}
	kind, ok := circuit.ParseTileKind(yt.Kind)
	if !ok {
		return circuit.Tile{}, fmt.Errorf("tile %s: unknown kind %q", pos, yt.Kind)
	}
	rot := circuit.Rotation(yt.Rotation)
	if !rot.Valid() {
		return circuit.Tile{}, fmt.Errorf("tile %s: rotation %d", pos, yt.Rotation)
	}

	tile := circuit.Tile{Pos: pos, Kind: kind, Rotation: rot, Clickable: kind.Rotatable()}
	if !tile.Clickable {
		return tile, nil
	}
	for _, a := range yt.Accepted {
		r := circuit.Rotation(a)
		if !r.Valid() {
			return circuit.Tile{}, fmt.Errorf("tile %s: accepted rotation %d", pos, a)
		}
		tile.Accepted = append(tile.Accepted, r)
	}
	return tile, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
