// Package preview draws circuit levels as text for terminals and logs.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/circuitgen/internal/circuit"
)

// Options controls how a level is drawn.
type Options struct {
	Color     bool // Style tiles with lipgloss
	Scrambled bool // Draw the initial rotations instead of the solution
}

var (
	powerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	terminalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	scrambledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	conduitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle    = lipgloss.NewStyle().Bold(true)
)

// conduitGlyphs maps the two open sides of a conduit to a box-drawing rune.
var conduitGlyphs = map[[2]circuit.Direction]rune{
	{circuit.East, circuit.West}:   '─',
	{circuit.North, circuit.South}: '│',
	{circuit.North, circuit.East}:  '└',
	{circuit.East, circuit.South}:  '┌',
	{circuit.South, circuit.West}:  '┐',
	{circuit.North, circuit.West}:  '┘',
}

// Glyph returns the rune for a tile kind at rotation r.
//
//	Empty: ·   PowerSource: P   Terminal: T
//	Straight and Corner: ─ │ └ ┌ ┐ ┘ by open sides
func Glyph(kind circuit.TileKind, r circuit.Rotation) rune {
	switch kind {
	case circuit.PowerSource:
		return 'P'
	case circuit.Terminal:
		return 'T'
	case circuit.Straight, circuit.Corner:
		open := circuit.Tile{Kind: kind}.OpeningsAt(r)
		a, b := open[0], open[1]
		if a > b {
			a, b = b, a
		}
		if g, ok := conduitGlyphs[[2]circuit.Direction{a, b}]; ok {
			return g
		}
		return '?'
	default:
		return '·'
	}
}

// Render draws a header line followed by one text row per grid row.
func Render(l *circuit.Level, opts Options) string {
	var sb strings.Builder

	header := fmt.Sprintf("%s %dx%d seed %#x | movable %d corners %d | scrambled %d min moves %d",
		l.Difficulty, l.GridSize, l.GridSize, l.Seed,
		l.MovableCount, l.CornerCount, l.ScrambledCount, l.MinMoves)
	if opts.Color {
		header = headerStyle.Render(header)
	}
	sb.WriteString(header)
	sb.WriteString("\n")

	var rotations map[circuit.Position]circuit.Rotation
	if opts.Scrambled {
		rotations = l.InitialRotations()
	}

	for row := 0; row < l.GridSize; row++ {
		for col := 0; col < l.GridSize; col++ {
			t, _ := l.TileAt(circuit.P(row, col))
			rot := t.Rotation
			if r, ok := rotations[t.Pos]; ok {
				rot = r
			}
			cell := string(Glyph(t.Kind, rot))
			if opts.Color {
				cell = styleFor(t, rot).Render(cell)
			}
			sb.WriteString(cell)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func styleFor(t circuit.Tile, rot circuit.Rotation) lipgloss.Style {
	switch {
	case t.Kind == circuit.PowerSource:
		return powerStyle
	case t.Kind == circuit.Terminal:
		return terminalStyle
	case t.Clickable && !t.Accepts(rot):
		return scrambledStyle
	case t.Clickable:
		return conduitStyle
	default:
		return emptyStyle
	}
}
