package levels

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vovakirdan/circuitgen/internal/circuit"
	"github.com/vovakirdan/circuitgen/internal/levels/formats"
)

// ID returns the stable identifier of a generated level:
// <tier>-<n>x<n>-<seed hex>, e.g. "easy-4x4-1f".
func ID(l *circuit.Level) string {
	return fmt.Sprintf("%s-%dx%d-%x", l.Difficulty, l.GridSize, l.GridSize, l.Seed)
}

// Save writes the level to dir/<id>.yaml, creating dir if needed,
// and returns the file path.
func Save(dir string, l *circuit.Level, name string) (string, error) {
	id := ID(l)
	data, err := formats.MarshalYAML(l, formats.Meta{ID: id, Name: name})
	if err != nil {
		return "", fmt.Errorf("levels: encoding %s: %w", id, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("levels: creating directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, id+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("levels: writing %s: %w", path, err)
	}
	return path, nil
}
