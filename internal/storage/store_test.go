package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/circuitgen/internal/circuit"
	"github.com/vovakirdan/circuitgen/internal/levels"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func generate(t *testing.T, tier circuit.Tier, seed uint64) *circuit.Level {
	t.Helper()
	p := circuit.DefaultGenParams(tier)
	p.Seed = seed
	p.Logger = log.New(io.Discard)
	lvl, err := circuit.GenerateLevel(p)
	if err != nil {
		t.Fatalf("GenerateLevel failed: %v", err)
	}
	return lvl
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := OpenSQLite("~/.circuitgen/levels.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".circuitgen", "levels.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}

func TestStoreEmptyPath(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := openTestStore(t)
	lvl := generate(t, circuit.Normal, 12)

	id, err := store.SaveLevel(lvl, "Twelve")
	if err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveLevel() returned id %d", id)
	}

	rec, err := store.LevelByID(levels.ID(lvl))
	if err != nil {
		t.Fatalf("LevelByID() failed: %v", err)
	}
	if rec.ID != id || rec.Name != "Twelve" || rec.Difficulty != circuit.Normal {
		t.Errorf("summary = %+v", rec.LevelSummary)
	}
	if rec.Seed != 12 || rec.MinMoves != lvl.MinMoves || rec.Movable != lvl.MovableCount {
		t.Errorf("stats = %+v, level min moves %d movable %d", rec.LevelSummary, lvl.MinMoves, lvl.MovableCount)
	}
	if !reflect.DeepEqual(rec.Puzzle, lvl) {
		t.Error("archived puzzle differs from the saved level")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestStoreDuplicate(t *testing.T) {
	store := openTestStore(t)
	lvl := generate(t, circuit.Easy, 3)

	if _, err := store.SaveLevel(lvl, ""); err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}
	_, err := store.SaveLevel(lvl, "again")
	if !errors.Is(err, ErrDuplicateLevel) {
		t.Errorf("second SaveLevel() error = %v, expected ErrDuplicateLevel", err)
	}
}

func TestStoreListings(t *testing.T) {
	store := openTestStore(t)

	var saved []*circuit.Level
	for i, tier := range []circuit.Tier{circuit.Easy, circuit.Hard, circuit.Easy, circuit.Hell} {
		lvl := generate(t, tier, uint64(100+i))
		if _, err := store.SaveLevel(lvl, ""); err != nil {
			t.Fatalf("SaveLevel() failed: %v", err)
		}
		saved = append(saved, lvl)
	}

	recent, err := store.RecentLevels(3)
	if err != nil {
		t.Fatalf("RecentLevels() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 recent levels, got %d", len(recent))
	}
	if recent[0].LevelID != levels.ID(saved[3]) || recent[2].LevelID != levels.ID(saved[1]) {
		t.Errorf("recent levels not newest first: %s, %s", recent[0].LevelID, recent[2].LevelID)
	}

	easy, err := store.LevelsByDifficulty(circuit.Easy, 10)
	if err != nil {
		t.Fatalf("LevelsByDifficulty() failed: %v", err)
	}
	if len(easy) != 2 {
		t.Fatalf("expected 2 easy levels, got %d", len(easy))
	}
	for _, sum := range easy {
		if sum.Difficulty != circuit.Easy {
			t.Errorf("level %s has difficulty %v", sum.LevelID, sum.Difficulty)
		}
	}

	normal, err := store.LevelsByDifficulty(circuit.Normal, 0)
	if err != nil {
		t.Fatalf("LevelsByDifficulty() failed: %v", err)
	}
	if len(normal) != 0 {
		t.Errorf("expected no normal levels, got %d", len(normal))
	}
}

func TestStoreDelete(t *testing.T) {
	store := openTestStore(t)
	lvl := generate(t, circuit.Easy, 4)
	if _, err := store.SaveLevel(lvl, ""); err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}

	if err := store.DeleteLevel(levels.ID(lvl)); err != nil {
		t.Fatalf("DeleteLevel() failed: %v", err)
	}
	if _, err := store.LevelByID(levels.ID(lvl)); !errors.Is(err, ErrNotFound) {
		t.Errorf("LevelByID() after delete error = %v, expected ErrNotFound", err)
	}
	if err := store.DeleteLevel(levels.ID(lvl)); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteLevel() error = %v, expected ErrNotFound", err)
	}
}

func TestStoreDifficultyStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.DifficultyStats()
	if err != nil {
		t.Fatalf("DifficultyStats() failed: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("empty archive has stats %+v", stats)
	}

	hell := generate(t, circuit.Hell, 1)
	easyA := generate(t, circuit.Easy, 1)
	easyB := generate(t, circuit.Easy, 2)
	for _, lvl := range []*circuit.Level{hell, easyA, easyB} {
		if _, err := store.SaveLevel(lvl, ""); err != nil {
			t.Fatalf("SaveLevel() failed: %v", err)
		}
	}

	stats, err = store.DifficultyStats()
	if err != nil {
		t.Fatalf("DifficultyStats() failed: %v", err)
	}
	if len(stats) != 2 || stats[0].Difficulty != circuit.Easy || stats[1].Difficulty != circuit.Hell {
		t.Fatalf("stats = %+v, expected easy then hell", stats)
	}
	if stats[0].Count != 2 || stats[1].Count != 1 {
		t.Errorf("counts = %d, %d", stats[0].Count, stats[1].Count)
	}
	wantMovable := float64(easyA.MovableCount+easyB.MovableCount) / 2
	if stats[0].AvgMovable != wantMovable {
		t.Errorf("easy avg movable = %v, expected %v", stats[0].AvgMovable, wantMovable)
	}
	if stats[1].AvgMinMoves != float64(hell.MinMoves) {
		t.Errorf("hell avg min moves = %v, expected %d", stats[1].AvgMinMoves, hell.MinMoves)
	}
}
