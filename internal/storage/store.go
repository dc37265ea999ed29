// Package storage archives generated levels in a SQL database.
// SQLite (pure-Go modernc.org/sqlite) is the default; PostgreSQL is
// available through lib/pq.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/circuitgen/internal/circuit"
	"github.com/vovakirdan/circuitgen/internal/levels"
	"github.com/vovakirdan/circuitgen/internal/levels/formats"
)

var (
	// ErrDuplicateLevel is returned when a level with the same id is already archived.
	ErrDuplicateLevel = errors.New("storage: level already archived")

	// ErrNotFound is returned when no archived level has the requested id.
	ErrNotFound = errors.New("storage: level not found")
)

// Store manages the database connection for the level archive.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// LevelSummary is an archived level without its tiles.
type LevelSummary struct {
	ID         int64
	LevelID    string
	Name       string
	Difficulty circuit.Tier
	GridSize   int
	Seed       uint64
	Movable    int
	Corners    int
	Scrambled  int
	MinMoves   int
	Attempts   int
	CreatedAt  time.Time
}

// LevelRecord is a complete archived level.
type LevelRecord struct {
	LevelSummary
	Puzzle *circuit.Level
}

// DifficultyStat aggregates the archive for one tier.
type DifficultyStat struct {
	Difficulty  circuit.Tier
	Count       int
	AvgMovable  float64
	AvgCorners  float64
	AvgMinMoves float64
}

// Open connects to the archive described by cfg and runs migrations.
// For SQLite it expands ~ and creates the parent directories.
func Open(cfg Config) (*Store, error) {
	dialect := NewDialect(DialectType(cfg.Driver))

	var dsn string
	switch dialect.(type) {
	case *PostgresDialect:
		dsn = cfg.Postgres.DSN()
	default:
		path, err := prepareSQLitePath(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		dsn = path
	}

	// Open database
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("storage: %s: %w", stmt, err)
		}
	}

	store := &Store{db: db, dialect: dialect}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// OpenSQLite opens a SQLite archive at path.
func OpenSQLite(path string) (*Store, error) {
	return Open(DefaultConfig(path))
}

func prepareSQLitePath(dbPath string) (string, error) {
	if dbPath == "" {
		return "", errors.New("storage: empty sqlite path")
	}

	// Expand ~ to home directory
	if dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}
	return dbPath, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	migrations := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS levels (
			id %s,
			level_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL,
			grid_size INTEGER NOT NULL,
			seed TEXT NOT NULL,
			movable INTEGER NOT NULL,
			corners INTEGER NOT NULL,
			scrambled INTEGER NOT NULL,
			min_moves INTEGER NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0,
			body TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, s.dialect.SerialPrimaryKey()),
		`CREATE INDEX IF NOT EXISTS idx_levels_difficulty ON levels(difficulty)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveLevel archives a level under levels.ID(l) with a display name.
// Returns the row ID of the inserted record.
func (s *Store) SaveLevel(l *circuit.Level, name string) (int64, error) {
	levelID := levels.ID(l)
	body, err := formats.MarshalYAML(l, formats.Meta{ID: levelID, Name: name})
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode level %s: %w", levelID, err)
	}

	query := rebind(s.dialect, `INSERT INTO levels
		(level_id, name, difficulty, grid_size, seed, movable, corners, scrambled, min_moves, attempts, body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	args := []any{
		levelID, name, l.Difficulty.String(), l.GridSize, formatSeed(l.Seed),
		l.MovableCount, l.CornerCount, l.ScrambledCount, l.MinMoves, l.Attempts, string(body),
	}

	var id int64
	if s.dialect.SupportsLastInsertID() {
		result, err := s.db.Exec(query, args...)
		if err != nil {
			return 0, s.insertError(levelID, err)
		}
		if id, err = result.LastInsertId(); err != nil {
			return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
		}
		return id, nil
	}

	query += s.dialect.ReturningClause("id")
	if err := s.db.QueryRow(query, args...).Scan(&id); err != nil {
		return 0, s.insertError(levelID, err)
	}
	return id, nil
}

func (s *Store) insertError(levelID string, err error) error {
	if s.dialect.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateLevel, levelID)
	}
	return fmt.Errorf("storage: cannot save level %s: %w", levelID, err)
}

const summaryColumns = `id, level_id, name, difficulty, grid_size, seed,
	movable, corners, scrambled, min_moves, attempts, created_at`

// LevelByID loads an archived level, tiles included.
func (s *Store) LevelByID(levelID string) (LevelRecord, error) {
	row := s.db.QueryRow(
		rebind(s.dialect, `SELECT `+summaryColumns+`, body FROM levels WHERE level_id = ?`),
		levelID,
	)

	var rec LevelRecord
	var body string
	if err := scanSummary(row, &rec.LevelSummary, &body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LevelRecord{}, fmt.Errorf("%w: %s", ErrNotFound, levelID)
		}
		return LevelRecord{}, fmt.Errorf("storage: cannot load level %s: %w", levelID, err)
	}

	parsed, err := formats.ParseYAML([]byte(body))
	if err != nil {
		return LevelRecord{}, fmt.Errorf("storage: corrupt level %s: %w", levelID, err)
	}
	rec.Puzzle = parsed.Puzzle
	return rec, nil
}

// RecentLevels returns the most recently archived levels, newest first.
func (s *Store) RecentLevels(limit int) ([]LevelSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.querySummaries(
		`SELECT `+summaryColumns+` FROM levels ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

// LevelsByDifficulty returns the newest archived levels of one tier.
func (s *Store) LevelsByDifficulty(t circuit.Tier, limit int) ([]LevelSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.querySummaries(
		`SELECT `+summaryColumns+` FROM levels WHERE difficulty = ? ORDER BY id DESC LIMIT ?`,
		t.String(), limit,
	)
}

// DeleteLevel removes an archived level.
func (s *Store) DeleteLevel(levelID string) error {
	result, err := s.db.Exec(rebind(s.dialect, `DELETE FROM levels WHERE level_id = ?`), levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete level %s: %w", levelID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete level %s: %w", levelID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, levelID)
	}
	return nil
}

// DifficultyStats aggregates the archive per tier, easiest first.
// Tiers with no levels are omitted.
func (s *Store) DifficultyStats() ([]DifficultyStat, error) {
	rows, err := s.db.Query(
		`SELECT difficulty, COUNT(*), AVG(movable), AVG(corners), AVG(min_moves)
		 FROM levels
		 GROUP BY difficulty`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	var stats []DifficultyStat
	for rows.Next() {
		var st DifficultyStat
		var difficulty string
		if err := rows.Scan(&difficulty, &st.Count, &st.AvgMovable, &st.AvgCorners, &st.AvgMinMoves); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if st.Difficulty, err = circuit.ParseTier(difficulty); err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	slices.SortFunc(stats, func(a, b DifficultyStat) int {
		return int(a.Difficulty) - int(b.Difficulty)
	})
	return stats, nil
}

func (s *Store) querySummaries(query string, args ...any) ([]LevelSummary, error) {
	rows, err := s.db.Query(rebind(s.dialect, query), args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var out []LevelSummary
	for rows.Next() {
		var sum LevelSummary
		if err := scanSummary(rows, &sum); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanSummary reads summaryColumns followed by any extra destinations.
func scanSummary(sc scanner, sum *LevelSummary, extra ...any) error {
	var difficulty, seed string
	var createdAt any
	dest := []any{
		&sum.ID, &sum.LevelID, &sum.Name, &difficulty, &sum.GridSize, &seed,
		&sum.Movable, &sum.Corners, &sum.Scrambled, &sum.MinMoves, &sum.Attempts, &createdAt,
	}
	if err := sc.Scan(append(dest, extra...)...); err != nil {
		return err
	}

	var err error
	if sum.Difficulty, err = circuit.ParseTier(difficulty); err != nil {
		return err
	}
	if sum.Seed, err = strconv.ParseUint(seed, 0, 64); err != nil {
		return fmt.Errorf("seed %q: %w", seed, err)
	}
	sum.CreatedAt = parseTime(createdAt)
	return nil
}

// parseTime handles drivers that return either time.Time or text timestamps.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.DateTime, t); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := time.Parse(time.DateTime, string(t)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func formatSeed(seed uint64) string {
	return fmt.Sprintf("%#x", seed)
}
