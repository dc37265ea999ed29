package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestNewDialect(t *testing.T) {
	if _, ok := NewDialect(DialectPostgres).(*PostgresDialect); !ok {
		t.Error("expected *PostgresDialect")
	}
	if _, ok := NewDialect(DialectSQLite).(*SQLiteDialect); !ok {
		t.Error("expected *SQLiteDialect")
	}
	// Unknown dialect should default to SQLite
	if _, ok := NewDialect("unknown").(*SQLiteDialect); !ok {
		t.Error("expected default *SQLiteDialect")
	}
}

func TestRebind(t *testing.T) {
	query := "SELECT id FROM levels WHERE difficulty = ? LIMIT ?"

	if got := rebind(&SQLiteDialect{}, query); got != query {
		t.Errorf("sqlite rebind = %q", got)
	}
	want := "SELECT id FROM levels WHERE difficulty = $1 LIMIT $2"
	if got := rebind(&PostgresDialect{}, query); got != want {
		t.Errorf("postgres rebind = %q, want %q", got, want)
	}
}

func TestDuplicateKeyDetection(t *testing.T) {
	sqlite := &SQLiteDialect{}
	if !sqlite.IsDuplicateKeyError(errors.New("constraint failed: UNIQUE constraint failed: levels.level_id (2067)")) {
		t.Error("sqlite unique violation not detected")
	}
	if sqlite.IsDuplicateKeyError(nil) || sqlite.IsDuplicateKeyError(errors.New("disk I/O error")) {
		t.Error("sqlite false positive")
	}

	pg := &PostgresDialect{}
	wrapped := fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})
	if !pg.IsDuplicateKeyError(wrapped) {
		t.Error("postgres unique violation not detected")
	}
	if pg.IsDuplicateKeyError(&pq.Error{Code: "23503"}) || pg.IsDuplicateKeyError(nil) {
		t.Error("postgres false positive")
	}
}

func TestPostgresDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      PostgresConfig
		expected string
	}{
		{
			"all fields",
			PostgresConfig{Host: "db", User: "u", Password: "p", Database: "levels"},
			"host='db' port=5432 user='u' password='p' dbname='levels' sslmode='disable'",
		},
		{
			"empty user and password",
			PostgresConfig{Host: "localhost", Port: 5433, Database: "circuitgen", SSLMode: "require"},
			"host='localhost' port=5433 dbname='circuitgen' sslmode='require'",
		},
		{
			"spaces and quotes",
			PostgresConfig{Host: "db", User: "level admin", Password: `a b'c\d`, Database: "levels"},
			`host='db' port=5432 user='level admin' password='a b\'c\\d' dbname='levels' sslmode='disable'`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dsn := tc.cfg.DSN()
			if dsn != tc.expected {
				t.Errorf("DSN() = %q, expected %q", dsn, tc.expected)
			}
			// lib/pq parses the options without dialing.
			if _, err := pq.NewConnector(dsn); err != nil {
				t.Errorf("lib/pq rejected %q: %v", dsn, err)
			}
		})
	}
}

func TestPostgresDialectSQL(t *testing.T) {
	d := &PostgresDialect{}
	if d.SupportsLastInsertID() || d.ReturningClause("id") != " RETURNING id" {
		t.Error("postgres inserts should use RETURNING")
	}
	if d.SerialPrimaryKey() != "BIGSERIAL PRIMARY KEY" || d.DriverName() != "postgres" {
		t.Error("unexpected postgres schema settings")
	}
}
