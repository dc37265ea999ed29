// Package config provides YAML-based configuration loading for circuitgen:
// generation defaults, logging, the level archive and per-tier profile overrides.
package config

// Config is the complete circuitgen configuration.
type Config struct {
	Generation GenerationConfig           `yaml:"generation"`
	Logging    LoggingConfig              `yaml:"logging"`
	Storage    StorageConfig              `yaml:"storage"`
	Levels     LevelsConfig               `yaml:"levels"`
	Profiles   map[string]ProfileOverride `yaml:"profiles"` // Keyed by tier name
}

// GenerationConfig holds the defaults for a generation run.
type GenerationConfig struct {
	Difficulty     string `yaml:"difficulty"`
	GridSize       int    `yaml:"grid_size"`        // 0 = sample from the tier's range
	MaxAttempts    int    `yaml:"max_attempts"`     // Attempts before giving up
	MaxSearchSteps int    `yaml:"max_search_steps"` // 0 = scaled to the grid
}

// LoggingConfig controls the logger built by the logging package.
type LoggingConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error
	File       string `yaml:"file"`  // Empty = stderr only
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// StorageConfig selects and configures the level archive database.
type StorageConfig struct {
	Driver   string         `yaml:"driver"` // "sqlite" or "postgres"
	Path     string         `yaml:"path"`   // SQLite file, ~ is expanded
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// LevelsConfig points at the directory of YAML level files.
type LevelsConfig struct {
	Dir string `yaml:"dir"`
}

// ProfileOverride replaces selected fields of a tier's static profile.
// Nil fields keep the static value.
type ProfileOverride struct {
	Movable       *RangeConfig `yaml:"movable,omitempty"`
	Corners       *RangeConfig `yaml:"corners,omitempty"`
	ScrambleRatio *float64     `yaml:"scramble_ratio,omitempty"`
	GridSize      *RangeConfig `yaml:"grid_size,omitempty"`
}

// RangeConfig is an inclusive integer range.
type RangeConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}
