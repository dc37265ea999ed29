package config

import (
	_ "embed"
)

//go:embed defaults/circuitgen.yaml
var defaultYAML []byte

// DefaultConfig returns the hard-coded configuration.
// It matches defaults/circuitgen.yaml.
func DefaultConfig() Config {
	return Config{
		Generation: GenerationConfig{
			Difficulty:  "easy",
			GridSize:    0,
			MaxAttempts: 50,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			Path:   "~/.circuitgen/levels.db",
			Postgres: PostgresConfig{
				Host:     "localhost",
				Port:     5432,
				Database: "circuitgen",
				SSLMode:  "disable",
			},
		},
		Levels: LevelsConfig{
			Dir: "levels",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
