package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/circuitgen/internal/circuit"
)

const fileName = "circuitgen.yaml"

// Load loads the circuitgen configuration.
// Search order: customPath -> ~/.circuitgen/configs/circuitgen.yaml ->
// ./configs/circuitgen.yaml -> embedded default -> DefaultConfig().
// Each file is read on top of DefaultConfig, so partial files are fine.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, cfg.Validate()
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", fileName)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, cfg.Validate()
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".circuitgen", "configs", filename)
}

// Validate checks values that would otherwise fail later inside a run.
func (c Config) Validate() error {
	if _, err := circuit.ParseTier(c.Generation.Difficulty); err != nil {
		return fmt.Errorf("config: generation.difficulty: %w", err)
	}
	if c.Generation.MaxAttempts < 1 {
		return fmt.Errorf("config: generation.max_attempts must be at least 1, got %d", c.Generation.MaxAttempts)
	}
	if c.Generation.GridSize != 0 && c.Generation.GridSize < 2 {
		return fmt.Errorf("config: generation.grid_size must be 0 or at least 2, got %d", c.Generation.GridSize)
	}
	switch c.Storage.Driver {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("config: storage.driver %q (want sqlite or postgres)", c.Storage.Driver)
	}

	for name := range c.Profiles {
		tier, err := circuit.ParseTier(name)
		if err != nil {
			return fmt.Errorf("config: profiles: %w", err)
		}
		if err := c.ProfileFor(tier).Check(); err != nil {
			return fmt.Errorf("config: profiles.%s: %w", name, err)
		}
	}
	return nil
}

// Tier returns the configured default difficulty, Easy if it does not parse.
func (c Config) Tier() circuit.Tier {
	t, err := circuit.ParseTier(c.Generation.Difficulty)
	if err != nil {
		return circuit.Easy
	}
	return t
}
