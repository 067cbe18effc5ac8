// Package config provides unified configuration loading for hiveum.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/nvandessel/hiveum/internal/constants"
	"gopkg.in/yaml.v3"
)

// HiveumConfig contains all hiveum configuration settings.
type HiveumConfig struct {
	// Simulation controls the world and the ants released into it.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Logging contains settings for operational and event logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Output controls how the surviving world is reported.
	Output OutputConfig `json:"output" yaml:"output"`
}

// SimulationConfig configures a single run.
type SimulationConfig struct {
	// Ants is the number of ants spawned at start.
	Ants int `json:"ants" yaml:"ants"`

	// MaxTicks caps the number of ticks before the run ends.
	MaxTicks int `json:"max_ticks" yaml:"max_ticks"`

	// Workers is the movement worker count. 0 means one per CPU.
	Workers int `json:"workers" yaml:"workers"`

	// Map is the path of the map file. Supports ${VAR} syntax.
	Map string `json:"map" yaml:"map"`
}

// EffectiveWorkers resolves Workers, substituting the CPU count for 0.
func (c SimulationConfig) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// LoggingConfig configures hiveum's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "trace" logs every ant position on every tick.
	Level string `json:"level" yaml:"level"`

	// Events is the JSONL event log path. A ".zst" suffix compresses it.
	// Empty disables the event log.
	Events string `json:"events,omitempty" yaml:"events,omitempty"`
}

// OutputConfig configures reporting.
type OutputConfig struct {
	// Format is "text", "dot", or "json".
	Format string `json:"format" yaml:"format"`

	// DB is the SQLite file runs are recorded in. Empty disables recording.
	DB string `json:"db,omitempty" yaml:"db,omitempty"`
}

// Default returns a HiveumConfig with sensible defaults.
func Default() *HiveumConfig {
	return &HiveumConfig{
		Simulation: SimulationConfig{
			Ants:     constants.DefaultAnts,
			MaxTicks: constants.MaxTicks,
			Workers:  0,
			Map:      constants.DefaultMapPath,
		},
		Logging: LoggingConfig{
			Level: constants.LogLevelInfo,
		},
		Output: OutputConfig{
			Format: string(constants.FormatText),
		},
	}
}

// DefaultPath returns ~/.hiveum/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".hiveum", "config.yaml"), nil
}

// Load loads configuration from path, or from the default location when path
// is empty, then applies environment variables.
// Order: defaults -> config file -> environment variables
//
// A missing default config file is not an error. A missing explicit one is.
func Load(path string) (*HiveumConfig, error) {
	config := Default()

	if path == "" {
		if p, err := DefaultPath(); err == nil {
			if _, statErr := os.Stat(p); statErr == nil {
				path = p
			}
		}
	}

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

	// Apply environment variable overrides
	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*HiveumConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Expand environment variables in paths
	config.Simulation.Map = expandEnvVars(config.Simulation.Map)
	config.Logging.Events = expandEnvVars(config.Logging.Events)
	config.Output.DB = expandEnvVars(config.Output.DB)

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *HiveumConfig) Validate() error {
	if c.Simulation.Ants < 0 {
		return fmt.Errorf("ants must be non-negative, got %d", c.Simulation.Ants)
	}

	if c.Simulation.MaxTicks <= 0 {
		return fmt.Errorf("max_ticks must be positive, got %d", c.Simulation.MaxTicks)
	}

	if c.Simulation.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Simulation.Workers)
	}

	if c.Simulation.Map == "" {
		return fmt.Errorf("map path is required")
	}

	validLevels := map[string]bool{
		constants.LogLevelInfo:  true,
		constants.LogLevelDebug: true,
		constants.LogLevelTrace: true,
	}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	if !constants.Format(c.Output.Format).Valid() {
		return fmt.Errorf("invalid output format: %s (valid: text, dot, json)", c.Output.Format)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Unparseable numbers are ignored.
func applyEnvOverrides(config *HiveumConfig) {
	if v := os.Getenv("HIVEUM_ANTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.Ants = n
		}
	}
	if v := os.Getenv("HIVEUM_MAX_TICKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.MaxTicks = n
		}
	}
	if v := os.Getenv("HIVEUM_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.Workers = n
		}
	}
	if v := os.Getenv("HIVEUM_MAP"); v != "" {
		config.Simulation.Map = v
	}

	if v := os.Getenv("HIVEUM_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("HIVEUM_EVENTS"); v != "" {
		config.Logging.Events = v
	}

	if v := os.Getenv("HIVEUM_FORMAT"); v != "" {
		config.Output.Format = v
	}
	if v := os.Getenv("HIVEUM_DB"); v != "" {
		config.Output.DB = v
	}
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, os.Getenv)
}
