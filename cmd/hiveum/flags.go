package main

import (
	"fmt"

	"github.com/nvandessel/hiveum/internal/config"
	"github.com/spf13/cobra"
)

// loadConfig resolves the effective configuration for cmd:
// defaults -> config file -> environment -> flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.HiveumConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	applyFlagOverrides(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyFlagOverrides copies explicitly set flags into cfg. Flags the
// command does not define are skipped.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.HiveumConfig) {
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("ants") {
		cfg.Simulation.Ants, _ = flags.GetInt("ants")
	}
	if changed("max-ticks") {
		cfg.Simulation.MaxTicks, _ = flags.GetInt("max-ticks")
	}
	if changed("workers") {
		cfg.Simulation.Workers, _ = flags.GetInt("workers")
	}
	if changed("map") {
		cfg.Simulation.Map, _ = flags.GetString("map")
	}
	if changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if changed("events") {
		cfg.Logging.Events, _ = flags.GetString("events")
	}
	if changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if changed("db") {
		cfg.Output.DB, _ = flags.GetString("db")
	}
}
