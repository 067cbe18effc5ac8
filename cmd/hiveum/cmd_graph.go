package main

import (
	"fmt"

	"github.com/nvandessel/hiveum/internal/constants"
	"github.com/nvandessel/hiveum/internal/report"
	"github.com/nvandessel/hiveum/internal/symbols"
	"github.com/nvandessel/hiveum/internal/world"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render a colony map without simulating it",
		Long: `Render a colony map as Graphviz DOT (default), JSON or text.

Examples:
  hiveum graph --map maps/small.txt | dot -Tsvg > map.svg
  hiveum graph --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			format := constants.Format(cfg.Output.Format)
			if !cmd.Flags().Changed("format") && cfg.Output.Format == string(constants.FormatText) {
				format = constants.FormatDOT
			}

			tab := symbols.NewTable()
			g, err := world.LoadFile(cfg.Simulation.Map, tab, world.LoadOptions{})
			if err != nil {
				return fmt.Errorf("failed to load map: %w", err)
			}

			var r report.Report
			g.View(func(m world.Map) {
				r = report.FromMap(m, tab)
			})
			return report.Render(cmd.OutOrStdout(), format, r)
		},
	}

	cmd.Flags().String("map", constants.DefaultMapPath, "Path to the colony map")
	cmd.Flags().String("format", string(constants.FormatDOT), "Output format: dot, json, text")
	return cmd
}
