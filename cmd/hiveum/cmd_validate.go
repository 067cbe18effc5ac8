package main

import (
	"encoding/json"
	"fmt"

	"github.com/nvandessel/hiveum/internal/constants"
	"github.com/nvandessel/hiveum/internal/symbols"
	"github.com/nvandessel/hiveum/internal/world"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a colony map for malformed lines and broken tunnels",
		Long: `Load a map strictly and report tunnels the simulation cannot sever cleanly:
dangling destinations, self-loops, unknown directions and one-way tunnels.

A destination that never gets a line of its own is reported as dangling;
"hiveum run" would treat it as an exit-less colony.

Issues are warnings; the command fails only if the map cannot be parsed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")

			tab := symbols.NewTable()
			g, err := world.LoadFile(cfg.Simulation.Map, tab, world.LoadOptions{Strict: true, KeepDangling: true})
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			var issues []world.Issue
			g.View(func(m world.Map) {
				issues = world.Check(m, tab, constants.OppositeDirections)
			})

			if jsonOut {
				if issues == nil {
					issues = []world.Issue{}
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"map":      cfg.Simulation.Map,
					"colonies": g.Len(),
					"issues":   issues,
				})
			}

			out := cmd.OutOrStdout()
			if len(issues) == 0 {
				fmt.Fprintf(out, "✓ %s: %d colonies, no issues found\n", cfg.Simulation.Map, g.Len())
				return nil
			}
			fmt.Fprintf(out, "%s: %d colonies, %d issues\n", cfg.Simulation.Map, g.Len(), len(issues))
			for _, issue := range issues {
				fmt.Fprintf(out, "  ⚠ %s\n", issue)
			}
			return nil
		},
	}

	cmd.Flags().String("map", constants.DefaultMapPath, "Path to the colony map")
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}
