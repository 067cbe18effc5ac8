package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/nvandessel/hiveum/internal/constants"
	"github.com/nvandessel/hiveum/internal/report"
	"github.com/nvandessel/hiveum/internal/store"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded with --db",
		Long: `List runs recorded with "hiveum run --db", newest first.

Examples:
  hiveum history --limit 5
  hiveum history show 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  hiveum history show 1b4e28ba-2fa1-11d2-883f-0016d3cca427 --format dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			jsonOut, _ := cmd.Flags().GetBool("json")

			rs, dbPath, err := openHistoryStore(cmd)
			if err != nil {
				return err
			}
			defer rs.Close()

			runs, err := rs.ListRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			if jsonOut {
				if runs == nil {
					runs = []store.RunSummary{}
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(runs)
			}

			if len(runs) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No runs recorded in %s\n", dbPath)
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTARTED\tMAP\tANTS\tSTATE\tTICKS\tALIVE\tDESTROYED")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					r.ID, humanize.Time(r.StartedAt), r.MapPath, humanize.Comma(int64(r.Ants)),
					r.Summary.State, humanize.Comma(int64(r.Summary.Ticks)),
					humanize.Comma(int64(r.Summary.Alive)), humanize.Comma(int64(r.Summary.Destroyed)))
			}
			return tw.Flush()
		},
	}

	cmd.PersistentFlags().String("db", "", "Run database (default ~/.hiveum/runs.db)")
	cmd.Flags().Int("limit", 20, "Maximum runs to list (0 = all)")
	cmd.Flags().Bool("json", false, "Output as JSON")

	cmd.AddCommand(newHistoryShowCmd())
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the final report of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, _, err := openHistoryStore(cmd)
			if err != nil {
				return err
			}
			defer rs.Close()

			run, err := rs.GetRun(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load run: %w", err)
			}

			format, _ := cmd.Flags().GetString("format")
			f := constants.Format(format)
			if f == constants.FormatText {
				fmt.Fprintf(cmd.OutOrStdout(), "Run %s started %s on %s with %s ants and %d workers\n",
					run.ID, run.StartedAt.Local().Format("2006-01-02 15:04:05"), run.MapPath,
					humanize.Comma(int64(run.Ants)), run.Workers)
				for _, d := range run.Report.Destructions {
					fmt.Fprintf(cmd.OutOrStdout(), "%s has been destroyed by ant %d and ant %d!\n",
						d.Colony, d.Ants[0], d.Ants[1])
				}
			}
			return report.Render(cmd.OutOrStdout(), f, run.Report)
		},
	}

	cmd.Flags().String("format", string(constants.FormatText), "Report format: text, dot, json")
	return cmd
}

// openHistoryStore opens the run database named by --db, HIVEUM_DB or the
// config file, falling back to ~/.hiveum/runs.db.
func openHistoryStore(cmd *cobra.Command) (store.RunStore, string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", err
	}

	dbPath := cfg.Output.DB
	if dbPath == "" {
		if dbPath, err = store.DefaultDBPath(); err != nil {
			return nil, "", fmt.Errorf("failed to resolve database path: %w", err)
		}
	}

	rs, err := openRunStore(dbPath)
	if err != nil {
		return nil, "", err
	}
	return rs, dbPath, nil
}

// openRunStore opens the SQLite run database at dbPath.
func openRunStore(dbPath string) (store.RunStore, error) {
	rs, err := store.NewSQLiteRunStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open run database: %w", err)
	}
	return rs, nil
}
