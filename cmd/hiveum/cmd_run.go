package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/nvandessel/hiveum/internal/ants"
	"github.com/nvandessel/hiveum/internal/config"
	"github.com/nvandessel/hiveum/internal/constants"
	"github.com/nvandessel/hiveum/internal/logging"
	"github.com/nvandessel/hiveum/internal/report"
	"github.com/nvandessel/hiveum/internal/sim"
	"github.com/nvandessel/hiveum/internal/store"
	"github.com/nvandessel/hiveum/internal/symbols"
	"github.com/nvandessel/hiveum/internal/world"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [ANTS]",
		Short: "Release ants into a map and report the surviving colonies",
		Long: `Load a colony map, spawn ants on random colonies, and simulate until
every ant is dead or the tick budget is spent.

The ant count may be given as a positional argument or with --ants.
Ctrl-C stops the run after the tick in progress and still prints the report.

Examples:
  hiveum run 100
  hiveum run --ants 5000 --map maps/large.txt --workers 8
  hiveum run 50 --format json --db ~/.hiveum/runs.db
  hiveum run 50 --events run.jsonl.zst --log-level debug`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 0 {
					return fmt.Errorf("invalid ant count %q: must be a non-negative integer", args[0])
				}
				cfg.Simulation.Ants = n
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			return runSimulation(ctx, cmd, cfg)
		},
	}

	cmd.Flags().Int("ants", constants.DefaultAnts, "Number of ants to spawn")
	cmd.Flags().String("map", constants.DefaultMapPath, "Path to the colony map")
	cmd.Flags().Int("workers", 0, "Movement workers (0 = one per CPU)")
	cmd.Flags().Int("max-ticks", constants.MaxTicks, "Tick budget")
	cmd.Flags().String("format", string(constants.FormatText), "Report format: text, dot, json")
	cmd.Flags().String("events", "", "Append a JSONL event log to this path (.zst compresses)")
	cmd.Flags().String("db", "", "Record the run in this SQLite database")
	cmd.Flags().String("log-level", constants.LogLevelInfo, "Log level: info, debug, trace")

	return cmd
}

// runSimulation performs one complete run described by cfg.
func runSimulation(ctx context.Context, cmd *cobra.Command, cfg *config.HiveumConfig) (retErr error) {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	format := constants.Format(cfg.Output.Format)
	logger := logging.NewLogger(cfg.Logging.Level, errOut)

	// Destruction notices share stdout with the text report only.
	console := out
	if format != constants.FormatText {
		console = errOut
	}

	events, err := logging.NewEventLogger(cfg.Logging.Events)
	if err != nil {
		return fmt.Errorf("failed to open event log: %w", err)
	}
	defer func() {
		if err := events.Close(); err != nil && retErr == nil {
			retErr = fmt.Errorf("failed to close event log: %w", err)
		}
	}()

	fmt.Fprint(console, "Building world map...")
	tab := symbols.NewTable()
	g, err := world.LoadFile(cfg.Simulation.Map, tab, world.LoadOptions{})
	if err != nil {
		fmt.Fprintln(console)
		return fmt.Errorf("failed to load map: %w", err)
	}
	fmt.Fprintln(console, " done")

	colonies := g.Colonies()
	if cfg.Simulation.Ants > len(colonies) {
		logger.Warn("more ants than colonies, some will collide on the first tick",
			"ants", cfg.Simulation.Ants, "colonies", len(colonies))
	}
	set, err := ants.Spawn(cfg.Simulation.Ants, colonies, sim.NewRandomChooser())
	if err != nil {
		return fmt.Errorf("failed to spawn ants: %w", err)
	}

	run := store.Run{
		ID:        store.NewRunID(),
		StartedAt: time.Now(),
		MapPath:   cfg.Simulation.Map,
		Ants:      cfg.Simulation.Ants,
		Workers:   cfg.Simulation.EffectiveWorkers(),
	}
	logger = logger.With("run_id", run.ID)
	logger.Info("simulation starting",
		"map", run.MapPath, "colonies", len(colonies), "ants", run.Ants,
		"workers", run.Workers, "max_ticks", cfg.Simulation.MaxTicks)
	events.Log(map[string]any{
		"event":     "run_started",
		"run_id":    run.ID,
		"map":       run.MapPath,
		"colonies":  len(colonies),
		"ants":      run.Ants,
		"workers":   run.Workers,
		"max_ticks": cfg.Simulation.MaxTicks,
	})

	engine := sim.New(sim.Options{
		Graph:    g,
		Symbols:  tab,
		Ants:     set,
		Workers:  run.Workers,
		MaxTicks: cfg.Simulation.MaxTicks,
		Observer: sim.Observers{
			sim.ConsoleObserver(console),
			sim.LogObserver(logger),
			sim.EventObserver(events),
		},
		Logger: logger,
	})
	res := engine.Run(ctx)

	logger.Info("simulation finished",
		"state", res.State.String(), "ticks", res.Ticks, "alive", res.Alive,
		"destroyed", len(res.Destructions), "elapsed", res.Elapsed)
	events.Log(map[string]any{
		"event":      "run_finished",
		"run_id":     run.ID,
		"state":      res.State.String(),
		"ticks":      res.Ticks,
		"alive":      res.Alive,
		"destroyed":  len(res.Destructions),
		"elapsed_ms": res.Elapsed.Milliseconds(),
	})

	run.Report = report.FromResult(g, tab, res)
	if err := report.Render(out, format, run.Report); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if cfg.Output.DB != "" {
		rs, err := openRunStore(cfg.Output.DB)
		if err != nil {
			return err
		}
		defer rs.Close()
		if err := recordRun(context.WithoutCancel(ctx), rs, run); err != nil {
			return err
		}
		logger.Info("run recorded", "db", cfg.Output.DB)
	}
	return nil
}

// recordRun saves run to rs.
func recordRun(ctx context.Context, rs store.RunStore, run store.Run) error {
	if err := rs.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}
