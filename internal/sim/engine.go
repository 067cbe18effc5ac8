package sim

import (
	"context"
	"log/slog"
	"time"

	"github.com/nvandessel/hiveum/internal/ants"
	"github.com/nvandessel/hiveum/internal/constants"
	"github.com/nvandessel/hiveum/internal/logging"
	"github.com/nvandessel/hiveum/internal/symbols"
	"github.com/nvandessel/hiveum/internal/world"
)

// State is the driver's lifecycle state.
type State int

const (
	// Running means more ticks will be executed.
	Running State = iota
	// AllAgentsDead is terminal: a collision phase left no ants.
	AllAgentsDead
	// BudgetExhausted is terminal: the tick budget ran out with ants alive.
	BudgetExhausted
	// Stopped is terminal: the run context was cancelled between ticks.
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AllAgentsDead:
		return "all-agents-dead"
	case BudgetExhausted:
		return "budget-exhausted"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Options configures an Engine. Graph and Symbols are required.
type Options struct {
	Graph   *world.Graph
	Symbols *symbols.Table
	Ants    ants.Set

	// Workers sizes the movement pool. Values < 1 mean one worker.
	Workers int
	// MaxTicks defaults to constants.MaxTicks.
	MaxTicks int
	// Opposites defaults to constants.OppositeDirections.
	Opposites map[string]string
	// Choosers defaults to RandomChoosers.
	Choosers ChooserFactory

	Observer Observer
	Logger   *slog.Logger
}

// Result summarizes a finished run for the reporter.
type Result struct {
	State        State
	Ticks        int
	Elapsed      time.Duration
	Alive        int
	Destructions []Destruction
}

// Engine is the simulation driver. It is not safe for concurrent use; the
// parallelism lives inside the movement phase.
type Engine struct {
	graph     *world.Graph
	symbols   *symbols.Table
	ants      ants.Set
	mover     *Mover
	maxTicks  int
	opposites map[string]string
	observer  Observer
	logger    *slog.Logger

	tick      int
	state     State
	destroyed []Destruction
}

// New creates an engine in the Running state at tick 0.
func New(opts Options) *Engine {
	e := &Engine{
		graph:     opts.Graph,
		symbols:   opts.Symbols,
		ants:      opts.Ants,
		mover:     NewMover(opts.Workers, opts.Choosers),
		maxTicks:  opts.MaxTicks,
		opposites: opts.Opposites,
		observer:  opts.Observer,
		logger:    opts.Logger,
	}
	if e.maxTicks <= 0 {
		e.maxTicks = constants.MaxTicks
	}
	if e.opposites == nil {
		e.opposites = constants.OppositeDirections
	}
	if e.observer == nil {
		e.observer = Observers(nil)
	}
	if e.logger == nil {
		e.logger = logging.Discard()
	}
	return e
}

// State returns the current state.
func (e *Engine) State() State { return e.state }

// Tick returns the number of ticks executed so far.
func (e *Engine) Tick() int { return e.tick }

// Ants returns the live ants. The slice is owned by the engine.
func (e *Engine) Ants() ants.Set { return e.ants }

// Step executes one full tick (movement then collision) and returns the
// resulting state. It is a no-op once a terminal state is reached.
func (e *Engine) Step() State {
	if e.state != Running {
		return e.state
	}

	e.mover.Move(e.graph, e.ants)

	var destroyed []Destruction
	e.ants, destroyed = Collide(e.graph, e.symbols, e.ants, e.opposites, e.tick)
	for _, d := range destroyed {
		e.observer.Destroyed(d)
	}
	e.destroyed = append(e.destroyed, destroyed...)

	if e.logger.Enabled(context.Background(), logging.LevelTrace) {
		for _, a := range e.ants {
			e.logger.Log(context.Background(), logging.LevelTrace, "ant position",
				"tick", e.tick, "ant", a.ID, "colony", e.symbols.MustResolve(a.At))
		}
	}
	e.logger.Debug("tick complete", "tick", e.tick, "alive", len(e.ants), "destroyed", len(destroyed))

	e.tick++
	switch {
	case len(e.ants) == 0:
		e.state = AllAgentsDead
		e.logger.Info("all ants are dead", "iteration", e.tick-1)
	case e.tick >= e.maxTicks:
		e.state = BudgetExhausted
		e.logger.Info("tick budget exhausted", "ticks", e.tick, "alive", len(e.ants))
	}
	return e.state
}

// Run ticks until a terminal state. Cancelling ctx stops the run at the
// next tick boundary; a tick in progress always completes.
func (e *Engine) Run(ctx context.Context) Result {
	start := time.Now()
	for e.state == Running {
		if ctx.Err() != nil {
			e.state = Stopped
			e.logger.Info("simulation stopped", "ticks", e.tick, "alive", len(e.ants))
			break
		}
		e.Step()
	}
	return Result{
		State:        e.state,
		Ticks:        e.tick,
		Elapsed:      time.Since(start),
		Alive:        len(e.ants),
		Destructions: e.destroyed,
	}
}
