package sim

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/nvandessel/hiveum/internal/logging"
)

// Observer is told about every destroyed colony, from the collision phase
// goroutine, in colony handle order within a tick.
type Observer interface {
	Destroyed(d Destruction)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(d Destruction)

// Destroyed implements Observer.
func (f ObserverFunc) Destroyed(d Destruction) { f(d) }

// Observers fans a destruction out to every member.
type Observers []Observer

// Destroyed implements Observer.
func (obs Observers) Destroyed(d Destruction) {
	for _, o := range obs {
		if o != nil {
			o.Destroyed(d)
		}
	}
}

// ConsoleObserver prints the classic one-line destruction notice to w.
func ConsoleObserver(w io.Writer) Observer {
	return ObserverFunc(func(d Destruction) {
		fmt.Fprintf(w, "%s has been destroyed by ant %d and ant %d!\n", d.Colony, d.Ants[0], d.Ants[1])
	})
}

// LogObserver records destructions on a structured logger.
func LogObserver(logger *slog.Logger) Observer {
	return ObserverFunc(func(d Destruction) {
		logger.Info("colony destroyed", "tick", d.Tick, "colony", d.Colony, "ants", d.Ants)
	})
}

// EventObserver appends destructions to a JSONL event log. A nil event
// logger yields a no-op observer.
func EventObserver(el *logging.EventLogger) Observer {
	return ObserverFunc(func(d Destruction) {
		el.Log(map[string]any{
			"event":  "colony_destroyed",
			"tick":   d.Tick,
			"colony": d.Colony,
			"ants":   d.Ants,
		})
	})
}
