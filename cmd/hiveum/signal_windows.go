//go:build windows

package main

import (
	"os"
	"os/signal"
)

// notifySignals relays shutdown signals to ch so a run can stop between ticks.
// Windows only delivers os.Interrupt (Ctrl+C).
func notifySignals(ch chan<- os.Signal) {
	signal.Notify(ch, os.Interrupt)
}
