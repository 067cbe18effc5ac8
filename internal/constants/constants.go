// Package constants provides named constants used throughout the hiveum codebase.
// This centralizes magic numbers for better maintainability and documentation.
package constants

// Simulation defaults
const (
	// MaxTicks is the fixed tick budget. A run that still has live ants after
	// this many ticks ends in the BudgetExhausted state.
	MaxTicks = 10_000

	// DefaultAnts is the number of ants spawned when none is configured.
	DefaultAnts = 10

	// DefaultMapPath is the map file read when none is configured.
	DefaultMapPath = "./data/hiveum_map_small.txt"
)

// Direction names. Map files are case-sensitive and only these four are
// understood by the collision resolver.
const (
	North = "north"
	South = "south"
	East  = "east"
	West  = "west"
)

// DirectionOrder is the order in which tunnels are printed in reports.
var DirectionOrder = [...]string{North, South, East, West}

// OppositeDirections maps a direction to its reverse.
var OppositeDirections = map[string]string{
	North: South,
	South: North,
	East:  West,
	West:  East,
}

// Log levels accepted by configuration and the --log-level flag.
const (
	LogLevelInfo  = "info"
	LogLevelDebug = "debug"
	LogLevelTrace = "trace"
)
