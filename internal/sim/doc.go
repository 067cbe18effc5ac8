// Package sim runs the ant simulation.
//
// Each tick has two phases separated by a hard barrier:
//
//  1. Movement: the ant set is split into contiguous chunks that a fixed
//     pool of goroutines relocates in parallel while holding the world
//     graph for shared access. Each chunk belongs to exactly one goroutine.
//  2. Collision: a single goroutine holds the world graph exclusively,
//     destroys every colony hosting two or more ants, severs the tunnels
//     neighbours had into it, and drops the dead ants.
//
// The Engine repeats ticks until no ant is left, the tick budget is spent,
// or its context is cancelled between ticks.
//
// Usage:
//
//	eng := sim.New(sim.Options{Graph: g, Symbols: tab, Ants: set})
//	res := eng.Run(ctx)
//	fmt.Println(res.State, res.Ticks)
package sim
