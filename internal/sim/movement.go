package sim

import (
	"golang.org/x/sync/errgroup"

	"github.com/nvandessel/hiveum/internal/ants"
	"github.com/nvandessel/hiveum/internal/symbols"
	"github.com/nvandessel/hiveum/internal/world"
)

// Mover runs the movement phase on a fixed-size goroutine pool.
type Mover struct {
	workers  int
	factory  ChooserFactory
	choosers []ants.Chooser
}

// NewMover creates a mover with the given pool size. workers < 1 is treated as 1.
func NewMover(workers int, factory ChooserFactory) *Mover {
	if workers < 1 {
		workers = 1
	}
	if factory == nil {
		factory = RandomChoosers
	}
	return &Mover{workers: workers, factory: factory}
}

// Move relocates every ant in set in place. The graph is held for shared
// access for the whole phase and is never modified.
func (mv *Mover) Move(g *world.Graph, set ants.Set) {
	chunks := set.Chunks(mv.workers)
	for len(mv.choosers) < len(chunks) {
		mv.choosers = append(mv.choosers, mv.factory(len(mv.choosers)))
	}

	g.View(func(m world.Map) {
		var eg errgroup.Group
		eg.SetLimit(mv.workers)
		for i, chunk := range chunks {
			rng := mv.choosers[i]
			eg.Go(func() error {
				moveChunk(m, chunk, rng)
				return nil
			})
		}
		_ = eg.Wait()
	})
}

// moveChunk moves each ant to a uniformly chosen destination. Ants in an
// exit-less or missing colony stay put; staying counts as their move.
func moveChunk(m world.Map, chunk ants.Set, rng ants.Chooser) {
	var dests []symbols.Handle
	for i := range chunk {
		exits := m[chunk[i].At]
		if len(exits) == 0 {
			continue
		}
		dests = exits.AppendDestinations(dests[:0])
		chunk[i].At = dests[rng.IntN(len(dests))]
	}
}
