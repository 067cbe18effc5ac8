package sim

import (
	"math/rand/v2"

	"github.com/nvandessel/hiveum/internal/ants"
)

// ChooserFactory returns the random source used by movement chunk i.
// Each returned Chooser is used by one goroutine at a time.
type ChooserFactory func(chunk int) ants.Chooser

// NewRandomChooser returns an independently seeded PCG generator.
func NewRandomChooser() ants.Chooser {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// RandomChoosers is the default factory: a fresh generator per chunk.
func RandomChoosers(int) ants.Chooser {
	return NewRandomChooser()
}

// FixedChooser always picks the same index, reduced modulo n.
type FixedChooser int

// IntN implements ants.Chooser.
func (c FixedChooser) IntN(n int) int {
	return int(c) % n
}

// ScriptedChooser replays Picks in order, each reduced modulo n. Once the
// script is exhausted it keeps returning 0.
type ScriptedChooser struct {
	Picks []int
	pos   int
}

// IntN implements ants.Chooser.
func (c *ScriptedChooser) IntN(n int) int {
	if c.pos >= len(c.Picks) {
		return 0
	}
	v := c.Picks[c.pos] % n
	c.pos++
	return v
}

// SameChooser returns a factory handing every chunk the same Chooser.
// Only safe when movement runs with a single worker.
func SameChooser(c ants.Chooser) ChooserFactory {
	return func(int) ants.Chooser { return c }
}
