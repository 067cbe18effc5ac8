// Package ants defines the live agent population and how it is spawned.
package ants

import (
	"errors"
	"fmt"

	"github.com/nvandessel/hiveum/internal/symbols"
)

// ErrEmptyWorldGraph is returned when ants are spawned into a world with no colonies.
var ErrEmptyWorldGraph = errors.New("world map is empty")

// Ant is a single agent. ID is assigned at spawn and never reused.
type Ant struct {
	ID int
	At symbols.Handle
}

// Set is the ordered collection of live ants.
type Set []Ant

// Chooser picks an index in [0, n). It must not be shared between goroutines.
type Chooser interface {
	IntN(n int) int
}

// Spawn places n ants, with ids 0..n-1, on colonies chosen uniformly at
// random. More ants than colonies is allowed; some start out colliding.
func Spawn(n int, colonies []symbols.Handle, rng Chooser) (Set, error) {
	if len(colonies) == 0 {
		return nil, ErrEmptyWorldGraph
	}
	if n < 0 {
		return nil, fmt.Errorf("spawn %d ants: count must be non-negative", n)
	}

	set := make(Set, n)
	for id := range set {
		set[id] = Ant{ID: id, At: colonies[rng.IntN(len(colonies))]}
	}
	return set, nil
}

// Occupancy groups ant ids by colony. Ids keep their order within the set.
func (s Set) Occupancy() map[symbols.Handle][]int {
	occ := make(map[symbols.Handle][]int, len(s))
	for _, a := range s {
		occ[a.At] = append(occ[a.At], a.ID)
	}
	return occ
}

// Without returns s with every ant in dead removed, preserving order.
// The backing array of s is reused.
func (s Set) Without(dead map[int]struct{}) Set {
	if len(dead) == 0 {
		return s
	}
	kept := s[:0]
	for _, a := range s {
		if _, ok := dead[a.ID]; !ok {
			kept = append(kept, a)
		}
	}
	return kept
}

// Chunks splits s into contiguous chunks of size max(1, len(s)/workers).
// The last chunk may be shorter. Chunks share the backing array of s.
func (s Set) Chunks(workers int) []Set {
	if len(s) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	size := max(1, len(s)/workers)

	chunks := make([]Set, 0, (len(s)+size-1)/size)
	for start := 0; start < len(s); start += size {
		end := min(start+size, len(s))
		chunks = append(chunks, s[start:end:end])
	}
	return chunks
}
