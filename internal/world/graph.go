// Package world holds the colony graph shared by every simulation phase.
//
// The graph is guarded by a single reader-writer lock used as a phase
// barrier: the movement phase holds it shared for the whole phase through
// View, the collision phase holds it exclusively through Update. There is no
// per-colony locking.
package world

import (
	"slices"
	"sync"

	"github.com/nvandessel/hiveum/internal/symbols"
)

// Tunnels maps a direction handle to the destination colony handle.
type Tunnels map[symbols.Handle]symbols.Handle

// Map maps a colony handle to its outgoing tunnels. A colony with no
// entries is exit-less.
type Map map[symbols.Handle]Tunnels

// Tunnel is a single directed, labeled edge.
type Tunnel struct {
	From      symbols.Handle
	Direction symbols.Handle
	To        symbols.Handle
}

// Graph is the shared, lock-protected world.
type Graph struct {
	mu       sync.RWMutex
	colonies Map
}

// New wraps m. The graph takes ownership of m; callers must not keep using it.
func New(m Map) *Graph {
	if m == nil {
		m = make(Map)
	}
	return &Graph{colonies: m}
}

// View runs fn with shared access. fn must not modify m or retain it.
func (g *Graph) View(fn func(m Map)) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	fn(g.colonies)
}

// Update runs fn with exclusive access.
func (g *Graph) Update(fn func(m Map)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.colonies)
}

// Len returns the number of colonies.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.colonies)
}

// Colonies returns every colony handle in ascending order.
func (g *Graph) Colonies() []symbols.Handle {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.colonies.Colonies()
}

// Colonies returns every colony handle in ascending order.
func (m Map) Colonies() []symbols.Handle {
	hs := make([]symbols.Handle, 0, len(m))
	for h := range m {
		hs = append(hs, h)
	}
	slices.Sort(hs)
	return hs
}

// Tunnels returns every tunnel in m ordered by source then direction.
func (m Map) Tunnels() []Tunnel {
	var out []Tunnel
	for _, colony := range m.Colonies() {
		exits := m[colony]
		for _, dir := range exits.Directions() {
			out = append(out, Tunnel{From: colony, Direction: dir, To: exits[dir]})
		}
	}
	return out
}

// Dangling returns tunnels whose destination is not a colony of m.
func (m Map) Dangling() []Tunnel {
	var out []Tunnel
	for _, t := range m.Tunnels() {
		if _, ok := m[t.To]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// Directions returns the direction handles of t in ascending order.
func (t Tunnels) Directions() []symbols.Handle {
	dirs := make([]symbols.Handle, 0, len(t))
	for d := range t {
		dirs = append(dirs, d)
	}
	slices.Sort(dirs)
	return dirs
}

// AppendDestinations appends the destinations of t to buf ordered by
// direction handle and returns the extended slice. The order is stable so
// scripted random choices are reproducible.
func (t Tunnels) AppendDestinations(buf []symbols.Handle) []symbols.Handle {
	var scratch [8]symbols.Handle
	dirs := scratch[:0]
	for d := range t {
		dirs = append(dirs, d)
	}
	slices.Sort(dirs)
	for _, d := range dirs {
		buf = append(buf, t[d])
	}
	return buf
}
