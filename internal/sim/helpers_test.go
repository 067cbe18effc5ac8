package sim

import (
	"fmt"
	"strings"
	"testing"

	"github.com/nvandessel/hiveum/internal/ants"
	"github.com/nvandessel/hiveum/internal/symbols"
	"github.com/nvandessel/hiveum/internal/world"
)

// loadWorld parses a map description into a graph and symbol table.
func loadWorld(t *testing.T, text string) (*world.Graph, *symbols.Table) {
	t.Helper()
	tab := symbols.NewTable()
	g, err := world.Load(strings.NewReader(text), tab, world.LoadOptions{Strict: true})
	if err != nil {
		t.Fatalf("loadWorld: %v", err)
	}
	return g, tab
}

// snapshot returns a deep copy of the graph's current map.
func snapshot(g *world.Graph) world.Map {
	out := make(world.Map)
	g.View(func(m world.Map) {
		for colony, exits := range m {
			cp := make(world.Tunnels, len(exits))
			for dir, dest := range exits {
				cp[dir] = dest
			}
			out[colony] = cp
		}
	})
	return out
}

// handle returns the handle of an already interned name.
func handle(t *testing.T, tab *symbols.Table, name string) symbols.Handle {
	t.Helper()
	h, ok := tab.Lookup(name)
	if !ok {
		t.Fatalf("handle: %q was never interned", name)
	}
	return h
}

// place builds an ant set with ids 0..len(names)-1 at the named colonies.
func place(t *testing.T, tab *symbols.Table, names ...string) ants.Set {
	t.Helper()
	set := make(ants.Set, len(names))
	for i, n := range names {
		set[i] = ants.Ant{ID: i, At: handle(t, tab, n)}
	}
	return set
}

// gridMap renders an n x n bidirectional grid in map file format.
func gridMap(n int) string {
	var b strings.Builder
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			fmt.Fprintf(&b, "c%d_%d", r, c)
			if r > 0 {
				fmt.Fprintf(&b, " north=c%d_%d", r-1, c)
			}
			if r < n-1 {
				fmt.Fprintf(&b, " south=c%d_%d", r+1, c)
			}
			if c < n-1 {
				fmt.Fprintf(&b, " east=c%d_%d", r, c+1)
			}
			if c > 0 {
				fmt.Fprintf(&b, " west=c%d_%d", r, c-1)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// assertInvariants checks that every ant stands on a colony and no tunnel
// leads to a missing colony.
func assertInvariants(t *testing.T, g *world.Graph, set ants.Set) {
	t.Helper()
	g.View(func(m world.Map) {
		for _, a := range set {
			if _, ok := m[a.At]; !ok {
				t.Errorf("ant %d stands on missing colony %d", a.ID, a.At)
			}
		}
		if d := m.Dangling(); len(d) != 0 {
			t.Errorf("dangling tunnels: %v", d)
		}
	})
}

// mapsEqual reports whether two maps hold the same colonies and tunnels.
func mapsEqual(a, b world.Map) bool {
	if len(a) != len(b) {
		return false
	}
	for colony, exits := range a {
		other, ok := b[colony]
		if !ok || len(other) != len(exits) {
			return false
		}
		for dir, dest := range exits {
			if d, ok := other[dir]; !ok || d != dest {
				return false
			}
		}
	}
	return true
}
