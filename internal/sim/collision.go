package sim

import (
	"cmp"
	"slices"

	"github.com/nvandessel/hiveum/internal/ants"
	"github.com/nvandessel/hiveum/internal/symbols"
	"github.com/nvandessel/hiveum/internal/world"
)

// Destruction records one colony destroyed during a collision phase.
type Destruction struct {
	Tick   int            `json:"tick"`
	Colony string         `json:"colony"`
	Handle symbols.Handle `json:"-"`
	// Ants lists every ant that died there, in ant set order.
	Ants []int `json:"ants"`
}

// severance is a pending tunnel deletion on a surviving neighbour.
type severance struct {
	colony    symbols.Handle
	direction symbols.Handle
	target    symbols.Handle
}

// Collide resolves collisions for one tick. Every colony hosting two or more
// ants is removed along with all ants on it, and each neighbour loses the
// opposite-direction tunnel that led back into it. Directions missing from
// opposites are left alone, as are one-way tunnels into a destroyed colony.
//
// When nothing collides Collide returns set unchanged without taking the
// graph's write lock. Destructions are ordered by colony handle.
func Collide(g *world.Graph, tab *symbols.Table, set ants.Set, opposites map[string]string, tick int) (ants.Set, []Destruction) {
	var destroyed []Destruction
	dead := make(map[int]struct{})
	for colony, ids := range set.Occupancy() {
		if len(ids) < 2 {
			continue
		}
		destroyed = append(destroyed, Destruction{
			Tick:   tick,
			Colony: tab.MustResolve(colony),
			Handle: colony,
			Ants:   ids,
		})
		for _, id := range ids {
			dead[id] = struct{}{}
		}
	}
	if len(destroyed) == 0 {
		return set, nil
	}
	slices.SortFunc(destroyed, func(a, b Destruction) int {
		return cmp.Compare(a.Handle, b.Handle)
	})

	g.Update(func(m world.Map) {
		// Walk every doomed colony's exits before any colony is removed.
		var cuts []severance
		for _, d := range destroyed {
			for dir, dest := range m[d.Handle] {
				opp, ok := opposites[tab.MustResolve(dir)]
				if !ok {
					continue
				}
				cuts = append(cuts, severance{colony: dest, direction: tab.Intern(opp), target: d.Handle})
			}
		}

		for _, c := range cuts {
			exits, ok := m[c.colony]
			if !ok {
				continue
			}
			// Only a tunnel that leads back into the doomed colony is cut. On a
			// map with one-way tunnels the opposite direction may lead
			// elsewhere, and that tunnel survives.
			if dest, ok := exits[c.direction]; ok && dest == c.target {
				delete(exits, c.direction)
			}
		}

		for _, d := range destroyed {
			delete(m, d.Handle)
		}
	})

	return set.Without(dead), destroyed
}
