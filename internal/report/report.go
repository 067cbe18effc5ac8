// Package report renders the surviving world in text, DOT, or JSON form.
package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/nvandessel/hiveum/internal/constants"
	"github.com/nvandessel/hiveum/internal/sim"
	"github.com/nvandessel/hiveum/internal/symbols"
	"github.com/nvandessel/hiveum/internal/world"
)

// Tunnel is one exit of a colony, resolved to names.
type Tunnel struct {
	Direction string `json:"direction"`
	Dest      string `json:"dest"`
}

// Colony is a surviving colony and its exits in print order.
type Colony struct {
	Name    string   `json:"name"`
	Tunnels []Tunnel `json:"tunnels"`
}

// Summary describes how a run ended.
type Summary struct {
	State     string `json:"state"`
	Ticks     int    `json:"ticks"`
	ElapsedMS int64  `json:"elapsed_ms"`
	Alive     int    `json:"alive"`
	Destroyed int    `json:"destroyed"`
}

// Report is everything a renderer needs. Summary is nil when rendering a
// map that was never simulated.
type Report struct {
	Colonies     []Colony          `json:"colonies"`
	Summary      *Summary          `json:"summary,omitempty"`
	Destructions []sim.Destruction `json:"destructions,omitempty"`
}

// FromMap resolves m into colonies sorted by name. Tunnels come in
// north, south, east, west order, followed by any other directions sorted
// by name.
func FromMap(m world.Map, tab *symbols.Table) Report {
	colonies := make([]Colony, 0, len(m))
	for colony, exits := range m {
		c := Colony{Name: tab.MustResolve(colony), Tunnels: make([]Tunnel, 0, len(exits))}
		for dir, dest := range exits {
			c.Tunnels = append(c.Tunnels, Tunnel{
				Direction: tab.MustResolve(dir),
				Dest:      tab.MustResolve(dest),
			})
		}
		slices.SortFunc(c.Tunnels, func(a, b Tunnel) int {
			return cmp.Or(
				cmp.Compare(directionRank(a.Direction), directionRank(b.Direction)),
				cmp.Compare(a.Direction, b.Direction),
			)
		})
		colonies = append(colonies, c)
	}
	slices.SortFunc(colonies, func(a, b Colony) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return Report{Colonies: colonies}
}

// FromResult builds the end-of-run report from the final graph.
func FromResult(g *world.Graph, tab *symbols.Table, res sim.Result) Report {
	var r Report
	g.View(func(m world.Map) {
		r = FromMap(m, tab)
	})
	r.Summary = &Summary{
		State:     res.State.String(),
		Ticks:     res.Ticks,
		ElapsedMS: res.Elapsed.Milliseconds(),
		Alive:     res.Alive,
		Destroyed: len(res.Destructions),
	}
	r.Destructions = res.Destructions
	return r
}

// Render writes r to w in the given format.
func Render(w io.Writer, format constants.Format, r Report) error {
	switch format {
	case constants.FormatText:
		return Text(w, r)
	case constants.FormatDOT:
		return DOT(w, r)
	case constants.FormatJSON:
		return JSON(w, r)
	}
	return fmt.Errorf("unsupported format %q (use 'text', 'dot', or 'json')", format)
}

func directionRank(dir string) int {
	if i := slices.Index(constants.DirectionOrder[:], dir); i >= 0 {
		return i
	}
	return len(constants.DirectionOrder)
}
