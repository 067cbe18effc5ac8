package report

import (
	"fmt"
	"io"
	"strings"
)

// edgeStyles maps directions to DOT edge styles.
var edgeStyles = map[string]string{
	"north": "solid",
	"south": "solid",
	"east":  "dashed",
	"west":  "dashed",
}

// DOT writes a Graphviz digraph of the surviving colonies.
func DOT(w io.Writer, r Report) error {
	var b strings.Builder
	b.WriteString("digraph hiveum {\n")
	b.WriteString("  node [shape=box, style=filled, fillcolor=\"goldenrod\", fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")
	if s := r.Summary; s != nil {
		b.WriteString(fmt.Sprintf("  label=%q;\n", fmt.Sprintf("%s after %d ticks", s.State, s.Ticks)))
	}
	b.WriteString("\n")

	for _, c := range r.Colonies {
		color := "goldenrod"
		if len(c.Tunnels) == 0 {
			color = "lightgray"
		}
		b.WriteString(fmt.Sprintf("  %q [fillcolor=%q];\n", c.Name, color))
	}
	b.WriteString("\n")

	for _, c := range r.Colonies {
		for _, t := range c.Tunnels {
			style := edgeStyles[t.Direction]
			if style == "" {
				style = "dotted"
			}
			b.WriteString(fmt.Sprintf("  %q -> %q [label=%q, style=%s];\n", c.Name, t.Dest, t.Direction, style))
		}
	}

	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}
