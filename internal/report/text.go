package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// Text writes one line per surviving colony, "Name dir=Dest ...", followed
// by the run summary when there is one.
func Text(w io.Writer, r Report) error {
	bw := bufio.NewWriter(w)

	if len(r.Colonies) == 0 {
		fmt.Fprintln(bw, "All colonies have been destroyed.")
	}
	for _, c := range r.Colonies {
		bw.WriteString(c.Name)
		for _, t := range c.Tunnels {
			fmt.Fprintf(bw, " %s=%s", t.Direction, t.Dest)
		}
		bw.WriteByte('\n')
	}

	if s := r.Summary; s != nil {
		fmt.Fprintf(bw, "Simulation ended (%s) after %s ticks with %s ants alive and %s colonies destroyed.\n",
			s.State, humanize.Comma(int64(s.Ticks)), humanize.Comma(int64(s.Alive)), humanize.Comma(int64(s.Destroyed)))
		fmt.Fprintf(bw, "Simulation took %s milli seconds.\n", humanize.Comma(s.ElapsedMS))
	}

	return bw.Flush()
}
