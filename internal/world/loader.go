package world

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nvandessel/hiveum/internal/symbols"
)

// ErrMalformedLine is returned by a strict load for a connection token that
// is not of the form direction=Destination.
var ErrMalformedLine = errors.New("malformed map line")

// LoadOptions controls map parsing.
type LoadOptions struct {
	// Strict rejects malformed connection tokens instead of skipping them.
	Strict bool

	// KeepDangling leaves destinations that never get a line of their own
	// out of the graph, so Check reports their tunnels as dangling. Such a
	// graph is for inspection only; the simulation expects every
	// destination to be a colony.
	KeepDangling bool
}

// LoadFile reads a map file. See Load for the format.
func LoadFile(path string, tab *symbols.Table, opts LoadOptions) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()

	g, err := Load(f, tab, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return g, nil
}

// Load parses a map description, one colony per line:
//
//	Fizz north=Buzz west=Bar
//	Buzz south=Fizz
//
// Blank lines are skipped and repeated colony lines are merged. Unless
// opts.KeepDangling is set, a destination that never gets a line of its own
// is added as an exit-less colony, so the loaded graph never holds a tunnel
// to a missing colony.
func Load(r io.Reader, tab *symbols.Table, opts LoadOptions) (*Graph, error) {
	m := make(Map)

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		colony := tab.Intern(fields[0])
		exits, ok := m[colony]
		if !ok {
			exits = make(Tunnels)
			m[colony] = exits
		}

		for _, tok := range fields[1:] {
			dir, dest, found := strings.Cut(tok, "=")
			if !found || dir == "" || dest == "" {
				if opts.Strict {
					return nil, fmt.Errorf("line %d: token %q: %w", lineNum, tok, ErrMalformedLine)
				}
				continue
			}
			exits[tab.Intern(dir)] = tab.Intern(dest)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}

	if !opts.KeepDangling {
		for _, t := range m.Dangling() {
			m[t.To] = make(Tunnels)
		}
	}

	return New(m), nil
}
