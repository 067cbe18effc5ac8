// Package symbols interns colony and direction names into small integer
// handles so the simulation never hashes or compares strings on the hot path.
package symbols

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownHandle is returned when resolving a handle this table never issued.
var ErrUnknownHandle = errors.New("unknown handle")

// Handle identifies an interned string. Handles are dense and start at 0.
type Handle uint32

// Table is a bidirectional string <-> Handle mapping.
// It is safe for concurrent use; Intern only takes the write lock for
// previously unseen strings.
type Table struct {
	mu      sync.RWMutex
	handles map[string]Handle
	names   []string
}

// NewTable creates an empty symbol table.
func NewTable() *Table {
	return &Table{
		handles: make(map[string]Handle),
	}
}

// Intern returns the handle for s, allocating one if s has not been seen.
func (t *Table) Intern(s string) Handle {
	t.mu.RLock()
	h, ok := t.handles[s]
	t.mu.RUnlock()
	if ok {
		return h
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Another writer may have interned s between the two locks.
	if h, ok := t.handles[s]; ok {
		return h
	}
	h = Handle(len(t.names))
	t.names = append(t.names, s)
	t.handles[s] = h
	return h
}

// Lookup returns the handle for s without interning it.
func (t *Table) Lookup(s string) (Handle, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	h, ok := t.handles[s]
	return h, ok
}

// Resolve returns the string for h.
func (t *Table) Resolve(h Handle) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if int(h) >= len(t.names) {
		return "", fmt.Errorf("resolve %d: %w", h, ErrUnknownHandle)
	}
	return t.names[h], nil
}

// MustResolve is like Resolve but panics on an unknown handle. Callers use it
// where the handle provably came from this table.
func (t *Table) MustResolve(h Handle) string {
	s, err := t.Resolve(h)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of interned strings.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.names)
}
