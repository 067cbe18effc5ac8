package symbols

import (
	"errors"
	"sync"
	"testing"
)

func TestIntern_RoundTrip(t *testing.T) {
	tab := NewTable()
	words := []string{"Fizz", "north", "Buzz", "", "south", "Fizz"}

	for _, w := range words {
		h := tab.Intern(w)
		got, err := tab.Resolve(h)
		if err != nil {
			t.Fatalf("Resolve(Intern(%q)) error: %v", w, err)
		}
		if got != w {
			t.Errorf("Resolve(Intern(%q)) = %q", w, got)
		}
	}

	if tab.Len() != 5 {
		t.Errorf("Len() = %d, want 5", tab.Len())
	}
}

func TestIntern_Idempotent(t *testing.T) {
	tab := NewTable()
	a := tab.Intern("Hive")
	b := tab.Intern("Hive")
	if a != b {
		t.Errorf("Intern twice = %d, %d; want equal", a, b)
	}
	if c := tab.Intern("Nest"); c == a {
		t.Errorf("distinct strings share handle %d", c)
	}
}

func TestLookup(t *testing.T) {
	tab := NewTable()
	if _, ok := tab.Lookup("east"); ok {
		t.Fatal("Lookup found a string that was never interned")
	}
	want := tab.Intern("east")
	got, ok := tab.Lookup("east")
	if !ok || got != want {
		t.Errorf("Lookup(east) = %d, %v; want %d, true", got, ok, want)
	}
	if tab.Len() != 1 {
		t.Errorf("Lookup must not intern, Len() = %d", tab.Len())
	}
}

func TestResolve_UnknownHandle(t *testing.T) {
	tab := NewTable()
	tab.Intern("west")

	_, err := tab.Resolve(Handle(42))
	if !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("Resolve(42) error = %v, want ErrUnknownHandle", err)
	}
}

func TestMustResolve_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustResolve on unknown handle did not panic")
		}
	}()
	NewTable().MustResolve(Handle(0))
}

func TestIntern_Concurrent(t *testing.T) {
	tab := NewTable()
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	var wg sync.WaitGroup
	results := make([][]Handle, 8)
	for w := range results {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			hs := make([]Handle, len(names))
			for i, n := range names {
				hs[i] = tab.Intern(n)
			}
			results[w] = hs
		}(w)
	}
	wg.Wait()

	for w := 1; w < len(results); w++ {
		for i := range names {
			if results[w][i] != results[0][i] {
				t.Fatalf("worker %d got handle %d for %q, worker 0 got %d",
					w, results[w][i], names[i], results[0][i])
			}
		}
	}
	if tab.Len() != len(names) {
		t.Errorf("Len() = %d, want %d", tab.Len(), len(names))
	}
}
