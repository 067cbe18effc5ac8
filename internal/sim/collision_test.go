package sim

import (
	"slices"
	"testing"

	"github.com/nvandessel/hiveum/internal/ants"
	"github.com/nvandessel/hiveum/internal/constants"
	"github.com/nvandessel/hiveum/internal/world"
)

func TestCollide_TwoAntsDestroyColony(t *testing.T) {
	g, tab := loadWorld(t, "X north=Y\nY south=X\n")
	set := place(t, tab, "X", "X")

	left, destroyed := Collide(g, tab, set, constants.OppositeDirections, 0)

	if len(left) != 0 {
		t.Errorf("survivors = %v, want none", left)
	}
	if len(destroyed) != 1 || destroyed[0].Colony != "X" {
		t.Fatalf("destroyed = %+v, want X", destroyed)
	}
	if !slices.Equal(destroyed[0].Ants, []int{0, 1}) {
		t.Errorf("dead ants = %v, want [0 1]", destroyed[0].Ants)
	}

	x, y, south := handle(t, tab, "X"), handle(t, tab, "Y"), handle(t, tab, "south")
	g.View(func(m world.Map) {
		if _, ok := m[x]; ok {
			t.Error("X still in graph")
		}
		if _, ok := m[y][south]; ok {
			t.Error("Y kept its south tunnel into X")
		}
		if _, ok := m[y]; !ok {
			t.Error("Y was removed")
		}
	})
	assertInvariants(t, g, left)
}

func TestCollide_NoCollisionIsNoop(t *testing.T) {
	g, tab := loadWorld(t, gridMap(3))
	before := snapshot(g)
	set := place(t, tab, "c0_0", "c1_1", "c2_2")

	left, destroyed := Collide(g, tab, set, constants.OppositeDirections, 0)

	if destroyed != nil {
		t.Errorf("destroyed = %v, want nil", destroyed)
	}
	if !slices.Equal(left, set) {
		t.Errorf("survivors changed: %v", left)
	}
	if !mapsEqual(before, snapshot(g)) {
		t.Error("graph changed without a collision")
	}
}

func TestCollide_Idempotent(t *testing.T) {
	g, tab := loadWorld(t, gridMap(3))
	set := place(t, tab, "c0_0", "c0_0", "c2_2")

	first, destroyed := Collide(g, tab, set, constants.OppositeDirections, 0)
	if len(destroyed) != 1 {
		t.Fatalf("first call destroyed %d colonies, want 1", len(destroyed))
	}
	afterFirst := snapshot(g)
	survivors := slices.Clone(first)

	second, destroyed := Collide(g, tab, first, constants.OppositeDirections, 0)
	if destroyed != nil {
		t.Errorf("second call destroyed %v", destroyed)
	}
	if !slices.Equal(second, survivors) {
		t.Errorf("second call changed survivors: %v", second)
	}
	if !mapsEqual(afterFirst, snapshot(g)) {
		t.Error("second call changed the graph")
	}
}

func TestCollide_EveryAntOnDoomedColonyDies(t *testing.T) {
	g, tab := loadWorld(t, "A east=B\nB west=A\n")
	set := place(t, tab, "A", "B", "A", "A")

	left, destroyed := Collide(g, tab, set, constants.OppositeDirections, 7)

	if len(left) != 1 || left[0].ID != 1 {
		t.Errorf("survivors = %v, want only ant 1", left)
	}
	if len(destroyed) != 1 {
		t.Fatalf("destroyed = %v", destroyed)
	}
	if destroyed[0].Tick != 7 {
		t.Errorf("tick = %d, want 7", destroyed[0].Tick)
	}
	if !slices.Equal(destroyed[0].Ants, []int{0, 2, 3}) {
		t.Errorf("dead ants = %v, want [0 2 3]", destroyed[0].Ants)
	}
	assertInvariants(t, g, left)
}

func TestCollide_ExitlessColony(t *testing.T) {
	g, tab := loadWorld(t, "Pit\nA east=B\nB west=A\n")
	before := snapshot(g)
	set := place(t, tab, "Pit", "Pit")

	_, destroyed := Collide(g, tab, set, constants.OppositeDirections, 0)
	if len(destroyed) != 1 {
		t.Fatalf("destroyed = %v", destroyed)
	}

	pit := handle(t, tab, "Pit")
	delete(before, pit)
	if !mapsEqual(before, snapshot(g)) {
		t.Error("destroying an exit-less colony touched other colonies")
	}
}

func TestCollide_UnknownDirectionLeftAlone(t *testing.T) {
	g, tab := loadWorld(t, "X up=Y\nY down=X\n")
	set := place(t, tab, "X", "X")

	Collide(g, tab, set, constants.OppositeDirections, 0)

	y, down := handle(t, tab, "Y"), handle(t, tab, "down")
	g.View(func(m world.Map) {
		if _, ok := m[y][down]; !ok {
			t.Error("tunnel with unknown direction was severed")
		}
	})
}

func TestCollide_NeighbourTunnelElsewhereKept(t *testing.T) {
	// Y's south leads to Z, not back to X, so it must survive X's destruction.
	g, tab := loadWorld(t, "X north=Y\nY south=Z\nZ north=Y\n")
	set := place(t, tab, "X", "X")

	Collide(g, tab, set, constants.OppositeDirections, 0)

	y, z, south := handle(t, tab, "Y"), handle(t, tab, "Z"), handle(t, tab, "south")
	g.View(func(m world.Map) {
		if m[y][south] != z {
			t.Error("Y lost a tunnel that did not lead into the destroyed colony")
		}
	})
}

func TestCollide_AdjacentDoomedColonies(t *testing.T) {
	g, tab := loadWorld(t, "A east=B\nB west=A east=C\nC west=B\n")
	set := place(t, tab, "A", "A", "B", "B")

	left, destroyed := Collide(g, tab, set, constants.OppositeDirections, 0)

	if len(left) != 0 {
		t.Errorf("survivors = %v", left)
	}
	if len(destroyed) != 2 {
		t.Fatalf("destroyed %d colonies, want 2", len(destroyed))
	}
	if destroyed[0].Handle > destroyed[1].Handle {
		t.Error("destructions not ordered by colony handle")
	}

	c := handle(t, tab, "C")
	g.View(func(m world.Map) {
		if len(m) != 1 {
			t.Errorf("graph has %d colonies, want only C", len(m))
		}
		if len(m[c]) != 0 {
			t.Errorf("C kept tunnels %v", m[c])
		}
	})
	assertInvariants(t, g, left)
}

func TestCollide_GridInvariants(t *testing.T) {
	g, tab := loadWorld(t, gridMap(5))
	set := place(t, tab, "c2_2", "c2_2", "c0_0", "c0_0", "c4_4", "c1_3")

	left, destroyed := Collide(g, tab, set, constants.OppositeDirections, 0)

	if len(destroyed) != 2 {
		t.Errorf("destroyed %d colonies, want 2", len(destroyed))
	}
	if len(left) != 2 {
		t.Errorf("survivors = %v, want 2", left)
	}
	assertInvariants(t, g, left)

	// Every former neighbour of c2_2 lost exactly its tunnel into it.
	center := handle(t, tab, "c2_2")
	g.View(func(m world.Map) {
		for _, n := range []string{"c1_2", "c3_2", "c2_1", "c2_3"} {
			exits := m[handle(t, tab, n)]
			if len(exits) != 3 {
				t.Errorf("%s has %d tunnels, want 3", n, len(exits))
			}
			for _, dest := range exits {
				if dest == center {
					t.Errorf("%s still leads into c2_2", n)
				}
			}
		}
	})
}

func TestCollide_EmptySet(t *testing.T) {
	g, tab := loadWorld(t, "A\n")
	left, destroyed := Collide(g, tab, ants.Set{}, constants.OppositeDirections, 0)
	if len(left) != 0 || destroyed != nil {
		t.Errorf("Collide(empty) = %v, %v", left, destroyed)
	}
}
