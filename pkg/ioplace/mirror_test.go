package ioplace

import (
	"testing"

	"github.com/askeland/pinplace/pkg/errors"
	"github.com/askeland/pinplace/pkg/floorplan"
)

// mirrorFixture builds a die with slots on the bottom edge (y=0) and, when
// withTop is set, matching slots on the top edge (y=80).
func mirrorFixture(withTop bool) (floorplan.Slots, *floorplan.Core) {
	var slots floorplan.Slots
	for i := 0; i < 3; i++ {
		slots = append(slots, floorplan.Slot{Pos: pt(i*10, 0), Layer: 3})
	}
	if withTop {
		for i := 0; i < 3; i++ {
			slots = append(slots, floorplan.Slot{Pos: pt(i*10, 80), Layer: 3})
		}
	}
	core := &floorplan.Core{Bounds: floorplan.Rect{LL: pt(0, 0), UR: pt(100, 80)}}
	return slots, core
}

func TestMatcher_MirroredPlacement(t *testing.T) {
	slots, core := mirrorFixture(true)
	pins := []floorplan.Pin{{Name: "a"}, {Name: "b"}}
	mirrors := floorplan.MirrorMap{"a": "b"}
	costs := costTable{
		0: {pt(0, 0): 3, pt(10, 0): 1, pt(20, 0): 7},
	}
	sec := floorplan.NewSection(slots, 0, 2, floorplan.EdgeBottom)
	sec.Pins = []int{0}

	m := NewMatcher(&sec, slots, pins, costs, core, mirrors, nil)
	m.Solve()
	placed, diags := m.Commit(true)

	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	if len(placed) != 2 {
		t.Fatalf("expected primary and partner placements, got %v", placed)
	}

	if pins[0].Pos != pt(10, 0) {
		t.Errorf("primary should take its cheapest slot, got %v", pins[0].Pos)
	}
	// The partner must sit at the exact reflection, on the same layer.
	if want := core.MirroredPosition(pins[0].Pos); pins[1].Pos != want {
		t.Errorf("partner at %v, want reflection %v", pins[1].Pos, want)
	}
	if pins[1].Layer != pins[0].Layer {
		t.Errorf("partner layer %d, want %d", pins[1].Layer, pins[0].Layer)
	}
	if !pins[1].Placed {
		t.Error("partner must be marked placed")
	}

	mirrorSlot := slots.IndexByPosition(pins[1].Pos, pins[1].Layer)
	if mirrorSlot < 0 || !slots[mirrorSlot].Used {
		t.Error("partner slot must be marked used")
	}
}

// Without top-edge slots the reflected position has no exact slot. That is
// a hard fault of the input grid: the pair is rolled back, the error is
// reported, and unrelated pins keep their placements.
func TestMatcher_MirrorSlotMissing(t *testing.T) {
	slots, core := mirrorFixture(false)
	pins := []floorplan.Pin{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	mirrors := floorplan.MirrorMap{"a": "b"}
	costs := costTable{
		0: {pt(0, 0): 3, pt(10, 0): 1, pt(20, 0): 7},
		2: {pt(0, 0): 1, pt(10, 0): 5, pt(20, 0): 5},
	}
	sec := floorplan.NewSection(slots, 0, 2, floorplan.EdgeBottom)
	sec.Pins = []int{0, 2}

	m := NewMatcher(&sec, slots, pins, costs, core, mirrors, nil)
	m.Solve()

	placed, diags := m.Commit(true)
	if len(placed) != 0 {
		t.Fatalf("failed mirror lookup must roll back the pair, got %v", placed)
	}
	if len(diags) != 1 {
		t.Fatalf("expected one error diagnostic, got %v", diags)
	}
	if diags[0].Severity != SeverityError || diags[0].Code != errors.ErrCodeMirrorSlotNotFound {
		t.Errorf("unexpected diagnostic %v", diags[0])
	}
	if pins[0].Placed || pins[1].Placed {
		t.Error("neither pin of the failed pair may be committed")
	}

	// The regular phase still places the unrelated pin, and must not pick
	// up the failed pair without its constraint.
	placed, diags = m.Commit(false)
	if len(placed) != 1 || placed[0].Name != "c" {
		t.Errorf("expected only pin c placed, got %v (diags %v)", placed, diags)
	}
	if pins[0].Placed {
		t.Error("failed mirror pair must stay unassigned in the regular phase")
	}
}

// The mirror phase only places pins with a partner requirement; the
// regular phase picks up the rest without re-placing them.
func TestMatcher_PhaseSelection(t *testing.T) {
	slots, core := mirrorFixture(true)
	pins := []floorplan.Pin{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	mirrors := floorplan.MirrorMap{"a": "b"}
	costs := costTable{
		0: {pt(0, 0): 3, pt(10, 0): 1, pt(20, 0): 7},
		2: {pt(0, 0): 1, pt(10, 0): 5, pt(20, 0): 2},
	}
	sec := floorplan.NewSection(slots, 0, 2, floorplan.EdgeBottom)
	sec.Pins = []int{0, 2}

	m := NewMatcher(&sec, slots, pins, costs, core, mirrors, nil)
	m.Solve()

	mirror, _ := m.Commit(true)
	if len(mirror) != 2 {
		t.Fatalf("mirror phase should place the pair only, got %v", mirror)
	}
	for _, pl := range mirror {
		if pl.Name == "c" {
			t.Error("pin without mirror requirement placed in mirror phase")
		}
	}

	regular, _ := m.Commit(false)
	if len(regular) != 1 || regular[0].Name != "c" {
		t.Fatalf("regular phase should place only pin c, got %v", regular)
	}
}
