package ioplace

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/askeland/pinplace/pkg/assign"
	"github.com/askeland/pinplace/pkg/floorplan"
)

// Placement records one committed pin-to-slot assignment.
type Placement struct {
	Pin   int             `json:"pin"`
	Name  string          `json:"name"`
	Slot  int             `json:"slot"`
	Pos   floorplan.Point `json:"pos"`
	Layer int             `json:"layer"`
}

// Matcher poses one section as an assignment problem and reconciles the
// solved matching back onto physical slots. It is created per section and
// per pass; a Matcher is not safe for concurrent use.
//
// The lifecycle mirrors the two independent passes:
//
//	m := NewMatcher(...)
//	m.Solve()                       // ungrouped matrix
//	placed, diags := m.Commit(true) // mirrored pins + partners
//	more, diags2 := m.Commit(false) // remaining pins
//	m.SolveGroups()                 // grouped matrix
//	grouped, _ := m.CommitGroups()  // one-shot
type Matcher struct {
	section *floorplan.Section
	slots   floorplan.Slots
	pins    []floorplan.Pin
	coster  floorplan.Coster
	reflect floorplan.Reflector
	mirrors floorplan.MirrorMap
	logger  *log.Logger

	pinIndex map[string]int // pin name -> table index

	freePins  []int // ungrouped pin indices in column order
	matrix    assign.Matrix
	result    []int
	groupSize int
}

// NewMatcher creates a matcher for one section. The pins slice is the full
// caller-owned pin table; the matcher mutates placement fields in place.
// reflect and mirrors may be nil when the design has no mirrored pins.
// A nil logger discards log output.
func NewMatcher(
	section *floorplan.Section,
	slots floorplan.Slots,
	pins []floorplan.Pin,
	coster floorplan.Coster,
	reflect floorplan.Reflector,
	mirrors floorplan.MirrorMap,
	logger *log.Logger,
) *Matcher {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	pinIndex := make(map[string]int, len(pins))
	for i := range pins {
		pinIndex[pins[i].Name] = i
	}
	return &Matcher{
		section:  section,
		slots:    slots,
		pins:     pins,
		coster:   coster,
		reflect:  reflect,
		mirrors:  mirrors,
		logger:   logger,
		pinIndex: pinIndex,
		freePins: section.UngroupedPins(pins),
	}
}

// Solve builds the ungrouped cost matrix and runs the assignment solver.
// A section with no unblocked slots or no ungrouped pins yields an empty
// matrix and the solve is skipped.
func (m *Matcher) Solve() {
	m.buildMatrix()
	if len(m.matrix) > 0 {
		m.result = assign.Solve(m.matrix)
	}
}

// staged is a pin placement held back until the whole phase validates.
// Mirror lookups can fail mid-pass; staging first avoids committing a
// primary pin whose partner has nowhere to go.
type staged struct {
	pin, slot             int
	mirrorPin, mirrorSlot int // -1 when the placement has no mirror
	mirrorPos             floorplan.Point
	warn                  bool
}

// Commit materializes the solved ungrouped assignment onto slots and pins.
//
// With mirrorPhase true only pins with a mirror-partner requirement are
// placed, each committing its reflected partner as well; with mirrorPhase
// false the remaining pins are placed and already-placed pins are skipped.
// Both phases read the same solved assignment.
//
// Placements whose matched cell was infeasible proceed with a warning
// diagnostic. A mirrored pin whose reflected position has no exact
// (position, layer) slot yields an error diagnostic and neither pin of the
// pair is committed; other placements are unaffected.
func (m *Matcher) Commit(mirrorPhase bool) ([]Placement, []Diagnostic) {
	if len(m.result) == 0 {
		return nil, nil
	}

	var stage []staged
	var diags []Diagnostic
	inStage := make(map[int]bool) // pins already staged this phase

	rows := len(m.matrix)
	for col, pinIdx := range m.freePins {
		pin := &m.pins[pinIdx]

		slotIndex := m.section.Begin
		for row := 0; row < rows; row++ {
			for slotIndex < len(m.slots) && m.slots[slotIndex].Blocked {
				slotIndex++
			}
			if m.result[row] != col {
				slotIndex++
				continue
			}

			// The phase selection must not disturb the correlation between
			// pin columns and matrix rows, so it happens after the matched
			// slot is located.
			if pin.Placed || inStage[pinIdx] {
				break
			}
			// Pins with a mirror requirement belong to the mirror phase
			// alone; a pair whose lookup failed stays unassigned rather
			// than being placed without its constraint.
			_, hasMirror := m.mirrors[pin.Name]
			if mirrorPhase != hasMirror {
				break
			}

			entry := staged{
				pin:       pinIdx,
				slot:      slotIndex,
				mirrorPin: -1,
				warn:      m.matrix[row][col] == assign.Infeasible,
			}

			if mirrorPhase {
				var diag Diagnostic
				var ok bool
				entry, diag, ok = m.stageMirror(entry)
				if !ok {
					diags = append(diags, diag)
					m.logger.Error(diag.Message, "pin", diag.Pin)
					break
				}
			}

			stage = append(stage, entry)
			inStage[entry.pin] = true
			if entry.mirrorPin >= 0 {
				inStage[entry.mirrorPin] = true
			}
			break
		}
	}

	placed := make([]Placement, 0, len(stage))
	for _, entry := range stage {
		if entry.warn {
			diag := insufficientSpace(m.pins[entry.pin].Name)
			diags = append(diags, diag)
			m.logger.Warn(diag.Message, "pin", diag.Pin)
		}

		placed = append(placed, m.place(entry.pin, entry.slot))
		if entry.mirrorPin >= 0 {
			placed = append(placed, m.place(entry.mirrorPin, entry.mirrorSlot))
		}
	}
	return placed, diags
}

// stageMirror resolves the mirror partner of a staged placement: the
// partner's required position is the reflection of the primary's slot, and
// the slot grid must already contain that exact position and layer.
func (m *Matcher) stageMirror(entry staged) (staged, Diagnostic, bool) {
	primary := &m.pins[entry.pin]
	slot := m.slots[entry.slot]

	partnerName := m.mirrors[primary.Name]
	partnerIdx, known := m.pinIndex[partnerName]
	mirroredPos := m.reflect.MirroredPosition(slot.Pos)
	if !known {
		return entry, mirrorSlotNotFound(partnerName, mirroredPos, slot.Layer), false
	}

	mirrorSlot := m.slots.IndexByPosition(mirroredPos, slot.Layer)
	if mirrorSlot < 0 {
		return entry, mirrorSlotNotFound(partnerName, mirroredPos, slot.Layer), false
	}

	entry.mirrorPin = partnerIdx
	entry.mirrorSlot = mirrorSlot
	entry.mirrorPos = mirroredPos
	return entry, Diagnostic{}, true
}

// place commits one pin onto one slot and returns the placement record.
func (m *Matcher) place(pinIdx, slotIdx int) Placement {
	pin := &m.pins[pinIdx]
	slot := &m.slots[slotIdx]

	pin.Pos = slot.Pos
	pin.Layer = slot.Layer
	pin.Placed = true
	slot.Used = true

	m.logger.Debug("placed pin",
		"pin", pin.Name,
		"slot", slotIdx,
		"pos", pin.Pos,
		"layer", pin.Layer)

	return Placement{
		Pin:   pinIdx,
		Name:  pin.Name,
		Slot:  slotIdx,
		Pos:   pin.Pos,
		Layer: pin.Layer,
	}
}

// SolveGroups builds the grouped cost matrix and runs the solver. Groups
// compete for contiguous slot blocks sized by the largest group in the
// section; see buildGroupMatrix.
func (m *Matcher) SolveGroups() {
	m.buildGroupMatrix()
	if len(m.matrix) > 0 {
		m.result = assign.Solve(m.matrix)
	} else {
		m.result = nil
	}
}

// CommitGroups materializes the solved grouped assignment. Every member
// slot of a committed block becomes used and permanently blocked, and the
// section's unblocked counter decrements accordingly. Groups are a
// one-shot pass: the matrix and assignment are discarded afterwards.
func (m *Matcher) CommitGroups() ([]Placement, []Diagnostic) {
	if len(m.result) == 0 {
		return nil, nil
	}

	var placed []Placement
	var diags []Diagnostic

	sec := m.section
	lastStart := sec.End - m.groupSize + 1
	rows := len(m.matrix)

	for col, group := range sec.Groups {
		slotIndex := sec.Begin
		for row := 0; row < rows; row++ {
			for slotIndex <= lastStart && m.blockBlocked(slotIndex) {
				slotIndex += m.groupSize
			}
			if m.result[row] != col {
				slotIndex += m.groupSize
				continue
			}

			if m.matrix[row][col] == assign.Infeasible && len(group.Pins) > 0 {
				diag := insufficientSpace(m.pins[group.Pins[0]].Name)
				diags = append(diags, diag)
				m.logger.Warn(diag.Message, "pin", diag.Pin, "group_size", len(group.Pins))
			}

			// Reverse the in-block order on top and left edges when the
			// group asks for it, keeping the visual pin order stable as
			// the boundary direction flips.
			reversed := (sec.Edge == floorplan.EdgeTop || sec.Edge == floorplan.EdgeLeft) && group.Order
			offset := 0
			if reversed {
				offset = len(group.Pins) - 1
			}

			for _, pinIdx := range group.Pins {
				target := slotIndex + offset
				placed = append(placed, m.place(pinIdx, target))
				m.slots[target].Blocked = true
				if target <= sec.End {
					sec.Unblocked--
				}
				if reversed {
					offset--
				} else {
					offset++
				}
			}
			break
		}
	}

	m.matrix = nil
	m.result = nil
	return placed, diags
}

// blockBlocked reports whether any slot of the block starting at start is
// blocked. Blocks with any blocked slot are skipped whole — a bus either
// fits entirely or not at all.
func (m *Matcher) blockBlocked(start int) bool {
	for i := 0; i < m.groupSize; i++ {
		if m.slots[start+i].Blocked {
			return true
		}
	}
	return false
}
