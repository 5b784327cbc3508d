package ioplace

import (
	"github.com/askeland/pinplace/pkg/assign"
	"github.com/askeland/pinplace/pkg/floorplan"
)

// buildMatrix constructs the ungrouped cost matrix: one row per unblocked
// slot of the section in slot order, one column per ungrouped pin in
// section pin-list order. Cell (i, j) is the oracle cost of pin j at the
// i-th unblocked slot's position, with infeasible costs converted to the
// solver sentinel at this boundary and nowhere else.
func (m *Matcher) buildMatrix() {
	if len(m.freePins) == 0 {
		m.matrix = nil
		m.result = nil
		return
	}

	matrix := make(assign.Matrix, 0, m.section.Unblocked)
	for i := m.section.Begin; i <= m.section.End && i < len(m.slots); i++ {
		if m.slots[i].Blocked {
			continue
		}
		pos := m.slots[i].Pos
		row := make([]int64, len(m.freePins))
		for j, pinIdx := range m.freePins {
			row[j] = m.coster.Cost(pinIdx, pos).Sentinel()
		}
		matrix = append(matrix, row)
	}

	m.matrix = matrix
	m.result = nil
}

// buildGroupMatrix constructs the grouped cost matrix. All groups in the
// section compete for blocks of one shared size (the largest group's pin
// count), so no group can undercut another on block granularity. Candidate
// block starts step by that size from the section begin; a block with any
// blocked slot is skipped whole.
//
// A cell is the sum of the group's member costs at the block anchor
// position. The sum short-circuits to infeasible on the first infeasible
// member: the whole bus fits or none of it does.
func (m *Matcher) buildGroupMatrix() {
	m.matrix = nil
	m.result = nil

	m.groupSize = 0
	for _, group := range m.section.Groups {
		m.groupSize = max(m.groupSize, len(group.Pins))
	}
	if m.groupSize == 0 {
		return
	}

	// The last valid block start keeps the whole block inside the section.
	lastStart := m.section.End - m.groupSize + 1

	var matrix assign.Matrix
	for start := m.section.Begin; start <= lastStart; start += m.groupSize {
		if m.blockBlocked(start) {
			continue
		}
		anchor := m.slots[start].Pos
		row := make([]int64, len(m.section.Groups))
		for g, group := range m.section.Groups {
			sum := floorplan.Finite(0)
			for _, pinIdx := range group.Pins {
				cost := m.coster.Cost(pinIdx, anchor)
				if cost.IsInfeasible() {
					sum = floorplan.Infeasible
					break
				}
				sum = sum.Add(cost)
			}
			row[g] = sum.Sentinel()
		}
		matrix = append(matrix, row)
	}

	m.matrix = matrix
}
