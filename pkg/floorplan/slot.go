package floorplan

// Slot is one discrete candidate position for an I/O pin on the die
// boundary. Slots are addressed by their index in the boundary-wide slot
// sequence; the index order follows the counterclockwise edge order.
type Slot struct {
	Pos   Point
	Layer int

	// Blocked marks a slot as permanently unusable, e.g. under a macro
	// halo or consumed by a committed pin group. Blocked slots never
	// appear as assignment matrix rows.
	Blocked bool

	// Used marks a slot that already carries a placed pin. A used slot is
	// never reassigned within a run.
	Used bool
}

// Slots is the boundary-wide ordered slot sequence.
type Slots []Slot

// IndexByPosition returns the index of the slot whose position and layer
// exactly match, or -1 if no such slot exists. The scan is linear; lookups
// are rare (mirrored-pin resolution only), so no index is maintained.
func (s Slots) IndexByPosition(pos Point, layer int) int {
	for i := range s {
		if s[i].Pos == pos && s[i].Layer == layer {
			return i
		}
	}
	return -1
}

// CountUnblocked returns the number of unblocked slots in the inclusive
// index range [begin, end].
func (s Slots) CountUnblocked(begin, end int) int {
	count := 0
	for i := begin; i <= end && i < len(s); i++ {
		if !s[i].Blocked {
			count++
		}
	}
	return count
}

// UnblockedIndices returns the indices of unblocked slots in the inclusive
// range [begin, end], in increasing order.
func (s Slots) UnblockedIndices(begin, end int) []int {
	var indices []int
	for i := begin; i <= end && i < len(s); i++ {
		if !s[i].Blocked {
			indices = append(indices, i)
		}
	}
	return indices
}
