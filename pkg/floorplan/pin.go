package floorplan

// Pin is one chip-boundary I/O pin. Pins live in a caller-owned table and
// are addressed by index; Name doubles as the opaque handle mirrored-pin
// constraints are keyed by.
//
// Placement fields (Pos, Layer, Placed) are written exclusively by the
// assignment materializer in pkg/ioplace.
type Pin struct {
	Name    string
	InGroup bool

	Placed bool
	Pos    Point
	Layer  int
}

// Group is an ordered run of pins that must land on consecutive slots
// within one contiguous block. Groups are immutable once formed.
type Group struct {
	// Pins holds indices into the pin table, in placement order.
	Pins []int

	// Order reverses the in-block placement direction on top and left
	// edges, keeping the visual pin order consistent as the boundary
	// direction flips.
	Order bool
}

// MirrorMap maps a pin's handle to its required mirror partner's handle.
// A pin present in the map must be placed at the reflection of its
// partner's position, on the same layer.
type MirrorMap map[string]string

// Section is a contiguous run of slots along one edge under simultaneous
// optimization. Sections are created per pass and discarded afterwards.
type Section struct {
	// Begin and End bound the slot index range, inclusive on both ends.
	Begin, End int

	// Edge identifies which boundary side the range lies on.
	Edge Edge

	// Unblocked counts the currently unblocked slots in the range. The
	// grouped materializer decrements it as it consumes blocks.
	Unblocked int

	// Pins holds the indices of pins to assign within this section.
	Pins []int

	// Groups holds the pin groups competing for blocks in this section.
	Groups []Group
}

// NewSection builds a section over [begin, end] on the given edge,
// deriving the unblocked count from the current slot state.
func NewSection(slots Slots, begin, end int, edge Edge) Section {
	return Section{
		Begin:     begin,
		End:       end,
		Edge:      edge,
		Unblocked: slots.CountUnblocked(begin, end),
	}
}

// UngroupedPins returns the section's pin indices that are not group
// members, in input order. Grouped pins are placed by the grouped pass and
// excluded from the ungrouped assignment matrix.
func (s *Section) UngroupedPins(pins []Pin) []int {
	var free []int
	for _, idx := range s.Pins {
		if !pins[idx].InGroup {
			free = append(free, idx)
		}
	}
	return free
}
