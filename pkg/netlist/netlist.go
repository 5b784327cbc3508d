// Package netlist provides the reference cost oracle for the pin placer.
//
// The optimizer itself only consumes the [floorplan.Coster] interface;
// this package supplies the standard implementation, scoring a candidate
// position by the half-perimeter wirelength (HPWL) of the bounding box
// spanning the position and the sinks of the pin's net.
//
// Pins may carry constraint regions. A candidate position outside every
// region of a constrained pin scores [floorplan.Infeasible] — the position
// is unacceptable, not merely expensive.
package netlist

import (
	"github.com/askeland/pinplace/pkg/floorplan"
)

// Netlist holds, for each pin in the pin table, the positions of the
// instance terminals its I/O net connects to, plus optional placement
// constraint regions.
type Netlist struct {
	sinks   [][]floorplan.Point
	regions map[int][]floorplan.Rect
}

// New creates a netlist for a pin table of the given size.
func New(pinCount int) *Netlist {
	return &Netlist{
		sinks:   make([][]floorplan.Point, pinCount),
		regions: make(map[int][]floorplan.Rect),
	}
}

// SetSinks records the sink terminal positions of the pin's net.
func (n *Netlist) SetSinks(pin int, sinks []floorplan.Point) {
	n.sinks[pin] = sinks
}

// AddRegion constrains the pin to the given region. A pin with one or more
// regions scores infeasible everywhere outside them; a pin with none is
// unconstrained.
func (n *Netlist) AddRegion(pin int, region floorplan.Rect) {
	n.regions[pin] = append(n.regions[pin], region)
}

// Cost implements [floorplan.Coster]. It returns the HPWL of the bounding
// box spanning pos and the pin's sinks, or [floorplan.Infeasible] when pos
// violates the pin's constraint regions. A pin with no sinks scores zero
// everywhere it is allowed.
func (n *Netlist) Cost(pin int, pos floorplan.Point) floorplan.Cost {
	if regions, ok := n.regions[pin]; ok && !inAnyRegion(pos, regions) {
		return floorplan.Infeasible
	}

	sinks := n.sinks[pin]
	if len(sinks) == 0 {
		return floorplan.Finite(0)
	}

	minX, maxX := pos.X, pos.X
	minY, maxY := pos.Y, pos.Y
	for _, s := range sinks {
		minX = min(minX, s.X)
		maxX = max(maxX, s.X)
		minY = min(minY, s.Y)
		maxY = max(maxY, s.Y)
	}
	return floorplan.Finite(int64(maxX-minX) + int64(maxY-minY))
}

func inAnyRegion(pos floorplan.Point, regions []floorplan.Rect) bool {
	for _, r := range regions {
		if pos.X >= r.LL.X && pos.X <= r.UR.X && pos.Y >= r.LL.Y && pos.Y <= r.UR.Y {
			return true
		}
	}
	return false
}

var _ floorplan.Coster = (*Netlist)(nil)
