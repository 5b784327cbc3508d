package ioplace_test

import (
	"context"
	"fmt"

	"github.com/askeland/pinplace/pkg/floorplan"
	"github.com/askeland/pinplace/pkg/ioplace"
)

// manhattan scores a pin by the distance from its anchor point.
type manhattan struct {
	anchors []floorplan.Point
}

func (m manhattan) Cost(pin int, pos floorplan.Point) floorplan.Cost {
	a := m.anchors[pin]
	dx, dy := pos.X-a.X, pos.Y-a.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return floorplan.Finite(int64(dx + dy))
}

func ExamplePlacer_Place() {
	// Four slots along the bottom edge.
	slots := floorplan.Slots{
		{Pos: floorplan.Point{X: 0, Y: 0}, Layer: 3},
		{Pos: floorplan.Point{X: 10, Y: 0}, Layer: 3},
		{Pos: floorplan.Point{X: 20, Y: 0}, Layer: 3},
		{Pos: floorplan.Point{X: 30, Y: 0}, Layer: 3},
	}
	pins := []floorplan.Pin{{Name: "clk"}, {Name: "rst"}}

	sec := floorplan.NewSection(slots, 0, 3, floorplan.EdgeBottom)
	sec.Pins = []int{0, 1}

	placer := &ioplace.Placer{
		Slots: slots,
		Pins:  pins,
		Coster: manhattan{anchors: []floorplan.Point{
			{X: 28, Y: 40},
			{X: 4, Y: 40},
		}},
	}

	result, err := placer.Place(context.Background(), []floorplan.Section{sec})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, p := range result.Placements {
		fmt.Printf("%s -> %s\n", p.Name, p.Pos)
	}
	// Output:
	// clk -> (30, 0)
	// rst -> (0, 0)
}
