// Package render draws placed die boundaries.
//
// # Overview
//
// The renderer turns a design and its placement report into a Graphviz DOT
// document and, via the in-process goccy/go-graphviz engine, into SVG or PNG
// bytes. Every node carries a pinned neato position so the drawing is a
// faithful scaled picture of the boundary:
//
//   - the die core as a dashed box,
//   - placed pins as filled boxes labeled with name and layer,
//   - mirror pairs joined by dashed edges,
//   - optionally the unoccupied slots as points (blocked slots in red).
//
// # Usage
//
//	dot := render.ToDOT(d, report, render.Options{ShowSlots: true})
//	svg, err := render.RenderSVG(dot)
//	png, err := render.RenderPNG(dot)
//
// Options.Scale maps database units to drawing inches; the default suits
// boundaries a few thousand units across.
package render
