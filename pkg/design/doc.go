// Package design reads I/O placement design files and writes placement
// reports.
//
// # Input Format
//
// A design file declares the die core, the slot grid, the pin table, pin
// groups, and the section partition of the boundary. TOML is the primary
// format; the same schema is accepted as JSON.
//
//	name = "soc-top"
//
//	[core]
//	ll = [0, 0]
//	ur = [1000, 800]
//
//	[[slot]]
//	pos = [0, 0]
//	layer = 3
//
//	[[pin]]
//	name = "clk"
//	sinks = [[500, 400]]
//
//	[[pin]]
//	name = "clk_n"
//	mirror = "clk"
//
//	[[group]]
//	pins = ["data0", "data1"]
//	order = true
//
//	[[section]]
//	edge = "bottom"
//	begin = 0
//	end = 9
//	pins = ["clk", "clk_n"]
//	groups = [0]
//
// Slot order within a section must follow the boundary direction: bottom
// left→right, right bottom→top, top right→left, left top→bottom. Pins may
// declare sinks (net endpoints for the wirelength oracle) and region
// constraints restricting where the pin is feasible.
//
// # Validation
//
// [Load], [ReadTOML], and [ReadJSON] validate the document while building
// the solver-ready [Design]: pin names must be unique and well-formed,
// mirror references and group members must name known pins, section
// ranges must lie inside the slot grid, and designs with mirrored pins
// must declare core bounds for the reflection transform. Errors carry
// structured codes from pkg/errors.
//
// # Output
//
// [Report] is the JSON placement report written by the CLI and served by
// the HTTP API; [WriteReport] and [ReadReport] round-trip it.
package design
