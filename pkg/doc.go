// Package pkg provides the core libraries for pinplace I/O pin placement.
//
// # Overview
//
// Pinplace assigns chip I/O pins to legal boundary slots by solving a
// minimum-cost bipartite matching per constraint section. The pkg directory
// is organized by concern:
//
//   - [assign] - Hungarian assignment solver over integer cost matrices
//   - [floorplan] - boundary geometry: slots, pins, sections, the die core
//   - [netlist] - reference HPWL cost oracle over I/O nets
//   - [ioplace] - the placement flow: matrices, solving, materialization
//   - [design] - design file reading (TOML/JSON) and report serialization
//   - [render] - DOT/SVG/PNG drawings of placed boundaries
//   - [cache] - content-keyed caching of placements and artifacts
//   - [runstore] - persisted placement runs (memory, file, mongo)
//   - [pipeline] - orchestration: load → place → render with caching
//   - [errors] - structured error codes shared across the module
//
// # Architecture
//
// The typical data flow:
//
//	design file (TOML/JSON)
//	         ↓
//	    [design] package (parse + validate)
//	         ↓
//	    [ioplace] package (section matrices → [assign] → slot commits)
//	         ↓
//	    [design] report → [render] artifacts
//
// # Quick Start
//
// Place a design and render it:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    DesignPath: "design.toml",
//	    Formats:    []string{"json", "svg"},
//	})
//
// Or drive the placer directly with a custom cost oracle:
//
//	placer := &ioplace.Placer{Slots: slots, Pins: pins, Coster: myCoster}
//	result, err := placer.Place(ctx, sections)
package pkg
