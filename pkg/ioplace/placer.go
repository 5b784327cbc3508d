package ioplace

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/askeland/pinplace/pkg/floorplan"
	"github.com/askeland/pinplace/pkg/observability"
)

// Result collects the outcome of a placement run over all sections.
type Result struct {
	Placements  []Placement  `json:"placements"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	Stats       Stats        `json:"stats"`
}

// Stats carries run-level counters.
type Stats struct {
	Sections  int           `json:"sections"`
	Placed    int           `json:"placed"`
	Warnings  int           `json:"warnings"`
	Errors    int           `json:"errors"`
	SolveTime time.Duration `json:"solve_time"`
}

// Placer runs the section-by-section assignment flow over a boundary.
//
// Slots and Pins are the caller-owned stores the materializer mutates; all
// Used/Blocked and placement-flag writes funnel through here, commit-once.
// Sections must reference disjoint slot ranges and disjoint pin sets.
type Placer struct {
	Slots   floorplan.Slots
	Pins    []floorplan.Pin
	Coster  floorplan.Coster
	Reflect floorplan.Reflector
	Mirrors floorplan.MirrorMap
	Logger  *log.Logger

	// Workers caps concurrent section solves. Values below 2 mean serial.
	// Sections only run concurrently when the design has no mirrored pins:
	// a mirror partner may fall in another section's slot range, and those
	// sections must serialize relative to each other.
	Workers int
}

// Place solves and materializes every section, ungrouped pass first, then
// the grouped pass. The returned result aggregates placements and
// diagnostics across sections; per-pin faults never fail the run.
func (p *Placer) Place(ctx context.Context, sections []floorplan.Section) (*Result, error) {
	logger := p.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	start := time.Now()
	result := &Result{Stats: Stats{Sections: len(sections)}}

	if p.Workers > 1 && len(p.Mirrors) == 0 {
		p.placeParallel(ctx, sections, logger, result)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	} else {
		for i := range sections {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			placed, diags := p.placeSection(ctx, &sections[i], logger)
			result.Placements = append(result.Placements, placed...)
			result.Diagnostics = append(result.Diagnostics, diags...)
		}
	}

	result.Stats.SolveTime = time.Since(start)
	result.Stats.Placed = len(result.Placements)
	for _, d := range result.Diagnostics {
		if d.Severity == SeverityError {
			result.Stats.Errors++
		} else {
			result.Stats.Warnings++
		}
	}

	logger.Info("placement complete",
		"sections", result.Stats.Sections,
		"placed", result.Stats.Placed,
		"warnings", result.Stats.Warnings,
		"errors", result.Stats.Errors,
		"duration", result.Stats.SolveTime)

	return result, nil
}

// placeParallel fans sections out over a bounded worker pool. Safe only
// without mirrored pins: section slot ranges and pin sets are disjoint, so
// the sole shared mutable state is per-section then.
func (p *Placer) placeParallel(ctx context.Context, sections []floorplan.Section, logger *log.Logger, result *Result) {
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.Workers)

	for i := range sections {
		wg.Add(1)
		go func(sec *floorplan.Section) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}
			placed, diags := p.placeSection(ctx, sec, logger)

			mu.Lock()
			result.Placements = append(result.Placements, placed...)
			result.Diagnostics = append(result.Diagnostics, diags...)
			mu.Unlock()
		}(&sections[i])
	}
	wg.Wait()
}

// placeSection runs the full per-section flow: ungrouped solve, mirrored
// commit phase, regular commit phase, then the grouped one-shot pass.
func (p *Placer) placeSection(ctx context.Context, sec *floorplan.Section, logger *log.Logger) ([]Placement, []Diagnostic) {
	hooks := observability.Placer()
	hooks.OnSectionStart(ctx, sec.Edge.String(), sec.Unblocked, len(sec.Pins))
	start := time.Now()

	m := NewMatcher(sec, p.Slots, p.Pins, p.Coster, p.Reflect, p.Mirrors, logger)

	var placed []Placement
	var diags []Diagnostic

	solveStart := time.Now()
	hooks.OnSolveStart(ctx, sec.Unblocked, len(m.freePins))
	m.Solve()
	hooks.OnSolveComplete(ctx, len(m.matrix), len(m.freePins), time.Since(solveStart))

	if len(p.Mirrors) > 0 {
		pl, dg := m.Commit(true)
		placed = append(placed, pl...)
		diags = append(diags, dg...)
	}
	pl, dg := m.Commit(false)
	placed = append(placed, pl...)
	diags = append(diags, dg...)

	// Grouped pass strictly after the ungrouped pass: block validity
	// depends on the slot state the ungrouped pass left behind.
	m.SolveGroups()
	pl, dg = m.CommitGroups()
	placed = append(placed, pl...)
	diags = append(diags, dg...)

	for _, d := range diags {
		hooks.OnDiagnostic(ctx, d.Severity.String(), string(d.Code), d.Pin)
	}
	hooks.OnSectionComplete(ctx, sec.Edge.String(), len(placed), time.Since(start), nil)

	logger.Debug("section done",
		"edge", sec.Edge,
		"slots", sec.Unblocked,
		"placed", len(placed),
		"diagnostics", len(diags))

	return placed, diags
}
