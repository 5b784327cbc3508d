// Package pipeline provides the core placement pipeline for pinplace.
//
// This package implements the complete load → place → render pipeline used
// by both the CLI and the HTTP server. Centralizing it keeps behavior
// consistent across entry points and avoids duplicated caching logic.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and validate the design file (slots, pins, sections)
//  2. Place: Solve the slot assignment for every section
//  3. Render: Generate output in the requested formats (JSON, DOT, SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    DesignPath: "soc.toml",
//	    Formats:    []string{"json", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/askeland/pinplace/pkg/cache"
	"github.com/askeland/pinplace/pkg/render"
)

// DefaultWorkers is the default per-run section solve concurrency. The
// placer falls back to serial execution when the design has mirrored pins.
const DefaultWorkers = 1

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// Options contains all configuration for the placement pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. DesignPath names a .toml or .json design file;
	// DesignData carries raw design bytes instead (API requests), with
	// DesignFormat selecting the decoder ("toml" or "json").
	DesignPath   string `json:"design_path,omitempty"`
	DesignData   []byte `json:"design_data,omitempty"`
	DesignFormat string `json:"design_format,omitempty"`

	// Place options
	Workers int  `json:"workers,omitempty"`
	Refresh bool `json:"refresh,omitempty"` // bypass the placement cache

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	ShowSlots bool     `json:"show_slots,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SlotCount  int
	PinCount   int
	LoadTime   time.Duration
	PlaceTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each cached pipeline stage.
type CacheInfo struct {
	PlaceHit  bool // Whether the placement came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetPlaceDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for the load stage.
func (o *Options) ValidateForLoad() error {
	if o.DesignPath == "" && len(o.DesignData) == 0 {
		return fmt.Errorf("design_path or design_data is required")
	}
	if len(o.DesignData) > 0 && o.DesignFormat == "" {
		return fmt.Errorf("design_format is required with design_data")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetPlaceDefaults sets default values for the place stage.
func (o *Options) SetPlaceDefaults() {
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateFormats(o.Formats)
}

// RenderOptions returns the render package options for these settings.
func (o *Options) RenderOptions() render.Options {
	return render.Options{
		Scale:     o.Scale,
		ShowSlots: o.ShowSlots,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		Scale:     o.Scale,
		ShowSlots: o.ShowSlots,
	}
}
