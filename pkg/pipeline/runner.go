package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/askeland/pinplace/pkg/cache"
	"github.com/askeland/pinplace/pkg/design"
	"github.com/askeland/pinplace/pkg/ioplace"
	"github.com/askeland/pinplace/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Design is the loaded, validated design.
	Design *design.Design

	// Report is the placement outcome.
	Report *design.Report

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Execute runs the complete load → place → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	d, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Design = d
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.SlotCount = len(d.Slots)
	result.Stats.PinCount = len(d.Pins)

	r.Logger.Info("loaded design",
		"name", d.Name,
		"slots", len(d.Slots),
		"pins", len(d.Pins),
		"sections", len(d.Sections),
		"duration", result.Stats.LoadTime)

	// Stage 2: Place
	placeStart := time.Now()
	rep, placeHit, err := r.PlaceWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("place: %w", err)
	}
	result.Report = rep
	result.Stats.PlaceTime = time.Since(placeStart)
	result.CacheInfo.PlaceHit = placeHit

	r.Logger.Info("solved placement",
		"placed", rep.Stats.Placed,
		"warnings", rep.Stats.Warnings,
		"errors", rep.Stats.Errors,
		"cached", placeHit,
		"duration", result.Stats.PlaceTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, d, rep, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads and validates the design from the configured source. Load is
// not cached: the design hash needed for every downstream cache key
// requires reading the input anyway, and validation is cheap.
func (r *Runner) Load(ctx context.Context, opts Options) (*design.Design, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	if len(opts.DesignData) > 0 {
		switch strings.ToLower(opts.DesignFormat) {
		case "toml":
			return design.ReadTOML(bytes.NewReader(opts.DesignData))
		case "json":
			return design.ReadJSON(bytes.NewReader(opts.DesignData))
		default:
			return nil, fmt.Errorf("invalid design_format: %q (must be toml or json)", opts.DesignFormat)
		}
	}
	return design.Load(opts.DesignPath)
}

// PlaceWithCacheInfo solves the placement with caching and returns cache
// hit info. On a cache hit the design's pin and slot state is left
// untouched; the report alone carries the outcome.
func (r *Runner) PlaceWithCacheInfo(ctx context.Context, d *design.Design, opts Options) (*design.Report, bool, error) {
	opts.SetPlaceDefaults()
	r.applyLogger(&opts)

	cacheKey := r.Keyer.PlacementKey(d.Hash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			rep, err := design.ReadReport(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "placement")
				return rep, true, nil // Cache hit
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "placement")

	placer := &ioplace.Placer{
		Slots:   d.Slots,
		Pins:    d.Pins,
		Coster:  d.Net,
		Mirrors: d.Mirrors,
		Logger:  opts.Logger,
		Workers: opts.Workers,
	}
	if len(d.Mirrors) > 0 {
		placer.Reflect = &d.Core
	}

	res, err := placer.Place(ctx, d.Sections)
	if err != nil {
		return nil, false, err
	}
	rep := design.NewReport(d.Name, res)

	var buf bytes.Buffer
	if err := design.WriteReport(rep, &buf); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.TTLPlacement)
		observability.Cache().OnCacheSet(ctx, "placement", buf.Len())
	}

	return rep, false, nil // Cache miss
}

// Place is a convenience wrapper that discards the cache hit info.
func (r *Runner) Place(ctx context.Context, d *design.Design, opts Options) (*design.Report, error) {
	rep, _, err := r.PlaceWithCacheInfo(ctx, d, opts)
	return rep, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *design.Design, rep *design.Report, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Artifacts are keyed by the report content, not the design: two
	// designs solving to the same placement share artifacts.
	var repData bytes.Buffer
	if err := design.WriteReport(rep, &repData); err != nil {
		return nil, false, fmt.Errorf("serialize report for cache key: %w", err)
	}
	reportHash := cache.Hash(repData.Bytes())

	allCached := true
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(reportHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := Render(d, rep, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(reportHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
