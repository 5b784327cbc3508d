// Package cache provides pluggable byte caches for pipeline stages.
//
// Placement runs are deterministic, so every stage output can be cached
// under a content-derived key: parsed designs by input hash, placement
// results by design hash, rendered artifacts by placement hash. Backends
// include a file cache for CLI usage, a Redis cache for server
// deployments, and a null cache for tests and --no-cache runs.
package cache

import (
	"context"
	"time"
)

// Standard TTLs per stage. Keys are content-derived, so entries never go
// stale; the TTLs only bound disk and Redis growth.
const (
	// TTLDesign applies to parsed design documents.
	TTLDesign = 7 * 24 * time.Hour

	// TTLPlacement applies to solved placement results.
	TTLPlacement = 7 * 24 * time.Hour

	// TTLArtifact applies to rendered artifacts (DOT, SVG, PNG), which
	// are cheap to regenerate from a cached placement.
	TTLArtifact = 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts carries the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Scale     float64 `json:"scale,omitempty"`
	ShowSlots bool    `json:"show_slots,omitempty"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// DesignKey keys a parsed design by input format and content hash.
	DesignKey(format, contentHash string) string

	// PlacementKey keys a solved placement by the design it was solved
	// from. Solving is deterministic, so the design hash alone suffices.
	PlacementKey(designHash string) string

	// ArtifactKey keys a rendered artifact by placement hash and render
	// options.
	ArtifactKey(placementHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DesignKey generates a key for a parsed design document.
func (k *DefaultKeyer) DesignKey(format, contentHash string) string {
	return hashKey("design", format, contentHash)
}

// PlacementKey generates a key for a solved placement result.
func (k *DefaultKeyer) PlacementKey(designHash string) string {
	return hashKey("placement", designHash)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(placementHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", placementHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
