package cache

// ScopedKeyer wraps a Keyer with a prefix so independent workspaces or
// server tenants get separate cache namespaces while sharing one backend.
//
// Example usage:
//
//	// Per-project keys when several designs share a Redis instance
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "proj:riscv-soc:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DesignKey generates a prefixed key for a parsed design document.
func (k *ScopedKeyer) DesignKey(format, contentHash string) string {
	return k.prefix + k.inner.DesignKey(format, contentHash)
}

// PlacementKey generates a prefixed key for a solved placement result.
func (k *ScopedKeyer) PlacementKey(designHash string) string {
	return k.prefix + k.inner.PlacementKey(designHash)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(placementHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(placementHash, opts)
}
