// Package runstore persists placement runs.
//
// A run is one solved placement: the design it came from, the full report
// (placements, diagnostics, stats), and a unique ID. The Store interface
// has three backends:
//   - memory: in-process storage for development and testing
//   - file: JSON files in a config directory for CLI usage
//   - mongo: MongoDB for server deployments where runs outlive a process
//
// # Usage
//
//	store := runstore.NewMemoryStore()
//	run := runstore.New(d.Hash, report)
//	if err := store.Put(ctx, run); err != nil {
//	    return err
//	}
//
//	run, err := store.Get(ctx, id)
//	if run == nil {
//	    // not found
//	}
package runstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/askeland/pinplace/pkg/design"
)

// Run is one persisted placement run.
type Run struct {
	ID         string         `json:"id" bson:"_id"`
	DesignHash string         `json:"design_hash" bson:"design_hash"`
	Report     *design.Report `json:"report" bson:"report"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
}

// New creates a run with a fresh UUID for the given report.
func New(designHash string, report *design.Report) *Run {
	return &Run{
		ID:         uuid.NewString(),
		DesignHash: designHash,
		Report:     report,
		CreatedAt:  time.Now().UTC(),
	}
}

// Store is the interface for run storage backends.
type Store interface {
	// Get retrieves a run by ID. Returns nil, nil if the run doesn't
	// exist.
	Get(ctx context.Context, id string) (*Run, error)

	// Put stores a run, replacing any run with the same ID.
	Put(ctx context.Context, run *Run) error

	// List returns up to limit runs, newest first. A limit of zero or
	// below means no limit.
	List(ctx context.Context, limit int) ([]*Run, error)

	// Delete removes a run. Deleting a missing run is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}
