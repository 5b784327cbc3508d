package runstore

import (
	"context"
	"testing"
	"time"

	"github.com/askeland/pinplace/pkg/design"
	"github.com/askeland/pinplace/pkg/ioplace"
)

func testReport() *design.Report {
	return &design.Report{
		Design: "soc-top",
		Placements: []ioplace.Placement{
			{Pin: 0, Name: "clk", Slot: 1},
		},
		Stats: ioplace.Stats{Sections: 1, Placed: 1},
	}
}

func TestNewRun(t *testing.T) {
	run := New("deadbeef", testReport())
	if run.ID == "" {
		t.Error("run should get a generated ID")
	}
	if run.DesignHash != "deadbeef" {
		t.Errorf("design hash = %q", run.DesignHash)
	}
	if run.CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}

	other := New("deadbeef", testReport())
	if other.ID == run.ID {
		t.Error("each run should get a unique ID")
	}
}

// storeUnderTest exercises the Store contract shared by all backends.
func storeUnderTest(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	// Missing run is nil, nil
	got, err := store.Get(ctx, "00000000-0000-0000-0000-000000000000")
	if err != nil || got != nil {
		t.Fatalf("missing run: got %v, err %v", got, err)
	}

	run := New("deadbeef", testReport())
	if err := store.Put(ctx, run); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err = store.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.ID != run.ID || got.DesignHash != run.DesignHash {
		t.Fatalf("Get = %+v, want %+v", got, run)
	}
	if got.Report == nil || got.Report.Stats.Placed != 1 {
		t.Errorf("report not preserved: %+v", got.Report)
	}

	// Put with the same ID replaces
	run.Report.Stats.Placed = 7
	if err := store.Put(ctx, run); err != nil {
		t.Fatalf("Put replace: %v", err)
	}
	got, _ = store.Get(ctx, run.ID)
	if got.Report.Stats.Placed != 7 {
		t.Error("Put should replace an existing run")
	}

	// List returns newest first
	older := New("cafe", testReport())
	older.CreatedAt = run.CreatedAt.Add(-time.Hour)
	if err := store.Put(ctx, older); err != nil {
		t.Fatalf("Put older: %v", err)
	}
	runs, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != run.ID {
		t.Errorf("List order wrong: %+v", runs)
	}
	limited, err := store.List(ctx, 1)
	if err != nil || len(limited) != 1 {
		t.Errorf("List limit: %v (%v)", limited, err)
	}

	// Delete removes; deleting again is fine
	if err := store.Delete(ctx, run.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := store.Get(ctx, run.ID); got != nil {
		t.Error("run should be gone after Delete")
	}
	if err := store.Delete(ctx, run.ID); err != nil {
		t.Errorf("Delete missing run: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	storeUnderTest(t, store)
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer store.Close()
	storeUnderTest(t, store)
}

func TestFileStoreRejectsBadIDs(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer store.Close()

	if _, err := store.Get(context.Background(), "../escape"); err == nil {
		t.Error("path-traversal ID should be rejected")
	}
}
