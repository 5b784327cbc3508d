package observability

import (
	"context"
	"testing"
	"time"
)

type recordingPlacerHooks struct {
	NoopPlacerHooks
	sections int
}

func (h *recordingPlacerHooks) OnSectionStart(_ context.Context, _ string, _, _ int) {
	h.sections++
}

type recordingCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *recordingCacheHooks) OnCacheHit(_ context.Context, _ string) {
	h.hits++
}

func TestSetPlacerHooks(t *testing.T) {
	defer Reset()

	rec := &recordingPlacerHooks{}
	SetPlacerHooks(rec)

	Placer().OnSectionStart(context.Background(), "top", 10, 4)
	Placer().OnSectionComplete(context.Background(), "top", 4, time.Millisecond, nil)

	if rec.sections != 1 {
		t.Errorf("expected 1 section event, got %d", rec.sections)
	}
}

func TestSetCacheHooks(t *testing.T) {
	defer Reset()

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)

	Cache().OnCacheHit(context.Background(), "matrix")
	if rec.hits != 1 {
		t.Errorf("expected 1 hit event, got %d", rec.hits)
	}
}

func TestSetHooks_NilIgnored(t *testing.T) {
	defer Reset()

	SetPlacerHooks(nil)
	SetCacheHooks(nil)

	// Defaults must stay usable after nil registration.
	Placer().OnSolveStart(context.Background(), 3, 2)
	Cache().OnCacheMiss(context.Background(), "matrix")
}

func TestReset(t *testing.T) {
	rec := &recordingPlacerHooks{}
	SetPlacerHooks(rec)
	Reset()

	Placer().OnSectionStart(context.Background(), "left", 1, 1)
	if rec.sections != 0 {
		t.Error("Reset should restore no-op hooks")
	}
}
