package metrics

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRecorderNilSafe(t *testing.T) {
	var r *Recorder
	r.RecordProviderAttempt("nrl", time.Second, nil)
	r.RecordRateLimit("nrl", time.Second)
	r.RecordManagerUpdate("nrl_live", time.Second, nil)
	r.RecordFrame("nrl_live")
	r.RecordCycleComplete("nrl_live")
	if got := r.Snapshot("nrl"); got != (Snapshot{}) {
		t.Fatalf("nil recorder snapshot should be zero, got %+v", got)
	}
}

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder()

	r.RecordProviderAttempt("nrl", 120*time.Millisecond, nil)
	r.RecordProviderAttempt("nrl", 80*time.Millisecond, errors.New("boom"))
	r.RecordRateLimit("nrl", 30*time.Second)
	r.RecordManagerUpdate("nrl_live", 50*time.Millisecond, nil)
	r.RecordManagerUpdate("nrl_live", 10*time.Millisecond, errors.New("slow"))
	r.RecordFrame("nrl_live")
	r.RecordFrame("nrl_live")
	r.RecordCycleComplete("nrl_live")

	snap := r.Snapshot("nrl")
	if snap.ProviderCalls != 2 || snap.ProviderErrors != 1 {
		t.Fatalf("provider stats = %+v", snap)
	}
	if snap.RateLimitHits != 1 || snap.LastRetryAfter != 30*time.Second {
		t.Fatalf("rate limit stats = %+v", snap)
	}
	if snap.LastCallLatency != 80*time.Millisecond {
		t.Fatalf("last latency = %v", snap.LastCallLatency)
	}

	mgr := r.Snapshot("nrl_live")
	if mgr.UpdateCycles != 2 || mgr.UpdateErrors != 1 {
		t.Fatalf("manager stats = %+v", mgr)
	}
	if r.FramesDrawn("nrl_live") != 2 {
		t.Fatalf("frames = %d", r.FramesDrawn("nrl_live"))
	}
	if mgr.CyclesCompleted != 1 {
		t.Fatalf("cycles = %d", mgr.CyclesCompleted)
	}
}

func TestSetupDisabled(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if rec == nil {
		t.Fatal("expected recorder even when disabled")
	}
	if handler != nil {
		t.Fatal("expected nil handler when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
}
