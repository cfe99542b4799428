package metrics

import (
	"sync"
	"time"
)

type leagueStats struct {
	providerCalls   int
	providerErrors  int
	rateLimitHits   int
	updateCycles    int
	updateErrors    int
	framesDrawn     int
	cycleCompleted  int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about provider calls,
// manager updates, and display activity. It is nil-safe throughout so
// callers never have to guard their recording sites.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*leagueStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*leagueStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for an upstream fetch and stores
// the last observed latency.
func (r *Recorder) RecordProviderAttempt(league string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(league)
	stats.providerCalls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.providerErrors++
	}
	if r.otel != nil {
		r.otel.recordProviderAttempt(league, duration, err)
	}
}

// RecordRateLimit tracks an upstream rate-limit response and its Retry-After.
func (r *Recorder) RecordRateLimit(league string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	stats := r.ensureStats(league)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	if r.otel != nil {
		r.otel.recordRateLimit(league, retryAfter)
	}
}

// RecordManagerUpdate tracks one manager refresh cycle.
func (r *Recorder) RecordManagerUpdate(manager string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(manager)
	stats.updateCycles++
	if err != nil {
		stats.updateErrors++
	}
	if r.otel != nil {
		r.otel.recordManagerUpdate(manager, duration, err)
	}
}

// RecordFrame tracks one rendered frame for a display mode.
func (r *Recorder) RecordFrame(displayMode string) {
	if r == nil {
		return
	}

	stats := r.ensureStats(displayMode)
	stats.framesDrawn++
	if r.otel != nil {
		r.otel.recordFrame(displayMode)
	}
}

// RecordCycleComplete tracks a rotation cycle reaching completion for a
// display mode.
func (r *Recorder) RecordCycleComplete(displayMode string) {
	if r == nil {
		return
	}

	stats := r.ensureStats(displayMode)
	stats.cycleCompleted++
	if r.otel != nil {
		r.otel.recordCycleComplete(displayMode)
	}
}

// Snapshot is a copy of the current stats for one key.
type Snapshot struct {
	ProviderCalls   int
	ProviderErrors  int
	RateLimitHits   int
	UpdateCycles    int
	UpdateErrors    int
	FramesDrawn     int
	CyclesCompleted int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(key string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(key)
	return Snapshot{
		ProviderCalls:   stats.providerCalls,
		ProviderErrors:  stats.providerErrors,
		RateLimitHits:   stats.rateLimitHits,
		UpdateCycles:    stats.updateCycles,
		UpdateErrors:    stats.updateErrors,
		FramesDrawn:     stats.framesDrawn,
		CyclesCompleted: stats.cycleCompleted,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// ProviderCalls returns the total fetch attempts recorded for a key.
func (r *Recorder) ProviderCalls(key string) int {
	return r.Snapshot(key).ProviderCalls
}

// FramesDrawn returns the total frames rendered for a display mode.
func (r *Recorder) FramesDrawn(displayMode string) int {
	return r.Snapshot(displayMode).FramesDrawn
}

// RecordHTTPRequest tracks basic HTTP metrics for the status endpoints.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

func (r *Recorder) ensureStats(key string) *leagueStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[key]
	if !ok {
		stats = &leagueStats{}
		r.stats[key] = stats
	}
	return stats
}

func (r *Recorder) snapshot(key string) leagueStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[key]; ok && stats != nil {
		return *stats
	}
	return leagueStats{}
}
