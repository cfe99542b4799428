package logging

import (
	"log/slog"
	"sync"
	"time"
)

// Info logs an info message when a logger is configured.
func Info(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

// Warn logs a warning when a logger is configured.
func Warn(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// Debug logs a debug message when a logger is configured.
func Debug(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

// Error logs an error when a logger is configured.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if logger == nil {
		return
	}
	if err != nil {
		args = append(args, "error", err)
	}
	logger.Error(msg, args...)
}

// Throttle suppresses repeated log lines for a key until the cooldown passes.
// Used for chatty negative results like "no live content" that would
// otherwise flood the log on every display tick.
type Throttle struct {
	mu       sync.Mutex
	cooldown time.Duration
	lastByID map[string]time.Time
	now      func() time.Time
}

// NewThrottle builds a throttle with the given cooldown per key.
func NewThrottle(cooldown time.Duration) *Throttle {
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	return &Throttle{
		cooldown: cooldown,
		lastByID: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Allow reports whether a line for the key may be logged now, recording the
// attempt when it is.
func (t *Throttle) Allow(key string) bool {
	if t == nil {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	if last, ok := t.lastByID[key]; ok && now.Sub(last) < t.cooldown {
		return false
	}
	t.lastByID[key] = now
	return true
}
