package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"sports-scoreboard/internal/domain"
	"sports-scoreboard/internal/logging"
)

// rateLimitedProvider wraps a ScoreboardProvider and enforces a minimum
// interval between upstream calls. Calls inside the interval are served from
// the last fetched list so the display never blocks on pacing.
type rateLimitedProvider struct {
	next     ScoreboardProvider
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	lastCall time.Time
	cached   []domain.GameRecord
	haveData bool
}

// NewRateLimitedProvider returns a ScoreboardProvider that limits upstream
// calls to the given interval.
func NewRateLimitedProvider(next ScoreboardProvider, interval time.Duration, logger *slog.Logger) ScoreboardProvider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

func (p *rateLimitedProvider) FetchGames(ctx context.Context, date string) ([]domain.GameRecord, error) {
	if p == nil || p.next == nil {
		logging.Warn(p.loggerOrNil(), "provider unavailable", logging.FieldProvider, "rate-limited")
		return nil, ErrProviderUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	if p.haveData && p.now().Sub(p.lastCall) < p.interval {
		cached := p.cached
		p.mu.Unlock()
		logging.Debug(p.logger, "serving cached scoreboard", logging.FieldProvider, "rate-limited")
		return cached, nil
	}
	p.mu.Unlock()

	games, err := p.next.FetchGames(ctx, date)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.lastCall = p.now()
	p.cached = games
	p.haveData = true
	p.mu.Unlock()
	return games, nil
}

func (p *rateLimitedProvider) loggerOrNil() *slog.Logger {
	if p == nil {
		return nil
	}
	return p.logger
}
