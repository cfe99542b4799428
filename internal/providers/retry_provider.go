package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"sports-scoreboard/internal/domain"
	"sports-scoreboard/internal/logging"
)

const (
	defaultRetryAttempts   = 3
	defaultInitialInterval = 200 * time.Millisecond
)

// retryingProvider wraps a ScoreboardProvider with exponential backoff. A
// rate limit response stops the retry loop early; pacing is the rate-limited
// decorator's job, not this one's.
type retryingProvider struct {
	inner       ScoreboardProvider
	logger      *slog.Logger
	maxAttempts int
	initial     time.Duration
}

// NewRetryingProvider wraps the given provider with retries. Non-positive
// maxAttempts or backoff fall back to defaults.
func NewRetryingProvider(inner ScoreboardProvider, logger *slog.Logger, maxAttempts int, initial time.Duration) ScoreboardProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultInitialInterval
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		initial:     initial,
	}
}

func (r *retryingProvider) FetchGames(ctx context.Context, date string) ([]domain.GameRecord, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.initial
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(r.maxAttempts-1)), ctx)

	attempt := 0
	games, err := backoff.RetryWithData(func() ([]domain.GameRecord, error) {
		attempt++
		games, err := r.inner.FetchGames(ctx, date)
		if err == nil {
			return games, nil
		}
		if rl, ok := AsRateLimitError(err); ok {
			r.logWarn(ctx, "provider rate limited, not retrying",
				logging.FieldProvider, rl.Provider, "retry_after", rl.RetryAfter.String())
			return nil, backoff.Permanent(err)
		}
		r.logWarn(ctx, "provider fetch retry",
			"attempt", attempt, "max_attempts", r.maxAttempts, "err", err)
		return nil, err
	}, policy)
	if err != nil {
		r.logWarn(ctx, "provider fetch failed", "attempts", attempt, "err", err)
		return nil, err
	}
	return games, nil
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logger := logging.FromContext(ctx, r.logger)
	if logger != nil {
		logger.Warn(msg, args...)
	}
}
