package providers

import (
	"context"
	"log/slog"
	"time"

	"sports-scoreboard/internal/domain"
	"sports-scoreboard/internal/logging"
	"sports-scoreboard/internal/metrics"
)

// loggingProvider wraps a ScoreboardProvider with structured request logging
// and metrics recording.
type loggingProvider struct {
	next     ScoreboardProvider
	name     string
	league   string
	logger   *slog.Logger
	recorder *metrics.Recorder
	now      func() time.Time
}

// NewLoggingProvider decorates the given provider with per-call logging and
// metrics keyed by league.
func NewLoggingProvider(next ScoreboardProvider, name, league string, logger *slog.Logger, recorder *metrics.Recorder) ScoreboardProvider {
	return &loggingProvider{
		next:     next,
		name:     name,
		league:   league,
		logger:   logger,
		recorder: recorder,
		now:      time.Now,
	}
}

func (p *loggingProvider) FetchGames(ctx context.Context, date string) ([]domain.GameRecord, error) {
	if p.next == nil {
		return nil, ErrProviderUnavailable
	}

	start := p.now()
	games, err := p.next.FetchGames(ctx, date)
	elapsed := p.now().Sub(start)

	logger := logging.FromContext(ctx, p.logger)
	p.recorder.RecordProviderAttempt(p.league, elapsed, err)

	if err != nil {
		if rl, ok := AsRateLimitError(err); ok {
			p.recorder.RecordRateLimit(p.league, rl.RetryAfter)
		}
		logging.Warn(logger, "scoreboard fetch failed",
			logging.FieldProvider, p.name,
			logging.FieldLeague, p.league,
			logging.FieldDurationMS, elapsed.Milliseconds(),
			"err", err)
		return nil, err
	}

	logging.Debug(logger, "scoreboard fetched",
		logging.FieldProvider, p.name,
		logging.FieldLeague, p.league,
		logging.FieldCount, len(games),
		logging.FieldDurationMS, elapsed.Milliseconds())
	return games, nil
}
