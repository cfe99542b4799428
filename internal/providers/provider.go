// Package providers defines how upstream scoreboard data is fetched and the
// decorators that wrap a provider with retry, pacing, and logging behavior.
package providers

import (
	"context"
	"errors"

	"sports-scoreboard/internal/domain"
)

// ScoreboardProvider fetches the normalized games for one league. The date
// parameter, when provided, is a YYYY-MM-DD string selecting which day's
// scoreboard to fetch; providers interpret an empty date as "today".
type ScoreboardProvider interface {
	FetchGames(ctx context.Context, date string) ([]domain.GameRecord, error)
}

// ErrProviderUnavailable is returned when a decorator has no usable inner
// provider to delegate to.
var ErrProviderUnavailable = errors.New("provider unavailable")
