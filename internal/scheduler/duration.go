package scheduler

import (
	"time"

	"sports-scoreboard/internal/config"
	"sports-scoreboard/internal/domain"
)

// defaultCycleDuration is advertised while a manager's data is still loading
// or it currently has nothing to show.
const defaultCycleDuration = 45 * time.Second

// CycleDuration estimates how long one full rotation of a display mode
// takes: a configured mode-level duration wins outright, otherwise the
// estimate is game count times per-game dwell, capped by the dynamic ceiling
// when enabled. loaded is false before the manager's first successful fetch.
func CycleDuration(cfg config.LeagueConfig, mode domain.ModeType, gameCount int, loaded bool, perGame time.Duration) time.Duration {
	if fixed, ok := cfg.ModeDuration(mode); ok {
		return fixed
	}
	if !loaded || gameCount == 0 {
		return defaultCycleDuration
	}

	total := time.Duration(gameCount) * perGame
	if cfg.DynamicEnabled(mode) {
		if ceiling, ok := cfg.DynamicCap(mode); ok && total > ceiling {
			total = ceiling
		}
	}
	return total
}
