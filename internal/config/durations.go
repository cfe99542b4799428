package config

import (
	"time"

	"sports-scoreboard/internal/domain"
)

// ModeShown reports whether a mode type is enabled for this league.
// Absent flags default to shown.
func (l LeagueConfig) ModeShown(mode domain.ModeType) bool {
	var flag *bool
	switch mode {
	case domain.ModeLive:
		flag = l.DisplayModes.ShowLive
	case domain.ModeRecent:
		flag = l.DisplayModes.ShowRecent
	case domain.ModeUpcoming:
		flag = l.DisplayModes.ShowUpcoming
	default:
		return false
	}
	if flag == nil {
		return true
	}
	return *flag
}

// GameDuration resolves the configured per-game dwell for a mode type.
// Resolution order: display_durations for the mode, then live_game_duration
// for live. Returns false when nothing is configured so the caller can fall
// through to its own default.
func (l LeagueConfig) GameDuration(mode domain.ModeType) (time.Duration, bool) {
	var seconds float64
	switch mode {
	case domain.ModeLive:
		seconds = l.DisplayDurations.Live
	case domain.ModeRecent:
		seconds = l.DisplayDurations.Recent
	case domain.ModeUpcoming:
		seconds = l.DisplayDurations.Upcoming
	}
	if seconds > 0 {
		return secondsToDuration(seconds), true
	}
	if mode == domain.ModeLive && l.LiveGameDuration > 0 {
		return secondsToDuration(l.LiveGameDuration), true
	}
	return 0, false
}

// ModeDuration returns the fixed block duration configured for a mode type,
// or false when the block should use the dynamic estimate instead.
func (l LeagueConfig) ModeDuration(mode domain.ModeType) (time.Duration, bool) {
	var seconds float64
	switch mode {
	case domain.ModeLive:
		seconds = l.ModeDurations.LiveModeDuration
	case domain.ModeRecent:
		seconds = l.ModeDurations.RecentModeDuration
	case domain.ModeUpcoming:
		seconds = l.ModeDurations.UpcomingModeDuration
	}
	if seconds > 0 {
		return secondsToDuration(seconds), true
	}
	return 0, false
}

// DynamicEnabled reports whether dynamic duration applies to a mode type.
// The per-mode override wins over the per-league flag; there is no global
// fallback.
func (l LeagueConfig) DynamicEnabled(mode domain.ModeType) bool {
	if override, ok := l.DynamicDuration.Modes[string(mode)]; ok && override.Enabled != nil {
		return *override.Enabled
	}
	if l.DynamicDuration.Enabled != nil {
		return *l.DynamicDuration.Enabled
	}
	return false
}

// DynamicCap returns the dynamic-duration ceiling for a mode type, most
// specific setting first.
func (l LeagueConfig) DynamicCap(mode domain.ModeType) (time.Duration, bool) {
	if override, ok := l.DynamicDuration.Modes[string(mode)]; ok && override.MaxDurationSeconds > 0 {
		return secondsToDuration(override.MaxDurationSeconds), true
	}
	if l.DynamicDuration.MaxDurationSeconds > 0 {
		return secondsToDuration(l.DynamicDuration.MaxDurationSeconds), true
	}
	return 0, false
}

// UpdateInterval returns the refresh interval for a mode type. Live games use
// the faster live interval.
func (l LeagueConfig) UpdateInterval(mode domain.ModeType) time.Duration {
	if mode == domain.ModeLive {
		return secondsToDuration(l.LiveUpdateInterval)
	}
	return secondsToDuration(l.UpdateIntervalSeconds)
}

// NoDataUpdateInterval returns the slower refresh used by live managers with
// no games in flight; zero when not configured.
func (l LeagueConfig) NoDataUpdateInterval() time.Duration {
	return secondsToDuration(l.NoDataInterval)
}

// StaleTimeout returns how long a game may go unseen before being pruned.
func (l LeagueConfig) StaleTimeout() time.Duration {
	return secondsToDuration(l.StaleGameTimeout)
}
