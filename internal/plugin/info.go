package plugin

import (
	"time"

	"sports-scoreboard/internal/domain"
	"sports-scoreboard/internal/manager"
	"sports-scoreboard/internal/scheduler"
)

// GetCycleDuration reports how long a full pass through the named display
// mode takes. For a combined mode the durations of every enabled league are
// summed. The second return is false when the mode is unknown.
func (p *Plugin) GetCycleDuration(dm domain.DisplayMode) (time.Duration, bool) {
	if league, mode, ok := domain.ParseDisplayMode(dm); ok {
		if _, registered := p.registry.Entry(league); registered {
			return p.leagueCycleDuration(league, mode), true
		}
	}
	if mode, ok := domain.ModeTypeOf(dm); ok {
		var total time.Duration
		for _, league := range p.registry.EnabledLeaguesForMode(mode) {
			total += p.leagueCycleDuration(league, mode)
		}
		return total, true
	}
	return 0, false
}

func (p *Plugin) leagueCycleDuration(league string, mode domain.ModeType) time.Duration {
	entry, ok := p.registry.Entry(league)
	if !ok {
		return 0
	}
	m := p.registry.ManagerFor(league, mode)
	if m == nil {
		return 0
	}
	games := m.Games()
	loaded := len(games) > 0 || !m.Status().LastSuccess.IsZero()
	return scheduler.CycleDuration(entry.Config, mode, len(games), loaded, m.GameDisplayDuration())
}

// IsCycleComplete reports whether the mode currently on screen has shown all
// of its content. Modes without dynamic duration are always complete; the
// host falls back to fixed timing for them.
func (p *Plugin) IsCycleComplete() bool {
	if p.currentDM == "" {
		return true
	}
	if league, mode, ok := domain.ParseDisplayMode(p.currentDM); ok {
		if entry, registered := p.registry.Entry(league); registered {
			if !entry.Config.DynamicEnabled(mode) {
				return true
			}
			return p.tracker.EvaluateCompletion(p.currentDM, p.now())
		}
	}
	if mode, ok := domain.ModeTypeOf(p.currentDM); ok {
		any := false
		for _, league := range p.registry.EnabledLeaguesForMode(mode) {
			entry, registered := p.registry.Entry(league)
			if registered && entry.Config.DynamicEnabled(mode) {
				any = true
				break
			}
		}
		if !any {
			return true
		}
	}
	return p.tracker.EvaluateCompletion(p.currentDM, p.now())
}

// ResetCycleState clears all rotation bookkeeping so the next tick starts a
// fresh pass through every mode.
func (p *Plugin) ResetCycleState() {
	p.tracker.Reset()
	p.modeStarts = make(map[domain.DisplayMode]time.Time)
	p.cycleDone = make(map[domain.DisplayMode]bool)
	p.currentDM = ""
	p.modeIdx = 0
	p.lastModeSwitch = time.Time{}
}

// Health reports every manager's fetch status keyed by display mode.
func (p *Plugin) Health() map[string]manager.Status {
	health := make(map[string]manager.Status)
	for _, league := range p.registry.Leagues() {
		for _, mode := range domain.ModeTypes {
			if m := p.registry.ManagerFor(league, mode); m != nil {
				health[string(domain.FormatDisplayMode(league, mode))] = m.Status()
			}
		}
	}
	return health
}

// GetInfo returns a diagnostic snapshot of the plugin for the status surface.
func (p *Plugin) GetInfo() map[string]any {
	leagues := make([]string, 0)
	livePriority := make([]string, 0)
	durations := make(map[string]float64)

	for _, league := range p.registry.Leagues() {
		entry, ok := p.registry.Entry(league)
		if !ok || !entry.Enabled {
			continue
		}
		leagues = append(leagues, league)
		if entry.LivePriority {
			livePriority = append(livePriority, league)
		}
		for _, mode := range domain.ModeTypes {
			if p.registry.ManagerFor(league, mode) == nil {
				continue
			}
			dm := domain.FormatDisplayMode(league, mode)
			if d, ok := p.GetCycleDuration(dm); ok {
				durations[string(dm)] = d.Seconds()
			}
		}
	}

	modes := make([]string, 0, len(p.displayModes))
	for _, dm := range p.displayModes {
		modes = append(modes, string(dm))
	}

	return map[string]any{
		"name":                  "sports-scoreboard",
		"enabled":               p.cfg.Enabled,
		"leagues":               leagues,
		"live_priority_leagues": livePriority,
		"current_display_mode":  string(p.currentDM),
		"available_modes":       modes,
		"cycle_durations_s":     durations,
		"managers":              p.Health(),
	}
}
