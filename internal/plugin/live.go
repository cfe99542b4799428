package plugin

import (
	"sports-scoreboard/internal/domain"
	"sports-scoreboard/internal/logging"
)

// HasLivePriority reports whether any enabled league may preempt rotation.
func (p *Plugin) HasLivePriority() bool {
	if !p.cfg.Enabled {
		return false
	}
	for _, league := range p.registry.Leagues() {
		if entry, ok := p.registry.Entry(league); ok && entry.Enabled && entry.LivePriority {
			return true
		}
	}
	return false
}

// HasLiveContent reports whether any live-priority league currently has a
// game worth preempting for.
func (p *Plugin) HasLiveContent() bool {
	return len(p.GetLiveModes()) > 0
}

// GetLiveModes returns the display modes with genuinely live content, in
// league priority order.
func (p *Plugin) GetLiveModes() []domain.DisplayMode {
	if !p.cfg.Enabled {
		return nil
	}

	var modes []domain.DisplayMode
	for _, league := range p.registry.EnabledLeaguesForMode(domain.ModeLive) {
		entry, ok := p.registry.Entry(league)
		if !ok || !entry.LivePriority {
			continue
		}
		m := p.registry.ManagerFor(league, domain.ModeLive)
		if m == nil || !m.HasDisplayableLiveGames() {
			continue
		}
		modes = append(modes, domain.FormatDisplayMode(league, domain.ModeLive))
	}

	if len(modes) == 0 && p.liveThrottle.Allow("no-live-content") {
		logging.Debug(p.logger, "no live content available")
	}
	return modes
}
