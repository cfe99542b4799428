package plugin

import (
	"context"

	"sports-scoreboard/internal/domain"
	"sports-scoreboard/internal/logging"
	"sports-scoreboard/internal/manager"
	"sports-scoreboard/internal/scheduler"
)

// Display renders one tick. A non-empty displayMode routes externally:
// "{league}_{mode}" goes straight to that league's manager, a bare
// mode-type suffix tries every eligible league in priority order with
// sticky semantics. An empty displayMode falls back to internal cycling.
// A false return means nothing was drawn; the screen is never cleared on
// that path.
func (p *Plugin) Display(displayMode domain.DisplayMode, forceClear bool) bool {
	if !p.cfg.Enabled {
		return false
	}
	if displayMode == "" {
		return p.displayInternal(forceClear)
	}

	if league, mode, ok := domain.ParseDisplayMode(displayMode); ok {
		if _, registered := p.registry.Entry(league); registered {
			return p.displayLeagueMode(league, mode, forceClear)
		}
		// Legacy combined mode, e.g. "basketball_recent": the prefix is not
		// a league, only the mode type matters.
		return p.displayCombined(displayMode, mode, forceClear)
	}

	logging.Warn(p.logger, "unknown display mode", logging.FieldDisplayMode, string(displayMode))
	return false
}

// displayLeagueMode shows one specific league and mode.
func (p *Plugin) displayLeagueMode(league string, mode domain.ModeType, forceClear bool) bool {
	m := p.registry.ManagerFor(league, mode)
	if m == nil {
		return false
	}

	dm := domain.FormatDisplayMode(league, mode)
	now := p.now()
	if p.tracker.NoteDisplayMode(dm, now) {
		delete(p.modeStarts, dm)
		p.cycleDone[dm] = false
	}

	ok := m.Display(forceClear)
	if !ok {
		// No content: forget the block start so the mode times fresh when
		// content shows up again.
		delete(p.modeStarts, dm)
		return false
	}

	p.recordProgress(m, dm)
	p.currentDM = dm

	// Mode-level duration enforcement: once the configured block time is
	// spent, hand rotation off with progress preserved for the resume.
	entry, _ := p.registry.Entry(league)
	if blockDuration, configured := entry.Config.ModeDuration(mode); configured {
		start, tracking := p.modeStarts[dm]
		if !tracking {
			p.modeStarts[dm] = now
		} else if now.Sub(start) >= blockDuration {
			logging.Info(p.logger, "mode duration expired, rotating",
				logging.FieldDisplayMode, string(dm))
			p.modeStarts[dm] = now
			return false
		}
	}
	return true
}

// displayCombined tries each eligible league's manager for a mode type in
// priority order. The first league to draw becomes sticky for the mode and
// keeps the slot until its games complete.
func (p *Plugin) displayCombined(dm domain.DisplayMode, mode domain.ModeType, forceClear bool) bool {
	now := p.now()
	if p.tracker.NoteDisplayMode(dm, now) {
		p.cycleDone[dm] = false
	}

	ctx := logging.WithLogger(context.Background(), p.logger)
	candidates := p.registry.ResolveManagersForMode(ctx, mode)
	if len(candidates) == 0 {
		logging.Warn(p.logger, "no managers available for mode",
			logging.FieldDisplayMode, string(dm))
		return false
	}

	byKey := make(map[domain.ManagerKey]*manager.Manager, len(candidates))
	keys := make([]domain.ManagerKey, len(candidates))
	for i, m := range candidates {
		keys[i] = m.Key()
		byKey[m.Key()] = m
	}

	first := true
	for _, key := range p.tracker.Select(dm, keys) {
		m := byKey[key]
		// Only the first attempt may clear; a later fallback clearing too
		// would flash the panel between leagues.
		ok := m.Display(forceClear && first)
		first = false
		if !ok {
			continue
		}
		p.tracker.MarkSticky(dm, key)
		p.recordProgress(m, dm)
		p.currentDM = dm
		return true
	}
	return false
}

// displayInternal cycles through the configured display modes on the
// plugin's own clock, jumping to live content when it appears and holding
// there while it lasts.
func (p *Plugin) displayInternal(forceClear bool) bool {
	if len(p.displayModes) == 0 {
		return false
	}
	now := p.now()
	if p.lastModeSwitch.IsZero() {
		p.lastModeSwitch = now
	}

	current := p.displayModes[p.modeIdx]
	_, currentMode, _ := domain.ParseDisplayMode(current)
	stayOnLive := false
	if p.HasLiveContent() {
		if currentMode == domain.ModeLive {
			stayOnLive = true
		} else if idx, ok := p.firstLiveModeIndex(); ok {
			p.modeIdx = idx
			p.lastModeSwitch = now
			forceClear = true
			logging.Info(p.logger, "live content detected, switching mode",
				logging.FieldDisplayMode, string(p.displayModes[idx]))
			stayOnLive = true
		}
	}

	if !stayOnLive && now.Sub(p.lastModeSwitch) >= p.displayDuration {
		p.modeIdx = (p.modeIdx + 1) % len(p.displayModes)
		p.lastModeSwitch = now
		forceClear = true
	}

	dm := p.displayModes[p.modeIdx]
	league, mode, ok := domain.ParseDisplayMode(dm)
	if !ok {
		return false
	}
	m := p.registry.ManagerFor(league, mode)
	if m == nil {
		return false
	}

	p.tracker.NoteDisplayMode(dm, now)
	drawn := m.Display(forceClear)
	if drawn {
		p.recordProgress(m, dm)
		p.currentDM = dm
	}
	return drawn
}

func (p *Plugin) firstLiveModeIndex() (int, bool) {
	liveModes := p.GetLiveModes()
	for i, dm := range p.displayModes {
		for _, live := range liveModes {
			if dm == live {
				return i, true
			}
		}
	}
	return 0, false
}

// recordProgress feeds one successful render into the dwell ledger and
// checks the mode's cycle completion edge.
func (p *Plugin) recordProgress(m *manager.Manager, dm domain.DisplayMode) {
	now := p.now()
	games := m.Games()
	snap := scheduler.Snapshot{
		GameIDs:      make([]string, 0, len(games)),
		GameDuration: m.GameDisplayDuration(),
	}
	for _, g := range games {
		snap.GameIDs = append(snap.GameIDs, g.ID)
	}
	if g := m.CurrentGame(); g != nil {
		snap.CurrentGameID = g.ID
	}

	p.tracker.RecordProgress(dm, m.Key(), snap, now)

	complete := p.tracker.EvaluateCompletion(dm, now)
	if complete && !p.cycleDone[dm] {
		p.cycleDone[dm] = true
		p.recorder.RecordCycleComplete(string(dm))
		logging.Debug(p.logger, "rotation cycle complete",
			logging.FieldDisplayMode, string(dm))
	} else if !complete {
		p.cycleDone[dm] = false
	}
}
