// Package manager owns the per-league, per-mode game lists. Each manager
// refreshes its list on its own interval, renders one game at a time, and
// exposes read-only state for the rotation core to schedule against.
package manager

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"sports-scoreboard/internal/cache"
	"sports-scoreboard/internal/config"
	"sports-scoreboard/internal/domain"
	"sports-scoreboard/internal/logging"
	"sports-scoreboard/internal/logos"
	"sports-scoreboard/internal/metrics"
	"sports-scoreboard/internal/providers"
	"sports-scoreboard/internal/render"
	"sports-scoreboard/internal/snapshots"
	"sports-scoreboard/internal/timeutil"
)

const defaultGameDuration = 15 * time.Second

// Deps bundles the collaborators a manager needs.
type Deps struct {
	Provider  providers.ScoreboardProvider
	Cache     cache.Store
	Renderer  render.Renderer
	Snapshots *snapshots.Store
	Logos     *logos.Downloader
	Logger    *slog.Logger
	Recorder  *metrics.Recorder
}

// Manager holds one league's games for one mode type. Update may run on a
// fan-out goroutine while Display runs on the display thread, so the game
// list is guarded; the rotation cursor is display-thread only.
type Manager struct {
	key             domain.ManagerKey
	cfg             config.LeagueConfig
	defaultDuration time.Duration
	gameDuration    time.Duration

	provider  providers.ScoreboardProvider
	cache     cache.Store
	renderer  render.Renderer
	snapshots *snapshots.Store
	logos     *logos.Downloader
	logger    *slog.Logger
	recorder  *metrics.Recorder
	now       func() time.Time

	mu         sync.Mutex
	games      []domain.GameRecord
	lastSeen   map[string]time.Time
	lastUpdate time.Time
	status     Status

	currentIdx     int
	lastGameSwitch time.Time
}

// New constructs a manager for one league and mode. defaultDuration is the
// plugin-wide per-game dwell used when the league configures nothing.
func New(key domain.ManagerKey, cfg config.LeagueConfig, defaultDuration time.Duration, deps Deps) *Manager {
	return &Manager{
		key:             key,
		cfg:             cfg,
		defaultDuration: defaultDuration,
		provider:        deps.Provider,
		cache:           deps.Cache,
		renderer:        deps.Renderer,
		snapshots:       deps.Snapshots,
		logos:           deps.Logos,
		logger:          deps.Logger,
		recorder:        deps.Recorder,
		now:             time.Now,
		lastSeen:        make(map[string]time.Time),
	}
}

// Key returns the manager's stable identity.
func (m *Manager) Key() domain.ManagerKey { return m.key }

// FavoriteTeams returns the configured favorite abbreviations.
func (m *Manager) FavoriteTeams() []string { return m.cfg.FavoriteTeams }

// GameDisplayDuration resolves the per-game dwell for this manager: explicit
// attribute, then league mode config, then the plugin-wide default.
func (m *Manager) GameDisplayDuration() time.Duration {
	if m.gameDuration > 0 {
		return m.gameDuration
	}
	if d, ok := m.cfg.GameDuration(m.key.Mode); ok {
		return d
	}
	if m.defaultDuration > 0 {
		return m.defaultDuration
	}
	return defaultGameDuration
}

// SetGameDisplayDuration pins an explicit per-game dwell, overriding config.
func (m *Manager) SetGameDisplayDuration(d time.Duration) {
	m.gameDuration = d
}

// Update refreshes the game list if the manager's interval has elapsed.
// Failures keep the previous list; the caller sees the error but nothing is
// cleared.
func (m *Manager) Update(ctx context.Context) error {
	now := m.now()

	m.mu.Lock()
	interval := m.updateInterval(len(m.games))
	due := m.lastUpdate.IsZero() || now.Sub(m.lastUpdate) >= interval
	m.mu.Unlock()
	if !due {
		return nil
	}

	logger := logging.FromContext(ctx, m.logger)
	start := now
	games, err := m.fetch(ctx)
	m.recorder.RecordManagerUpdate(m.key.String(), m.now().Sub(start), err)
	if err != nil {
		m.recordFailure(err)
		logging.Warn(logger, "manager update failed",
			logging.FieldManager, m.key.String(), "err", err)
		m.pruneStaleOnFailure()
		return err
	}

	selected := m.selectGames(games, m.now())

	m.mu.Lock()
	m.games = selected
	m.lastUpdate = m.now()
	m.noteSeen(selected)
	m.recordSuccess()
	m.mu.Unlock()

	if m.snapshots != nil {
		if err := m.snapshots.Save(m.key, selected); err != nil {
			logging.Debug(logger, "snapshot write failed",
				logging.FieldManager, m.key.String(), "err", err)
		}
	}
	m.prefetchLogos(ctx, selected)

	logging.Debug(logger, "manager updated",
		logging.FieldManager, m.key.String(), logging.FieldCount, len(selected))
	return nil
}

// fetch returns the full scoreboard for the league, serving from the shared
// cache inside the update interval and writing it back after a network hit.
func (m *Manager) fetch(ctx context.Context) ([]domain.GameRecord, error) {
	cacheKey := "scoreboard:" + m.key.League
	maxAge := m.updateInterval(1)

	if m.cache != nil {
		if raw, ok, err := m.cache.Get(ctx, cacheKey, maxAge); err == nil && ok {
			var games []domain.GameRecord
			if json.Unmarshal(raw, &games) == nil {
				return games, nil
			}
		}
	}

	games, err := m.provider.FetchGames(ctx, "")
	if err != nil {
		return nil, err
	}

	if m.cache != nil {
		if raw, err := json.Marshal(games); err == nil {
			ttl := m.cfg.StaleTimeout()
			if setErr := m.cache.Set(ctx, cacheKey, raw, ttl); setErr != nil {
				logging.Debug(m.logger, "scoreboard cache write failed",
					logging.FieldLeague, m.key.League, "err", setErr)
			}
		}
	}
	return games, nil
}

// updateInterval picks the refresh cadence: live managers poll faster, and a
// live manager with nothing on falls back to the slower no-data interval.
func (m *Manager) updateInterval(gameCount int) time.Duration {
	interval := m.cfg.UpdateInterval(m.key.Mode)
	if m.key.Mode == domain.ModeLive && gameCount == 0 {
		if noData := m.cfg.NoDataUpdateInterval(); noData > 0 {
			interval = noData
		}
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return interval
}

// prefetchLogos caches both teams' logos for the games about to rotate on
// screen, so the renderer never blocks on a download.
func (m *Manager) prefetchLogos(ctx context.Context, games []domain.GameRecord) {
	if m.logos == nil {
		return
	}
	for _, g := range games {
		m.logos.Ensure(ctx, m.key.League, g.HomeAbbr, g.HomeLogoURL)
		m.logos.Ensure(ctx, m.key.League, g.AwayAbbr, g.AwayLogoURL)
	}
}

// noteSeen stamps the current games and drops tracking for ids no longer in
// the list. Caller holds the lock.
func (m *Manager) noteSeen(games []domain.GameRecord) {
	now := m.now()
	current := domain.GameIDs(games)
	for _, g := range games {
		m.lastSeen[g.ID] = now
	}
	for id := range m.lastSeen {
		if _, ok := current[id]; !ok {
			delete(m.lastSeen, id)
		}
	}
}

// pruneStaleOnFailure drops games that have outlived the stale timeout when
// updates keep failing, so a dead feed does not pin yesterday's scoreline.
func (m *Manager) pruneStaleOnFailure() {
	timeout := m.cfg.StaleTimeout()
	if timeout <= 0 {
		return
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.games[:0]
	for _, g := range m.games {
		seen, ok := m.lastSeen[g.ID]
		if ok && now.Sub(seen) > timeout {
			delete(m.lastSeen, g.ID)
			logging.Warn(m.logger, "removing stale game",
				logging.FieldManager, m.key.String(), logging.FieldGameID, g.ID)
			continue
		}
		kept = append(kept, g)
	}
	m.games = kept
}

// LoadSnapshot seeds the game list from disk so the board has content before
// the first fetch lands. A fresh fetch replaces it wholesale.
func (m *Manager) LoadSnapshot() bool {
	if m.snapshots == nil {
		return false
	}
	games, ok, err := m.snapshots.Load(m.key)
	if err != nil || !ok {
		return false
	}

	m.mu.Lock()
	if len(m.games) == 0 {
		m.games = games
		m.noteSeen(games)
	}
	m.mu.Unlock()
	return true
}

// Display renders the current game and advances the in-manager rotation once
// the game's dwell has elapsed. It never touches the network.
func (m *Manager) Display(forceClear bool) bool {
	games := m.Games()
	if len(games) == 0 {
		return false
	}

	now := m.now()
	if m.currentIdx >= len(games) {
		m.currentIdx = 0
	}
	if m.lastGameSwitch.IsZero() {
		m.lastGameSwitch = now
	} else if now.Sub(m.lastGameSwitch) >= m.GameDisplayDuration() {
		m.currentIdx = (m.currentIdx + 1) % len(games)
		m.lastGameSwitch = now
		forceClear = true
	}

	drawn := m.renderer.RenderGame(games[m.currentIdx], forceClear)
	if drawn {
		m.recorder.RecordFrame(string(m.key.DisplayMode()))
	}
	return drawn
}

// Games returns a snapshot of the current list.
func (m *Manager) Games() []domain.GameRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.GameRecord, len(m.games))
	copy(out, m.games)
	return out
}

// CurrentGame returns the game the rotation cursor points at, nil when empty.
func (m *Manager) CurrentGame() *domain.GameRecord {
	games := m.Games()
	if len(games) == 0 {
		return nil
	}
	idx := m.currentIdx
	if idx >= len(games) {
		idx = 0
	}
	g := games[idx]
	return &g
}

// LiveGames returns the games currently in progress.
func (m *Manager) LiveGames() []domain.GameRecord {
	var live []domain.GameRecord
	for _, g := range m.Games() {
		if g.IsLive() && !g.IsFinal() {
			live = append(live, g)
		}
	}
	return live
}

// HasDisplayableLiveGames reports whether this manager has at least one game
// worth preempting the rotation for: live, not final, not practically over,
// and involving a favorite when the league is restricted to favorites.
func (m *Manager) HasDisplayableLiveGames() bool {
	if m.key.Mode != domain.ModeLive {
		return false
	}
	restrict := m.cfg.ShowFavoriteTeamsOnly && !m.cfg.ShowAllLive && len(m.cfg.FavoriteTeams) > 0
	for _, g := range m.LiveGames() {
		if IsGameReallyOver(g) {
			continue
		}
		if restrict && !g.Involves(m.cfg.FavoriteTeams) {
			continue
		}
		return true
	}
	return false
}

// IsGameReallyOver reports whether a game has practically ended even though
// the upstream feed still marks it live: final wording in the period text,
// or a dead clock in the final period or overtime.
func IsGameReallyOver(g domain.GameRecord) bool {
	if strings.Contains(strings.ToLower(g.PeriodText), "final") {
		return true
	}
	return g.Period >= 4 && timeutil.ClockExpired(g.Clock)
}
