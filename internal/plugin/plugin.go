// Package plugin is the lifecycle facade the display host drives: Update
// fans out to every manager, Display routes one tick to the right manager
// through the rotation core, and the introspection methods let the host
// budget how long to keep the scoreboard active.
package plugin

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"sports-scoreboard/internal/cache"
	"sports-scoreboard/internal/config"
	"sports-scoreboard/internal/domain"
	"sports-scoreboard/internal/logging"
	"sports-scoreboard/internal/logos"
	"sports-scoreboard/internal/manager"
	"sports-scoreboard/internal/metrics"
	"sports-scoreboard/internal/providers"
	"sports-scoreboard/internal/providers/espn"
	"sports-scoreboard/internal/registry"
	"sports-scoreboard/internal/render"
	"sports-scoreboard/internal/scheduler"
	"sports-scoreboard/internal/snapshots"
)

const liveContentLogCooldown = time.Minute

// ProviderFactory builds the scoreboard provider for one league. Injectable
// so tests can substitute stubs for the real upstream client.
type ProviderFactory func(league string, cfg config.LeagueConfig) providers.ScoreboardProvider

// Deps carries the plugin's collaborators.
type Deps struct {
	Cache       cache.Store
	Renderer    render.Renderer
	Snapshots   *snapshots.Store
	Logos       *logos.Downloader
	Logger      *slog.Logger
	Recorder    *metrics.Recorder
	ProviderFor ProviderFactory
}

// Plugin wires the registry, managers, and rotation core together behind
// the host lifecycle contract. Display-side state is single-threaded.
type Plugin struct {
	cfg      config.Config
	registry *registry.Registry
	tracker  *scheduler.Tracker
	renderer render.Renderer
	logger   *slog.Logger
	recorder *metrics.Recorder
	now      func() time.Time

	joinTimeout     time.Duration
	displayDuration time.Duration

	// Legacy internal cycling cursor.
	displayModes   []domain.DisplayMode
	modeIdx        int
	lastModeSwitch time.Time

	// Mode-level duration enforcement, granular path.
	modeStarts map[domain.DisplayMode]time.Time

	currentDM    domain.DisplayMode
	cycleDone    map[domain.DisplayMode]bool
	liveThrottle *logging.Throttle
}

// New builds the plugin: one manager per enabled league and shown mode,
// registered in config priority order.
func New(cfg config.Config, deps Deps) *Plugin {
	if deps.ProviderFor == nil {
		deps.ProviderFor = defaultProviderFactory(cfg, deps.Logger, deps.Recorder)
	}

	p := &Plugin{
		cfg:             cfg,
		registry:        registry.New(deps.Logger),
		tracker:         scheduler.NewTracker(cfg.NewCycleGap()),
		renderer:        deps.Renderer,
		logger:          deps.Logger,
		recorder:        deps.Recorder,
		now:             time.Now,
		joinTimeout:     cfg.UpdateJoinTimeout(),
		displayDuration: time.Duration(cfg.DisplayDuration * float64(time.Second)),
		modeStarts:      make(map[domain.DisplayMode]time.Time),
		cycleDone:       make(map[domain.DisplayMode]bool),
		liveThrottle:    logging.NewThrottle(liveContentLogCooldown),
	}
	if p.displayDuration <= 0 {
		p.displayDuration = 30 * time.Second
	}
	if p.joinTimeout <= 0 {
		p.joinTimeout = 25 * time.Second
	}

	defaultDwell := time.Duration(cfg.GameDisplayDuration * float64(time.Second))
	for _, league := range cfg.LeagueIDsByPriority() {
		lc := cfg.Leagues[league]
		mgrs := make(map[domain.ModeType]*manager.Manager)
		if lc.Enabled {
			provider := deps.ProviderFor(league, lc)
			for _, mode := range domain.ModeTypes {
				if !lc.ModeShown(mode) {
					continue
				}
				key := domain.ManagerKey{League: league, Mode: mode}
				m := manager.New(key, lc, defaultDwell, manager.Deps{
					Provider:  provider,
					Cache:     deps.Cache,
					Renderer:  deps.Renderer,
					Snapshots: deps.Snapshots,
					Logos:     deps.Logos,
					Logger:    deps.Logger,
					Recorder:  deps.Recorder,
				})
				m.LoadSnapshot()
				mgrs[mode] = m
			}
		}
		p.registry.Register(registry.Entry{
			League:       league,
			Enabled:      lc.Enabled,
			Priority:     lc.Priority,
			LivePriority: lc.LivePriority,
			Config:       lc,
			Managers:     mgrs,
		})
	}

	for _, mode := range domain.ModeTypes {
		for _, league := range p.registry.EnabledLeaguesForMode(mode) {
			if p.registry.ManagerFor(league, mode) != nil {
				p.displayModes = append(p.displayModes, domain.FormatDisplayMode(league, mode))
			}
		}
	}
	return p
}

// defaultProviderFactory decorates the upstream client with retry, pacing
// and logging, innermost first.
func defaultProviderFactory(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) ProviderFactory {
	return func(league string, lc config.LeagueConfig) providers.ScoreboardProvider {
		client := espn.NewClient(espn.Config{
			APIPath:  lc.APIPath,
			League:   league,
			Timezone: cfg.Timezone,
			Logger:   logger,
		})
		var p providers.ScoreboardProvider = client
		p = providers.NewRetryingProvider(p, logger, 0, 0)
		p = providers.NewRateLimitedProvider(p, lc.UpdateInterval(domain.ModeLive), logger)
		p = providers.NewLoggingProvider(p, "espn", league, logger, recorder)
		return p
	}
}

// Update refreshes every manager in parallel, one goroutine per manager,
// joined with a soft deadline. A straggler is logged and left to finish on
// its own; its manager simply misses this tick.
func (p *Plugin) Update() {
	mgrs := p.allManagers()
	if len(mgrs) == 0 {
		return
	}

	ctx := logging.WithLogger(context.Background(), p.logger)
	var wg sync.WaitGroup
	done := make([]chan struct{}, len(mgrs))
	for i, m := range mgrs {
		wg.Add(1)
		ch := make(chan struct{})
		done[i] = ch
		go func(m *manager.Manager, ch chan struct{}) {
			defer wg.Done()
			defer close(ch)
			m.Update(ctx)
		}(m, ch)
	}

	allDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(allDone)
	}()

	select {
	case <-allDone:
	case <-time.After(p.joinTimeout):
		for i, m := range mgrs {
			select {
			case <-done[i]:
			default:
				logging.Warn(p.logger, "manager update still running after join timeout",
					logging.FieldManager, m.Key().String())
			}
		}
	}
}

func (p *Plugin) allManagers() []*manager.Manager {
	var out []*manager.Manager
	for _, league := range p.registry.Leagues() {
		for _, mode := range domain.ModeTypes {
			if m := p.registry.ManagerFor(league, mode); m != nil {
				out = append(out, m)
			}
		}
	}
	return out
}

// Cleanup releases display resources. Managers hold no connections of their
// own; the cache backend is closed by the process owner.
func (p *Plugin) Cleanup() {
	if p.renderer != nil {
		p.renderer.Clear()
	}
}
