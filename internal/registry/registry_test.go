package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"sports-scoreboard/internal/config"
	"sports-scoreboard/internal/domain"
	"sports-scoreboard/internal/manager"
	"sports-scoreboard/internal/teststubs"
)

func boolPtr(b bool) *bool { return &b }

func newLiveManager(league string, provider *teststubs.Provider, cfg config.LeagueConfig) *manager.Manager {
	key := domain.ManagerKey{League: league, Mode: domain.ModeLive}
	return manager.New(key, cfg, 15*time.Second, manager.Deps{
		Provider: provider,
		Renderer: &teststubs.Renderer{},
	})
}

func liveGame(id string) domain.GameRecord {
	return domain.GameRecord{
		ID: id, State: domain.StateLive, Period: 1, Clock: "10:00",
	}
}

func TestEnabledLeaguesForModeOrdering(t *testing.T) {
	r := New(nil)
	r.Register(Entry{League: "nrl", Enabled: true, Priority: 2, Config: config.LeagueConfig{}})
	r.Register(Entry{League: "nba", Enabled: true, Priority: 1, Config: config.LeagueConfig{}})
	r.Register(Entry{League: "afl", Enabled: false, Priority: 0})
	r.Register(Entry{League: "wnba", Enabled: true, Priority: 1, Config: config.LeagueConfig{}})

	got := r.EnabledLeaguesForMode(domain.ModeRecent)
	want := []string{"nba", "wnba", "nrl"}
	if len(got) != len(want) {
		t.Fatalf("leagues = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("leagues[%d] = %s, want %s (priority asc, registration ties)", i, got[i], want[i])
		}
	}
}

func TestEnabledLeaguesForModeRespectsModeGate(t *testing.T) {
	r := New(nil)
	cfg := config.LeagueConfig{DisplayModes: config.DisplayModesConfig{ShowRecent: boolPtr(false)}}
	r.Register(Entry{League: "nba", Enabled: true, Config: cfg})

	if got := r.EnabledLeaguesForMode(domain.ModeRecent); len(got) != 0 {
		t.Errorf("leagues = %v, mode gate should exclude nba", got)
	}
	if got := r.EnabledLeaguesForMode(domain.ModeUpcoming); len(got) != 1 {
		t.Errorf("leagues = %v, upcoming is not gated", got)
	}
}

func TestManagerForNilIsSkip(t *testing.T) {
	r := New(nil)
	r.Register(Entry{League: "nba", Enabled: true, Config: config.LeagueConfig{}})

	if m := r.ManagerFor("nba", domain.ModeLive); m != nil {
		t.Error("unconstructed manager should resolve to nil")
	}
	if m := r.ManagerFor("unknown", domain.ModeLive); m != nil {
		t.Error("unknown league should resolve to nil")
	}
}

func TestResolveLivePrefersLivePriorityWithGames(t *testing.T) {
	withGames := &teststubs.Provider{Games: []domain.GameRecord{liveGame("a")}}
	without := &teststubs.Provider{}
	cfg := config.LeagueConfig{LiveUpdateInterval: 30}

	nba := newLiveManager("nba", withGames, cfg)
	nrl := newLiveManager("nrl", without, cfg)

	r := New(nil)
	r.Register(Entry{League: "nba", Enabled: true, Priority: 2, LivePriority: true, Config: cfg,
		Managers: map[domain.ModeType]*manager.Manager{domain.ModeLive: nba}})
	r.Register(Entry{League: "nrl", Enabled: true, Priority: 1, LivePriority: true, Config: cfg,
		Managers: map[domain.ModeType]*manager.Manager{domain.ModeLive: nrl}})

	got := r.ResolveManagersForMode(context.Background(), domain.ModeLive)
	if len(got) != 1 || got[0].Key().League != "nba" {
		t.Fatalf("resolved %d managers, want only the league with live games", len(got))
	}
}

func TestResolveLiveFailOpenOnUpdateError(t *testing.T) {
	failing := &teststubs.Provider{Err: errors.New("api down")}
	cfg := config.LeagueConfig{LiveUpdateInterval: 30}
	nba := newLiveManager("nba", failing, cfg)

	r := New(nil)
	r.Register(Entry{League: "nba", Enabled: true, LivePriority: true, Config: cfg,
		Managers: map[domain.ModeType]*manager.Manager{domain.ModeLive: nba}})

	// The failed update leaves no preferred managers, so resolution falls
	// back to the full enabled list instead of blocking rotation.
	got := r.ResolveManagersForMode(context.Background(), domain.ModeLive)
	if len(got) != 1 {
		t.Fatalf("resolved %d managers, want fail-open fallback", len(got))
	}
}

func TestResolveNonLiveSkipsUpdates(t *testing.T) {
	provider := &teststubs.Provider{}
	cfg := config.LeagueConfig{UpdateIntervalSeconds: 300}
	key := domain.ManagerKey{League: "nba", Mode: domain.ModeRecent}
	m := manager.New(key, cfg, 15*time.Second, manager.Deps{Provider: provider, Renderer: &teststubs.Renderer{}})

	r := New(nil)
	r.Register(Entry{League: "nba", Enabled: true, Config: cfg,
		Managers: map[domain.ModeType]*manager.Manager{domain.ModeRecent: m}})

	got := r.ResolveManagersForMode(context.Background(), domain.ModeRecent)
	if len(got) != 1 {
		t.Fatalf("resolved %d managers", len(got))
	}
	if provider.CallCount() != 0 {
		t.Error("non-live resolution must not trigger updates")
	}
}
