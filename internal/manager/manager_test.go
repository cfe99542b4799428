package manager

import (
	"context"
	"errors"
	"testing"
	"time"

	"sports-scoreboard/internal/cache"
	"sports-scoreboard/internal/config"
	"sports-scoreboard/internal/domain"
	"sports-scoreboard/internal/snapshots"
	"sports-scoreboard/internal/teststubs"
)

var (
	baseTime  = time.Date(2026, 3, 19, 18, 0, 0, 0, time.UTC)
	nbaLive   = domain.ManagerKey{League: "nba", Mode: domain.ModeLive}
	nbaRecent = domain.ManagerKey{League: "nba", Mode: domain.ModeRecent}
)

func liveGame(id string, home, away string) domain.GameRecord {
	return domain.GameRecord{
		ID: id, League: "nba", HomeAbbr: home, AwayAbbr: away,
		State: domain.StateLive, Period: 2, Clock: "5:00",
		StartTime: baseTime.Add(-time.Hour),
	}
}

func finalGame(id string, start time.Time) domain.GameRecord {
	return domain.GameRecord{
		ID: id, League: "nba", HomeAbbr: "H" + id, AwayAbbr: "A" + id,
		State: domain.StateFinal, StartTime: start,
	}
}

func newTestManager(key domain.ManagerKey, cfg config.LeagueConfig, provider *teststubs.Provider, clock *teststubs.Clock) (*Manager, *teststubs.Renderer) {
	renderer := &teststubs.Renderer{}
	m := New(key, cfg, 15*time.Second, Deps{Provider: provider, Renderer: renderer})
	m.now = clock.Now
	return m, renderer
}

func TestUpdateReplacesGamesWholesale(t *testing.T) {
	clock := teststubs.NewClock(baseTime)
	provider := &teststubs.Provider{Games: []domain.GameRecord{
		liveGame("a", "LAL", "BOS"),
		liveGame("b", "GSW", "MIA"),
	}}
	cfg := config.LeagueConfig{UpdateIntervalSeconds: 60, LiveUpdateInterval: 30}
	m, _ := newTestManager(nbaLive, cfg, provider, clock)

	if err := m.Update(context.Background()); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := len(m.Games()); got != 2 {
		t.Fatalf("games = %d, want 2", got)
	}

	provider.SetGames([]domain.GameRecord{liveGame("b", "GSW", "MIA"), liveGame("c", "NYK", "PHI")})
	clock.Advance(31 * time.Second)
	if err := m.Update(context.Background()); err != nil {
		t.Fatalf("second Update: %v", err)
	}

	ids := domain.GameIDs(m.Games())
	if _, ok := ids["a"]; ok {
		t.Error("game a should be gone after wholesale replacement")
	}
	if _, ok := ids["c"]; !ok {
		t.Error("game c should be present")
	}
}

func TestUpdateRespectsInterval(t *testing.T) {
	clock := teststubs.NewClock(baseTime)
	provider := &teststubs.Provider{Games: []domain.GameRecord{liveGame("a", "LAL", "BOS")}}
	cfg := config.LeagueConfig{LiveUpdateInterval: 30}
	m, _ := newTestManager(nbaLive, cfg, provider, clock)

	m.Update(context.Background())
	clock.Advance(10 * time.Second)
	m.Update(context.Background())
	if provider.CallCount() != 1 {
		t.Errorf("calls = %d, want 1 inside interval", provider.CallCount())
	}

	clock.Advance(21 * time.Second)
	m.Update(context.Background())
	if provider.CallCount() != 2 {
		t.Errorf("calls = %d, want 2 after interval", provider.CallCount())
	}
}

func TestUpdateFailureKeepsPreviousState(t *testing.T) {
	clock := teststubs.NewClock(baseTime)
	provider := &teststubs.Provider{Games: []domain.GameRecord{liveGame("a", "LAL", "BOS")}}
	cfg := config.LeagueConfig{LiveUpdateInterval: 30}
	m, _ := newTestManager(nbaLive, cfg, provider, clock)

	m.Update(context.Background())
	provider.SetErr(errors.New("upstream down"))
	clock.Advance(time.Minute)

	if err := m.Update(context.Background()); err == nil {
		t.Fatal("expected update error")
	}
	if got := len(m.Games()); got != 1 {
		t.Errorf("games = %d, previous list should survive a failed update", got)
	}

	status := m.Status()
	if status.ConsecutiveFailures != 1 || status.LastError == "" {
		t.Errorf("status = %+v", status)
	}
	if status.IsReady() {
		t.Error("failing manager should not be ready")
	}
}

func TestLiveSelectionDropsFinishedGames(t *testing.T) {
	clock := teststubs.NewClock(baseTime)
	over := liveGame("over", "CHI", "DET")
	over.Period = 4
	over.Clock = "0:00"
	provider := &teststubs.Provider{Games: []domain.GameRecord{
		liveGame("a", "LAL", "BOS"),
		finalGame("done", baseTime.Add(-2*time.Hour)),
		over,
	}}
	cfg := config.LeagueConfig{LiveUpdateInterval: 30}
	m, _ := newTestManager(nbaLive, cfg, provider, clock)

	m.Update(context.Background())
	games := m.Games()
	if len(games) != 1 || games[0].ID != "a" {
		t.Errorf("live games = %+v, want only game a", games)
	}
}

func TestLiveFavoriteRestriction(t *testing.T) {
	clock := teststubs.NewClock(baseTime)
	provider := &teststubs.Provider{Games: []domain.GameRecord{
		liveGame("a", "LAL", "BOS"),
		liveGame("b", "GSW", "MIA"),
	}}
	cfg := config.LeagueConfig{
		LiveUpdateInterval:    30,
		FavoriteTeams:         []string{"GSW"},
		ShowFavoriteTeamsOnly: true,
	}
	m, _ := newTestManager(nbaLive, cfg, provider, clock)

	m.Update(context.Background())
	games := m.Games()
	if len(games) != 1 || games[0].ID != "b" {
		t.Errorf("games = %+v, want only the favorite's game", games)
	}
	if !m.HasDisplayableLiveGames() {
		t.Error("favorite's live game should be displayable")
	}
}

func TestRecentSelectionWindowAndOrder(t *testing.T) {
	clock := teststubs.NewClock(baseTime)
	provider := &teststubs.Provider{Games: []domain.GameRecord{
		finalGame("old", baseTime.Add(-10*24*time.Hour)),
		finalGame("y", baseTime.Add(-48*time.Hour)),
		finalGame("x", baseTime.Add(-24*time.Hour)),
		liveGame("live", "LAL", "BOS"),
	}}
	cfg := config.LeagueConfig{UpdateIntervalSeconds: 300, RecentWindowDays: 7, RecentGamesToShow: 5}
	m, _ := newTestManager(nbaRecent, cfg, provider, clock)

	m.Update(context.Background())
	games := m.Games()
	if len(games) != 2 {
		t.Fatalf("games = %d, want 2 (window and state filters)", len(games))
	}
	if games[0].ID != "x" || games[1].ID != "y" {
		t.Errorf("order = %s, %s, want most recent first", games[0].ID, games[1].ID)
	}
}

func TestFavoriteSelectionSharedGame(t *testing.T) {
	shared := finalGame("shared", baseTime.Add(-time.Hour))
	shared.HomeAbbr, shared.AwayAbbr = "LAL", "BOS"
	other := finalGame("other", baseTime.Add(-2*time.Hour))
	other.HomeAbbr, other.AwayAbbr = "LAL", "MIA"

	got := selectFavoriteGames([]domain.GameRecord{shared, other}, []string{"LAL", "BOS"}, 2)
	if len(got) != 2 {
		t.Fatalf("selected %d games, want 2", len(got))
	}
	if got[0].ID != "shared" {
		t.Errorf("first = %s, want the shared favorite game", got[0].ID)
	}

	// With a one-game limit the shared game satisfies both favorites.
	got = selectFavoriteGames([]domain.GameRecord{shared, other}, []string{"LAL", "BOS"}, 1)
	if len(got) != 1 || got[0].ID != "shared" {
		t.Errorf("limited selection = %+v", got)
	}
}

func TestDisplayRotatesAfterDwell(t *testing.T) {
	clock := teststubs.NewClock(baseTime)
	provider := &teststubs.Provider{Games: []domain.GameRecord{
		liveGame("a", "LAL", "BOS"),
		liveGame("b", "GSW", "MIA"),
	}}
	cfg := config.LeagueConfig{LiveUpdateInterval: 30, DisplayDurations: config.DisplayDurations{Live: 15}}
	m, renderer := newTestManager(nbaLive, cfg, provider, clock)
	m.Update(context.Background())

	if !m.Display(false) {
		t.Fatal("Display returned false with content")
	}
	first, _ := renderer.LastFrame()

	clock.Advance(16 * time.Second)
	if !m.Display(false) {
		t.Fatal("second Display returned false")
	}
	second, _ := renderer.LastFrame()
	if first.ID == second.ID {
		t.Error("rotation should advance to the next game after the dwell")
	}
}

func TestDisplayEmptyReturnsFalse(t *testing.T) {
	clock := teststubs.NewClock(baseTime)
	m, renderer := newTestManager(nbaLive, config.LeagueConfig{}, &teststubs.Provider{}, clock)

	if m.Display(false) {
		t.Error("Display with no games should return false")
	}
	if renderer.ClearCount() != 0 {
		t.Error("no-content display must not clear the screen")
	}
}

func TestIsGameReallyOver(t *testing.T) {
	tests := []struct {
		name string
		g    domain.GameRecord
		want bool
	}{
		{"final text", domain.GameRecord{PeriodText: "Final"}, true},
		{"final ot text", domain.GameRecord{PeriodText: "Final/OT"}, true},
		{"q4 dead clock", domain.GameRecord{Period: 4, Clock: "0:00"}, true},
		{"ot dead clock", domain.GameRecord{Period: 5, Clock: "0:00"}, true},
		{"q4 running", domain.GameRecord{Period: 4, Clock: "2:31"}, false},
		{"q2 dead clock", domain.GameRecord{Period: 2, Clock: "0:00"}, false},
		{"no clock", domain.GameRecord{Period: 4}, false},
	}
	for _, tt := range tests {
		if got := IsGameReallyOver(tt.g); got != tt.want {
			t.Errorf("%s: IsGameReallyOver = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestGameDisplayDurationResolution(t *testing.T) {
	clock := teststubs.NewClock(baseTime)
	cfg := config.LeagueConfig{DisplayDurations: config.DisplayDurations{Live: 20}, LiveGameDuration: 10}
	m, _ := newTestManager(nbaLive, cfg, &teststubs.Provider{}, clock)

	if got := m.GameDisplayDuration(); got != 20*time.Second {
		t.Errorf("duration = %v, want display_durations to win", got)
	}

	m.SetGameDisplayDuration(5 * time.Second)
	if got := m.GameDisplayDuration(); got != 5*time.Second {
		t.Errorf("duration = %v, explicit attribute should win", got)
	}

	cfg = config.LeagueConfig{LiveGameDuration: 10}
	m2, _ := newTestManager(nbaLive, cfg, &teststubs.Provider{}, clock)
	if got := m2.GameDisplayDuration(); got != 10*time.Second {
		t.Errorf("duration = %v, want live_game_duration fallback", got)
	}

	m3, _ := newTestManager(nbaRecent, config.LeagueConfig{}, &teststubs.Provider{}, clock)
	if got := m3.GameDisplayDuration(); got != 15*time.Second {
		t.Errorf("duration = %v, want plugin default", got)
	}
}

func TestUpdateUsesCacheInsideInterval(t *testing.T) {
	clock := teststubs.NewClock(baseTime)
	store := cache.NewMemory()
	provider := &teststubs.Provider{Games: []domain.GameRecord{liveGame("a", "LAL", "BOS")}}
	cfg := config.LeagueConfig{LiveUpdateInterval: 30, StaleGameTimeout: 3600}

	renderer := &teststubs.Renderer{}
	m := New(nbaLive, cfg, 15*time.Second, Deps{Provider: provider, Cache: store, Renderer: renderer})
	m.now = clock.Now
	m.Update(context.Background())

	// Second manager for the same league finds the cached payload.
	other := New(nbaLive, cfg, 15*time.Second, Deps{Provider: provider, Cache: store, Renderer: renderer})
	other.now = clock.Now
	other.Update(context.Background())

	if provider.CallCount() != 1 {
		t.Errorf("provider calls = %d, want 1 (second update served from cache)", provider.CallCount())
	}
	if len(other.Games()) != 1 {
		t.Errorf("cached update produced %d games", len(other.Games()))
	}
}

func TestSnapshotWarmBoot(t *testing.T) {
	clock := teststubs.NewClock(baseTime)
	store := snapshots.NewStore(t.TempDir(), 0)
	provider := &teststubs.Provider{Games: []domain.GameRecord{finalGame("x", baseTime.Add(-time.Hour))}}
	cfg := config.LeagueConfig{UpdateIntervalSeconds: 300, RecentGamesToShow: 5}

	m := New(nbaRecent, cfg, 15*time.Second, Deps{Provider: provider, Renderer: &teststubs.Renderer{}, Snapshots: store})
	m.now = clock.Now
	if err := m.Update(context.Background()); err != nil {
		t.Fatalf("Update: %v", err)
	}

	fresh := New(nbaRecent, cfg, 15*time.Second, Deps{Provider: provider, Renderer: &teststubs.Renderer{}, Snapshots: store})
	fresh.now = clock.Now
	if !fresh.LoadSnapshot() {
		t.Fatal("LoadSnapshot should find the saved list")
	}
	if len(fresh.Games()) != 1 {
		t.Errorf("warm boot games = %d", len(fresh.Games()))
	}
}
