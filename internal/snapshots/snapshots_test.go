package snapshots

import (
	"os"
	"testing"
	"time"

	"sports-scoreboard/internal/domain"
)

var nbaRecent = domain.ManagerKey{League: "nba", Mode: domain.ModeRecent}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir(), 0)
	games := []domain.GameRecord{
		{ID: "2", League: "nba", HomeAbbr: "LAL", AwayAbbr: "BOS"},
		{ID: "1", League: "nba", HomeAbbr: "GSW", AwayAbbr: "MIA"},
	}

	if err := store.Save(nbaRecent, games); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, ok, err := store.Load(nbaRecent)
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d games", len(loaded))
	}
	// Sorted by ID on write.
	if loaded[0].ID != "1" || loaded[1].ID != "2" {
		t.Errorf("order = %s, %s", loaded[0].ID, loaded[1].ID)
	}
}

func TestLoadMissing(t *testing.T) {
	store := NewStore(t.TempDir(), 0)
	if _, ok, err := store.Load(nbaRecent); ok || err != nil {
		t.Fatalf("Load = %v, %v, want clean miss", ok, err)
	}
}

func TestLoadStale(t *testing.T) {
	store := NewStore(t.TempDir(), 12*time.Hour)
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	current := base
	store.now = func() time.Time { return current }

	if err := store.Save(nbaRecent, []domain.GameRecord{{ID: "1"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	current = base.Add(13 * time.Hour)
	if _, ok, _ := store.Load(nbaRecent); ok {
		t.Error("stale snapshot should miss")
	}

	current = base.Add(11 * time.Hour)
	if _, ok, _ := store.Load(nbaRecent); !ok {
		t.Error("fresh snapshot should hit")
	}
}

func TestSaveSkipsIdenticalPayload(t *testing.T) {
	store := NewStore(t.TempDir(), 0)
	games := []domain.GameRecord{{ID: "1", HomeAbbr: "LAL"}}

	if err := store.Save(nbaRecent, games); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	firstStat, err := os.Stat(store.path(nbaRecent))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	store.now = func() time.Time { return time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC) }
	if err := store.Save(nbaRecent, games); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	secondStat, err := os.Stat(store.path(nbaRecent))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !firstStat.ModTime().Equal(secondStat.ModTime()) {
		t.Error("identical game list should not rewrite the file")
	}
}

func TestDelete(t *testing.T) {
	store := NewStore(t.TempDir(), 0)
	store.Save(nbaRecent, []domain.GameRecord{{ID: "1"}})

	if err := store.Delete(nbaRecent); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.Load(nbaRecent); ok {
		t.Error("expected miss after delete")
	}
	if err := store.Delete(nbaRecent); err != nil {
		t.Errorf("second Delete should be a no-op, got %v", err)
	}
}
