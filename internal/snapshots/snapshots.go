// Package snapshots persists each manager's last game list to disk so a
// restarted board shows something immediately instead of a blank panel until
// the first poll lands.
package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"sports-scoreboard/internal/domain"
)

// snapshot is the on-disk payload for one manager.
type snapshot struct {
	Key     string              `json:"key"`
	SavedAt time.Time           `json:"savedAt"`
	Games   []domain.GameRecord `json:"games"`
}

// Store reads and writes per-manager game list snapshots under one
// directory. A zero maxAge disables the staleness check on load.
type Store struct {
	basePath string
	maxAge   time.Duration
	now      func() time.Time
}

// NewStore constructs a snapshot store rooted at basePath.
func NewStore(basePath string, maxAge time.Duration) *Store {
	return &Store{basePath: basePath, maxAge: maxAge, now: time.Now}
}

// Save writes the game list for one manager atomically. Identical payloads
// are skipped so the board's SD card is not rewritten every poll.
func (s *Store) Save(key domain.ManagerKey, games []domain.GameRecord) error {
	if s == nil {
		return errors.New("snapshot store not configured")
	}

	sorted := make([]domain.GameRecord, len(games))
	copy(sorted, games)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	payload := snapshot{Key: key.String(), SavedAt: s.now().UTC(), Games: sorted}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	target := s.path(key)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if existing, err := os.ReadFile(target); err == nil && sameGames(existing, data) {
		return nil
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

// Load reads the saved game list for one manager. Missing or stale snapshots
// report a miss, not an error.
func (s *Store) Load(key domain.ManagerKey) ([]domain.GameRecord, bool, error) {
	if s == nil {
		return nil, false, errors.New("snapshot store not configured")
	}

	f, err := os.Open(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	var payload snapshot
	if err := json.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("snapshots: decode %s: %w", key, err)
	}
	if s.maxAge > 0 && s.now().Sub(payload.SavedAt) > s.maxAge {
		return nil, false, nil
	}
	return payload.Games, true, nil
}

// Delete removes one manager's snapshot. Absent files are not an error.
func (s *Store) Delete(key domain.ManagerKey) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Store) path(key domain.ManagerKey) string {
	return filepath.Join(s.basePath, key.String()+".json")
}

// sameGames compares two payloads ignoring the SavedAt stamp.
func sameGames(a, b []byte) bool {
	var sa, sb snapshot
	if json.Unmarshal(a, &sa) != nil || json.Unmarshal(b, &sb) != nil {
		return bytes.Equal(a, b)
	}
	ga, errA := json.Marshal(sa.Games)
	gb, errB := json.Marshal(sb.Games)
	return errA == nil && errB == nil && bytes.Equal(ga, gb)
}
