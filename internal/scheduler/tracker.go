// Package scheduler is the rotation core: it tracks how long each manager's
// games have been on screen, decides when a manager and a whole display mode
// have completed a rotation cycle, and keeps one league sticky until it
// finishes. All state is touched only from the display thread.
package scheduler

import (
	"time"

	"sports-scoreboard/internal/domain"
)

// Snapshot is the slice of manager state the tracker needs for one progress
// evaluation.
type Snapshot struct {
	GameIDs       []string
	CurrentGameID string
	GameDuration  time.Duration
}

// Tracker holds the dwell ledger and cycle bookkeeping for every manager key.
type Tracker struct {
	newCycleGap time.Duration

	// Multi-game managers: first-seen stamp and completed set per game id.
	gameStarts     map[domain.ManagerKey]map[string]time.Time
	completedGames map[domain.ManagerKey]map[string]struct{}

	// Single-game managers: one dwell start per key.
	singleStarts map[domain.ManagerKey]time.Time

	completedKeys map[domain.ManagerKey]struct{}
	durations     map[domain.ManagerKey]time.Duration
	usedKeys      map[domain.DisplayMode]map[domain.ManagerKey]struct{}

	sticky map[domain.DisplayMode]domain.ManagerKey
	modes  map[domain.DisplayMode]*modeState
	active domain.DisplayMode
}

// NewTracker returns an empty tracker. gap is the quiet period after which a
// display mode's return is treated as a fresh cycle.
func NewTracker(gap time.Duration) *Tracker {
	if gap <= 0 {
		gap = 10 * time.Second
	}
	t := &Tracker{newCycleGap: gap}
	t.reset()
	return t
}

func (t *Tracker) reset() {
	t.gameStarts = make(map[domain.ManagerKey]map[string]time.Time)
	t.completedGames = make(map[domain.ManagerKey]map[string]struct{})
	t.singleStarts = make(map[domain.ManagerKey]time.Time)
	t.completedKeys = make(map[domain.ManagerKey]struct{})
	t.durations = make(map[domain.ManagerKey]time.Duration)
	t.usedKeys = make(map[domain.DisplayMode]map[domain.ManagerKey]struct{})
	t.sticky = make(map[domain.DisplayMode]domain.ManagerKey)
	t.modes = make(map[domain.DisplayMode]*modeState)
	t.active = ""
}

// Reset clears all cycle state, dwell ledgers and sticky records.
func (t *Tracker) Reset() {
	t.reset()
}

// RecordProgress advances the dwell ledger for one manager key after a
// successful render under the driven display mode. dm is the mode the host
// asked for, not the key's own: a combined mode like "basketball_recent"
// accumulates every league key shown under it, so its completion and
// new-cycle reset see the full set. Empty managers complete immediately;
// single-game managers complete once their start has dwelled for the full
// duration; multi-game managers complete when every current game id has
// dwelled.
func (t *Tracker) RecordProgress(dm domain.DisplayMode, key domain.ManagerKey, snap Snapshot, now time.Time) {
	t.markUsed(dm, key)
	if snap.GameDuration > 0 {
		t.durations[key] = snap.GameDuration
	}

	switch {
	case len(snap.GameIDs) == 0:
		t.markComplete(key)
	case len(snap.GameIDs) == 1:
		t.recordSingle(key, snap, now)
	default:
		t.recordMulti(key, snap, now)
	}
}

func (t *Tracker) recordSingle(key domain.ManagerKey, snap Snapshot, now time.Time) {
	if t.KeyComplete(key) {
		return
	}
	start, ok := t.singleStarts[key]
	if !ok {
		t.singleStarts[key] = now
		return
	}
	if now.Sub(start) >= snap.GameDuration {
		delete(t.singleStarts, key)
		t.markComplete(key)
	}
}

func (t *Tracker) recordMulti(key domain.ManagerKey, snap Snapshot, now time.Time) {
	starts := t.gameStarts[key]
	if starts == nil {
		starts = make(map[string]time.Time)
		t.gameStarts[key] = starts
	}
	completed := t.completedGames[key]
	if completed == nil {
		completed = make(map[string]struct{})
		t.completedGames[key] = completed
	}

	current := make(map[string]struct{}, len(snap.GameIDs))
	for _, id := range snap.GameIDs {
		current[id] = struct{}{}
	}

	// Prune ids the upstream feed no longer returns.
	for id := range starts {
		if _, ok := current[id]; !ok {
			delete(starts, id)
		}
	}
	for id := range completed {
		if _, ok := current[id]; !ok {
			delete(completed, id)
		}
	}

	if snap.CurrentGameID != "" {
		if _, ok := current[snap.CurrentGameID]; ok {
			start, seen := starts[snap.CurrentGameID]
			if !seen {
				starts[snap.CurrentGameID] = now
			} else if now.Sub(start) >= snap.GameDuration {
				completed[snap.CurrentGameID] = struct{}{}
			}
		}
	}

	for id := range current {
		if _, ok := completed[id]; !ok {
			return
		}
	}
	t.markComplete(key)
}

func (t *Tracker) markUsed(dm domain.DisplayMode, key domain.ManagerKey) {
	used := t.usedKeys[dm]
	if used == nil {
		used = make(map[domain.ManagerKey]struct{})
		t.usedKeys[dm] = used
	}
	used[key] = struct{}{}
}

func (t *Tracker) markComplete(key domain.ManagerKey) {
	t.completedKeys[key] = struct{}{}
	for dm, sticky := range t.sticky {
		if sticky == key {
			delete(t.sticky, dm)
		}
	}
}

// KeyComplete reports whether a manager key has finished its cycle.
func (t *Tracker) KeyComplete(key domain.ManagerKey) bool {
	_, ok := t.completedKeys[key]
	return ok
}

// LeagueComplete reports whether one league has finished for a mode type.
func (t *Tracker) LeagueComplete(league string, mode domain.ModeType) bool {
	return t.KeyComplete(domain.ManagerKey{League: league, Mode: mode})
}

// EvaluateCompletion reports whether a display mode's rotation cycle is
// done: every key used this cycle is complete, and none of them still holds
// an un-elapsed dwell start. The second clause re-checks keys already marked
// complete; a key whose timer has not actually run down blocks completion.
func (t *Tracker) EvaluateCompletion(dm domain.DisplayMode, now time.Time) bool {
	used := t.usedKeys[dm]
	if len(used) == 0 {
		return false
	}
	for key := range used {
		if !t.KeyComplete(key) {
			return false
		}
		if start, ok := t.singleStarts[key]; ok {
			if now.Sub(start) < t.durations[key] {
				return false
			}
		}
	}
	return true
}

// UsedKeys returns the keys recorded for a display mode this cycle.
func (t *Tracker) UsedKeys(dm domain.DisplayMode) []domain.ManagerKey {
	used := t.usedKeys[dm]
	keys := make([]domain.ManagerKey, 0, len(used))
	for key := range used {
		keys = append(keys, key)
	}
	return keys
}

// resetKeysForMode forgets everything recorded for one display mode so its
// next rotation starts from scratch.
func (t *Tracker) resetKeysForMode(dm domain.DisplayMode) {
	for key := range t.usedKeys[dm] {
		delete(t.completedKeys, key)
		delete(t.singleStarts, key)
		delete(t.gameStarts, key)
		delete(t.completedGames, key)
	}
	delete(t.usedKeys, dm)
	delete(t.sticky, dm)
}
