package scheduler

import "sports-scoreboard/internal/domain"

// Select applies the sticky rule: while a sticky key is recorded for a
// display mode and still among the candidates, it is the only key offered.
// A vanished sticky key is forgotten and selection falls through to the full
// candidate list.
func (t *Tracker) Select(dm domain.DisplayMode, candidates []domain.ManagerKey) []domain.ManagerKey {
	sticky, ok := t.sticky[dm]
	if !ok {
		return candidates
	}
	for _, key := range candidates {
		if key == sticky {
			return []domain.ManagerKey{sticky}
		}
	}
	delete(t.sticky, dm)
	return candidates
}

// MarkSticky records the manager that just rendered successfully for a
// display mode. It stays sticky until its key completes or it drops out of
// the candidate list.
func (t *Tracker) MarkSticky(dm domain.DisplayMode, key domain.ManagerKey) {
	t.sticky[dm] = key
}

// Sticky returns the current sticky key for a display mode, if any.
func (t *Tracker) Sticky(dm domain.DisplayMode) (domain.ManagerKey, bool) {
	key, ok := t.sticky[dm]
	return key, ok
}
