package scheduler

import (
	"time"

	"sports-scoreboard/internal/domain"
)

// modePhase is the lifecycle of one display mode between rotations.
type modePhase int

const (
	phaseIdle modePhase = iota
	phaseActive
	phaseCooldown
)

type modeState struct {
	phase      modePhase
	lastActive time.Time
}

// NoteDisplayMode drives the new-cycle state machine. Each display mode
// moves Idle -> Active when first shown, Active -> Cooldown when another
// mode takes over, and Cooldown -> Active on return. A return after more
// than the configured gap resets the mode's dwell ledger so its rotation
// restarts fairly; a quick bounce (recent -> upcoming -> recent) keeps its
// progress. It reports whether a reset happened.
func (t *Tracker) NoteDisplayMode(dm domain.DisplayMode, now time.Time) bool {
	if t.active == dm {
		if state := t.modes[dm]; state != nil {
			state.lastActive = now
		}
		return false
	}

	if prev := t.modes[t.active]; prev != nil && t.active != "" {
		prev.phase = phaseCooldown
	}
	t.active = dm

	state := t.modes[dm]
	if state == nil {
		state = &modeState{}
		t.modes[dm] = state
	}

	reset := false
	if state.phase == phaseCooldown && now.Sub(state.lastActive) > t.newCycleGap {
		t.resetKeysForMode(dm)
		reset = true
	}
	state.phase = phaseActive
	state.lastActive = now
	return reset
}
