// Package registry is the priority-ordered catalogue of leagues and their
// managers. It answers "which managers may display for this mode" with the
// three gates applied: league enabled, mode shown, and live availability.
package registry

import (
	"context"
	"log/slog"
	"sort"

	"sports-scoreboard/internal/config"
	"sports-scoreboard/internal/domain"
	"sports-scoreboard/internal/logging"
	"sports-scoreboard/internal/manager"
)

// Entry is one league's registration. Read-only after construction.
type Entry struct {
	League       string
	Enabled      bool
	Priority     int
	LivePriority bool
	Config       config.LeagueConfig
	Managers     map[domain.ModeType]*manager.Manager
}

// Registry holds entries in registration order; priority sorting is applied
// on query so ties keep that order.
type Registry struct {
	entries []Entry
	byID    map[string]int
	logger  *slog.Logger
}

// New returns an empty registry.
func New(logger *slog.Logger) *Registry {
	return &Registry{byID: make(map[string]int), logger: logger}
}

// Register adds one league. Later registrations of the same league replace
// the earlier entry but keep its position.
func (r *Registry) Register(e Entry) {
	if idx, ok := r.byID[e.League]; ok {
		r.entries[idx] = e
		return
	}
	r.byID[e.League] = len(r.entries)
	r.entries = append(r.entries, e)
}

// Entry looks up one league's registration.
func (r *Registry) Entry(league string) (Entry, bool) {
	idx, ok := r.byID[league]
	if !ok {
		return Entry{}, false
	}
	return r.entries[idx], true
}

// Leagues returns all registered league ids in priority order.
func (r *Registry) Leagues() []string {
	ordered := r.ordered()
	out := make([]string, len(ordered))
	for i, e := range ordered {
		out[i] = e.League
	}
	return out
}

// EnabledLeaguesForMode returns the leagues allowed to display a mode type,
// ascending by priority with registration-order ties.
func (r *Registry) EnabledLeaguesForMode(mode domain.ModeType) []string {
	var out []string
	for _, e := range r.ordered() {
		if !e.Enabled || !e.Config.ModeShown(mode) {
			continue
		}
		out = append(out, e.League)
	}
	return out
}

// ManagerFor returns the manager serving one league and mode. Nil is a
// normal "skip" result, not an error.
func (r *Registry) ManagerFor(league string, mode domain.ModeType) *manager.Manager {
	e, ok := r.Entry(league)
	if !ok || !e.Enabled || !e.Config.ModeShown(mode) {
		return nil
	}
	return e.Managers[mode]
}

// ResolveManagersForMode returns the managers eligible to display a mode, in
// priority order. For live, every candidate is refreshed first so the live
// gate works on current truth: an update failure is logged and the manager
// treated as having no live games this cycle. Live-priority leagues with
// displayable games win; when none qualify, all enabled live managers are
// offered so the rotation never stalls.
func (r *Registry) ResolveManagersForMode(ctx context.Context, mode domain.ModeType) []*manager.Manager {
	var all []*manager.Manager
	for _, league := range r.EnabledLeaguesForMode(mode) {
		if m := r.ManagerFor(league, mode); m != nil {
			all = append(all, m)
		}
	}
	if mode != domain.ModeLive {
		return all
	}

	logger := logging.FromContext(ctx, r.logger)
	var preferred []*manager.Manager
	for _, m := range all {
		if err := m.Update(ctx); err != nil {
			logging.Warn(logger, "live candidate update failed",
				logging.FieldManager, m.Key().String(), "err", err)
			continue
		}
		entry, _ := r.Entry(m.Key().League)
		if entry.LivePriority && m.HasDisplayableLiveGames() {
			preferred = append(preferred, m)
		}
	}
	if len(preferred) > 0 {
		return preferred
	}
	return all
}

func (r *Registry) ordered() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}
