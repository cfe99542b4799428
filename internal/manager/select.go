package manager

import (
	"sort"
	"time"

	"sports-scoreboard/internal/domain"
)

// selectGames filters a full scoreboard down to the games this manager's
// mode should carry, in display order.
func (m *Manager) selectGames(games []domain.GameRecord, now time.Time) []domain.GameRecord {
	switch m.key.Mode {
	case domain.ModeLive:
		return m.selectLive(games)
	case domain.ModeRecent:
		return m.selectRecent(games, now)
	case domain.ModeUpcoming:
		return m.selectUpcoming(games, now)
	}
	return nil
}

func (m *Manager) selectLive(games []domain.GameRecord) []domain.GameRecord {
	restrict := m.cfg.ShowFavoriteTeamsOnly && !m.cfg.ShowAllLive && len(m.cfg.FavoriteTeams) > 0

	var live []domain.GameRecord
	for _, g := range games {
		if !g.IsLive() || g.IsFinal() || IsGameReallyOver(g) {
			continue
		}
		if restrict && !g.Involves(m.cfg.FavoriteTeams) {
			continue
		}
		live = append(live, g)
	}
	return live
}

func (m *Manager) selectRecent(games []domain.GameRecord, now time.Time) []domain.GameRecord {
	window := time.Duration(m.cfg.RecentWindowDays) * 24 * time.Hour
	var finals []domain.GameRecord
	for _, g := range games {
		if !g.IsFinal() {
			continue
		}
		if window > 0 && !g.StartTime.IsZero() && now.Sub(g.StartTime) > window {
			continue
		}
		finals = append(finals, g)
	}
	// Most recent first.
	sort.SliceStable(finals, func(i, j int) bool {
		return finals[i].StartTime.After(finals[j].StartTime)
	})
	return m.applyFavorites(finals, m.cfg.RecentGamesToShow)
}

func (m *Manager) selectUpcoming(games []domain.GameRecord, now time.Time) []domain.GameRecord {
	var upcoming []domain.GameRecord
	for _, g := range games {
		if g.State != domain.StateUpcoming {
			continue
		}
		if !g.StartTime.IsZero() && g.StartTime.Before(now) {
			continue
		}
		upcoming = append(upcoming, g)
	}
	// Soonest first.
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartTime.Before(upcoming[j].StartTime)
	})
	return m.applyFavorites(upcoming, m.cfg.UpcomingGamesToShow)
}

// applyFavorites narrows a sorted list to favorite-team games when the
// league is restricted, then caps the count. Selection is a single pass: a
// game between two favorites is taken once but satisfies both teams.
func (m *Manager) applyFavorites(games []domain.GameRecord, limit int) []domain.GameRecord {
	favorites := m.cfg.FavoriteTeams
	if m.cfg.ShowFavoriteTeamsOnly && len(favorites) > 0 {
		games = selectFavoriteGames(games, favorites, limit)
	} else if limit > 0 && len(games) > limit {
		games = games[:limit]
	}
	return games
}

// selectFavoriteGames walks the sorted list once, taking a game when any
// involved favorite team has not yet filled its share of the limit.
// perTeam is the ceiling each favorite may claim; with a zero limit every
// favorite game is kept.
func selectFavoriteGames(games []domain.GameRecord, favorites []string, limit int) []domain.GameRecord {
	perTeam := 1
	if limit > len(favorites) && len(favorites) > 0 {
		perTeam = (limit + len(favorites) - 1) / len(favorites)
	}

	taken := make(map[string]int, len(favorites))
	var out []domain.GameRecord
	for _, g := range games {
		if limit > 0 && len(out) >= limit {
			break
		}
		want := false
		for _, team := range favorites {
			if team != g.HomeAbbr && team != g.AwayAbbr {
				continue
			}
			if limit == 0 || taken[team] < perTeam {
				want = true
			}
		}
		if !want {
			continue
		}
		out = append(out, g)
		// A favorite-vs-favorite game counts toward both teams.
		for _, team := range favorites {
			if team == g.HomeAbbr || team == g.AwayAbbr {
				taken[team]++
			}
		}
	}
	return out
}
