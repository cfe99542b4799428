// Package render defines the display surface managers draw to. The terminal
// renderer ships as the default surface; a matrix-backed implementation only
// needs to satisfy Renderer.
package render

import (
	"strconv"

	"sports-scoreboard/internal/domain"
)

// Renderer draws one game card at a time. RenderGame reports whether
// anything was drawn; callers must not clear the surface on a false return,
// the previous frame stays up instead.
type Renderer interface {
	RenderGame(game domain.GameRecord, forceClear bool) bool
	Clear()
}

// TeamAnnotation picks the side text shown next to a team: bracket seeds win
// over season records, and a blank beats a meaningless one.
func TeamAnnotation(g domain.GameRecord, home bool) string {
	seed, record := g.AwaySeed, g.AwayRecord
	if home {
		seed, record = g.HomeSeed, g.HomeRecord
	}
	if g.IsTournament && seed > 0 {
		return "(" + strconv.Itoa(seed) + ")"
	}
	return record
}

// StatusLine builds the single status string for a game card, prefixing the
// bracket round for tournament games.
func StatusLine(g domain.GameRecord) string {
	var status string
	switch {
	case g.State == domain.StateHalftime:
		status = "HALF"
	case g.State == domain.StateLive:
		status = g.PeriodText
	case g.IsFinal():
		status = "FINAL"
	default:
		status = g.GameDate + " " + g.GameTime
	}
	if g.IsTournament && g.TournamentRound != "" {
		return g.TournamentRound + " " + status
	}
	return status
}
