package domain

import "time"

// GameState mirrors the lifecycle states derived from the upstream status block.
type GameState string

const (
	StateUpcoming GameState = "UPCOMING"
	StateLive     GameState = "LIVE"
	StateHalftime GameState = "HALFTIME"
	StateFinal    GameState = "FINAL"
)

// GameRecord is an immutable snapshot of one sporting event. Managers replace
// records wholesale on every refresh; nothing patches them field by field.
type GameRecord struct {
	ID        string    `json:"id"`
	League    string    `json:"league"`
	HomeAbbr  string    `json:"homeAbbr"`
	AwayAbbr  string    `json:"awayAbbr"`
	HomeScore int       `json:"homeScore"`
	AwayScore int       `json:"awayScore"`
	State     GameState `json:"state"`
	Period    int       `json:"period"`
	// PeriodText is the upstream short detail, e.g. "Final", "Q1 12:34".
	PeriodText  string    `json:"periodText"`
	Clock       string    `json:"clock"`
	StartTime   time.Time `json:"startTime"`
	GameTime    string    `json:"gameTime"`
	GameDate    string    `json:"gameDate"`
	HomeRecord  string    `json:"homeRecord,omitempty"`
	AwayRecord  string    `json:"awayRecord,omitempty"`
	HomeLogoURL string    `json:"homeLogoUrl,omitempty"`
	AwayLogoURL string    `json:"awayLogoUrl,omitempty"`

	IsTournament     bool   `json:"isTournament,omitempty"`
	TournamentRound  string `json:"tournamentRound,omitempty"`
	TournamentRegion string `json:"tournamentRegion,omitempty"`
	HomeSeed         int    `json:"homeSeed,omitempty"`
	AwaySeed         int    `json:"awaySeed,omitempty"`
}

// IsLive reports whether the game is currently in progress, halftime included.
func (g GameRecord) IsLive() bool {
	return g.State == StateLive || g.State == StateHalftime
}

// IsFinal reports whether the upstream feed has marked the game finished.
func (g GameRecord) IsFinal() bool {
	return g.State == StateFinal
}

// Involves reports whether either side matches one of the given team abbreviations.
func (g GameRecord) Involves(teams []string) bool {
	for _, t := range teams {
		if t == g.HomeAbbr || t == g.AwayAbbr {
			return true
		}
	}
	return false
}

// GameIDs collects the IDs of the given records into a set.
func GameIDs(games []GameRecord) map[string]struct{} {
	ids := make(map[string]struct{}, len(games))
	for _, g := range games {
		if g.ID != "" {
			ids[g.ID] = struct{}{}
		}
	}
	return ids
}
