// Package extractor turns raw scoreboard events into normalized game
// records. All functions are pure: malformed events yield a nil record and
// an error, never a partial result.
package extractor

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"sports-scoreboard/internal/domain"
	"sports-scoreboard/internal/timeutil"
)

// Options adjust extraction for one league.
type Options struct {
	League   string
	Location *time.Location
}

var (
	errNoCompetitions = errors.New("event has no competitions")
	errNoStatus       = errors.New("competition has no status")
	errNoTeams        = errors.New("competition is missing home or away team")
)

// ExtractGame normalizes one event into a GameRecord. The state field is
// derived from the upstream status block alone and is never set separately.
func ExtractGame(ev Event, opts Options) (*domain.GameRecord, error) {
	if len(ev.Competitions) == 0 {
		return nil, errNoCompetitions
	}
	comp := ev.Competitions[0]
	if comp.Status == nil {
		return nil, errNoStatus
	}

	home := findCompetitor(comp.Competitors, "home")
	away := findCompetitor(comp.Competitors, "away")
	if home == nil || away == nil {
		return nil, errNoTeams
	}

	rec := &domain.GameRecord{
		ID:          ev.ID,
		League:      opts.League,
		HomeAbbr:    teamAbbr(home.Team),
		AwayAbbr:    teamAbbr(away.Team),
		HomeScore:   coerceScore(home.Score),
		AwayScore:   coerceScore(away.Score),
		State:       deriveState(*comp.Status),
		Period:      comp.Status.Period,
		PeriodText:  comp.Status.Type.ShortDetail,
		Clock:       comp.Status.DisplayClock,
		HomeRecord:  overallRecord(home.Records),
		AwayRecord:  overallRecord(away.Records),
		HomeLogoURL: logoURL(home.Team),
		AwayLogoURL: logoURL(away.Team),
	}

	if start, err := parseStartTime(ev.Date); err == nil {
		rec.StartTime = start
		rec.GameTime = timeutil.FormatLocalKickoff(start, opts.Location)
		rec.GameDate = timeutil.FormatLocalDate(start, opts.Location)
	}

	applyTournament(rec, comp, home, away)
	return rec, nil
}

// ExtractGames maps a whole scoreboard payload, skipping events that fail to
// extract. The error count is reported so callers can log once per poll
// instead of once per event.
func ExtractGames(sb Scoreboard, opts Options) ([]domain.GameRecord, int) {
	games := make([]domain.GameRecord, 0, len(sb.Events))
	skipped := 0
	for _, ev := range sb.Events {
		rec, err := ExtractGame(ev, opts)
		if err != nil {
			skipped++
			continue
		}
		games = append(games, *rec)
	}
	return games, skipped
}

func findCompetitor(competitors []Competitor, side string) *Competitor {
	for i := range competitors {
		if competitors[i].HomeAway == side {
			return &competitors[i]
		}
	}
	return nil
}

func teamAbbr(t Team) string {
	if t.Abbreviation != "" {
		return t.Abbreviation
	}
	name := strings.TrimSpace(t.Name)
	if len(name) > 3 {
		name = name[:3]
	}
	return strings.ToUpper(name)
}

func deriveState(status Status) domain.GameState {
	name := strings.ToUpper(status.Type.Name)
	switch {
	case status.Type.State == "post":
		return domain.StateFinal
	case status.Type.State == "halftime" || name == "STATUS_HALFTIME":
		return domain.StateHalftime
	case status.Type.State == "in":
		return domain.StateLive
	default:
		return domain.StateUpcoming
	}
}

var digitPattern = regexp.MustCompile(`\d+`)

// coerceScore handles the three wire forms scores arrive in: a bare number,
// a numeric string, or an object carrying value/displayValue. Anything
// unparseable coerces to zero rather than failing the whole event.
func coerceScore(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}

	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return clampScore(int(asNumber))
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return clampScore(scoreFromString(asString))
	}

	var asObject struct {
		Value        *float64 `json:"value"`
		DisplayValue string   `json:"displayValue"`
		Score        *float64 `json:"score"`
	}
	if err := json.Unmarshal(raw, &asObject); err == nil {
		if asObject.Value != nil {
			return clampScore(int(*asObject.Value))
		}
		if asObject.Score != nil {
			return clampScore(int(*asObject.Score))
		}
		return clampScore(scoreFromString(asObject.DisplayValue))
	}

	return 0
}

func scoreFromString(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return int(val)
	}
	if match := digitPattern.FindString(s); match != "" {
		val, _ := strconv.Atoi(match)
		return val
	}
	return 0
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func overallRecord(records []TeamRecord) string {
	for _, r := range records {
		if r.Type != "total" && r.Type != "" {
			continue
		}
		// A blank record reads better than 0-0 on a 32-pixel card.
		if r.Summary == "0-0" || r.Summary == "0-0-0" {
			return ""
		}
		return r.Summary
	}
	return ""
}

func logoURL(t Team) string {
	if len(t.Logos) > 0 && t.Logos[0].Href != "" {
		return t.Logos[0].Href
	}
	return t.Logo
}

func parseStartTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z", "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
