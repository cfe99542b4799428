package timeutil

import (
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ScoreboardDateLayout is the compact date form the scoreboard API expects.
const ScoreboardDateLayout = "20060102"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatScoreboardDate formats a time as YYYYMMDD for scoreboard requests.
func FormatScoreboardDate(t time.Time) string {
	return t.Format(ScoreboardDateLayout)
}

// ClockExpired reports whether a game clock string reads zero (0:00, :00, 0.0).
func ClockExpired(clock string) bool {
	trimmed := strings.TrimSpace(clock)
	if trimmed == "" {
		return false
	}
	normalized := strings.NewReplacer(":", "", ".", "").Replace(trimmed)
	if normalized == "" {
		return false
	}
	for _, r := range normalized {
		if r != '0' {
			return false
		}
	}
	return true
}

// FormatLocalKickoff renders a start time as a short local clock reading,
// e.g. "7:30PM".
func FormatLocalKickoff(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("3:04PM")
}

// FormatLocalDate renders a start time as a short local day label,
// e.g. "Sat 7 Jun".
func FormatLocalDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return local.Format("Mon ") + local.Format("2") + local.Format(" Jan")
}
