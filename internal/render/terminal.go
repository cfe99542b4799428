package render

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"sports-scoreboard/internal/domain"
)

// Terminal renders game cards as colored lines on a terminal. It is the
// surface used by the standalone binary and in development.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer

	liveColor  *color.Color
	finalColor *color.Color
	scoreColor *color.Color

	lastLine string
}

// NewTerminal returns a renderer writing to the given stream, stdout when nil.
func NewTerminal(out io.Writer) *Terminal {
	if out == nil {
		out = os.Stdout
	}
	return &Terminal{
		out:        out,
		liveColor:  color.New(color.FgRed, color.Bold),
		finalColor: color.New(color.FgWhite),
		scoreColor: color.New(color.FgYellow, color.Bold),
	}
}

// RenderGame draws one scoreline. Repeated frames for the same game state
// are skipped unless forceClear asks for a redraw.
func (t *Terminal) RenderGame(g domain.GameRecord, forceClear bool) bool {
	line := t.formatLine(g)

	t.mu.Lock()
	defer t.mu.Unlock()
	if !forceClear && line == t.lastLine {
		return true
	}
	if _, err := fmt.Fprintln(t.out, line); err != nil {
		return false
	}
	t.lastLine = line
	return true
}

// Clear forgets the last frame so the next render always draws.
func (t *Terminal) Clear() {
	t.mu.Lock()
	t.lastLine = ""
	t.mu.Unlock()
}

func (t *Terminal) formatLine(g domain.GameRecord) string {
	status := StatusLine(g)
	switch {
	case g.IsLive():
		status = t.liveColor.Sprint(status)
	case g.IsFinal():
		status = t.finalColor.Sprint(status)
	}

	away := teamText(g.AwayAbbr, TeamAnnotation(g, false))
	home := teamText(g.HomeAbbr, TeamAnnotation(g, true))

	if g.State == domain.StateUpcoming {
		return fmt.Sprintf("[%s] %s @ %s  %s", g.League, away, home, status)
	}
	score := t.scoreColor.Sprintf("%d-%d", g.AwayScore, g.HomeScore)
	return fmt.Sprintf("[%s] %s %s %s  %s", g.League, away, score, home, status)
}

func teamText(abbr, annotation string) string {
	if annotation == "" {
		return abbr
	}
	return abbr + " " + annotation
}
