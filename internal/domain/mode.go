package domain

import (
	"fmt"
	"strings"
)

// ModeType identifies one of the three per-league display categories.
type ModeType string

const (
	ModeLive     ModeType = "live"
	ModeRecent   ModeType = "recent"
	ModeUpcoming ModeType = "upcoming"
)

// ModeTypes lists all mode types in their canonical rotation order.
var ModeTypes = []ModeType{ModeRecent, ModeUpcoming, ModeLive}

// Valid reports whether the mode type is one of the three known categories.
func (m ModeType) Valid() bool {
	return m == ModeLive || m == ModeRecent || m == ModeUpcoming
}

// DisplayMode is the external string key identifying one league+mode
// combination to render, e.g. "nrl_live". It is the primary key threaded
// through every scheduling map.
type DisplayMode string

// FormatDisplayMode builds the canonical "{league}_{mode}" key.
func FormatDisplayMode(league string, mode ModeType) DisplayMode {
	return DisplayMode(league + "_" + string(mode))
}

// ParseDisplayMode splits a display mode into its league and mode type.
// League IDs may themselves contain underscores, so the mode suffix is
// matched from the end.
func ParseDisplayMode(dm DisplayMode) (league string, mode ModeType, ok bool) {
	s := string(dm)
	for _, m := range []ModeType{ModeUpcoming, ModeRecent, ModeLive} {
		suffix := "_" + string(m)
		if strings.HasSuffix(s, suffix) && len(s) > len(suffix) {
			return s[:len(s)-len(suffix)], m, true
		}
	}
	return "", "", false
}

// ModeTypeOf extracts just the mode type from a display mode.
func ModeTypeOf(dm DisplayMode) (ModeType, bool) {
	_, mode, ok := ParseDisplayMode(dm)
	return mode, ok
}

// ManagerKey is the unit of dwell-time and completion tracking: one league
// plus one mode type. It is a comparable value type usable directly as a map
// key, so no string parsing is ever needed to recover its parts.
type ManagerKey struct {
	League string
	Mode   ModeType
}

// DisplayMode returns the display-mode string this key renders under.
func (k ManagerKey) DisplayMode() DisplayMode {
	return FormatDisplayMode(k.League, k.Mode)
}

func (k ManagerKey) String() string {
	return fmt.Sprintf("%s_%s", k.League, k.Mode)
}
