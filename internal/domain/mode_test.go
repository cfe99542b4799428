package domain

import "testing"

func TestParseDisplayMode(t *testing.T) {
	cases := []struct {
		in     DisplayMode
		league string
		mode   ModeType
		ok     bool
	}{
		{"nrl_live", "nrl", ModeLive, true},
		{"wnba_recent", "wnba", ModeRecent, true},
		{"ncaaw_upcoming", "ncaaw", ModeUpcoming, true},
		{"rugby_union_live", "rugby_union", ModeLive, true},
		{"_live", "", "", false},
		{"nrl", "", "", false},
		{"nrl_latest", "", "", false},
	}

	for _, tc := range cases {
		league, mode, ok := ParseDisplayMode(tc.in)
		if ok != tc.ok {
			t.Fatalf("ParseDisplayMode(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if !ok {
			continue
		}
		if league != tc.league || mode != tc.mode {
			t.Fatalf("ParseDisplayMode(%q) = (%q, %q), want (%q, %q)", tc.in, league, mode, tc.league, tc.mode)
		}
	}
}

func TestFormatDisplayModeRoundTrip(t *testing.T) {
	key := ManagerKey{League: "wnba", Mode: ModeUpcoming}
	dm := key.DisplayMode()
	if dm != "wnba_upcoming" {
		t.Fatalf("unexpected display mode: %s", dm)
	}
	league, mode, ok := ParseDisplayMode(dm)
	if !ok || league != key.League || mode != key.Mode {
		t.Fatalf("round trip failed: %q -> (%q, %q, %v)", dm, league, mode, ok)
	}
}

func TestGameRecordInvolves(t *testing.T) {
	g := GameRecord{HomeAbbr: "SYD", AwayAbbr: "BRI"}
	if !g.Involves([]string{"BRI"}) {
		t.Fatal("expected away team match")
	}
	if g.Involves([]string{"MEL", "CBR"}) {
		t.Fatal("unexpected match")
	}
	if g.Involves(nil) {
		t.Fatal("nil favorites should never match")
	}
}

func TestGameIDsSkipsEmpty(t *testing.T) {
	ids := GameIDs([]GameRecord{{ID: "a"}, {}, {ID: "b"}})
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(ids))
	}
	if _, ok := ids["a"]; !ok {
		t.Fatal("missing id a")
	}
}
