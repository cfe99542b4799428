package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2024-01-02" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
}

func TestFormatScoreboardDate(t *testing.T) {
	value := time.Date(2025, 6, 7, 9, 0, 0, 0, time.UTC)
	if got := FormatScoreboardDate(value); got != "20250607" {
		t.Fatalf("expected compact date, got %s", got)
	}
}

func TestClockExpired(t *testing.T) {
	cases := map[string]bool{
		"0:00":  true,
		":00":   true,
		"00":    true,
		"0.0":   true,
		"":      false,
		"  ":    false,
		"12:34": false,
		"0:01":  false,
	}
	for in, want := range cases {
		if got := ClockExpired(in); got != want {
			t.Errorf("ClockExpired(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFormatLocalKickoff(t *testing.T) {
	loc := time.FixedZone("AEST", 10*60*60)
	value := time.Date(2025, 6, 7, 9, 30, 0, 0, time.UTC)
	if got := FormatLocalKickoff(value, loc); got != "7:30PM" {
		t.Fatalf("unexpected kickoff: %s", got)
	}
	if got := FormatLocalKickoff(value, nil); got != "9:30AM" {
		t.Fatalf("expected UTC fallback, got %s", got)
	}
}
