package extractor

import (
	"regexp"
	"strings"

	"sports-scoreboard/internal/domain"
)

var regionalPattern = regexp.MustCompile(`(?i)Regional (\d+)`)

// applyTournament fills in bracket metadata for championship events. A game
// counts as a tournament game when the competition type says so or when the
// notes headline mentions a championship.
func applyTournament(rec *domain.GameRecord, comp Competition, home, away *Competitor) {
	isTournament := comp.Type != nil && comp.Type.Abbreviation == "TRNMNT"

	headline := ""
	if len(comp.Notes) > 0 {
		headline = comp.Notes[0].Headline
	}
	if strings.Contains(headline, "Championship") {
		isTournament = true
	}
	if !isTournament {
		return
	}

	rec.IsTournament = true
	if headline != "" {
		rec.TournamentRound = parseRound(headline)
		rec.TournamentRegion = parseRegion(headline)
	}
	rec.HomeSeed = seedOf(home)
	rec.AwaySeed = seedOf(away)
}

// parseRound maps a notes headline to the bracket round abbreviation.
// Headlines look like "Men's Basketball Championship - East Region - 1st Round".
func parseRound(headline string) string {
	lower := strings.ToLower(headline)
	switch {
	case strings.Contains(lower, "national championship"):
		return "NCG"
	case strings.Contains(lower, "final four"):
		return "F4"
	case strings.Contains(lower, "elite 8"), strings.Contains(lower, "elite eight"):
		return "E8"
	case strings.Contains(lower, "sweet 16"), strings.Contains(lower, "sweet sixteen"):
		return "S16"
	case strings.Contains(lower, "2nd round"), strings.Contains(lower, "second round"):
		return "R32"
	case strings.Contains(lower, "1st round"), strings.Contains(lower, "first round"):
		return "R64"
	}
	return ""
}

// parseRegion returns E, W, S, or MW for the men's bracket, Rn for the
// women's numbered regionals, and "" for Final Four and championship games.
func parseRegion(headline string) string {
	lower := strings.ToLower(headline)
	switch {
	case strings.Contains(lower, "east region"):
		return "E"
	case strings.Contains(lower, "west region"):
		return "W"
	case strings.Contains(lower, "south region"):
		return "S"
	case strings.Contains(lower, "midwest region"):
		return "MW"
	}
	if m := regionalPattern.FindStringSubmatch(headline); m != nil {
		return "R" + m[1]
	}
	return ""
}

// seedOf reads the curated rank, keeping only the 1..16 range seeds carry
// during the bracket. Rankings outside that range are AP poll positions.
func seedOf(c *Competitor) int {
	if c == nil || c.CuratedRank == nil {
		return 0
	}
	seed := c.CuratedRank.Current
	if seed < 1 || seed > 16 {
		return 0
	}
	return seed
}
