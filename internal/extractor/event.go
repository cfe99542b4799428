package extractor

import "encoding/json"

// Event mirrors one scoreboard event from the upstream statistics API. Only
// the fields the extractor reads are modeled; everything else passes through
// untouched.
type Event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Competitions []Competition `json:"competitions"`
}

type Competition struct {
	Type        *CompetitionType `json:"type"`
	Status      *Status          `json:"status"`
	Competitors []Competitor     `json:"competitors"`
	Notes       []Note           `json:"notes"`
}

type CompetitionType struct {
	Abbreviation string `json:"abbreviation"`
}

type Status struct {
	DisplayClock string     `json:"displayClock"`
	Period       int        `json:"period"`
	Type         StatusType `json:"type"`
}

type StatusType struct {
	Name        string `json:"name"`
	State       string `json:"state"`
	ShortDetail string `json:"shortDetail"`
}

type Competitor struct {
	ID       string `json:"id"`
	HomeAway string `json:"homeAway"`
	// Score arrives as a bare number, a numeric string, or an object
	// depending on the league endpoint, so it is decoded lazily.
	Score       json.RawMessage `json:"score"`
	Team        Team            `json:"team"`
	Records     []TeamRecord    `json:"records"`
	CuratedRank *CuratedRank    `json:"curatedRank"`
}

type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Logo         string `json:"logo"`
	Logos        []Logo `json:"logos"`
}

type Logo struct {
	Href string `json:"href"`
}

type TeamRecord struct {
	Type    string `json:"type"`
	Summary string `json:"summary"`
}

type CuratedRank struct {
	Current int `json:"current"`
}

type Note struct {
	Headline string `json:"headline"`
}

// Scoreboard is the top-level payload wrapping a day's events.
type Scoreboard struct {
	Events []Event `json:"events"`
}
