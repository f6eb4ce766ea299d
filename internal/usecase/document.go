package usecase

// MatchDocument is the typed shape of one combined match payload as published
// by the upstream API. The fetcher decodes into it; everything downstream of
// the extractor works on normalized domain values instead.
type MatchDocument struct {
	Summary *MatchSummary `json:"summary"`
	Lineup  MatchLineup   `json:"lineup"`
	Events  []EventRecord `json:"events"`
}

type MatchSummary struct {
	ID            string         `json:"id" validate:"required"`
	StartsAt      int64          `json:"startsAt"`
	MatchNumber   string         `json:"matchNumber"`
	State         string         `json:"state"`
	PDFURL        string         `json:"pdfUrl"`
	RefereeInfo   string         `json:"refereeInfo"`
	HomeGoals     *int           `json:"homeGoals"`
	AwayGoals     *int           `json:"awayGoals"`
	HomeGoalsHalf *int           `json:"homeGoalsHalf"`
	AwayGoalsHalf *int           `json:"awayGoalsHalf"`
	ExtraStates   []string       `json:"extraStates"`
	Tournament    TournamentInfo `json:"tournament" validate:"required"`
	Round         *RoundInfo     `json:"round"`
	Phase         *PhaseInfo     `json:"phase"`
	HomeTeam      *TeamInfo      `json:"homeTeam"`
	AwayTeam      *TeamInfo      `json:"awayTeam"`
	Field         *FieldInfo     `json:"field"`
}

type TournamentInfo struct {
	ID             string `json:"id" validate:"required"`
	Name           string `json:"name"`
	Acronym        string `json:"acronym"`
	AgeGroup       string `json:"ageGroup"`
	TournamentType string `json:"tournamentType"`
	StartsAt       int64  `json:"startsAt"`
}

type RoundInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	StartsAt int64  `json:"startsAt"`
}

type PhaseInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TeamInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Acronym string `json:"acronym"`
	Logo    string `json:"logo"`
}

type FieldInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	City   string `json:"city"`
	Number string `json:"fieldNumber"`
}

type MatchLineup struct {
	Home          []RosterEntry   `json:"home"`
	HomeOfficials []OfficialEntry `json:"homeOfficials"`
	Away          []RosterEntry   `json:"away"`
	AwayOfficials []OfficialEntry `json:"awayOfficials"`
}

type RosterEntry struct {
	ID            string `json:"id"`
	Firstname     string `json:"firstname"`
	Lastname      string `json:"lastname"`
	Number        *int   `json:"number"`
	Goals         *int   `json:"goals"`
	PenaltyGoals  *int   `json:"penaltyGoals"`
	PenaltyMissed *int   `json:"penaltyMissed"`
	YellowCards   *int   `json:"yellowCards"`
	RedCards      *int   `json:"redCards"`
	BlueCards     *int   `json:"blueCards"`
}

type OfficialEntry struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Position  string `json:"position"`
}

// EventRecord is one raw timeline entry. Records without an id are dropped
// during extraction.
type EventRecord struct {
	ID        int64  `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Time      string `json:"time"`
	Type      string `json:"type"`
	Score     string `json:"score"`
	Team      string `json:"team"`
	Message   string `json:"message"`
}
