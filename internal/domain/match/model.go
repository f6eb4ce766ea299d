package match

// Header holds the match attributes known before a match concludes. Header and
// Result are persisted independently: header data arrives first and later runs
// must be able to update results without clobbering header columns, and vice
// versa. StartsAt is epoch seconds, the same unit as event timestamps.
type Header struct {
	ID          string
	LeagueID    string
	PhaseID     string
	HallID      string
	GameNumber  string
	StartsAt    int64
	HomeTeamID  string
	AwayTeamID  string
	Status      string
	PDFURL      string
	RefereeInfo string
}

// Result holds the attributes only meaningful once scoring is known. Goal
// totals always carry a value (zero when nothing is known); half-time scores
// and official points stay nil when underivable.
type Result struct {
	MatchID       string
	HomeGoals     int
	AwayGoals     int
	HomeGoalsHalf *int
	AwayGoalsHalf *int
	HomePoints    *int
	AwayPoints    *int
}

// Walkover markers as published in the summary extraStates list.
const (
	ExtraStateWalkoverHome = "WoHome"
	ExtraStateWalkoverAway = "WoAway"
)
