package event

// Event is one timeline entry of a match, unique per (match, source event id).
// PlayerID is filled when the free-text message could be resolved against the
// match's jersey map, otherwise empty.
type Event struct {
	SourceID  int64
	MatchID   string
	Timestamp int64
	Minute    string
	Type      string
	HomeScore *int
	AwayScore *int
	Side      string
	Message   string
	PlayerID  string
}

// TypeTwoMinutePenalty is the event type whose resolved references feed the
// per-player penalty counters.
const TypeTwoMinutePenalty = "TwoMinutePenalty"

// TypeUnknown is substituted when the source record carries no type.
const TypeUnknown = "Unknown"

// Sides as published by the source ("Home"/"Away", matching the jersey map
// keys built from the lineup section).
const (
	SideHome = "Home"
	SideAway = "Away"
)
