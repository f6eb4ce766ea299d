package roster

// StatLine aggregates one player's counters for one match, scoped to the team
// the player appeared for. Unique per (match, player); re-ingesting a match
// replaces its stat lines wholesale.
//
// TwoMinutePenalties is not reported in the lineup section of the source
// document. It is reconstructed by counting penalty events that resolve to the
// player.
type StatLine struct {
	MatchID            string
	PlayerID           string
	TeamID             string
	JerseyNumber       *int
	Goals              int
	SevenMeterGoals    int
	SevenMeterMissed   int
	YellowCards        int
	RedCards           int
	BlueCards          int
	TwoMinutePenalties int
}
