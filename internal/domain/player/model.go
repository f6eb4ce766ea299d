package player

// Player is an immutable reference entity keyed by the source person id.
// Officials (referees, timekeepers) are registered as players with the
// official flag set; they never receive roster stat lines.
type Player struct {
	ID            string
	FirstName     string
	LastName      string
	IsPlaceholder bool
	IsOfficial    bool
}

// PlaceholderFirstName is the token the source uses for unnamed roster slots.
const PlaceholderFirstName = "N.N."
