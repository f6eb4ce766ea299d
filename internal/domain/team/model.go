package team

// Team is an immutable reference entity keyed by the source team id.
type Team struct {
	ID      string
	Name    string
	Acronym string
	LogoURL string
}
