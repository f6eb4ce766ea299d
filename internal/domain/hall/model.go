package hall

// Hall is an immutable reference entity keyed by the source venue id.
type Hall struct {
	ID     string
	Name   string
	City   string
	Number string
}
