package league

// League is an immutable reference entity. Its identity combines the source
// tournament id with the derived season, so the same tournament reappears as a
// new league every season.
//
// League is a comparable value type: batch accumulation deduplicates leagues
// by full attribute equality.
type League struct {
	ID       string
	SourceID string
	Name     string
	Acronym  string
	Season   string
	AgeGroup string
	Type     string
}

// SeasonUnknown marks documents whose tournament carries no usable start
// timestamp.
const SeasonUnknown = "unknown"
