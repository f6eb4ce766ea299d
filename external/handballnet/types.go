package handballnet

import "github.com/hallenstats/handball-ingest/internal/usecase"

// combinedEnvelope wraps the combined game payload. A missing data node is
// passed through as an empty document; classification happens downstream.
type combinedEnvelope struct {
	Data *usecase.MatchDocument `json:"data"`
}
