package usecase

import (
	"github.com/hallenstats/handball-ingest/internal/domain/event"
	"github.com/hallenstats/handball-ingest/internal/domain/hall"
	"github.com/hallenstats/handball-ingest/internal/domain/league"
	"github.com/hallenstats/handball-ingest/internal/domain/match"
	"github.com/hallenstats/handball-ingest/internal/domain/player"
	"github.com/hallenstats/handball-ingest/internal/domain/roster"
	"github.com/hallenstats/handball-ingest/internal/domain/team"
)

// Batch buffers the extraction output of up to one batch of matches. Reference
// entities are deduplicated by full structural equality; two extractions
// describing the same entity identically collapse into one set member, while
// diverging attribute tuples stay distinct and the persister's
// insert-or-ignore keeps the first-seen row.
//
// Batch is a passive container: the orchestrator decides when it is flushed
// and resets it afterwards regardless of the flush outcome.
type Batch struct {
	Leagues map[league.League]struct{}
	Teams   map[team.Team]struct{}
	Halls   map[hall.Hall]struct{}
	Players map[player.Player]struct{}

	Headers []match.Header
	Results []match.Result
	Roster  []roster.StatLine
	Events  []event.Event

	MatchIDs []string
}

func NewBatch() *Batch {
	b := &Batch{}
	b.Reset()
	return b
}

func (b *Batch) Add(result ExtractionResult) {
	b.Leagues[result.League] = struct{}{}
	for _, t := range result.Teams {
		b.Teams[t] = struct{}{}
	}
	if result.Hall != nil {
		b.Halls[*result.Hall] = struct{}{}
	}
	for _, p := range result.Players {
		b.Players[p] = struct{}{}
	}

	b.Headers = append(b.Headers, result.Header)
	b.Results = append(b.Results, result.Result)
	b.Roster = append(b.Roster, result.Roster...)
	b.Events = append(b.Events, result.Events...)
	b.MatchIDs = append(b.MatchIDs, result.Header.ID)
}

// Len reports the number of buffered matches, not entities.
func (b *Batch) Len() int {
	return len(b.MatchIDs)
}

func (b *Batch) Reset() {
	b.Leagues = make(map[league.League]struct{})
	b.Teams = make(map[team.Team]struct{})
	b.Halls = make(map[hall.Hall]struct{})
	b.Players = make(map[player.Player]struct{})
	b.Headers = nil
	b.Results = nil
	b.Roster = nil
	b.Events = nil
	b.MatchIDs = nil
}
