package usecase

import (
	"testing"

	"github.com/hallenstats/handball-ingest/internal/domain/hall"
	"github.com/hallenstats/handball-ingest/internal/domain/league"
	"github.com/hallenstats/handball-ingest/internal/domain/match"
	"github.com/hallenstats/handball-ingest/internal/domain/player"
	"github.com/hallenstats/handball-ingest/internal/domain/team"
)

func TestBatch_AddDeduplicatesReferences(t *testing.T) {
	t.Parallel()

	shared := league.League{ID: "t1_2025_2026", SourceID: "t1", Season: "2025/2026"}
	sameTeam := team.Team{ID: "team.1", Name: "TV Heim"}
	sameHall := hall.Hall{ID: "h1", Name: "Sporthalle"}

	batch := NewBatch()
	batch.Add(ExtractionResult{
		League:  shared,
		Teams:   []team.Team{sameTeam, {ID: "team.2"}},
		Hall:    &sameHall,
		Players: []player.Player{{ID: "p1"}, {ID: "p2"}},
		Header:  match.Header{ID: "m1"},
		Result:  match.Result{MatchID: "m1"},
	})
	batch.Add(ExtractionResult{
		League:  shared,
		Teams:   []team.Team{sameTeam, {ID: "team.3"}},
		Hall:    &sameHall,
		Players: []player.Player{{ID: "p1"}},
		Header:  match.Header{ID: "m2"},
		Result:  match.Result{MatchID: "m2"},
	})

	if len(batch.Leagues) != 1 {
		t.Fatalf("unexpected league set size: got=%d want=1", len(batch.Leagues))
	}
	if len(batch.Teams) != 3 {
		t.Fatalf("unexpected team set size: got=%d want=3", len(batch.Teams))
	}
	if len(batch.Halls) != 1 {
		t.Fatalf("unexpected hall set size: got=%d want=1", len(batch.Halls))
	}
	if len(batch.Players) != 2 {
		t.Fatalf("unexpected player set size: got=%d want=2", len(batch.Players))
	}
	if batch.Len() != 2 {
		t.Fatalf("unexpected batch length: got=%d want=2", batch.Len())
	}
	if len(batch.Headers) != 2 || len(batch.Results) != 2 {
		t.Fatalf("headers and results must stay per match: got=%d/%d", len(batch.Headers), len(batch.Results))
	}
}

func TestBatch_DivergingAttributesStayDistinct(t *testing.T) {
	t.Parallel()

	batch := NewBatch()
	batch.Add(ExtractionResult{
		Teams:  []team.Team{{ID: "team.1", Name: "TV Heim"}},
		Header: match.Header{ID: "m1"},
	})
	batch.Add(ExtractionResult{
		Teams:  []team.Team{{ID: "team.1", Name: "TV Heim II"}},
		Header: match.Header{ID: "m2"},
	})

	if len(batch.Teams) != 2 {
		t.Fatalf("diverging tuples must not collapse: got=%d want=2", len(batch.Teams))
	}
}

func TestBatch_Reset(t *testing.T) {
	t.Parallel()

	batch := NewBatch()
	batch.Add(ExtractionResult{
		League: league.League{ID: "l1"},
		Header: match.Header{ID: "m1"},
	})
	batch.Reset()

	if batch.Len() != 0 {
		t.Fatalf("reset batch must be empty: got=%d", batch.Len())
	}
	if len(batch.Leagues) != 0 || len(batch.Headers) != 0 || len(batch.MatchIDs) != 0 {
		t.Fatalf("reset must clear all collections")
	}

	// Reset maps stay usable.
	batch.Add(ExtractionResult{Header: match.Header{ID: "m2"}})
	if batch.Len() != 1 {
		t.Fatalf("batch must be reusable after reset: got=%d want=1", batch.Len())
	}
}
