package usecase

import (
	"github.com/hallenstats/handball-ingest/internal/domain/event"
	"github.com/hallenstats/handball-ingest/internal/domain/match"
)

// Sentinel messages published verbatim by the live ticker, including the
// literal "Heim/Gast/SRA/SRB" suffix of the closing announcement.
const (
	halfTimeSentinel = "Spielstand 1. Halbzeit"
	fullTimeSentinel = "Spielstand 2. Halbzeit"
	closingSentinel  = "Spielabschluss mit Pins Heim/Gast/SRA/SRB"
)

// deriveResult recovers half-time and final scores from the chronological
// event list and derives official points. Walkover markers override any played
// score. Final-score fallback chain: events, then summary goal totals, then
// zero. Half-time has no fallback beyond null.
func deriveResult(matchID string, summary *MatchSummary, events []event.Event) match.Result {
	if hasExtraState(summary, match.ExtraStateWalkoverHome) {
		return walkoverResult(matchID, 0, 2)
	}
	if hasExtraState(summary, match.ExtraStateWalkoverAway) {
		return walkoverResult(matchID, 2, 0)
	}

	var htHome, htAway, ftHome, ftAway *int
	for _, ev := range events {
		if ev.HomeScore == nil || ev.AwayScore == nil {
			continue
		}
		switch {
		case ev.Message == halfTimeSentinel:
			htHome, htAway = ev.HomeScore, ev.AwayScore
		case ev.Message == fullTimeSentinel, ev.Message == closingSentinel:
			ftHome, ftAway = ev.HomeScore, ev.AwayScore
		}
	}

	homeGoals := finalGoals(ftHome, summary.HomeGoals)
	awayGoals := finalGoals(ftAway, summary.AwayGoals)
	homePoints, awayPoints := pointsFromGoals(homeGoals, awayGoals)

	return match.Result{
		MatchID:       matchID,
		HomeGoals:     homeGoals,
		AwayGoals:     awayGoals,
		HomeGoalsHalf: copyIntPtr(htHome),
		AwayGoalsHalf: copyIntPtr(htAway),
		HomePoints:    intPtr(homePoints),
		AwayPoints:    intPtr(awayPoints),
	}
}

func walkoverResult(matchID string, homePoints, awayPoints int) match.Result {
	return match.Result{
		MatchID:    matchID,
		HomeGoals:  0,
		AwayGoals:  0,
		HomePoints: intPtr(homePoints),
		AwayPoints: intPtr(awayPoints),
	}
}

func pointsFromGoals(homeGoals, awayGoals int) (int, int) {
	switch {
	case homeGoals > awayGoals:
		return 2, 0
	case homeGoals < awayGoals:
		return 0, 2
	default:
		return 1, 1
	}
}

func finalGoals(fromEvents, fromSummary *int) int {
	if fromEvents != nil {
		return *fromEvents
	}
	if fromSummary != nil {
		return *fromSummary
	}
	return 0
}

func hasExtraState(summary *MatchSummary, state string) bool {
	if summary == nil {
		return false
	}
	for _, item := range summary.ExtraStates {
		if item == state {
			return true
		}
	}
	return false
}

func intPtr(v int) *int {
	return &v
}

func copyIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
