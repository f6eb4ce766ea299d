package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/hallenstats/handball-ingest/internal/domain/event"
	"github.com/hallenstats/handball-ingest/internal/platform/logging"
)

func intp(v int) *int {
	return &v
}

// julyMillis is 2025-08-15T18:00:00Z, inside the 2025/2026 season.
const julyMillis = int64(1755280800000)

func validDocument() MatchDocument {
	return MatchDocument{
		Summary: &MatchSummary{
			ID:       "hw.123",
			StartsAt: julyMillis,
			State:    "Post",
			Tournament: TournamentInfo{
				ID:       "hw.t.1",
				Name:     "Kreisliga",
				StartsAt: julyMillis,
			},
			HomeTeam: &TeamInfo{ID: "hw.team.h", Name: "TV Heim"},
			AwayTeam: &TeamInfo{ID: "hw.team.a", Name: "SG Gast"},
		},
		Lineup: MatchLineup{
			Home: []RosterEntry{
				{ID: "p.h7", Firstname: "Max", Lastname: "Mustermann", Number: intp(7), Goals: intp(5)},
			},
			Away: []RosterEntry{
				{ID: "p.a3", Firstname: "N.N.", Lastname: "", Number: intp(3)},
			},
			HomeOfficials: []OfficialEntry{
				{ID: "o.h1", Firstname: "Tina", Lastname: "Trainer", Position: "A"},
			},
		},
		Events: []EventRecord{
			{ID: 10, Timestamp: 1755281000000, Time: "05:12", Type: "Goal", Score: "1:0", Team: "home", Message: "Tor durch 7. Mustermann"},
			{ID: 11, Timestamp: 1755281100000, Type: "TwoMinutePenalty", Team: "home", Message: "2-Minuten Strafe durch 7. Mustermann"},
			{ID: 0, Type: "Goal"},
		},
	}
}

func TestExtractService_MissingSummary(t *testing.T) {
	t.Parallel()

	service := NewExtractService(logging.NewNop())

	_, err := service.Extract(context.Background(), "hw.123", MatchDocument{})
	if !errors.Is(err, ErrMissingData) {
		t.Fatalf("expected ErrMissingData, got=%v", err)
	}
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("missing data must classify as extraction failure, got=%v", err)
	}
}

func TestExtractService_MissingTeamIDs(t *testing.T) {
	t.Parallel()

	service := NewExtractService(logging.NewNop())

	doc := validDocument()
	doc.Summary.AwayTeam = nil
	if _, err := service.Extract(context.Background(), "hw.123", doc); !errors.Is(err, ErrMissingData) {
		t.Fatalf("expected ErrMissingData for nil away team, got=%v", err)
	}

	doc = validDocument()
	doc.Summary.HomeTeam.ID = "  "
	if _, err := service.Extract(context.Background(), "hw.123", doc); !errors.Is(err, ErrMissingData) {
		t.Fatalf("expected ErrMissingData for blank home team id, got=%v", err)
	}
}

func TestExtractService_IdenticalTeamIDs(t *testing.T) {
	t.Parallel()

	service := NewExtractService(logging.NewNop())

	doc := validDocument()
	doc.Summary.AwayTeam.ID = doc.Summary.HomeTeam.ID
	_, err := service.Extract(context.Background(), "hw.123", doc)
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected ErrExtraction for identical team ids, got=%v", err)
	}
	if errors.Is(err, ErrMissingData) {
		t.Fatalf("identical team ids are present data, got missing-data classification")
	}
}

func TestExtractService_LeagueAndHeader(t *testing.T) {
	t.Parallel()

	service := NewExtractService(logging.NewNop())

	got, err := service.Extract(context.Background(), "hw.123", validDocument())
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	if got.League.Season != "2025/2026" {
		t.Fatalf("unexpected season: got=%q want=%q", got.League.Season, "2025/2026")
	}
	if got.League.ID != "hw.t.1_2025_2026" {
		t.Fatalf("unexpected league id: got=%q want=%q", got.League.ID, "hw.t.1_2025_2026")
	}
	if got.League.Name != "Kreisliga (2025/2026)" {
		t.Fatalf("unexpected league name: got=%q", got.League.Name)
	}
	if got.Header.LeagueID != got.League.ID {
		t.Fatalf("header league id mismatch: got=%q want=%q", got.Header.LeagueID, got.League.ID)
	}
	if got.Header.HomeTeamID != "hw.team.h" || got.Header.AwayTeamID != "hw.team.a" {
		t.Fatalf("unexpected team ids: got=%q/%q", got.Header.HomeTeamID, got.Header.AwayTeamID)
	}
	// The header start time is stored in seconds, the same unit as event
	// timestamps.
	if got.Header.StartsAt != julyMillis/1000 {
		t.Fatalf("start time must be seconds: got=%d want=%d", got.Header.StartsAt, julyMillis/1000)
	}
}

func TestExtractService_RosterAndOfficials(t *testing.T) {
	t.Parallel()

	service := NewExtractService(logging.NewNop())

	got, err := service.Extract(context.Background(), "hw.123", validDocument())
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	if len(got.Players) != 3 {
		t.Fatalf("unexpected player count: got=%d want=3", len(got.Players))
	}
	if len(got.Roster) != 2 {
		t.Fatalf("unexpected stat line count: got=%d want=2", len(got.Roster))
	}

	byID := make(map[string]int)
	for idx, p := range got.Players {
		byID[p.ID] = idx
	}

	placeholder := got.Players[byID["p.a3"]]
	if !placeholder.IsPlaceholder {
		t.Fatalf("N.N. entry must be flagged as placeholder")
	}
	official := got.Players[byID["o.h1"]]
	if !official.IsOfficial {
		t.Fatalf("official entry must be flagged")
	}

	for _, line := range got.Roster {
		if line.PlayerID == "o.h1" {
			t.Fatalf("officials must not receive stat lines")
		}
		if line.PlayerID == "p.h7" {
			if line.Goals != 5 {
				t.Fatalf("unexpected goals: got=%d want=5", line.Goals)
			}
			if line.SevenMeterGoals != 0 || line.YellowCards != 0 {
				t.Fatalf("missing counters must default to zero")
			}
		}
	}
}

func TestExtractService_EventResolutionAndTwoMinutes(t *testing.T) {
	t.Parallel()

	service := NewExtractService(logging.NewNop())

	got, err := service.Extract(context.Background(), "hw.123", validDocument())
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	// The id-zero record is dropped.
	if len(got.Events) != 2 {
		t.Fatalf("unexpected event count: got=%d want=2", len(got.Events))
	}

	goal := got.Events[0]
	if goal.Timestamp != 1755281000 {
		t.Fatalf("timestamp must be seconds: got=%d want=1755281000", goal.Timestamp)
	}
	if goal.Side != event.SideHome {
		t.Fatalf("unexpected side: got=%q want=%q", goal.Side, event.SideHome)
	}
	if goal.PlayerID != "p.h7" {
		t.Fatalf("unexpected resolved player: got=%q want=%q", goal.PlayerID, "p.h7")
	}
	if goal.HomeScore == nil || *goal.HomeScore != 1 || goal.AwayScore == nil || *goal.AwayScore != 0 {
		t.Fatalf("unexpected running score: got=%v:%v want=1:0", goal.HomeScore, goal.AwayScore)
	}

	penalty := got.Events[1]
	if penalty.Minute != defaultEventMinute {
		t.Fatalf("unexpected minute default: got=%q want=%q", penalty.Minute, defaultEventMinute)
	}
	if penalty.HomeScore != nil || penalty.AwayScore != nil {
		t.Fatalf("missing score must stay nil")
	}

	for _, line := range got.Roster {
		want := 0
		if line.PlayerID == "p.h7" {
			want = 1
		}
		if line.TwoMinutePenalties != want {
			t.Fatalf("unexpected two minute count for %s: got=%d want=%d", line.PlayerID, line.TwoMinutePenalties, want)
		}
	}
}

func TestNormalizeEvent_Defaults(t *testing.T) {
	t.Parallel()

	got := normalizeEvent("hw.123", EventRecord{ID: 5})

	if got.Minute != defaultEventMinute {
		t.Fatalf("unexpected minute: got=%q want=%q", got.Minute, defaultEventMinute)
	}
	if got.Type != event.TypeUnknown {
		t.Fatalf("unexpected type: got=%q want=%q", got.Type, event.TypeUnknown)
	}
	if got.Timestamp != 0 {
		t.Fatalf("unexpected timestamp: got=%d want=0", got.Timestamp)
	}
}

func TestParseScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw      string
		wantHome *int
		wantAway *int
	}{
		{raw: "12:10", wantHome: intp(12), wantAway: intp(10)},
		{raw: " 3 : 4 ", wantHome: intp(3), wantAway: intp(4)},
		{raw: "", wantHome: nil, wantAway: nil},
		{raw: "12", wantHome: nil, wantAway: nil},
		{raw: "a:b", wantHome: nil, wantAway: nil},
	}
	for _, tc := range cases {
		home, away := parseScore(tc.raw)
		if (home == nil) != (tc.wantHome == nil) || (away == nil) != (tc.wantAway == nil) {
			t.Fatalf("unexpected nilness for %q: got=%v:%v", tc.raw, home, away)
		}
		if home != nil && (*home != *tc.wantHome || *away != *tc.wantAway) {
			t.Fatalf("unexpected score for %q: got=%d:%d want=%d:%d", tc.raw, *home, *away, *tc.wantHome, *tc.wantAway)
		}
	}
}

func TestSeasonFromMillis(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ms   int64
		want string
	}{
		{name: "august starts new season", ms: julyMillis, want: "2025/2026"},
		{name: "march belongs to previous season", ms: 1741000000000, want: "2024/2025"},
		{name: "zero is unknown", ms: 0, want: "unknown"},
		{name: "negative is unknown", ms: -5, want: "unknown"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := seasonFromMillis(tc.ms); got != tc.want {
				t.Fatalf("unexpected season: got=%q want=%q", got, tc.want)
			}
		})
	}
}

func TestExtractLeague_NameAnnotation(t *testing.T) {
	t.Parallel()

	round := &RoundInfo{StartsAt: julyMillis}

	cases := []struct {
		name       string
		tournament TournamentInfo
		round      *RoundInfo
		want       string
	}{
		{
			name:       "annotated",
			tournament: TournamentInfo{ID: "t1", Name: "Kreisliga"},
			round:      round,
			want:       "Kreisliga (2025/2026)",
		},
		{
			name:       "season already present",
			tournament: TournamentInfo{ID: "t1", Name: "Kreisliga 2025/2026"},
			round:      round,
			want:       "Kreisliga 2025/2026",
		},
		{
			name:       "standalone year blocks annotation",
			tournament: TournamentInfo{ID: "t1", Name: "Pokal 2025"},
			round:      round,
			want:       "Pokal 2025",
		},
		{
			name:       "unknown season never annotated",
			tournament: TournamentInfo{ID: "t1", Name: "Kreisliga"},
			round:      nil,
			want:       "Kreisliga",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := extractLeague(tc.tournament, tc.round)
			if got.Name != tc.want {
				t.Fatalf("unexpected league name: got=%q want=%q", got.Name, tc.want)
			}
		})
	}
}

func TestExtractLeague_RoundStartPreferred(t *testing.T) {
	t.Parallel()

	tournament := TournamentInfo{ID: "t1", Name: "Kreisliga", StartsAt: 1741000000000}
	got := extractLeague(tournament, &RoundInfo{StartsAt: julyMillis})

	if got.Season != "2025/2026" {
		t.Fatalf("round start must win: got=%q want=%q", got.Season, "2025/2026")
	}

	// A round without a usable timestamp falls back to the tournament start.
	got = extractLeague(tournament, &RoundInfo{StartsAt: 0})
	if got.Season != "2024/2025" {
		t.Fatalf("tournament fallback: got=%q want=%q", got.Season, "2024/2025")
	}
}
