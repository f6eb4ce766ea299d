package handballnet

import (
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
)

const combinedPayload = `{
  "data": {
    "summary": {
      "id": "handball4all.westfalen.9001",
      "startsAt": 1755280800000,
      "matchNumber": "450123",
      "state": "Post",
      "homeGoals": 25,
      "awayGoals": 20,
      "extraStates": [],
      "tournament": {
        "id": "handball4all.westfalen.t1",
        "name": "Kreisliga",
        "acronym": "KL",
        "ageGroup": "adults",
        "tournamentType": "league",
        "startsAt": 1755280800000
      },
      "round": {"id": "r1", "name": "1. Spieltag", "startsAt": 1755280800000},
      "homeTeam": {"id": "handball4all.westfalen.th", "name": "TV Heim", "acronym": "TVH"},
      "awayTeam": {"id": "handball4all.westfalen.ta", "name": "SG Gast", "acronym": "SGG"},
      "field": {"id": "f1", "name": "Sporthalle Ost", "city": "Dortmund", "fieldNumber": "2"}
    },
    "lineup": {
      "home": [
        {"id": "p1", "firstname": "Max", "lastname": "Mustermann", "number": 7, "goals": 5, "penaltyGoals": 2}
      ],
      "homeOfficials": [
        {"id": "o1", "firstname": "Tina", "lastname": "Trainer", "position": "A"}
      ],
      "away": [],
      "awayOfficials": []
    },
    "events": [
      {"id": 1, "timestamp": 1755281000000, "time": "05:12", "type": "Goal", "score": "1:0", "team": "home", "message": "Tor durch 7. Mustermann"}
    ]
  }
}`

func TestCombinedEnvelopeDecoding(t *testing.T) {
	t.Parallel()

	var envelope combinedEnvelope
	require.NoError(t, sonic.Unmarshal([]byte(combinedPayload), &envelope))
	require.NotNil(t, envelope.Data)

	summary := envelope.Data.Summary
	require.NotNil(t, summary)
	require.Equal(t, "handball4all.westfalen.9001", summary.ID)
	require.Equal(t, int64(1755280800000), summary.StartsAt)
	require.NotNil(t, summary.HomeGoals)
	require.Equal(t, 25, *summary.HomeGoals)
	require.Nil(t, summary.HomeGoalsHalf)
	require.NotNil(t, summary.Round)
	require.Equal(t, "handball4all.westfalen.t1", summary.Tournament.ID)
	require.Equal(t, "2", summary.Field.Number)

	require.Len(t, envelope.Data.Lineup.Home, 1)
	entry := envelope.Data.Lineup.Home[0]
	require.NotNil(t, entry.Number)
	require.Equal(t, 7, *entry.Number)
	require.Nil(t, entry.YellowCards)
	require.Len(t, envelope.Data.Lineup.HomeOfficials, 1)

	require.Len(t, envelope.Data.Events, 1)
	record := envelope.Data.Events[0]
	require.Equal(t, int64(1), record.ID)
	require.Equal(t, "1:0", record.Score)
	require.Equal(t, "home", record.Team)
}

func TestCombinedEnvelopeDecoding_EmptyBody(t *testing.T) {
	t.Parallel()

	var envelope combinedEnvelope
	require.NoError(t, sonic.Unmarshal([]byte(`{"data": null}`), &envelope))
	require.Nil(t, envelope.Data)
}
