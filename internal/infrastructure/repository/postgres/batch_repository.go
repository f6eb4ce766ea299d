package postgres

import (
	"context"
	"fmt"
	"sort"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/hallenstats/handball-ingest/internal/domain/event"
	"github.com/hallenstats/handball-ingest/internal/domain/roster"
	qb "github.com/hallenstats/handball-ingest/internal/platform/querybuilder"
	"github.com/hallenstats/handball-ingest/internal/usecase"
)

// insertChunkSize caps the row count of one multi-row insert statement so the
// parameter count stays far below the postgres wire limit.
const insertChunkSize = 500

const matchUpsertSuffix = `ON CONFLICT (id)
DO UPDATE SET
    league_id = EXCLUDED.league_id,
    phase_id = EXCLUDED.phase_id,
    hall_id = EXCLUDED.hall_id,
    game_number = EXCLUDED.game_number,
    starts_at = EXCLUDED.starts_at,
    home_team_id = EXCLUDED.home_team_id,
    away_team_id = EXCLUDED.away_team_id,
    status = EXCLUDED.status,
    pdf_url = EXCLUDED.pdf_url,
    referee_info = EXCLUDED.referee_info,
    updated_at = NOW()`

const eventUpsertSuffix = `ON CONFLICT (match_id, source_event_id)
DO UPDATE SET
    event_timestamp = EXCLUDED.event_timestamp,
    minute = EXCLUDED.minute,
    event_type = EXCLUDED.event_type,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    side = EXCLUDED.side,
    message = EXCLUDED.message,
    player_id = EXCLUDED.player_id`

// BatchRepository persists one extraction batch in a single transaction. It
// satisfies usecase.BatchStore.
type BatchRepository struct {
	db *sqlx.DB
}

func NewBatchRepository(db *sqlx.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

func (r *BatchRepository) SaveBatch(ctx context.Context, batch *usecase.Batch) error {
	if batch == nil || batch.Len() == 0 {
		return nil
	}
	if err := r.saveBatch(ctx, batch); err != nil {
		return crerr.Mark(err, usecase.ErrPersistence)
	}
	return nil
}

func (r *BatchRepository) saveBatch(ctx context.Context, batch *usecase.Batch) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save batch tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := r.insertLeagues(ctx, tx, batch); err != nil {
		return err
	}
	if err := r.insertTeams(ctx, tx, batch); err != nil {
		return err
	}
	if err := r.insertHalls(ctx, tx, batch); err != nil {
		return err
	}
	if err := r.insertPlayers(ctx, tx, batch); err != nil {
		return err
	}
	if err := r.upsertMatches(ctx, tx, batch); err != nil {
		return err
	}
	if err := r.replaceRosterStats(ctx, tx, batch); err != nil {
		return err
	}
	if err := r.replaceEvents(ctx, tx, batch); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save batch tx: %w", err)
	}
	return nil
}

// Reference rows are insert-or-ignore: the first persisted attribute tuple of
// an entity wins and later extractions never rewrite it.
func (r *BatchRepository) insertLeagues(ctx context.Context, tx *sqlx.Tx, batch *usecase.Batch) error {
	rows := make([]leagueInsertModel, 0, len(batch.Leagues))
	for item := range batch.Leagues {
		rows = append(rows, mapLeagueToInsertModel(item))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	for _, chunk := range chunkRows(rows) {
		builder := qb.InsertInto("leagues").
			Columns("id", "source_id", "name", "acronym", "season", "age_group", "league_type").
			Suffix("ON CONFLICT (id) DO NOTHING")
		for _, row := range chunk {
			builder.Values(row.ID, row.SourceID, row.Name, row.Acronym, row.Season, row.AgeGroup, row.Type)
		}
		query, args, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert leagues query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert leagues: %w", err)
		}
	}
	return nil
}

func (r *BatchRepository) insertTeams(ctx context.Context, tx *sqlx.Tx, batch *usecase.Batch) error {
	rows := make([]teamInsertModel, 0, len(batch.Teams))
	for item := range batch.Teams {
		rows = append(rows, mapTeamToInsertModel(item))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	for _, chunk := range chunkRows(rows) {
		builder := qb.InsertInto("teams").
			Columns("id", "name", "acronym", "logo_url").
			Suffix("ON CONFLICT (id) DO NOTHING")
		for _, row := range chunk {
			builder.Values(row.ID, row.Name, row.Acronym, row.LogoURL)
		}
		query, args, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert teams query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert teams: %w", err)
		}
	}
	return nil
}

func (r *BatchRepository) insertHalls(ctx context.Context, tx *sqlx.Tx, batch *usecase.Batch) error {
	rows := make([]hallInsertModel, 0, len(batch.Halls))
	for item := range batch.Halls {
		rows = append(rows, mapHallToInsertModel(item))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	for _, chunk := range chunkRows(rows) {
		builder := qb.InsertInto("halls").
			Columns("id", "name", "city", "hall_number").
			Suffix("ON CONFLICT (id) DO NOTHING")
		for _, row := range chunk {
			builder.Values(row.ID, row.Name, row.City, row.Number)
		}
		query, args, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert halls query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert halls: %w", err)
		}
	}
	return nil
}

func (r *BatchRepository) insertPlayers(ctx context.Context, tx *sqlx.Tx, batch *usecase.Batch) error {
	rows := make([]playerInsertModel, 0, len(batch.Players))
	for item := range batch.Players {
		rows = append(rows, mapPlayerToInsertModel(item))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	for _, chunk := range chunkRows(rows) {
		builder := qb.InsertInto("players").
			Columns("id", "first_name", "last_name", "is_placeholder", "is_official").
			Suffix("ON CONFLICT (id) DO NOTHING")
		for _, row := range chunk {
			builder.Values(row.ID, row.FirstName, row.LastName, row.IsPlaceholder, row.IsOfficial)
		}
		query, args, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert players query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert players: %w", err)
		}
	}
	return nil
}

// Match rows are split across header upsert and result update so a re-ingested
// match always reflects the latest document.
func (r *BatchRepository) upsertMatches(ctx context.Context, tx *sqlx.Tx, batch *usecase.Batch) error {
	for _, header := range batch.Headers {
		query, args, err := qb.InsertModel("matches", mapHeaderToInsertModel(header), matchUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert match query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert match id=%s: %w", header.ID, err)
		}
	}

	for _, result := range batch.Results {
		query, args, err := qb.Update("matches").
			Set("home_goals", result.HomeGoals).
			Set("away_goals", result.AwayGoals).
			Set("home_goals_half", result.HomeGoalsHalf).
			Set("away_goals_half", result.AwayGoalsHalf).
			Set("home_points", result.HomePoints).
			Set("away_points", result.AwayPoints).
			Where(qb.Eq("id", result.MatchID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update match result query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update match result id=%s: %w", result.MatchID, err)
		}
	}
	return nil
}

func (r *BatchRepository) replaceRosterStats(ctx context.Context, tx *sqlx.Tx, batch *usecase.Batch) error {
	query, args, err := qb.DeleteFrom("roster_stats").
		Where(qb.In("match_id", matchIDValues(batch))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete roster stats query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete roster stats: %w", err)
	}

	rows := dedupeRosterStats(batch.Roster)
	for _, chunk := range chunkRows(rows) {
		builder := qb.InsertInto("roster_stats").
			Columns(
				"match_id", "player_id", "team_id", "jersey_number",
				"goals", "seven_meter_goals", "seven_meter_missed",
				"yellow_cards", "red_cards", "blue_cards", "two_minute_penalties",
			)
		for _, row := range chunk {
			builder.Values(
				row.MatchID, row.PlayerID, row.TeamID, row.JerseyNumber,
				row.Goals, row.SevenMeterGoals, row.SevenMeterMissed,
				row.YellowCards, row.RedCards, row.BlueCards, row.TwoMinutePenalties,
			)
		}
		query, args, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert roster stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert roster stats: %w", err)
		}
	}
	return nil
}

func (r *BatchRepository) replaceEvents(ctx context.Context, tx *sqlx.Tx, batch *usecase.Batch) error {
	query, args, err := qb.DeleteFrom("events").
		Where(qb.In("match_id", matchIDValues(batch))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete events query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete events: %w", err)
	}

	rows := dedupeEvents(batch.Events)
	for _, chunk := range chunkRows(rows) {
		builder := qb.InsertInto("events").
			Columns(
				"match_id", "source_event_id", "event_timestamp", "minute",
				"event_type", "home_score", "away_score", "side", "message", "player_id",
			).
			Suffix(eventUpsertSuffix)
		for _, row := range chunk {
			builder.Values(
				row.MatchID, row.SourceEventID, row.Timestamp, row.Minute,
				row.Type, row.HomeScore, row.AwayScore, row.Side, row.Message, row.PlayerID,
			)
		}
		query, args, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert events query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert events: %w", err)
		}
	}
	return nil
}

func matchIDValues(batch *usecase.Batch) []any {
	out := make([]any, 0, len(batch.MatchIDs))
	for _, id := range batch.MatchIDs {
		out = append(out, id)
	}
	return out
}

// dedupeRosterStats keeps the first stat line per (match, player). A second
// occurrence inside one payload would violate the table's unique constraint.
func dedupeRosterStats(lines []roster.StatLine) []rosterStatInsertModel {
	type key struct {
		matchID  string
		playerID string
	}
	seen := make(map[key]struct{}, len(lines))
	out := make([]rosterStatInsertModel, 0, len(lines))
	for _, line := range lines {
		k := key{matchID: line.MatchID, playerID: line.PlayerID}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, mapStatLineToInsertModel(line))
	}
	return out
}

// dedupeEvents keeps the last record per (match, source event id) so a
// corrected duplicate in the payload wins.
func dedupeEvents(events []event.Event) []eventInsertModel {
	type key struct {
		matchID  string
		sourceID int64
	}
	index := make(map[key]int, len(events))
	out := make([]eventInsertModel, 0, len(events))
	for _, item := range events {
		k := key{matchID: item.MatchID, sourceID: item.SourceID}
		if pos, ok := index[k]; ok {
			out[pos] = mapEventToInsertModel(item)
			continue
		}
		index[k] = len(out)
		out = append(out, mapEventToInsertModel(item))
	}
	return out
}

func chunkRows[T any](rows []T) [][]T {
	if len(rows) == 0 {
		return nil
	}
	out := make([][]T, 0, (len(rows)+insertChunkSize-1)/insertChunkSize)
	for start := 0; start < len(rows); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(rows) {
			end = len(rows)
		}
		out = append(out, rows[start:end])
	}
	return out
}
