package postgres

import (
	"github.com/hallenstats/handball-ingest/internal/domain/event"
	"github.com/hallenstats/handball-ingest/internal/domain/hall"
	"github.com/hallenstats/handball-ingest/internal/domain/league"
	"github.com/hallenstats/handball-ingest/internal/domain/match"
	"github.com/hallenstats/handball-ingest/internal/domain/player"
	"github.com/hallenstats/handball-ingest/internal/domain/roster"
	"github.com/hallenstats/handball-ingest/internal/domain/team"
)

type leagueInsertModel struct {
	ID       string `db:"id"`
	SourceID string `db:"source_id"`
	Name     string `db:"name"`
	Acronym  string `db:"acronym"`
	Season   string `db:"season"`
	AgeGroup string `db:"age_group"`
	Type     string `db:"league_type"`
}

func mapLeagueToInsertModel(item league.League) leagueInsertModel {
	return leagueInsertModel{
		ID:       item.ID,
		SourceID: item.SourceID,
		Name:     item.Name,
		Acronym:  item.Acronym,
		Season:   item.Season,
		AgeGroup: item.AgeGroup,
		Type:     item.Type,
	}
}

type teamInsertModel struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Acronym string `db:"acronym"`
	LogoURL string `db:"logo_url"`
}

func mapTeamToInsertModel(item team.Team) teamInsertModel {
	return teamInsertModel{
		ID:      item.ID,
		Name:    item.Name,
		Acronym: item.Acronym,
		LogoURL: item.LogoURL,
	}
}

type hallInsertModel struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	City   string `db:"city"`
	Number string `db:"hall_number"`
}

func mapHallToInsertModel(item hall.Hall) hallInsertModel {
	return hallInsertModel{
		ID:     item.ID,
		Name:   item.Name,
		City:   item.City,
		Number: item.Number,
	}
}

type playerInsertModel struct {
	ID            string `db:"id"`
	FirstName     string `db:"first_name"`
	LastName      string `db:"last_name"`
	IsPlaceholder bool   `db:"is_placeholder"`
	IsOfficial    bool   `db:"is_official"`
}

func mapPlayerToInsertModel(item player.Player) playerInsertModel {
	return playerInsertModel{
		ID:            item.ID,
		FirstName:     item.FirstName,
		LastName:      item.LastName,
		IsPlaceholder: item.IsPlaceholder,
		IsOfficial:    item.IsOfficial,
	}
}

type matchInsertModel struct {
	ID          string  `db:"id"`
	LeagueID    string  `db:"league_id"`
	PhaseID     *string `db:"phase_id"`
	HallID      *string `db:"hall_id"`
	GameNumber  string  `db:"game_number"`
	StartsAt    int64   `db:"starts_at"`
	HomeTeamID  string  `db:"home_team_id"`
	AwayTeamID  string  `db:"away_team_id"`
	Status      string  `db:"status"`
	PDFURL      string  `db:"pdf_url"`
	RefereeInfo string  `db:"referee_info"`
}

func mapHeaderToInsertModel(item match.Header) matchInsertModel {
	return matchInsertModel{
		ID:          item.ID,
		LeagueID:    item.LeagueID,
		PhaseID:     nullableString(item.PhaseID),
		HallID:      nullableString(item.HallID),
		GameNumber:  item.GameNumber,
		StartsAt:    item.StartsAt,
		HomeTeamID:  item.HomeTeamID,
		AwayTeamID:  item.AwayTeamID,
		Status:      item.Status,
		PDFURL:      item.PDFURL,
		RefereeInfo: item.RefereeInfo,
	}
}

type rosterStatInsertModel struct {
	MatchID            string `db:"match_id"`
	PlayerID           string `db:"player_id"`
	TeamID             string `db:"team_id"`
	JerseyNumber       *int   `db:"jersey_number"`
	Goals              int    `db:"goals"`
	SevenMeterGoals    int    `db:"seven_meter_goals"`
	SevenMeterMissed   int    `db:"seven_meter_missed"`
	YellowCards        int    `db:"yellow_cards"`
	RedCards           int    `db:"red_cards"`
	BlueCards          int    `db:"blue_cards"`
	TwoMinutePenalties int    `db:"two_minute_penalties"`
}

func mapStatLineToInsertModel(item roster.StatLine) rosterStatInsertModel {
	return rosterStatInsertModel{
		MatchID:            item.MatchID,
		PlayerID:           item.PlayerID,
		TeamID:             item.TeamID,
		JerseyNumber:       item.JerseyNumber,
		Goals:              item.Goals,
		SevenMeterGoals:    item.SevenMeterGoals,
		SevenMeterMissed:   item.SevenMeterMissed,
		YellowCards:        item.YellowCards,
		RedCards:           item.RedCards,
		BlueCards:          item.BlueCards,
		TwoMinutePenalties: item.TwoMinutePenalties,
	}
}

type eventInsertModel struct {
	MatchID       string  `db:"match_id"`
	SourceEventID int64   `db:"source_event_id"`
	Timestamp     int64   `db:"event_timestamp"`
	Minute        string  `db:"minute"`
	Type          string  `db:"event_type"`
	HomeScore     *int    `db:"home_score"`
	AwayScore     *int    `db:"away_score"`
	Side          string  `db:"side"`
	Message       string  `db:"message"`
	PlayerID      *string `db:"player_id"`
}

func mapEventToInsertModel(item event.Event) eventInsertModel {
	return eventInsertModel{
		MatchID:       item.MatchID,
		SourceEventID: item.SourceID,
		Timestamp:     item.Timestamp,
		Minute:        item.Minute,
		Type:          item.Type,
		HomeScore:     item.HomeScore,
		AwayScore:     item.AwayScore,
		Side:          item.Side,
		Message:       item.Message,
		PlayerID:      nullableString(item.PlayerID),
	}
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	v := value
	return &v
}
