package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/hallenstats/handball-ingest/internal/domain/event"
	"github.com/hallenstats/handball-ingest/internal/domain/hall"
	"github.com/hallenstats/handball-ingest/internal/domain/league"
	"github.com/hallenstats/handball-ingest/internal/domain/match"
	"github.com/hallenstats/handball-ingest/internal/domain/player"
	"github.com/hallenstats/handball-ingest/internal/domain/roster"
	"github.com/hallenstats/handball-ingest/internal/domain/team"
	"github.com/hallenstats/handball-ingest/internal/platform/logging"
)

const defaultEventMinute = "00:00"

var standaloneYearPattern = regexp.MustCompile(`\b\d{4}\b`)

// ExtractionResult bundles all normalized entities produced from one match
// document.
type ExtractionResult struct {
	League  league.League
	Teams   []team.Team
	Hall    *hall.Hall
	Players []player.Player
	Header  match.Header
	Result  match.Result
	Roster  []roster.StatLine
	Events  []event.Event
}

// ExtractService turns one raw match document into an ExtractionResult. It
// performs no I/O; failures are scoped to the single match.
type ExtractService struct {
	logger   *logging.Logger
	validate *validator.Validate
}

func NewExtractService(logger *logging.Logger) *ExtractService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ExtractService{
		logger:   logger,
		validate: validator.New(),
	}
}

func (s *ExtractService) Extract(ctx context.Context, externalID string, doc MatchDocument) (ExtractionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ExtractService.Extract")
	defer span.End()

	summary := doc.Summary
	if summary == nil {
		return ExtractionResult{}, crerr.Wrapf(ErrMissingData, "match %s: document has no summary", externalID)
	}
	if err := s.validate.Struct(summary); err != nil {
		return ExtractionResult{}, crerr.Wrapf(ErrMissingData, "match %s: invalid summary: %v", externalID, err)
	}
	if summary.HomeTeam == nil || strings.TrimSpace(summary.HomeTeam.ID) == "" {
		return ExtractionResult{}, crerr.Wrapf(ErrMissingData, "match %s: home team id missing", externalID)
	}
	if summary.AwayTeam == nil || strings.TrimSpace(summary.AwayTeam.ID) == "" {
		return ExtractionResult{}, crerr.Wrapf(ErrMissingData, "match %s: away team id missing", externalID)
	}
	if summary.HomeTeam.ID == summary.AwayTeam.ID {
		return ExtractionResult{}, crerr.Wrapf(ErrExtraction, "match %s: home and away team ids must differ", externalID)
	}

	out := ExtractionResult{
		League: extractLeague(summary.Tournament, summary.Round),
		Teams: []team.Team{
			extractTeam(*summary.HomeTeam),
			extractTeam(*summary.AwayTeam),
		},
	}

	if summary.Field != nil && strings.TrimSpace(summary.Field.ID) != "" {
		out.Hall = &hall.Hall{
			ID:     summary.Field.ID,
			Name:   strings.TrimSpace(summary.Field.Name),
			City:   strings.TrimSpace(summary.Field.City),
			Number: strings.TrimSpace(summary.Field.Number),
		}
	}

	out.Header = match.Header{
		ID:          summary.ID,
		LeagueID:    out.League.ID,
		GameNumber:  strings.TrimSpace(summary.MatchNumber),
		StartsAt:    summary.StartsAt / 1000,
		HomeTeamID:  summary.HomeTeam.ID,
		AwayTeamID:  summary.AwayTeam.ID,
		Status:      strings.TrimSpace(summary.State),
		PDFURL:      strings.TrimSpace(summary.PDFURL),
		RefereeInfo: strings.TrimSpace(summary.RefereeInfo),
	}
	if summary.Phase != nil {
		out.Header.PhaseID = summary.Phase.ID
	}
	if out.Hall != nil {
		out.Header.HallID = out.Hall.ID
	}

	jerseys := make(map[jerseyKey]string)
	s.extractSide(&out, summary.ID, event.SideHome, summary.HomeTeam.ID, doc.Lineup.Home, doc.Lineup.HomeOfficials, jerseys)
	s.extractSide(&out, summary.ID, event.SideAway, summary.AwayTeam.ID, doc.Lineup.Away, doc.Lineup.AwayOfficials, jerseys)

	twoMinuteByPlayer := make(map[string]int)
	out.Events = make([]event.Event, 0, len(doc.Events))
	for _, record := range doc.Events {
		if record.ID == 0 {
			continue
		}
		ev := normalizeEvent(summary.ID, record)
		if playerID, ok := resolvePlayerReference(ev.Message, ev.Side, jerseys); ok {
			ev.PlayerID = playerID
			if ev.Type == event.TypeTwoMinutePenalty {
				twoMinuteByPlayer[playerID]++
			}
		}
		out.Events = append(out.Events, ev)
	}
	for i := range out.Roster {
		out.Roster[i].TwoMinutePenalties = twoMinuteByPlayer[out.Roster[i].PlayerID]
	}

	out.Result = deriveResult(summary.ID, summary, out.Events)

	s.logger.DebugContext(ctx, "match document extracted",
		"match_id", summary.ID,
		"players", len(out.Players),
		"events", len(out.Events),
	)
	return out, nil
}

// extractSide registers one team's roster players and officials. Officials
// become player rows without stat lines and never enter the jersey map.
func (s *ExtractService) extractSide(out *ExtractionResult, matchID, side, teamID string, entries []RosterEntry, officials []OfficialEntry, jerseys map[jerseyKey]string) {
	for _, entry := range entries {
		if strings.TrimSpace(entry.ID) == "" {
			continue
		}

		p := player.Player{
			ID:        entry.ID,
			FirstName: strings.TrimSpace(entry.Firstname),
			LastName:  strings.TrimSpace(entry.Lastname),
		}
		if strings.EqualFold(p.FirstName, player.PlaceholderFirstName) {
			p.IsPlaceholder = true
		}
		out.Players = append(out.Players, p)

		out.Roster = append(out.Roster, roster.StatLine{
			MatchID:          matchID,
			PlayerID:         entry.ID,
			TeamID:           teamID,
			JerseyNumber:     copyIntPtr(entry.Number),
			Goals:            intOrZero(entry.Goals),
			SevenMeterGoals:  intOrZero(entry.PenaltyGoals),
			SevenMeterMissed: intOrZero(entry.PenaltyMissed),
			YellowCards:      intOrZero(entry.YellowCards),
			RedCards:         intOrZero(entry.RedCards),
			BlueCards:        intOrZero(entry.BlueCards),
		})

		if entry.Number != nil {
			jerseys[jerseyKey{Side: side, Number: *entry.Number}] = entry.ID
		}
	}

	for _, official := range officials {
		if strings.TrimSpace(official.ID) == "" {
			continue
		}
		out.Players = append(out.Players, player.Player{
			ID:         official.ID,
			FirstName:  strings.TrimSpace(official.Firstname),
			LastName:   strings.TrimSpace(official.Lastname),
			IsOfficial: true,
		})
	}
}

func normalizeEvent(matchID string, record EventRecord) event.Event {
	ev := event.Event{
		SourceID:  record.ID,
		MatchID:   matchID,
		Timestamp: record.Timestamp / 1000,
		Minute:    strings.TrimSpace(record.Time),
		Type:      strings.TrimSpace(record.Type),
		Side:      normalizeSide(record.Team),
		Message:   strings.TrimSpace(record.Message),
	}
	if ev.Minute == "" {
		ev.Minute = defaultEventMinute
	}
	if ev.Type == "" {
		ev.Type = event.TypeUnknown
	}
	ev.HomeScore, ev.AwayScore = parseScore(record.Score)
	return ev
}

// parseScore splits a "home:away" running score. Anything not matching that
// shape yields nil on both sides.
func parseScore(raw string) (*int, *int) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return nil, nil
	}
	home, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, nil
	}
	away, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, nil
	}
	return &home, &away
}

func extractLeague(tournament TournamentInfo, round *RoundInfo) league.League {
	seasonTS := tournament.StartsAt
	if round != nil && round.StartsAt > 0 {
		seasonTS = round.StartsAt
	}
	season := seasonFromMillis(seasonTS)

	name := strings.TrimSpace(tournament.Name)
	if season != league.SeasonUnknown && !strings.Contains(name, season) && !standaloneYearPattern.MatchString(name) {
		name = fmt.Sprintf("%s (%s)", name, season)
	}

	return league.League{
		ID:       tournament.ID + "_" + strings.ReplaceAll(season, "/", "_"),
		SourceID: tournament.ID,
		Name:     name,
		Acronym:  strings.TrimSpace(tournament.Acronym),
		Season:   season,
		AgeGroup: strings.TrimSpace(tournament.AgeGroup),
		Type:     strings.TrimSpace(tournament.TournamentType),
	}
}

// seasonFromMillis derives the "2025/2026" style season string from an epoch
// millisecond timestamp. July starts a new season year.
func seasonFromMillis(ms int64) string {
	if ms <= 0 {
		return league.SeasonUnknown
	}
	t := time.UnixMilli(ms).UTC()
	year := t.Year()
	if t.Month() >= time.July {
		return fmt.Sprintf("%d/%d", year, year+1)
	}
	return fmt.Sprintf("%d/%d", year-1, year)
}

func extractTeam(info TeamInfo) team.Team {
	return team.Team{
		ID:      info.ID,
		Name:    strings.TrimSpace(info.Name),
		Acronym: strings.TrimSpace(info.Acronym),
		LogoURL: strings.TrimSpace(info.Logo),
	}
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
