package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/liveticker/internal/domain/competition"
	"github.com/riskibarqy/liveticker/internal/domain/fixture"
	"github.com/riskibarqy/liveticker/internal/domain/leaguestanding"
	"github.com/riskibarqy/liveticker/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

const FixtureDataSource = "football-data.org"

const standingsTypeTotal = "TOTAL"

type FixtureDataProvider interface {
	FetchMatches(ctx context.Context, competitionCode string, season int) (ExternalMatchList, error)
	FetchStandings(ctx context.Context, competitionCode string, season int) ([]ExternalStandingTable, error)
}

type ExternalMatchList struct {
	CompetitionName   string
	CompetitionEmblem string
	SeasonStartDate   string
	SeasonEndDate     string
	Matchday          *int
	Matches           []ExternalMatch
}

type ExternalMatch struct {
	ID        string
	UTCDate   string
	Status    string
	Stage     string
	Group     string
	Matchday  *int
	HomeTeam  ExternalTeam
	AwayTeam  ExternalTeam
	FullTime  fixture.ScoreLine
	ExtraTime fixture.ScoreLine
	Penalties fixture.ScoreLine
}

type ExternalTeam struct {
	ID        *int64
	Name      string
	ShortName string
	TLA       string
}

type ExternalStandingTable struct {
	Type  string
	Stage string
	Group string
	Rows  []ExternalStandingRow
}

type ExternalStandingRow struct {
	Position       *int
	Team           ExternalTeam
	PlayedGames    *int
	Won            *int
	Draw           *int
	Lost           *int
	Points         *int
	GoalsFor       *int
	GoalsAgainst   *int
	GoalDifference *int
}

type FixtureIngestionConfig struct {
	Outputs map[string]string
	Labels  map[string]string
}

type FixtureIngestionInput struct {
	Competition string `validate:"required,alphanum,max=8"`
	Season      int    `validate:"gte=0"`
	Output      string `validate:"omitempty,max=512"`
	Label       string `validate:"omitempty,max=100"`
}

type FixtureIngestionResult struct {
	Location string
	Snapshot competition.Snapshot
}

// FixtureIngestionService rebuilds a competition document from football-data.org.
type FixtureIngestionService struct {
	provider FixtureDataProvider
	repo     competition.Repository
	cfg      FixtureIngestionConfig
	clock    clockwork.Clock
	logger   *logging.Logger
}

func NewFixtureIngestionService(
	provider FixtureDataProvider,
	repo competition.Repository,
	cfg FixtureIngestionConfig,
	clock clockwork.Clock,
	logger *logging.Logger,
) *FixtureIngestionService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureIngestionService{
		provider: provider,
		repo:     repo,
		cfg:      cfg,
		clock:    clock,
		logger:   logger,
	}
}

// CurrentSeason is the calendar year a season started in: July or later counts as the new season.
func CurrentSeason(now time.Time) int {
	now = now.UTC()
	if now.Month() >= time.July {
		return now.Year()
	}
	return now.Year() - 1
}

func (s *FixtureIngestionService) Ingest(ctx context.Context, input FixtureIngestionInput) (FixtureIngestionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureIngestionService.Ingest")
	defer span.End()

	input.Competition = strings.ToUpper(strings.TrimSpace(input.Competition))
	if input.Competition == "" {
		input.Competition = competition.CodeChampionsLeague
	}
	if err := validateInput(ctx, input); err != nil {
		return FixtureIngestionResult{}, err
	}

	code := input.Competition
	location := strings.TrimSpace(input.Output)
	if location == "" {
		location = s.cfg.Outputs[code]
	}
	if location == "" {
		return FixtureIngestionResult{}, fmt.Errorf("%w: no default output path defined for competition %s", ErrInvalidInput, code)
	}

	label := strings.TrimSpace(input.Label)
	if label == "" {
		label = s.cfg.Labels[code]
	}
	if label == "" {
		label = competition.DefaultLabel(code)
	}

	season := input.Season
	if season <= 0 {
		season = CurrentSeason(s.clock.Now())
	}

	var (
		matches      ExternalMatchList
		matchesErr   error
		tables       []ExternalStandingTable
		standingsErr error
		wg           conc.WaitGroup
	)
	wg.Go(func() {
		matches, matchesErr = s.provider.FetchMatches(ctx, code, season)
	})
	wg.Go(func() {
		tables, standingsErr = s.provider.FetchStandings(ctx, code, season)
	})
	wg.Wait()

	if matchesErr != nil {
		return FixtureIngestionResult{}, fmt.Errorf("fetch matches: %w", matchesErr)
	}
	if standingsErr != nil {
		if !errors.Is(standingsErr, ErrNotFound) {
			return FixtureIngestionResult{}, fmt.Errorf("fetch standings: %w", standingsErr)
		}
		s.logger.WarnContext(ctx, "standings endpoint returned 404, skipping provider standings",
			"competition", code,
			"season", season,
		)
		tables = nil
	}

	fixtures := make([]*fixture.Fixture, 0, len(matches.Matches))
	for _, item := range matches.Matches {
		fixtures = append(fixtures, normalizeExternalMatch(item, code))
	}

	standings := normalizeStandingTables(tables)
	if len(standings) == 0 {
		standings = leaguestanding.DeriveFromFixtures(fixtures)
	}

	snapshot := competition.Snapshot{
		GeneratedAt: s.clock.Now().UTC(),
		Source:      FixtureDataSource,
		Competition: competition.Competition{
			Code:   code,
			Label:  label,
			Name:   matches.CompetitionName,
			Emblem: matches.CompetitionEmblem,
		},
		Season: competition.Season{
			Year:      season,
			StartDate: matches.SeasonStartDate,
			EndDate:   matches.SeasonEndDate,
			Matchday:  matches.Matchday,
		},
		Matchdays: competition.BuildMatchdays(code, fixtures),
		Fixtures:  fixtures,
		Standings: standings,
	}

	if err := s.repo.Save(ctx, location, snapshot); err != nil {
		return FixtureIngestionResult{}, fmt.Errorf("save competition document: %w", err)
	}

	s.logger.InfoContext(ctx, "competition data written",
		"competition", code,
		"label", label,
		"season", season,
		"location", location,
		"matches", len(fixtures),
		"standings", len(standings),
	)

	return FixtureIngestionResult{Location: location, Snapshot: snapshot}, nil
}

func normalizeExternalMatch(item ExternalMatch, code string) *fixture.Fixture {
	out := &fixture.Fixture{
		ID:       item.ID,
		UTCDate:  item.UTCDate,
		Status:   fixture.NormalizeStatus(item.Status),
		Stage:    item.Stage,
		Group:    item.Group,
		Matchday: item.Matchday,
		HomeTeam: normalizeExternalTeam(item.HomeTeam, "Heim"),
		AwayTeam: normalizeExternalTeam(item.AwayTeam, "Gast"),
		Score: fixture.Score{
			FullTime:  item.FullTime,
			ExtraTime: item.ExtraTime,
			Penalties: item.Penalties,
		},
	}
	if item.UTCDate != "" {
		if date, ok := fixture.NormalizeDate(item.UTCDate); ok {
			out.ISODate = date
		}
	}
	out.StageOrder = competition.StageOrder(code, item.Stage)
	return out
}

func normalizeExternalTeam(team ExternalTeam, fallback string) fixture.Team {
	name := team.Name
	if name == "" {
		name = fallback
	}
	return fixture.Team{
		ID:        team.ID,
		Name:      name,
		ShortName: firstNonEmpty(team.ShortName, team.TLA, team.Name, fallback),
	}
}

func normalizeStandingTables(tables []ExternalStandingTable) []leaguestanding.Standing {
	rows := make([]leaguestanding.Standing, 0)
	for _, table := range tables {
		if table.Type != standingsTypeTotal {
			continue
		}
		group := table.Group
		if group == "" {
			group = table.Stage
		}
		for _, row := range table.Rows {
			rows = append(rows, leaguestanding.Standing{
				Group:          group,
				Rank:           row.Position,
				Team:           firstNonEmpty(row.Team.ShortName, row.Team.TLA, row.Team.Name, "Team"),
				Played:         intValue(row.PlayedGames),
				Wins:           intValue(row.Won),
				Draws:          intValue(row.Draw),
				Losses:         intValue(row.Lost),
				GoalsFor:       intValue(row.GoalsFor),
				GoalsAgainst:   intValue(row.GoalsAgainst),
				GoalDifference: intValue(row.GoalDifference),
				Points:         intValue(row.Points),
			})
		}
	}
	leaguestanding.SortByRank(rows)
	return rows
}

func intValue(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
