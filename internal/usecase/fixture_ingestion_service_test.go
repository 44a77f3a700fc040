package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/liveticker/internal/domain/competition"
	"github.com/riskibarqy/liveticker/internal/domain/fixture"
	competitionmock "github.com/riskibarqy/liveticker/internal/mocks/domain/competition"
	"github.com/riskibarqy/liveticker/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixtureDataProviderStub struct {
	matches      ExternalMatchList
	matchesErr   error
	tables       []ExternalStandingTable
	standingsErr error
	seasons      chan int
}

func (s *fixtureDataProviderStub) FetchMatches(_ context.Context, _ string, season int) (ExternalMatchList, error) {
	if s.seasons != nil {
		s.seasons <- season
	}
	return s.matches, s.matchesErr
}

func (s *fixtureDataProviderStub) FetchStandings(_ context.Context, _ string, _ int) ([]ExternalStandingTable, error) {
	return s.tables, s.standingsErr
}

func int64Ref(v int64) *int64 {
	return &v
}

func sampleMatchList() ExternalMatchList {
	return ExternalMatchList{
		CompetitionName:   "UEFA Champions League",
		CompetitionEmblem: "https://crests.football-data.org/CL.png",
		SeasonStartDate:   "2025-09-16",
		SeasonEndDate:     "2026-05-30",
		Matches: []ExternalMatch{
			{
				ID:       "501",
				UTCDate:  "2025-09-16T19:00:00Z",
				Status:   "FINISHED",
				Stage:    "LEAGUE_STAGE",
				Matchday: intRef(1),
				HomeTeam: ExternalTeam{ID: int64Ref(5), Name: "FC Bayern München", ShortName: "Bayern"},
				AwayTeam: ExternalTeam{ID: int64Ref(65), Name: "Manchester City FC", TLA: "MCI"},
				FullTime: fixture.ScoreLine{Home: intRef(2), Away: intRef(2)},
			},
			{
				ID:       "502",
				UTCDate:  "2025-09-17T19:00:00Z",
				Stage:    "LEAGUE_STAGE",
				Matchday: intRef(1),
				HomeTeam: ExternalTeam{ID: int64Ref(86), Name: "Real Madrid CF", ShortName: "Real Madrid"},
			},
		},
	}
}

func TestFixtureIngestionService_IngestWithProviderStandings(t *testing.T) {
	t.Parallel()

	provider := &fixtureDataProviderStub{
		matches: sampleMatchList(),
		tables: []ExternalStandingTable{
			{Type: "HOME", Rows: []ExternalStandingRow{{Position: intRef(1), Team: ExternalTeam{Name: "Ignored"}}}},
			{Type: "TOTAL", Stage: "LEAGUE_STAGE", Rows: []ExternalStandingRow{
				{Position: intRef(2), Team: ExternalTeam{Name: "Manchester City FC", TLA: "MCI"}, Points: intRef(1), PlayedGames: intRef(1)},
				{Position: intRef(1), Team: ExternalTeam{Name: "FC Bayern München", ShortName: "Bayern"}, Points: intRef(1)},
			}},
		},
		seasons: make(chan int, 1),
	}

	var saved competition.Snapshot
	repo := competitionmock.NewRepository(t)
	repo.On("Save", mock.Anything, "data/cl.json", mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(2).(competition.Snapshot) }).
		Return(nil).
		Once()

	clock := clockwork.NewFakeClockAt(time.Date(2026, 2, 11, 8, 0, 0, 0, time.UTC))
	service := NewFixtureIngestionService(provider, repo, FixtureIngestionConfig{
		Outputs: map[string]string{"CL": "data/cl.json"},
	}, clock, logging.NewNop())

	result, err := service.Ingest(context.Background(), FixtureIngestionInput{Competition: "cl"})
	require.NoError(t, err)
	assert.Equal(t, "data/cl.json", result.Location)
	assert.Equal(t, 2025, <-provider.seasons)

	assert.Equal(t, FixtureDataSource, saved.Source)
	assert.Equal(t, "Champions League", saved.Competition.Label)
	assert.Equal(t, "UEFA Champions League", saved.Competition.Name)
	assert.Equal(t, 2025, saved.Season.Year)
	assert.Equal(t, "2025-09-16", saved.Season.StartDate)
	assert.Equal(t, clock.Now(), saved.GeneratedAt)

	require.Len(t, saved.Fixtures, 2)
	first := saved.Fixtures[0]
	assert.Equal(t, "2025-09-16", first.ISODate)
	assert.Equal(t, "MCI", first.AwayTeam.ShortName)
	require.NotNil(t, first.StageOrder)
	assert.Equal(t, 1, *first.StageOrder)

	second := saved.Fixtures[1]
	assert.Equal(t, fixture.StatusScheduled, second.Status)
	assert.Equal(t, "Gast", second.AwayTeam.Name)
	assert.Equal(t, "Gast", second.AwayTeam.ShortName)
	assert.Nil(t, second.Score.FullTime.Home)

	require.Len(t, saved.Matchdays, 1)
	assert.Equal(t, "Ligaphase · 1. Spieltag", saved.Matchdays[0].Label)
	assert.Equal(t, []string{"501", "502"}, saved.Matchdays[0].MatchIDs)

	require.Len(t, saved.Standings, 2)
	assert.Equal(t, "Bayern", saved.Standings[0].Team)
	assert.Equal(t, "LEAGUE_STAGE", saved.Standings[0].Group)
	assert.Equal(t, "MCI", saved.Standings[1].Team)
	assert.Equal(t, 0, saved.Standings[0].Played)
}

func TestFixtureIngestionService_DerivesStandingsOn404(t *testing.T) {
	t.Parallel()

	provider := &fixtureDataProviderStub{
		matches:      sampleMatchList(),
		standingsErr: fmt.Errorf("fetch standings: %w", ErrNotFound),
	}

	var saved competition.Snapshot
	repo := competitionmock.NewRepository(t)
	repo.On("Save", mock.Anything, "out/pl.json", mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(2).(competition.Snapshot) }).
		Return(nil).
		Once()

	service := NewFixtureIngestionService(provider, repo, FixtureIngestionConfig{},
		clockwork.NewFakeClockAt(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)), logging.NewNop())

	_, err := service.Ingest(context.Background(), FixtureIngestionInput{
		Competition: "PL",
		Season:      2024,
		Output:      "out/pl.json",
		Label:       "England",
	})
	require.NoError(t, err)

	assert.Equal(t, "England", saved.Competition.Label)
	assert.Equal(t, 2024, saved.Season.Year)
	require.Len(t, saved.Standings, 2)
	assert.Equal(t, "Bayern", saved.Standings[0].Team)
	assert.Equal(t, "5", saved.Standings[0].TeamID)
	assert.Equal(t, 1, saved.Standings[0].Points)
	assert.Equal(t, "MCI", saved.Standings[1].Team)
	require.Len(t, saved.Matchdays, 1)
	assert.Equal(t, "1. Spieltag", saved.Matchdays[0].Label)
	assert.Nil(t, saved.Fixtures[0].StageOrder)
}

func TestFixtureIngestionService_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	clock := clockwork.NewFakeClock()

	service := NewFixtureIngestionService(&fixtureDataProviderStub{matchesErr: boom}, competitionmock.NewRepository(t),
		FixtureIngestionConfig{Outputs: map[string]string{"CL": "cl.json"}}, clock, logging.NewNop())
	if _, err := service.Ingest(context.Background(), FixtureIngestionInput{}); !errors.Is(err, boom) {
		t.Fatalf("expected matches error, got %v", err)
	}

	service = NewFixtureIngestionService(&fixtureDataProviderStub{standingsErr: boom}, competitionmock.NewRepository(t),
		FixtureIngestionConfig{Outputs: map[string]string{"CL": "cl.json"}}, clock, logging.NewNop())
	if _, err := service.Ingest(context.Background(), FixtureIngestionInput{Competition: "CL"}); !errors.Is(err, boom) {
		t.Fatalf("expected standings error, got %v", err)
	}

	if _, err := service.Ingest(context.Background(), FixtureIngestionInput{Competition: "BL1"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected missing output to be invalid input, got %v", err)
	}
	if _, err := service.Ingest(context.Background(), FixtureIngestionInput{Competition: "CL", Season: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected negative season to be invalid input, got %v", err)
	}
}

func TestCurrentSeason(t *testing.T) {
	t.Parallel()

	cases := map[time.Time]int{
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC):   2025,
		time.Date(2025, 6, 30, 23, 0, 0, 0, time.UTC): 2024,
		time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC):  2025,
	}
	for now, want := range cases {
		if got := CurrentSeason(now); got != want {
			t.Fatalf("CurrentSeason(%s): got=%d want=%d", now, got, want)
		}
	}
}
