package competition

import (
	"testing"

	"github.com/riskibarqy/liveticker/internal/domain/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchday(n int) *int {
	return &n
}

func TestBuildMatchdays_DefaultGroupsByMatchday(t *testing.T) {
	t.Parallel()

	fixtures := []*fixture.Fixture{
		{ID: "3", ISODate: "2025-08-23", Matchday: matchday(2)},
		{ID: "1", UTCDate: "2025-08-16T14:00:00Z", Matchday: matchday(1)},
		{ID: "2", ISODate: "2025-08-15", Matchday: matchday(1)},
		{ID: "4", ISODate: "2025-08-24"},
	}

	got := BuildMatchdays(CodePremierLeague, fixtures)
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].Order)
	assert.Equal(t, "1. Spieltag", got[0].Label)
	assert.Equal(t, "2025-08-15", got[0].PrimaryDate)
	assert.Equal(t, []string{"2025-08-15", "2025-08-16"}, got[0].Dates)
	assert.Equal(t, []string{"1", "2"}, got[0].MatchIDs)
	assert.Nil(t, got[0].StageOrder)

	assert.Equal(t, "2. Spieltag", got[1].Label)
	assert.Equal(t, []string{"3"}, got[1].MatchIDs)
}

func TestBuildMatchdays_ChampionsLeagueStages(t *testing.T) {
	t.Parallel()

	fixtures := []*fixture.Fixture{
		{ID: "10", ISODate: "2026-03-10", Stage: "LAST_16"},
		{ID: "1", ISODate: "2025-09-16", Stage: "LEAGUE_STAGE", Matchday: matchday(1)},
		{ID: "11", ISODate: "2026-02-17", Stage: "PLAYOFFS"},
		{ID: "2", ISODate: "2025-09-30", Stage: "league_stage", Matchday: matchday(2)},
		{ID: "12", ISODate: "2026-05-30", Stage: "FINAL"},
		{ID: "13", ISODate: "2026-03-11", Stage: "ROUND_OF_16"},
	}

	got := BuildMatchdays(CodeChampionsLeague, fixtures)
	labels := make([]string, 0, len(got))
	for _, row := range got {
		labels = append(labels, row.Label)
	}
	assert.Equal(t, []string{
		"Ligaphase · 1. Spieltag",
		"Ligaphase · 2. Spieltag",
		"Play-offs",
		"Achtelfinale",
		"Finale",
	}, labels)

	for i, row := range got {
		assert.Equal(t, i+1, row.Order)
		require.NotNil(t, row.StageOrder)
	}
	assert.Equal(t, []string{"10", "13"}, got[3].MatchIDs)
	assert.Equal(t, "2026-03-10", got[3].PrimaryDate)
	assert.Equal(t, 3, *got[3].StageOrder)
}

func TestBuildMatchdays_ChampionsLeagueWithoutStagesFallsBack(t *testing.T) {
	t.Parallel()

	fixtures := []*fixture.Fixture{
		{ID: "1", ISODate: "2025-09-16", Matchday: matchday(1)},
	}

	got := BuildMatchdays(CodeChampionsLeague, fixtures)
	require.Len(t, got, 1)
	assert.Equal(t, "1. Spieltag", got[0].Label)
	assert.Nil(t, got[0].StageOrder)
}

func TestStageOrder(t *testing.T) {
	t.Parallel()

	if got := StageOrder(CodeChampionsLeague, "quarter_finals"); got == nil || *got != 4 {
		t.Fatalf("expected quarter finals order 4, got=%v", got)
	}
	if got := StageOrder(CodePremierLeague, "FINAL"); got != nil {
		t.Fatalf("expected no stage order outside the Champions League, got=%v", *got)
	}
	if got := StageOrder(CodeChampionsLeague, "GROUP_STAGE"); got != nil {
		t.Fatalf("expected unknown stage to have no order, got=%v", *got)
	}
}
