package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/liveticker/internal/domain/fixture"
	"github.com/riskibarqy/liveticker/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storedDocument = `{
  "generatedAt": "2024-03-01T10:00:00.000Z",
  "source": "football-data.org",
  "competition": {"code": "CL", "label": "Champions League", "name": "UEFA Champions League", "emblem": null},
  "season": {"year": 2023, "startDate": "2023-09-19", "endDate": "2024-06-01", "matchday": null},
  "matchdays": [{"order": 1, "label": "Achtelfinale", "primaryDate": "2024-03-05", "dates": ["2024-03-05"], "matchIds": ["1"], "stageOrder": 3}],
  "matches": [
    {
      "id": "1",
      "utcDate": "2024-03-05T20:00:00Z",
      "isoDate": "2024-03-05",
      "status": "FINISHED",
      "stage": "LAST_16",
      "group": null,
      "matchday": null,
      "stageOrder": 3,
      "homeTeam": {"id": 5, "name": "FC Bayern München", "shortName": "Bayern"},
      "awayTeam": {"id": 86, "name": "Real Madrid CF", "shortName": "Real Madrid"},
      "score": {"fullTime": {"home": "2", "away": 1}, "extraTime": {"home": null, "away": null}, "penalties": {"home": null, "away": "x"}}
    }
  ],
  "standings": []
}`

func TestCompetitionRepository_LoadDecodesLooseScores(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cl.json"), []byte(storedDocument), 0o644))

	repo := NewCompetitionRepository(dir)
	snapshot, err := repo.Load(context.Background(), "cl.json")
	require.NoError(t, err)

	require.Len(t, snapshot.Fixtures, 1)
	item := snapshot.Fixtures[0]
	require.NotNil(t, item.Score.FullTime.Home)
	require.NotNil(t, item.Score.FullTime.Away)
	assert.Equal(t, 2, *item.Score.FullTime.Home)
	assert.Equal(t, 1, *item.Score.FullTime.Away)
	assert.Nil(t, item.Score.Penalties.Away)
	assert.Equal(t, "FC Bayern München", item.HomeTeam.Name)
	assert.Equal(t, int64(86), *item.AwayTeam.ID)
	assert.False(t, item.NeedsUpdate())
	assert.Equal(t, "UEFA Champions League", snapshot.Competition.Name)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), snapshot.GeneratedAt)
	require.Len(t, snapshot.Matchdays, 1)
	assert.Equal(t, 3, *snapshot.Matchdays[0].StageOrder)
}

func TestCompetitionRepository_LoadRejectsMissingMatches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"generatedAt": null}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "garbage.json"), []byte(`not json`), 0o644))

	repo := NewCompetitionRepository(dir)
	for _, name := range []string{"broken.json", "garbage.json"} {
		_, err := repo.Load(context.Background(), name)
		if !errors.Is(err, usecase.ErrInvalidDocument) {
			t.Fatalf("%s: expected ErrInvalidDocument, got %v", name, err)
		}
	}

	_, err := repo.Load(context.Background(), "missing.json")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestCompetitionRepository_SaveRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo := NewCompetitionRepository(dir)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cl.json"), []byte(storedDocument), 0o644))
	snapshot, err := repo.Load(ctx, "cl.json")
	require.NoError(t, err)

	snapshot.GeneratedAt = time.Date(2024, 3, 6, 7, 8, 9, 0, time.UTC)
	snapshot.Fixtures = append(snapshot.Fixtures, &fixture.Fixture{
		ID:       "2",
		ISODate:  "2024-03-06",
		HomeTeam: fixture.Team{Name: "Arsenal FC", ShortName: "Arsenal"},
		AwayTeam: fixture.Team{Name: "FC Porto", ShortName: "Porto"},
	})

	target := filepath.Join(dir, "nested", "out.json")
	require.NoError(t, repo.Save(ctx, target, snapshot))

	raw, err := os.ReadFile(target)
	require.NoError(t, err)
	text := string(raw)
	assert.True(t, strings.HasSuffix(text, "}\n"), "expected trailing newline")
	assert.Contains(t, text, "\n  \"generatedAt\": \"2024-03-06T07:08:09.000Z\"")
	assert.Contains(t, text, "\"name\": \"FC Bayern München\"")
	assert.Contains(t, text, "\"status\": \"SCHEDULED\"")

	reloaded, err := repo.Load(ctx, target)
	require.NoError(t, err)
	require.Len(t, reloaded.Fixtures, 2)
	assert.Equal(t, 2, *reloaded.Fixtures[0].Score.FullTime.Home)
	assert.Nil(t, reloaded.Fixtures[1].Score.FullTime.Home)
	assert.Equal(t, snapshot.GeneratedAt, reloaded.GeneratedAt)
}

func TestLeadingInt(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		want int
		ok   bool
	}{
		"3":    {want: 3, ok: true},
		" 12 ": {want: 12, ok: true},
		"2abc": {want: 2, ok: true},
		"-1":   {want: -1, ok: true},
		"abc":  {ok: false},
		"":     {ok: false},
	}
	for input, tc := range cases {
		got, ok := leadingInt(input)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("leadingInt(%q): expected %d/%v, got=%d/%v", input, tc.want, tc.ok, got, ok)
		}
	}
}

const scriptDocument = `{
  "generatedAt": "2024-03-01T10:00:00.000Z",
  "source": "football-data.org",
  "season": {"year": 2023},
  "matches": [
    {
      "id": "1",
      "isoDate": "2024-03-05",
      "status": "TIMED",
      "homeTeam": {"id": 5, "name": "FC Bayern München", "shortName": "Bayern"},
      "awayTeam": {"id": 86, "name": "Real Madrid CF", "shortName": "Real Madrid"},
      "score": {"fullTime": {"home": null, "away": null}, "halfTime": {"home": 1, "away": 0}},
      "venue": "Allianz Arena"
    },
    {
      "id": 2,
      "isoDate": "2024-03-06",
      "status": "SCHEDULED",
      "homeTeam": {"name": "Arsenal FC"},
      "awayTeam": {"name": "FC Porto"}
    }
  ],
  "standings": [
    {"group": null, "rank": 1, "key": "bayern", "teamId": null, "team": "Bayern", "played": null, "wins": null, "points": null}
  ],
  "notes": ["kept"]
}`

func TestCompetitionRepository_SaveResultsPatchesOnlyResults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cl.json")
	require.NoError(t, os.WriteFile(path, []byte(scriptDocument), 0o644))

	repo := NewCompetitionRepository(dir)
	ctx := context.Background()

	bayern := &fixture.Fixture{ID: "1"}
	bayern.ApplyResult(2, 1)
	arsenal := &fixture.Fixture{ID: "2"}
	arsenal.ApplyResult(0, 0)
	generatedAt := time.Date(2024, 3, 6, 7, 8, 9, 0, time.UTC)

	require.NoError(t, repo.SaveResults(ctx, "cl.json", generatedAt, []*fixture.Fixture{bayern, arsenal}))

	var before, after map[string]any
	require.NoError(t, sonic.Unmarshal([]byte(scriptDocument), &before))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, sonic.Unmarshal(raw, &after))
	assert.True(t, strings.HasSuffix(string(raw), "}\n"), "expected trailing newline")

	before["generatedAt"] = "2024-03-06T07:08:09.000Z"
	matches := before["matches"].([]any)
	first := matches[0].(map[string]any)
	first["status"] = "FINISHED"
	first["score"].(map[string]any)["fullTime"] = map[string]any{"home": float64(2), "away": float64(1)}
	second := matches[1].(map[string]any)
	second["status"] = "FINISHED"
	second["score"] = map[string]any{"fullTime": map[string]any{"home": float64(0), "away": float64(0)}}

	assert.Equal(t, before, after)
	_, hasCompetition := after["competition"]
	assert.False(t, hasCompetition)
}

func TestCompetitionRepository_SaveResultsRejectsDocumentWithoutMatches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"standings": []}`), 0o644))

	err := NewCompetitionRepository(dir).SaveResults(context.Background(), "broken.json", time.Now(), nil)
	if !errors.Is(err, usecase.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}
