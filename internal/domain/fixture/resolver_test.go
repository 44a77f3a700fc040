package fixture

import (
	"testing"

	"github.com/riskibarqy/liveticker/internal/platform/teamname"
)

func newTestResolver() *Resolver {
	return NewResolver(teamname.NewNormalizer(teamname.DefaultTable()))
}

func TestBuildIdentity(t *testing.T) {
	t.Parallel()

	r := newTestResolver()

	key, ok := r.BuildIdentity("FC Bayern München", "Real Madrid CF", "2024-03-05")
	if !ok {
		t.Fatalf("expected identity to be built")
	}
	if key != "2024-03-05|bayernmunich|realmadrid" {
		t.Fatalf("unexpected identity: %q", key)
	}

	key, ok = r.BuildIdentity("Bayern Munich", "Real Madrid", "2024-03-05T20:00Z")
	if !ok || key != "2024-03-05|bayernmunich|realmadrid" {
		t.Fatalf("expected timestamp to reduce to utc date, got=%q ok=%v", key, ok)
	}

	key, ok = r.BuildIdentity("Bayern", "Real", "2024-03-05T23:30:00-02:00")
	if !ok || key != "2024-03-06|bayern|real" {
		t.Fatalf("expected offset timestamp to shift to utc date, got=%q ok=%v", key, ok)
	}

	if _, ok := r.BuildIdentity("", "Real Madrid", "2024-03-05"); ok {
		t.Fatalf("expected empty home name to fail")
	}
	if _, ok := r.BuildIdentity("Bayern", "!!!", "2024-03-05"); ok {
		t.Fatalf("expected punctuation-only away name to fail")
	}
	if _, ok := r.BuildIdentity("Bayern", "Real", "not a date"); ok {
		t.Fatalf("expected unparseable date to fail")
	}
	if _, ok := r.BuildIdentity("Bayern", "Real", ""); ok {
		t.Fatalf("expected empty date to fail")
	}
}

func TestResolve_MatchesAcrossSpellings(t *testing.T) {
	t.Parallel()

	r := newTestResolver()
	bayernID := int64(5)
	stored := &Fixture{
		ID:       "1",
		ISODate:  "2024-03-05",
		Status:   StatusScheduled,
		HomeTeam: Team{ID: &bayernID, Name: "FC Bayern München", ShortName: "Bayern"},
		AwayTeam: Team{Name: "Real Madrid CF", ShortName: "Real Madrid"},
	}
	lookup := r.BuildLookup([]*Fixture{stored})

	home, away := 2, 1
	result := ExternalResult{
		Date:      "2024-03-05",
		HomeNames: NameVariants(TeamNames{DisplayName: "Bayern Munich"}),
		AwayNames: NameVariants(TeamNames{DisplayName: "Real Madrid"}),
		HomeScore: &home,
		AwayScore: &away,
	}

	matches, ok := r.Resolve(result, lookup)
	if !ok {
		t.Fatalf("expected result to resolve")
	}
	if len(matches) != 1 || matches[0] != stored {
		t.Fatalf("expected stored fixture, got=%v", matches)
	}

	matches[0].ApplyResult(home, away)
	if stored.Status != StatusFinished {
		t.Fatalf("expected FINISHED, got=%s", stored.Status)
	}
	if *stored.Score.FullTime.Home != 2 || *stored.Score.FullTime.Away != 1 {
		t.Fatalf("unexpected score %d:%d", *stored.Score.FullTime.Home, *stored.Score.FullTime.Away)
	}
}

func TestResolve_NoFuzzyDates(t *testing.T) {
	t.Parallel()

	r := newTestResolver()
	lookup := r.BuildLookup([]*Fixture{{
		ID:       "1",
		UTCDate:  "2024-03-05T20:00:00Z",
		HomeTeam: Team{Name: "FC Bayern München"},
		AwayTeam: Team{Name: "Real Madrid CF"},
	}})

	result := ExternalResult{
		Date:      "2024-03-06",
		HomeNames: []string{"Bayern Munich"},
		AwayNames: []string{"Real Madrid"},
	}
	if matches, ok := r.Resolve(result, lookup); ok {
		t.Fatalf("expected no match for next day, got=%v", matches)
	}
}

func TestResolve_NoHomeAwaySwap(t *testing.T) {
	t.Parallel()

	r := newTestResolver()
	lookup := r.BuildLookup([]*Fixture{{
		ID:       "1",
		ISODate:  "2024-03-05",
		HomeTeam: Team{Name: "Arsenal"},
		AwayTeam: Team{Name: "Chelsea"},
	}})

	result := ExternalResult{Date: "2024-03-05", HomeNames: []string{"Chelsea"}, AwayNames: []string{"Arsenal"}}
	if _, ok := r.Resolve(result, lookup); ok {
		t.Fatalf("expected swapped sides not to match")
	}
}

func TestBuildLookup_AmbiguousBucketHoldsAll(t *testing.T) {
	t.Parallel()

	r := newTestResolver()
	first := &Fixture{ID: "1", ISODate: "2024-03-05", HomeTeam: Team{Name: "Sporting CP"}, AwayTeam: Team{Name: "Benfica"}}
	second := &Fixture{ID: "2", ISODate: "2024-03-05", HomeTeam: Team{Name: "Sporting-CP"}, AwayTeam: Team{Name: "SL Benfica"}}
	lookup := r.BuildLookup([]*Fixture{first, second})

	bucket := lookup["2024-03-05|sportingcp|benfica"]
	if len(bucket) != 2 {
		t.Fatalf("expected both fixtures in bucket, got=%d", len(bucket))
	}

	matches, ok := r.Resolve(ExternalResult{Date: "2024-03-05", HomeNames: []string{"Sporting CP"}, AwayNames: []string{"Benfica"}}, lookup)
	if !ok || len(matches) != 2 {
		t.Fatalf("expected ambiguous resolution with two fixtures, got=%d ok=%v", len(matches), ok)
	}
}

func TestBuildLookup_DeduplicatesFixturePerBucket(t *testing.T) {
	t.Parallel()

	r := newTestResolver()
	// "FC Porto" and "Porto" normalize to the same key.
	item := &Fixture{ID: "1", ISODate: "2024-03-05", HomeTeam: Team{Name: "FC Porto", ShortName: "Porto"}, AwayTeam: Team{Name: "Arsenal FC", ShortName: "Arsenal"}}
	lookup := r.BuildLookup([]*Fixture{item})

	bucket := lookup["2024-03-05|porto|arsenal"]
	if len(bucket) != 1 {
		t.Fatalf("expected fixture once in bucket, got=%d", len(bucket))
	}
}

func TestBuildLookup_SkipsUndatedFixtures(t *testing.T) {
	t.Parallel()

	r := newTestResolver()
	lookup := r.BuildLookup([]*Fixture{{ID: "1", HomeTeam: Team{Name: "Arsenal"}, AwayTeam: Team{Name: "Chelsea"}}, nil})
	if len(lookup) != 0 {
		t.Fatalf("expected empty lookup, got=%d keys", len(lookup))
	}
}

func TestResolve_FirstPopulatedBucketWins(t *testing.T) {
	t.Parallel()

	r := newTestResolver()
	byName := &Fixture{ID: "1", ISODate: "2024-03-05", HomeTeam: Team{Name: "Paris Saint-Germain"}, AwayTeam: Team{Name: "Arsenal"}}
	byShort := &Fixture{ID: "2", ISODate: "2024-03-05", HomeTeam: Team{Name: "PSG"}, AwayTeam: Team{Name: "Arsenal"}}
	lookup := r.BuildLookup([]*Fixture{byName, byShort})

	matches, ok := r.Resolve(ExternalResult{
		Date:      "2024-03-05",
		HomeNames: []string{"PSG", "Paris Saint-Germain"},
		AwayNames: []string{"Arsenal"},
	}, lookup)
	if !ok || len(matches) != 1 || matches[0].ID != "2" {
		t.Fatalf("expected first variant bucket to win, got=%v ok=%v", matches, ok)
	}
}
