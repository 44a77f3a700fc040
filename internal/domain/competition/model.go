package competition

import (
	"time"

	"github.com/riskibarqy/liveticker/internal/domain/fixture"
	"github.com/riskibarqy/liveticker/internal/domain/leaguestanding"
)

const (
	CodeChampionsLeague = "CL"
	CodePremierLeague   = "PL"
	CodeLaLiga          = "PD"
)

type Competition struct {
	Code   string
	Label  string
	Name   string
	Emblem string
}

type Season struct {
	Year      int
	StartDate string
	EndDate   string
	Matchday  *int
}

// Matchday groups fixtures for the round picker of the front end.
type Matchday struct {
	Order       int
	Label       string
	PrimaryDate string
	Dates       []string
	MatchIDs    []string
	StageOrder  *int
}

// Snapshot is the full competition document the front end reads.
type Snapshot struct {
	GeneratedAt time.Time
	Source      string
	Competition Competition
	Season      Season
	Matchdays   []Matchday
	Fixtures    []*fixture.Fixture
	Standings   []leaguestanding.Standing
}

// DefaultLabel returns the display label used when none is configured.
func DefaultLabel(code string) string {
	switch code {
	case CodeChampionsLeague:
		return "Champions League"
	case CodePremierLeague:
		return "Premier League"
	case CodeLaLiga:
		return "La Liga"
	default:
		return code
	}
}
