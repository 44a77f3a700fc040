package jsonfile

import (
	"time"

	"github.com/riskibarqy/liveticker/internal/domain/competition"
	"github.com/riskibarqy/liveticker/internal/domain/fixture"
	"github.com/riskibarqy/liveticker/internal/domain/leaguestanding"
)

// GeneratedAtLayout matches the ISO-8601 form the front end already parses.
const GeneratedAtLayout = "2006-01-02T15:04:05.000Z"

type snapshotDocument struct {
	GeneratedAt *string             `json:"generatedAt"`
	Source      *string             `json:"source"`
	Competition competitionDocument `json:"competition"`
	Season      seasonDocument      `json:"season"`
	Matchdays   []matchdayDocument  `json:"matchdays"`
	Matches     *[]matchDocument    `json:"matches"`
	Standings   []standingDocument  `json:"standings"`
}

type competitionDocument struct {
	Code   string  `json:"code"`
	Label  string  `json:"label"`
	Name   *string `json:"name"`
	Emblem *string `json:"emblem"`
}

type seasonDocument struct {
	Year      int     `json:"year"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Matchday  *int    `json:"matchday"`
}

type matchdayDocument struct {
	Order       int      `json:"order"`
	Label       string   `json:"label"`
	PrimaryDate *string  `json:"primaryDate"`
	Dates       []string `json:"dates"`
	MatchIDs    []string `json:"matchIds"`
	StageOrder  *int     `json:"stageOrder,omitempty"`
}

type matchDocument struct {
	ID         string        `json:"id"`
	UTCDate    *string       `json:"utcDate"`
	ISODate    *string       `json:"isoDate"`
	Status     string        `json:"status"`
	Stage      *string       `json:"stage"`
	Group      *string       `json:"group"`
	Matchday   *int          `json:"matchday"`
	StageOrder *int          `json:"stageOrder"`
	HomeTeam   teamDocument  `json:"homeTeam"`
	AwayTeam   teamDocument  `json:"awayTeam"`
	Score      scoreDocument `json:"score"`
}

type teamDocument struct {
	ID        *int64 `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

type scoreDocument struct {
	FullTime  scoreLineDocument `json:"fullTime"`
	ExtraTime scoreLineDocument `json:"extraTime"`
	Penalties scoreLineDocument `json:"penalties"`
}

type scoreLineDocument struct {
	Home nullableInt `json:"home"`
	Away nullableInt `json:"away"`
}

type standingDocument struct {
	Group          *string `json:"group"`
	Rank           *int    `json:"rank"`
	TeamID         *string `json:"teamId,omitempty"`
	Team           string  `json:"team"`
	Played         int     `json:"played"`
	Wins           int     `json:"wins"`
	Draws          int     `json:"draws"`
	Losses         int     `json:"losses"`
	GoalsFor       int     `json:"goalsFor"`
	GoalsAgainst   int     `json:"goalsAgainst"`
	GoalDifference int     `json:"goalDifference"`
	Points         int     `json:"points"`
}

func (d snapshotDocument) toDomain() competition.Snapshot {
	out := competition.Snapshot{
		Source: stringValue(d.Source),
		Competition: competition.Competition{
			Code:   d.Competition.Code,
			Label:  d.Competition.Label,
			Name:   stringValue(d.Competition.Name),
			Emblem: stringValue(d.Competition.Emblem),
		},
		Season: competition.Season{
			Year:      d.Season.Year,
			StartDate: stringValue(d.Season.StartDate),
			EndDate:   stringValue(d.Season.EndDate),
			Matchday:  d.Season.Matchday,
		},
	}
	if d.GeneratedAt != nil {
		if parsed, err := time.Parse(time.RFC3339Nano, *d.GeneratedAt); err == nil {
			out.GeneratedAt = parsed.UTC()
		}
	}

	out.Matchdays = make([]competition.Matchday, 0, len(d.Matchdays))
	for _, row := range d.Matchdays {
		out.Matchdays = append(out.Matchdays, competition.Matchday{
			Order:       row.Order,
			Label:       row.Label,
			PrimaryDate: stringValue(row.PrimaryDate),
			Dates:       row.Dates,
			MatchIDs:    row.MatchIDs,
			StageOrder:  row.StageOrder,
		})
	}

	if d.Matches != nil {
		out.Fixtures = make([]*fixture.Fixture, 0, len(*d.Matches))
		for _, row := range *d.Matches {
			out.Fixtures = append(out.Fixtures, row.toDomain())
		}
	}

	out.Standings = make([]leaguestanding.Standing, 0, len(d.Standings))
	for _, row := range d.Standings {
		out.Standings = append(out.Standings, leaguestanding.Standing{
			Group:          stringValue(row.Group),
			Rank:           row.Rank,
			TeamID:         stringValue(row.TeamID),
			Team:           row.Team,
			Played:         row.Played,
			Wins:           row.Wins,
			Draws:          row.Draws,
			Losses:         row.Losses,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
		})
	}

	return out
}

func (d matchDocument) toDomain() *fixture.Fixture {
	return &fixture.Fixture{
		ID:         d.ID,
		UTCDate:    stringValue(d.UTCDate),
		ISODate:    stringValue(d.ISODate),
		Status:     d.Status,
		Stage:      stringValue(d.Stage),
		Group:      stringValue(d.Group),
		Matchday:   d.Matchday,
		StageOrder: d.StageOrder,
		HomeTeam:   fixture.Team{ID: d.HomeTeam.ID, Name: d.HomeTeam.Name, ShortName: d.HomeTeam.ShortName},
		AwayTeam:   fixture.Team{ID: d.AwayTeam.ID, Name: d.AwayTeam.Name, ShortName: d.AwayTeam.ShortName},
		Score: fixture.Score{
			FullTime:  fixture.ScoreLine{Home: d.Score.FullTime.Home.ptr(), Away: d.Score.FullTime.Away.ptr()},
			ExtraTime: fixture.ScoreLine{Home: d.Score.ExtraTime.Home.ptr(), Away: d.Score.ExtraTime.Away.ptr()},
			Penalties: fixture.ScoreLine{Home: d.Score.Penalties.Home.ptr(), Away: d.Score.Penalties.Away.ptr()},
		},
	}
}

func newSnapshotDocument(snapshot competition.Snapshot) snapshotDocument {
	out := snapshotDocument{
		Source: stringPtr(snapshot.Source),
		Competition: competitionDocument{
			Code:   snapshot.Competition.Code,
			Label:  snapshot.Competition.Label,
			Name:   stringPtr(snapshot.Competition.Name),
			Emblem: stringPtr(snapshot.Competition.Emblem),
		},
		Season: seasonDocument{
			Year:      snapshot.Season.Year,
			StartDate: stringPtr(snapshot.Season.StartDate),
			EndDate:   stringPtr(snapshot.Season.EndDate),
			Matchday:  snapshot.Season.Matchday,
		},
		Matchdays: make([]matchdayDocument, 0, len(snapshot.Matchdays)),
		Standings: make([]standingDocument, 0, len(snapshot.Standings)),
	}
	if !snapshot.GeneratedAt.IsZero() {
		out.GeneratedAt = stringPtr(snapshot.GeneratedAt.UTC().Format(GeneratedAtLayout))
	}

	for _, row := range snapshot.Matchdays {
		out.Matchdays = append(out.Matchdays, matchdayDocument{
			Order:       row.Order,
			Label:       row.Label,
			PrimaryDate: stringPtr(row.PrimaryDate),
			Dates:       nonNilStrings(row.Dates),
			MatchIDs:    nonNilStrings(row.MatchIDs),
			StageOrder:  row.StageOrder,
		})
	}

	matches := make([]matchDocument, 0, len(snapshot.Fixtures))
	for _, item := range snapshot.Fixtures {
		if item == nil {
			continue
		}
		matches = append(matches, newMatchDocument(item))
	}
	out.Matches = &matches

	for _, row := range snapshot.Standings {
		out.Standings = append(out.Standings, standingDocument{
			Group:          stringPtr(row.Group),
			Rank:           row.Rank,
			TeamID:         stringPtr(row.TeamID),
			Team:           row.Team,
			Played:         row.Played,
			Wins:           row.Wins,
			Draws:          row.Draws,
			Losses:         row.Losses,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
		})
	}

	return out
}

func newMatchDocument(item *fixture.Fixture) matchDocument {
	return matchDocument{
		ID:         item.ID,
		UTCDate:    stringPtr(item.UTCDate),
		ISODate:    stringPtr(item.ISODate),
		Status:     fixture.NormalizeStatus(item.Status),
		Stage:      stringPtr(item.Stage),
		Group:      stringPtr(item.Group),
		Matchday:   item.Matchday,
		StageOrder: item.StageOrder,
		HomeTeam:   teamDocument{ID: item.HomeTeam.ID, Name: item.HomeTeam.Name, ShortName: item.HomeTeam.ShortName},
		AwayTeam:   teamDocument{ID: item.AwayTeam.ID, Name: item.AwayTeam.Name, ShortName: item.AwayTeam.ShortName},
		Score: scoreDocument{
			FullTime:  scoreLineDocument{Home: newNullableInt(item.Score.FullTime.Home), Away: newNullableInt(item.Score.FullTime.Away)},
			ExtraTime: scoreLineDocument{Home: newNullableInt(item.Score.ExtraTime.Home), Away: newNullableInt(item.Score.ExtraTime.Away)},
			Penalties: scoreLineDocument{Home: newNullableInt(item.Score.Penalties.Home), Away: newNullableInt(item.Score.Penalties.Away)},
		},
	}
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
