package footballdata

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/liveticker/internal/domain/fixture"
	"github.com/riskibarqy/liveticker/internal/usecase"
)

type matchesEnvelope struct {
	Filters struct {
		Matchday number `json:"matchday"`
	} `json:"filters"`
	Competition struct {
		Name          *string `json:"name"`
		Emblem        *string `json:"emblem"`
		CurrentSeason *struct {
			StartDate *string `json:"startDate"`
			EndDate   *string `json:"endDate"`
		} `json:"currentSeason"`
	} `json:"competition"`
	Matches []matchItem `json:"matches"`
}

type matchItem struct {
	ID       number    `json:"id"`
	UTCDate  *string   `json:"utcDate"`
	Status   *string   `json:"status"`
	Stage    *string   `json:"stage"`
	Group    *string   `json:"group"`
	Matchday number    `json:"matchday"`
	HomeTeam *teamItem `json:"homeTeam"`
	AwayTeam *teamItem `json:"awayTeam"`
	Score    struct {
		FullTime  scoreLineItem `json:"fullTime"`
		ExtraTime scoreLineItem `json:"extraTime"`
		Penalties scoreLineItem `json:"penalties"`
	} `json:"score"`
}

type teamItem struct {
	ID        number  `json:"id"`
	Name      *string `json:"name"`
	ShortName *string `json:"shortName"`
	TLA       *string `json:"tla"`
}

type scoreLineItem struct {
	Home number `json:"home"`
	Away number `json:"away"`
}

type standingsEnvelope struct {
	Standings []standingTableItem `json:"standings"`
}

type standingTableItem struct {
	Type  *string            `json:"type"`
	Stage *string            `json:"stage"`
	Group *string            `json:"group"`
	Table *[]standingRowItem `json:"table"`
}

type standingRowItem struct {
	Position       number    `json:"position"`
	Team           *teamItem `json:"team"`
	PlayedGames    number    `json:"playedGames"`
	Won            number    `json:"won"`
	Draw           number    `json:"draw"`
	Lost           number    `json:"lost"`
	Points         number    `json:"points"`
	GoalsFor       number    `json:"goalsFor"`
	GoalsAgainst   number    `json:"goalsAgainst"`
	GoalDifference number    `json:"goalDifference"`
}

// number holds a finite JSON number. Strings, booleans and null decode as absent.
type number struct {
	value *float64
}

func (n *number) UnmarshalJSON(data []byte) error {
	n.value = nil
	text := strings.TrimSpace(string(data))
	if text == "" || text == "null" || strings.HasPrefix(text, `"`) {
		return nil
	}
	parsed, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(parsed, 0) || math.IsNaN(parsed) {
		return nil
	}
	n.value = &parsed
	return nil
}

func (n number) intPtr() *int {
	if n.value == nil {
		return nil
	}
	v := int(*n.value)
	return &v
}

func (n number) int64Ptr() *int64 {
	if n.value == nil {
		return nil
	}
	v := int64(*n.value)
	return &v
}

func (n number) text() string {
	if n.value == nil {
		return ""
	}
	return strconv.FormatFloat(*n.value, 'f', -1, 64)
}

func decodePayload(raw []byte, target any) error {
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (e matchesEnvelope) toExternal() usecase.ExternalMatchList {
	out := usecase.ExternalMatchList{
		CompetitionName:   deref(e.Competition.Name),
		CompetitionEmblem: deref(e.Competition.Emblem),
		Matchday:          e.Filters.Matchday.intPtr(),
		Matches:           make([]usecase.ExternalMatch, 0, len(e.Matches)),
	}
	if season := e.Competition.CurrentSeason; season != nil {
		out.SeasonStartDate = deref(season.StartDate)
		out.SeasonEndDate = deref(season.EndDate)
	}

	for _, item := range e.Matches {
		out.Matches = append(out.Matches, usecase.ExternalMatch{
			ID:        item.ID.text(),
			UTCDate:   deref(item.UTCDate),
			Status:    deref(item.Status),
			Stage:     deref(item.Stage),
			Group:     deref(item.Group),
			Matchday:  item.Matchday.intPtr(),
			HomeTeam:  item.HomeTeam.toExternal(),
			AwayTeam:  item.AwayTeam.toExternal(),
			FullTime:  item.Score.FullTime.toDomain(),
			ExtraTime: item.Score.ExtraTime.toDomain(),
			Penalties: item.Score.Penalties.toDomain(),
		})
	}
	return out
}

func (e standingsEnvelope) toExternal() []usecase.ExternalStandingTable {
	out := make([]usecase.ExternalStandingTable, 0, len(e.Standings))
	for _, table := range e.Standings {
		if table.Table == nil {
			continue
		}
		rows := make([]usecase.ExternalStandingRow, 0, len(*table.Table))
		for _, row := range *table.Table {
			rows = append(rows, usecase.ExternalStandingRow{
				Position:       row.Position.intPtr(),
				Team:           row.Team.toExternal(),
				PlayedGames:    row.PlayedGames.intPtr(),
				Won:            row.Won.intPtr(),
				Draw:           row.Draw.intPtr(),
				Lost:           row.Lost.intPtr(),
				Points:         row.Points.intPtr(),
				GoalsFor:       row.GoalsFor.intPtr(),
				GoalsAgainst:   row.GoalsAgainst.intPtr(),
				GoalDifference: row.GoalDifference.intPtr(),
			})
		}
		out = append(out, usecase.ExternalStandingTable{
			Type:  deref(table.Type),
			Stage: deref(table.Stage),
			Group: deref(table.Group),
			Rows:  rows,
		})
	}
	return out
}

func (t *teamItem) toExternal() usecase.ExternalTeam {
	if t == nil {
		return usecase.ExternalTeam{}
	}
	return usecase.ExternalTeam{
		ID:        t.ID.int64Ptr(),
		Name:      deref(t.Name),
		ShortName: deref(t.ShortName),
		TLA:       deref(t.TLA),
	}
}

func (s scoreLineItem) toDomain() fixture.ScoreLine {
	return fixture.ScoreLine{Home: s.Home.intPtr(), Away: s.Away.intPtr()}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
