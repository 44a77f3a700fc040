package leaguestanding

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/liveticker/internal/domain/fixture"
)

// DeriveFromFixtures builds a table from full-time scores when the provider has none.
// Wins count 3 points and draws 1; teams without a played match are left out.
func DeriveFromFixtures(fixtures []*fixture.Fixture) []Standing {
	rows := make(map[string]*Standing)
	order := make([]string, 0)

	ensure := func(team fixture.Team) *Standing {
		teamID := ""
		if team.ID != nil {
			teamID = strconv.FormatInt(*team.ID, 10)
		}
		key := teamID
		if key == "" {
			key = strings.TrimSpace(team.ShortName)
		}
		if key == "" {
			key = strings.TrimSpace(team.Name)
		}
		if key == "" {
			return nil
		}
		if row, ok := rows[key]; ok {
			return row
		}
		name := team.ShortName
		if name == "" {
			name = team.Name
		}
		if name == "" {
			name = "Team"
		}
		row := &Standing{TeamID: teamID, Team: name}
		rows[key] = row
		order = append(order, key)
		return row
	}

	for _, item := range fixtures {
		if item == nil || item.Score.FullTime.Home == nil || item.Score.FullTime.Away == nil {
			continue
		}
		homeScore, awayScore := *item.Score.FullTime.Home, *item.Score.FullTime.Away

		home := ensure(item.HomeTeam)
		away := ensure(item.AwayTeam)
		if home == nil || away == nil {
			continue
		}

		home.Played++
		away.Played++
		home.GoalsFor += homeScore
		home.GoalsAgainst += awayScore
		away.GoalsFor += awayScore
		away.GoalsAgainst += homeScore

		switch {
		case homeScore > awayScore:
			home.Wins++
			home.Points += 3
			away.Losses++
		case homeScore < awayScore:
			away.Wins++
			away.Points += 3
			home.Losses++
		default:
			home.Draws++
			away.Draws++
			home.Points++
			away.Points++
		}
	}

	out := make([]Standing, 0, len(order))
	for _, key := range order {
		row := rows[key]
		if row.Played == 0 {
			continue
		}
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		out = append(out, *row)
	}
	SortByPoints(out)
	return out
}
