package leaguestanding

import (
	"sort"
	"strings"
)

// Standing represents a league table row for one team.
type Standing struct {
	Group          string
	Rank           *int
	TeamID         string
	Team           string
	Played         int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

// SortByRank orders rows by rank and falls back to the team name.
func SortByRank(rows []Standing) {
	sort.SliceStable(rows, func(i, j int) bool {
		left, right := rows[i], rows[j]
		if left.Rank != nil && right.Rank != nil && *left.Rank != *right.Rank {
			return *left.Rank < *right.Rank
		}
		return strings.Compare(left.Team, right.Team) < 0
	})
}

// SortByPoints orders a computed table and assigns ranks from 1.
func SortByPoints(rows []Standing) {
	sort.SliceStable(rows, func(i, j int) bool {
		left, right := rows[i], rows[j]
		if left.Points != right.Points {
			return left.Points > right.Points
		}
		if left.GoalDifference != right.GoalDifference {
			return left.GoalDifference > right.GoalDifference
		}
		if left.GoalsFor != right.GoalsFor {
			return left.GoalsFor > right.GoalsFor
		}
		return strings.Compare(left.Team, right.Team) < 0
	})
	for i := range rows {
		rank := i + 1
		rows[i].Rank = &rank
	}
}
