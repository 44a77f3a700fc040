package espn

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/liveticker/internal/domain/fixture"
)

const statePost = "post"

type scoreboardPayload struct {
	Events []eventPayload `json:"events"`
}

type eventPayload struct {
	Date         string               `json:"date"`
	Competitions []competitionPayload `json:"competitions"`
}

type competitionPayload struct {
	Date        string              `json:"date"`
	StartDate   string              `json:"startDate"`
	Status      statusPayload       `json:"status"`
	Competitors []competitorPayload `json:"competitors"`
}

type statusPayload struct {
	Type struct {
		State string `json:"state"`
	} `json:"type"`
}

type competitorPayload struct {
	HomeAway string       `json:"homeAway"`
	Score    scoreValue   `json:"score"`
	Team     *teamPayload `json:"team"`
}

type teamPayload struct {
	ID               idValue `json:"id"`
	Name             string  `json:"name"`
	ShortName        string  `json:"shortName"`
	ShortDisplayName string  `json:"shortDisplayName"`
	DisplayName      string  `json:"displayName"`
	Nickname         string  `json:"nickname"`
	TLA              string  `json:"tla"`
	Abbreviation     string  `json:"abbreviation"`
}

// scoreValue accepts a JSON number or a numeric string. Anything else decodes as absent.
type scoreValue struct {
	value *int
}

func (s *scoreValue) UnmarshalJSON(data []byte) error {
	s.value = nil
	text := strings.TrimSpace(string(data))
	if text == "" || text == "null" {
		return nil
	}
	if strings.HasPrefix(text, `"`) {
		unquoted, err := strconv.Unquote(text)
		if err != nil {
			return nil
		}
		text = strings.TrimSpace(unquoted)
	}
	if parsed, err := strconv.Atoi(text); err == nil {
		s.value = &parsed
		return nil
	}
	if parsed, err := strconv.ParseFloat(text, 64); err == nil && parsed == float64(int(parsed)) {
		v := int(parsed)
		s.value = &v
	}
	return nil
}

// idValue keeps team ids as text whether ESPN sends them quoted or not.
type idValue string

func (v *idValue) UnmarshalJSON(data []byte) error {
	text := string(bytes.TrimSpace(data))
	if text == "null" {
		*v = ""
		return nil
	}
	if unquoted, err := strconv.Unquote(text); err == nil {
		text = unquoted
	}
	*v = idValue(strings.TrimSpace(text))
	return nil
}

func decodeScoreboard(raw []byte) (scoreboardPayload, error) {
	var out scoreboardPayload
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return scoreboardPayload{}, fmt.Errorf("decode scoreboard payload: %w", err)
	}
	return out, nil
}

// completedResults keeps finished matches only. Result dates may be empty when the
// payload carries none; callers fall back to the date they asked for.
func (p scoreboardPayload) completedResults() []fixture.ExternalResult {
	out := make([]fixture.ExternalResult, 0, len(p.Events))
	for _, event := range p.Events {
		if len(event.Competitions) == 0 {
			continue
		}
		competition := event.Competitions[0]
		if competition.Status.Type.State != statePost {
			continue
		}

		home, away, ok := competition.sides()
		if !ok {
			continue
		}

		rawDate := firstNonEmpty(competition.Date, competition.StartDate, event.Date)
		date, ok := fixture.NormalizeDate(rawDate)
		if !ok {
			date = ""
		}

		homeNames := home.candidates()
		awayNames := away.candidates()
		out = append(out, fixture.ExternalResult{
			Date:        date,
			HomeNames:   homeNames,
			AwayNames:   awayNames,
			DisplayHome: displayName(homeNames, home.Team, "Heim"),
			DisplayAway: displayName(awayNames, away.Team, "Gast"),
			HomeScore:   home.Score.value,
			AwayScore:   away.Score.value,
		})
	}
	return out
}

func (c competitionPayload) sides() (competitorPayload, competitorPayload, bool) {
	var home, away *competitorPayload
	for i := range c.Competitors {
		entry := &c.Competitors[i]
		switch {
		case home == nil && entry.HomeAway == "home":
			home = entry
		case away == nil && entry.HomeAway == "away":
			away = entry
		}
	}
	if home == nil && len(c.Competitors) > 0 {
		home = &c.Competitors[0]
	}
	if away == nil && len(c.Competitors) > 1 {
		away = &c.Competitors[1]
	}
	if home == nil || away == nil {
		return competitorPayload{}, competitorPayload{}, false
	}
	return *home, *away, true
}

func (c competitorPayload) candidates() []string {
	if c.Team == nil {
		return nil
	}
	names := fixture.NameVariants(fixture.TeamNames{
		Name:             c.Team.Name,
		ShortName:        c.Team.ShortName,
		ShortDisplayName: c.Team.ShortDisplayName,
		DisplayName:      c.Team.DisplayName,
		Nickname:         c.Team.Nickname,
		TLA:              c.Team.TLA,
		Abbreviation:     c.Team.Abbreviation,
		ID:               string(c.Team.ID),
	})
	if len(names) > 0 {
		return names
	}
	if fallback := firstNonEmpty(c.Team.ShortDisplayName, c.Team.DisplayName, c.Team.Name); fallback != "" {
		return []string{fallback}
	}
	return nil
}

func displayName(candidates []string, team *teamPayload, fallback string) string {
	if len(candidates) > 0 {
		return candidates[0]
	}
	if team != nil {
		if name := firstNonEmpty(team.DisplayName, team.ShortDisplayName); name != "" {
			return name
		}
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
