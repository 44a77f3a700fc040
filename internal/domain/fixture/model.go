package fixture

import (
	"strconv"
	"strings"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusTimed     = "TIMED"
	StatusInPlay    = "IN_PLAY"
	StatusPaused    = "PAUSED"
	StatusFinished  = "FINISHED"
	StatusAwarded   = "AWARDED"
	StatusPostponed = "POSTPONED"
	StatusSuspended = "SUSPENDED"
	StatusCancelled = "CANCELLED"
)

// Team is one side of a fixture as stored in the competition document.
type Team struct {
	ID        *int64
	Name      string
	ShortName string
}

// ScoreLine is a home/away pair. Nil means unknown.
type ScoreLine struct {
	Home *int
	Away *int
}

type Score struct {
	FullTime  ScoreLine
	ExtraTime ScoreLine
	Penalties ScoreLine
}

// Fixture represents one scheduled or completed match.
type Fixture struct {
	ID         string
	UTCDate    string
	ISODate    string
	Status     string
	Stage      string
	Group      string
	Matchday   *int
	StageOrder *int
	HomeTeam   Team
	AwayTeam   Team
	Score      Score
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

// IsSettledStatus reports whether a result with this status is final.
func IsSettledStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, StatusAwarded:
		return true
	default:
		return false
	}
}

func IsFinishedStatus(status string) bool {
	return NormalizeStatus(status) == StatusFinished
}

// Date returns the fixture's calendar date, preferring the stored isoDate.
func (f *Fixture) Date() (string, bool) {
	if f == nil {
		return "", false
	}
	raw := strings.TrimSpace(f.ISODate)
	if raw == "" {
		raw = strings.TrimSpace(f.UTCDate)
	}
	return NormalizeDate(raw)
}

// NeedsUpdate is false only when both full-time scores are known and the status is settled.
func (f *Fixture) NeedsUpdate() bool {
	if f == nil {
		return false
	}
	hasScores := f.Score.FullTime.Home != nil && f.Score.FullTime.Away != nil
	return !(hasScores && IsSettledStatus(f.Status))
}

// ApplyResult marks the fixture finished with the given full-time score.
// Callers must check NeedsUpdate first; settled fixtures are never rewritten.
func (f *Fixture) ApplyResult(home, away int) {
	f.Status = StatusFinished
	f.Score.FullTime = ScoreLine{Home: intPtr(home), Away: intPtr(away)}
}

// Variants lists the name candidates used for identity matching.
func (t Team) Variants() []string {
	names := TeamNames{Name: t.Name, ShortName: t.ShortName}
	if t.ID != nil {
		names.ID = strconv.FormatInt(*t.ID, 10)
	}
	return NameVariants(names)
}

// DisplayName is the short name when present, otherwise the full name.
func (t Team) DisplayName() string {
	if name := strings.TrimSpace(t.ShortName); name != "" {
		return name
	}
	return strings.TrimSpace(t.Name)
}

func intPtr(v int) *int {
	return &v
}
