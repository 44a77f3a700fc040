package competition

import (
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/liveticker/internal/domain/fixture"
)

const leagueStageOrder = 1

var championsLeagueStageOrder = map[string]int{
	"LEAGUE_STAGE":            1,
	"LEAGUE_PHASE":            1,
	"FIRST_STAGE":             1,
	"PLAYOFFS":                2,
	"KNOCKOUT_ROUND_PLAYOFFS": 2,
	"KNOCKOUT_PLAY_OFFS":      2,
	"ROUND_OF_16":             3,
	"LAST_16":                 3,
	"QUARTER_FINALS":          4,
	"QUARTERFINALS":           4,
	"SEMI_FINALS":             5,
	"SEMIFINALS":              5,
	"FINAL":                   6,
}

var championsLeagueStageLabels = map[int]string{
	1: "Ligaphase",
	2: "Play-offs",
	3: "Achtelfinale",
	4: "Viertelfinale",
	5: "Halbfinale",
	6: "Finale",
}

// StageOrder ranks a Champions League stage. Other competitions have no stage order.
func StageOrder(code, stage string) *int {
	if code != CodeChampionsLeague {
		return nil
	}
	order, ok := championsLeagueStageOrder[strings.ToUpper(strings.TrimSpace(stage))]
	if !ok {
		return nil
	}
	return &order
}

// BuildMatchdays groups fixtures into the rounds shown by the front end.
// The Champions League gets league-phase matchdays followed by knockout stages;
// everything else, and a Champions League season without stage data, is grouped by matchday.
func BuildMatchdays(code string, fixtures []*fixture.Fixture) []Matchday {
	if code == CodeChampionsLeague {
		if rounds := championsLeagueMatchdays(fixtures); len(rounds) > 0 {
			return rounds
		}
	}
	return defaultMatchdays(fixtures)
}

type matchdayBucket struct {
	dates    map[string]struct{}
	matchIDs []string
	seenIDs  map[string]struct{}
	rawStage string
}

func newMatchdayBucket() *matchdayBucket {
	return &matchdayBucket{
		dates:   make(map[string]struct{}),
		seenIDs: make(map[string]struct{}),
	}
}

func (b *matchdayBucket) add(item *fixture.Fixture) {
	if date, ok := item.Date(); ok {
		b.dates[date] = struct{}{}
	}
	if item.ID == "" {
		return
	}
	if _, exists := b.seenIDs[item.ID]; exists {
		return
	}
	b.seenIDs[item.ID] = struct{}{}
	b.matchIDs = append(b.matchIDs, item.ID)
}

func (b *matchdayBucket) sortedDates() []string {
	dates := make([]string, 0, len(b.dates))
	for date := range b.dates {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

func (b *matchdayBucket) toMatchday(order int, label string, stageOrder *int) Matchday {
	dates := b.sortedDates()
	out := Matchday{
		Order:      order,
		Label:      label,
		Dates:      dates,
		MatchIDs:   append([]string{}, b.matchIDs...),
		StageOrder: stageOrder,
	}
	if len(dates) > 0 {
		out.PrimaryDate = dates[0]
	}
	return out
}

func groupByMatchday(fixtures []*fixture.Fixture, include func(*fixture.Fixture) bool) ([]int, map[int]*matchdayBucket) {
	buckets := make(map[int]*matchdayBucket)
	keys := make([]int, 0)
	for _, item := range fixtures {
		if item == nil || item.Matchday == nil || !include(item) {
			continue
		}
		key := *item.Matchday
		bucket, ok := buckets[key]
		if !ok {
			bucket = newMatchdayBucket()
			buckets[key] = bucket
			keys = append(keys, key)
		}
		bucket.add(item)
	}
	sort.Ints(keys)
	return keys, buckets
}

func defaultMatchdays(fixtures []*fixture.Fixture) []Matchday {
	keys, buckets := groupByMatchday(fixtures, func(*fixture.Fixture) bool { return true })
	out := make([]Matchday, 0, len(keys))
	for _, key := range keys {
		out = append(out, buckets[key].toMatchday(key, strconv.Itoa(key)+". Spieltag", nil))
	}
	return out
}

func championsLeagueMatchdays(fixtures []*fixture.Fixture) []Matchday {
	isLeaguePhase := func(item *fixture.Fixture) bool {
		order := StageOrder(CodeChampionsLeague, item.Stage)
		return order != nil && *order == leagueStageOrder
	}

	out := make([]Matchday, 0)
	keys, buckets := groupByMatchday(fixtures, isLeaguePhase)
	for _, key := range keys {
		stage := leagueStageOrder
		label := "Ligaphase · " + strconv.Itoa(key) + ". Spieltag"
		out = append(out, buckets[key].toMatchday(key, label, &stage))
	}

	stages := make(map[int]*matchdayBucket)
	stageKeys := make([]int, 0)
	for _, item := range fixtures {
		if item == nil {
			continue
		}
		order := StageOrder(CodeChampionsLeague, item.Stage)
		if order == nil || *order == leagueStageOrder {
			continue
		}
		bucket, ok := stages[*order]
		if !ok {
			bucket = newMatchdayBucket()
			bucket.rawStage = strings.ToUpper(strings.TrimSpace(item.Stage))
			stages[*order] = bucket
			stageKeys = append(stageKeys, *order)
		}
		bucket.add(item)
	}
	sort.Ints(stageKeys)
	for _, key := range stageKeys {
		bucket := stages[key]
		if len(bucket.matchIDs) == 0 {
			continue
		}
		label := championsLeagueStageLabels[key]
		if label == "" {
			label = bucket.rawStage
		}
		if label == "" {
			label = "Phase " + strconv.Itoa(key)
		}
		stage := key
		out = append(out, bucket.toMatchday(0, label, &stage))
	}

	sort.SliceStable(out, func(i, j int) bool {
		left, right := out[i], out[j]
		if *left.StageOrder != *right.StageOrder {
			return *left.StageOrder < *right.StageOrder
		}
		if *left.StageOrder == leagueStageOrder {
			return left.Order < right.Order
		}
		if left.PrimaryDate != right.PrimaryDate {
			if left.PrimaryDate == "" || right.PrimaryDate == "" {
				return right.PrimaryDate == ""
			}
			return left.PrimaryDate < right.PrimaryDate
		}
		return left.Label < right.Label
	})
	for i := range out {
		out[i].Order = i + 1
	}
	return out
}
