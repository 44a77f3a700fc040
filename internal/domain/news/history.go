package news

import (
	"errors"
	"sort"
)

var (
	ErrNoPreModernEntry = errors.New("no pre-modern history entry available")
	ErrTooFewEntries    = errors.New("not enough unique history entries")
)

const (
	HistoryMinYear = -100
	HistoryMaxYear = 2020
)

// HistoryPolicy controls how many entries are published and how long slugs are remembered.
type HistoryPolicy struct {
	Count         int
	LogLimit      int
	PreModernYear int
}

type HistorySelection struct {
	Items []Article
	// UsedSlugs is the updated log, trimmed to the policy limit.
	UsedSlugs []string
	// ReusedPreModern is set when every pre-modern entry had been shown before.
	ReusedPreModern bool
}

// SortNewestFirst orders articles by publication time, newest first.
func SortNewestFirst(items []Article) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
}

// ChooseHistory picks one pre-modern entry followed by unused entries in pool order.
func ChooseHistory(pool []Article, log HistoryLog, policy HistoryPolicy) (HistorySelection, error) {
	used := make(map[string]struct{}, len(log.UsedSlugs))
	for _, slug := range log.UsedSlugs {
		used[slug] = struct{}{}
	}

	var preModern []Article
	for _, item := range pool {
		if item.Year != nil && *item.Year < policy.PreModernYear {
			preModern = append(preModern, item)
		}
	}
	if len(preModern) == 0 {
		return HistorySelection{}, ErrNoPreModernEntry
	}

	out := HistorySelection{}
	first := -1
	for i, item := range preModern {
		if _, seen := used[item.Slug]; !seen {
			first = i
			break
		}
	}
	if first < 0 {
		first = 0
		out.ReusedPreModern = true
	}

	chosen := []Article{preModern[first]}
	used[preModern[first].Slug] = struct{}{}
	for _, item := range pool {
		if len(chosen) >= policy.Count {
			break
		}
		if _, seen := used[item.Slug]; seen {
			continue
		}
		chosen = append(chosen, item)
		used[item.Slug] = struct{}{}
	}
	if len(chosen) < policy.Count {
		return HistorySelection{}, ErrTooFewEntries
	}

	slugs := make([]string, 0, len(log.UsedSlugs)+len(chosen))
	slugs = append(slugs, log.UsedSlugs...)
	for _, item := range chosen {
		slugs = append(slugs, item.Slug)
	}
	if policy.LogLimit > 0 && len(slugs) > policy.LogLimit {
		slugs = slugs[len(slugs)-policy.LogLimit:]
	}

	out.Items = chosen
	out.UsedSlugs = slugs
	return out, nil
}

// YearInRange reports whether a history year is publishable. Unknown years pass.
func YearInRange(year *int) bool {
	if year == nil {
		return true
	}
	return *year >= HistoryMinYear && *year <= HistoryMaxYear
}
