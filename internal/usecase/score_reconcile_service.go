package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/liveticker/internal/domain/competition"
	"github.com/riskibarqy/liveticker/internal/domain/fixture"
	"github.com/riskibarqy/liveticker/internal/platform/logging"
	"github.com/riskibarqy/liveticker/internal/platform/teamname"
	"github.com/sourcegraph/conc/pool"
)

const defaultReconcileFetchConcurrency = 4

// ResultProvider reports finished matches for one competition and calendar date.
type ResultProvider interface {
	FetchResults(ctx context.Context, competitionCode, date string) ([]fixture.ExternalResult, error)
}

type ScoreReconcileConfig struct {
	Locations        map[string]string
	FetchConcurrency int
}

type ReconcileInput struct {
	Competition string   `validate:"required,alphanum,max=8"`
	Location    string   `validate:"omitempty,max=512"`
	Dates       []string `validate:"omitempty,dive,datetime=2006-01-02"`
}

type UnresolvedResult struct {
	Date string
	Home string
	Away string
}

type ReconcileResult struct {
	Location    string
	Pending     int
	Dates       []string
	FailedDates []string
	Updated     int
	Unresolved  []UnresolvedResult
	Written     bool
}

// ScoreReconcileService fills in results of pending fixtures from an independent provider.
type ScoreReconcileService struct {
	provider ResultProvider
	repo     competition.Repository
	cfg      ScoreReconcileConfig
	clock    clockwork.Clock
	logger   *logging.Logger
}

type dateResults struct {
	date    string
	results []fixture.ExternalResult
	err     error
}

func NewScoreReconcileService(
	provider ResultProvider,
	repo competition.Repository,
	cfg ScoreReconcileConfig,
	clock clockwork.Clock,
	logger *logging.Logger,
) *ScoreReconcileService {
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = defaultReconcileFetchConcurrency
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoreReconcileService{
		provider: provider,
		repo:     repo,
		cfg:      cfg,
		clock:    clock,
		logger:   logger,
	}
}

func (s *ScoreReconcileService) Reconcile(ctx context.Context, input ReconcileInput) (ReconcileResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreReconcileService.Reconcile")
	defer span.End()

	input.Competition = strings.ToUpper(strings.TrimSpace(input.Competition))
	if err := validateInput(ctx, input); err != nil {
		return ReconcileResult{}, err
	}

	location := strings.TrimSpace(input.Location)
	if location == "" {
		location = s.cfg.Locations[input.Competition]
	}
	if location == "" {
		return ReconcileResult{}, fmt.Errorf("%w: no fixture store configured for competition %s", ErrInvalidInput, input.Competition)
	}

	snapshot, err := s.repo.Load(ctx, location)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("load fixture store: %w", err)
	}

	result := ReconcileResult{Location: location}
	today := s.clock.Now().UTC().Format(fixture.DateLayout)

	pendingDates := make(map[string]struct{})
	for _, item := range snapshot.Fixtures {
		if !item.NeedsUpdate() {
			continue
		}
		date, ok := item.Date()
		if !ok || date > today {
			continue
		}
		result.Pending++
		pendingDates[date] = struct{}{}
	}

	if result.Pending == 0 {
		s.logger.InfoContext(ctx, "no pending fixtures to reconcile", "competition", input.Competition, "location", location)
		return result, nil
	}

	if len(input.Dates) > 0 {
		result.Dates = uniqueSorted(input.Dates)
	} else {
		result.Dates = make([]string, 0, len(pendingDates))
		for date := range pendingDates {
			result.Dates = append(result.Dates, date)
		}
		sort.Strings(result.Dates)
	}

	resolver := fixture.NewResolver(teamname.NewNormalizer(teamname.TableForCompetition(input.Competition)))
	lookup := resolver.BuildLookup(snapshot.Fixtures)
	var updated []*fixture.Fixture

	for _, batch := range s.fetchResults(ctx, input.Competition, result.Dates) {
		if batch.err != nil {
			s.logger.ErrorContext(ctx, "fetch results failed, skipping date",
				"competition", input.Competition,
				"date", batch.date,
				"error", batch.err,
			)
			result.FailedDates = append(result.FailedDates, batch.date)
			continue
		}

		for _, external := range batch.results {
			home, away, ok := external.Scores()
			if !ok {
				continue
			}
			if _, ok := fixture.NormalizeDate(external.Date); !ok {
				external.Date = batch.date
			}

			matches, ok := resolver.Resolve(external, lookup)
			if !ok {
				result.Unresolved = append(result.Unresolved, UnresolvedResult{
					Date: external.Date,
					Home: external.DisplayHome,
					Away: external.DisplayAway,
				})
				continue
			}
			for _, item := range matches {
				if !item.NeedsUpdate() {
					continue
				}
				item.ApplyResult(home, away)
				updated = append(updated, item)
				result.Updated++
			}
		}
	}

	if result.Updated == 0 {
		s.logger.InfoContext(ctx, "reconciliation finished without updates",
			"competition", input.Competition,
			"dates", len(result.Dates),
			"unresolved", len(result.Unresolved),
		)
		return result, nil
	}

	if err := s.repo.SaveResults(ctx, location, s.clock.Now().UTC(), updated); err != nil {
		return result, fmt.Errorf("save fixture store: %w", err)
	}
	result.Written = true

	s.logger.InfoContext(ctx, "reconciliation updated fixtures",
		"competition", input.Competition,
		"location", location,
		"updated", result.Updated,
		"unresolved", len(result.Unresolved),
		"failed_dates", len(result.FailedDates),
	)
	return result, nil
}

// fetchResults queries every date concurrently and returns once all requests have settled,
// ordered by date so results are merged deterministically.
func (s *ScoreReconcileService) fetchResults(ctx context.Context, code string, dates []string) []dateResults {
	p := pool.NewWithResults[dateResults]().WithMaxGoroutines(s.cfg.FetchConcurrency)
	for _, date := range dates {
		date := date
		p.Go(func() dateResults {
			results, err := s.provider.FetchResults(ctx, code, date)
			return dateResults{date: date, results: results, err: err}
		})
	}

	out := p.Wait()
	sort.SliceStable(out, func(i, j int) bool { return out[i].date < out[j].date })
	return out
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}
