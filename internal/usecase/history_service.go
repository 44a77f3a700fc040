package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/liveticker/internal/domain/news"
	"github.com/riskibarqy/liveticker/internal/platform/logging"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"
)

// OnThisDaySource returns historic events that happened on the given calendar day.
type OnThisDaySource interface {
	FetchOnThisDay(ctx context.Context, day time.Time) ([]news.Article, error)
}

type HistoryConfig struct {
	Feeds  []news.Feed
	Policy news.HistoryPolicy
}

type HistoryResult struct {
	Items           []news.Article
	PoolSize        int
	ReusedPreModern bool
}

type HistoryReport struct {
	Total      int
	OutOfRange []string
}

// HistoryService curates the daily history category of the digest.
// Feed and Britannica failures shrink the pool; a Wikipedia failure aborts the run.
type HistoryService struct {
	fetcher    FeedFetcher
	britannica OnThisDaySource
	wikipedia  OnThisDaySource
	digestRepo news.DigestRepository
	logRepo    news.HistoryLogRepository
	cfg        HistoryConfig
	clock      clockwork.Clock
	logger     *logging.Logger
}

func NewHistoryService(
	fetcher FeedFetcher,
	britannica OnThisDaySource,
	wikipedia OnThisDaySource,
	digestRepo news.DigestRepository,
	logRepo news.HistoryLogRepository,
	cfg HistoryConfig,
	clock clockwork.Clock,
	logger *logging.Logger,
) *HistoryService {
	if cfg.Policy.Count <= 0 {
		cfg.Policy.Count = 5
	}
	if cfg.Policy.LogLimit <= 0 {
		cfg.Policy.LogLimit = 500
	}
	if cfg.Policy.PreModernYear == 0 {
		cfg.Policy.PreModernYear = 1800
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &HistoryService{
		fetcher:    fetcher,
		britannica: britannica,
		wikipedia:  wikipedia,
		digestRepo: digestRepo,
		logRepo:    logRepo,
		cfg:        cfg,
		clock:      clock,
		logger:     logger,
	}
}

func (s *HistoryService) Curate(ctx context.Context) (HistoryResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.Curate")
	defer span.End()

	usedLog, err := s.logRepo.Load(ctx)
	if err != nil {
		return HistoryResult{}, fmt.Errorf("load history log: %w", err)
	}

	now := s.clock.Now().UTC()
	candidates, err := s.collect(ctx, now)
	if err != nil {
		return HistoryResult{}, err
	}
	news.SortNewestFirst(candidates)

	selection, err := news.ChooseHistory(candidates, usedLog, s.cfg.Policy)
	if err != nil {
		return HistoryResult{}, fmt.Errorf("%w: %v", ErrNotEnoughHistory, err)
	}
	if selection.ReusedPreModern {
		s.logger.WarnContext(ctx, "no unused pre-modern history entry, reusing an earlier one",
			"slug", selection.Items[0].Slug,
		)
	}

	// Read late: a news run may have saved the digest while sources were collected.
	digest, err := s.digestRepo.Load(ctx)
	if err != nil {
		return HistoryResult{}, fmt.Errorf("load digest: %w", err)
	}
	if digest.Categories == nil {
		digest.Categories = make(map[string][]news.Article)
	}
	digest.Categories[news.CategoryHistory] = selection.Items

	if err := s.digestRepo.Save(ctx, digest); err != nil {
		return HistoryResult{}, fmt.Errorf("save digest: %w", err)
	}
	if err := s.logRepo.Save(ctx, news.HistoryLog{UsedSlugs: selection.UsedSlugs}); err != nil {
		return HistoryResult{}, fmt.Errorf("save history log: %w", err)
	}

	s.logger.InfoContext(ctx, "history updated", "entries", len(selection.Items), "pool", len(candidates))
	return HistoryResult{
		Items:           selection.Items,
		PoolSize:        len(candidates),
		ReusedPreModern: selection.ReusedPreModern,
	}, nil
}

func (s *HistoryService) collect(ctx context.Context, now time.Time) ([]news.Article, error) {
	var (
		feedItems  []news.Article
		britannica []news.Article
		wikipedia  []news.Article
		wikiErr    error
		wg         conc.WaitGroup
	)

	wg.Go(func() {
		feedItems = s.collectFeeds(ctx, now)
	})
	wg.Go(func() {
		if s.britannica == nil {
			return
		}
		items, err := s.britannica.FetchOnThisDay(ctx, now)
		if err != nil {
			s.logger.WarnContext(ctx, "britannica could not be loaded", "error", err)
			return
		}
		britannica = items
	})
	wg.Go(func() {
		if s.wikipedia == nil {
			wikiErr = errors.New("wikipedia source is not configured")
			return
		}
		wikipedia, wikiErr = s.wikipedia.FetchOnThisDay(ctx, now)
	})
	wg.Wait()

	if wikiErr != nil {
		return nil, fmt.Errorf("%w: wikipedia on this day: %v", ErrDependencyUnavailable, wikiErr)
	}

	out := make([]news.Article, 0, len(feedItems)+len(britannica)+len(wikipedia))
	out = append(out, feedItems...)
	out = append(out, britannica...)
	out = append(out, wikipedia...)
	for i := range out {
		if out[i].PublishedAt.IsZero() {
			out[i].PublishedAt = now
		}
		if out[i].Paragraphs == nil {
			out[i].Paragraphs = []string{}
		}
	}
	return out, nil
}

func (s *HistoryService) collectFeeds(ctx context.Context, now time.Time) []news.Article {
	if s.fetcher == nil || len(s.cfg.Feeds) == 0 {
		return nil
	}

	p := pool.NewWithResults[[]news.Article]()
	for _, feed := range s.cfg.Feeds {
		feed := feed
		p.Go(func() []news.Article {
			items, err := s.fetcher.FetchFeed(ctx, feed.URL)
			if err != nil {
				s.logger.WarnContext(ctx, "history feed failed", "source", feed.Source, "url", feed.URL, "error", err)
				return nil
			}
			out := make([]news.Article, 0, len(items))
			for _, item := range items {
				out = append(out, historyArticleFromFeed(item, feed.Source, now))
			}
			return out
		})
	}

	var out []news.Article
	for _, chunk := range p.Wait() {
		out = append(out, chunk...)
	}
	return out
}

func historyArticleFromFeed(item FeedItem, source string, now time.Time) news.Article {
	summary := strings.TrimSpace(news.StripHTML(firstNonEmpty(item.Description, item.Content)))
	paragraphs := []string{}
	if summary != "" {
		paragraphs = []string{summary}
	}

	publishedAt := now
	if item.PublishedAt != nil && !item.PublishedAt.IsZero() {
		publishedAt = item.PublishedAt.UTC()
	}

	return news.Article{
		ID:          firstNonEmpty(item.GUID, item.Link, source+"-"+item.Title),
		Slug:        source + "-" + item.Title,
		Title:       firstNonEmpty(item.Title, untitledArticle),
		Summary:     summary,
		Paragraphs:  paragraphs,
		Link:        strings.TrimSpace(item.Link),
		Source:      source,
		PublishedAt: publishedAt,
	}
}

// Verify checks the published history category: exactly the configured number of
// entries and no known year outside the publishable range.
func (s *HistoryService) Verify(ctx context.Context) (HistoryReport, error) {
	digest, err := s.digestRepo.Load(ctx)
	if err != nil {
		return HistoryReport{}, fmt.Errorf("load digest: %w", err)
	}

	items := digest.Categories[news.CategoryHistory]
	report := HistoryReport{Total: len(items)}
	for _, item := range items {
		if !news.YearInRange(item.Year) {
			report.OutOfRange = append(report.OutOfRange, item.ID)
		}
	}

	s.logger.InfoContext(ctx, "history entries checked",
		"total", report.Total,
		"valid", report.Total-len(report.OutOfRange),
		"out_of_range", len(report.OutOfRange),
	)

	if report.Total != s.cfg.Policy.Count {
		return report, fmt.Errorf("%w: expected exactly %d history entries, got %d", ErrInvalidDocument, s.cfg.Policy.Count, report.Total)
	}
	if len(report.OutOfRange) > 0 {
		return report, fmt.Errorf("%w: entries outside %d..%d: %s",
			ErrInvalidDocument, news.HistoryMinYear, news.HistoryMaxYear, strings.Join(report.OutOfRange, ", "))
	}
	return report, nil
}
