package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/liveticker/internal/domain/news"
	"github.com/riskibarqy/liveticker/internal/platform/logging"
)

const (
	defaultArticlesPerCategory = 30
	defaultFeedWorkers         = 8

	untitledArticle = "Ohne Titel"
	missingSummary  = "Keine weiteren Details verfügbar."
)

// FeedFetcher loads the items of one RSS or Atom feed.
type FeedFetcher interface {
	FetchFeed(ctx context.Context, url string) ([]FeedItem, error)
}

type FeedItem struct {
	GUID        string
	Link        string
	Title       string
	Description string
	Content     string
	PublishedAt *time.Time
}

type NewsConfig struct {
	Categories          []news.Category
	ArticlesPerCategory int
	Workers             int
}

type NewsResult struct {
	UpdatedAt   time.Time
	Articles    map[string]int
	FailedFeeds int
}

// NewsService collects the configured feeds into the digest categories.
type NewsService struct {
	fetcher FeedFetcher
	repo    news.DigestRepository
	cfg     NewsConfig
	clock   clockwork.Clock
	logger  *logging.Logger
}

type feedEntry struct {
	feed  news.Feed
	items []FeedItem
	err   error
}

func NewNewsService(
	fetcher FeedFetcher,
	repo news.DigestRepository,
	cfg NewsConfig,
	clock clockwork.Clock,
	logger *logging.Logger,
) *NewsService {
	if cfg.ArticlesPerCategory <= 0 {
		cfg.ArticlesPerCategory = defaultArticlesPerCategory
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultFeedWorkers
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &NewsService{
		fetcher: fetcher,
		repo:    repo,
		cfg:     cfg,
		clock:   clock,
		logger:  logger,
	}
}

// EnsureDigest writes an empty digest when none exists yet.
func (s *NewsService) EnsureDigest(ctx context.Context) error {
	digest, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load digest: %w", err)
	}
	if digest.UpdatedAt != nil || len(digest.Categories) > 0 {
		return nil
	}
	if err := s.repo.Save(ctx, news.Digest{Categories: map[string][]news.Article{}}); err != nil {
		return fmt.Errorf("create digest: %w", err)
	}
	return nil
}

func (s *NewsService) Collect(ctx context.Context) (NewsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.Collect")
	defer span.End()

	start := s.clock.Now()
	if len(s.cfg.Categories) == 0 {
		return NewsResult{}, fmt.Errorf("%w: no news categories configured", ErrInvalidInput)
	}

	entries, err := s.fetchAll(ctx)
	if err != nil {
		return NewsResult{}, err
	}

	digest, err := s.repo.Load(ctx)
	if err != nil {
		return NewsResult{}, fmt.Errorf("load digest: %w", err)
	}
	if digest.Categories == nil {
		digest.Categories = make(map[string][]news.Article)
	}

	now := s.clock.Now().UTC()
	result := NewsResult{UpdatedAt: now, Articles: make(map[string]int, len(s.cfg.Categories))}
	for i, category := range s.cfg.Categories {
		items := make([]feedEntry, 0, len(category.Feeds))
		for _, entry := range entries[i] {
			if entry.err != nil {
				result.FailedFeeds++
				s.logger.ErrorContext(ctx, "feed could not be loaded",
					"category", category.Name,
					"source", entry.feed.Source,
					"url", entry.feed.URL,
					"error", entry.err,
				)
				continue
			}
			items = append(items, entry)
		}

		articles := buildCategoryArticles(items, now, s.cfg.ArticlesPerCategory)
		digest.Categories[category.Name] = articles
		result.Articles[category.Name] = len(articles)
	}

	digest.UpdatedAt = &now
	if err := s.repo.Save(ctx, digest); err != nil {
		return NewsResult{}, fmt.Errorf("save digest: %w", err)
	}

	s.logger.InfoContext(ctx, "news updated",
		"categories", len(result.Articles),
		"failed_feeds", result.FailedFeeds,
		"duration_ms", s.clock.Since(start).Milliseconds(),
	)
	return result, nil
}

// fetchAll loads every feed of every category on a bounded pool. The result keeps
// category and feed order so title de-duplication stays deterministic.
func (s *NewsService) fetchAll(ctx context.Context) ([][]feedEntry, error) {
	out := make([][]feedEntry, len(s.cfg.Categories))
	for i, category := range s.cfg.Categories {
		out[i] = make([]feedEntry, len(category.Feeds))
	}

	pool, err := ants.NewPool(s.cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, category := range s.cfg.Categories {
		for j, feed := range category.Feeds {
			i, j, feed := i, j, feed
			workers.Add(1)
			if err := pool.Submit(func() {
				defer workers.Done()
				items, fetchErr := s.fetcher.FetchFeed(ctx, feed.URL)
				out[i][j] = feedEntry{feed: feed, items: items, err: fetchErr}
			}); err != nil {
				workers.Done()
				workers.Wait()
				return nil, fmt.Errorf("submit feed to worker pool: %w", err)
			}
		}
	}
	workers.Wait()

	return out, nil
}

func buildCategoryArticles(entries []feedEntry, now time.Time, limit int) []news.Article {
	seen := make(map[string]struct{})
	articles := make([]news.Article, 0, limit)
	for _, entry := range entries {
		for _, item := range entry.items {
			key := strings.ToLower(news.NormalizeWhitespace(item.Title))
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			articles = append(articles, buildArticle(item, entry.feed, now))
		}
	}

	news.SortNewestFirst(articles)
	if len(articles) > limit {
		articles = articles[:limit]
	}
	return articles
}

func buildArticle(item FeedItem, feed news.Feed, now time.Time) news.Article {
	title := news.NormalizeWhitespace(firstNonEmpty(item.Title, untitledArticle))
	summarySource := firstNonEmpty(item.Description, item.Content)
	bodySource := firstNonEmpty(item.Content, summarySource)

	fullText := news.StripHTML(bodySource)
	if fullText == "" {
		fullText = news.StripHTML(summarySource)
	}
	summary := fullText
	if summary == "" {
		summary = missingSummary
	}

	publishedAt := now
	if item.PublishedAt != nil && !item.PublishedAt.IsZero() {
		publishedAt = item.PublishedAt.UTC()
	}

	return news.Article{
		ID:          firstNonEmpty(item.GUID, item.Link, title),
		Title:       title,
		Summary:     summary,
		Paragraphs:  news.Paragraphs(fullText),
		Link:        strings.TrimSpace(item.Link),
		Source:      feed.Source,
		PublishedAt: publishedAt,
	}
}
