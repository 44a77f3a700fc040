package app

import (
	"fmt"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/liveticker/external/britannica"
	"github.com/riskibarqy/liveticker/external/espn"
	"github.com/riskibarqy/liveticker/external/footballdata"
	"github.com/riskibarqy/liveticker/external/rss"
	"github.com/riskibarqy/liveticker/external/wikipedia"
	"github.com/riskibarqy/liveticker/internal/config"
	"github.com/riskibarqy/liveticker/internal/domain/news"
	"github.com/riskibarqy/liveticker/internal/infrastructure/repository/jsonfile"
	"github.com/riskibarqy/liveticker/internal/platform/logging"
	"github.com/riskibarqy/liveticker/internal/platform/resilience"
	"github.com/riskibarqy/liveticker/internal/platform/webfetch"
	"github.com/riskibarqy/liveticker/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Container holds the services behind the CLI commands.
type Container struct {
	Config     config.Config
	Logger     *logging.Logger
	Fixtures   *usecase.FixtureIngestionService
	Reconciler *usecase.ScoreReconcileService
	News       *usecase.NewsService
	History    *usecase.HistoryService
}

func New(cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	catalog, err := config.LoadFeedCatalog(cfg.FeedsFile)
	if err != nil {
		return nil, fmt.Errorf("load feed catalog: %w", err)
	}

	clock := clockwork.NewRealClock()
	breakerCfg := resilience.CircuitBreakerConfig{
		Enabled:          cfg.UpstreamCircuitEnabled,
		FailureThreshold: cfg.UpstreamCircuitFailureCount,
		OpenTimeout:      cfg.UpstreamCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.UpstreamCircuitHalfOpenMaxReq,
	}

	competitionRepo := jsonfile.NewCompetitionRepository(cfg.DataDir)
	digestRepo := jsonfile.NewDigestRepository(cfg.NewsOutputFile)
	historyLogRepo := jsonfile.NewHistoryLogRepository(cfg.HistoryLogFile, logger)

	footballData := footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:        cfg.FootballDataBaseURL,
		Token:          cfg.FootballDataToken,
		Timeout:        cfg.FootballDataTimeout,
		Logger:         logger,
		CircuitBreaker: breakerCfg,
	})
	espnClient := espn.NewClient(espn.ClientConfig{
		BaseURL:        cfg.ESPNBaseURL,
		Timeout:        cfg.ESPNTimeout,
		Leagues:        cfg.ESPNLeagues,
		Logger:         logger,
		CircuitBreaker: breakerCfg,
	})

	feedFetcher := rss.NewFetcher(rss.FetcherConfig{
		HTTPClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		UserAgent:  cfg.HTTPUserAgent,
		Timeout:    cfg.FeedTimeout,
	})
	pages := webfetch.New(webfetch.Config{UserAgent: cfg.HTTPUserAgent, Timeout: cfg.FeedTimeout})

	return &Container{
		Config: cfg,
		Logger: logger,
		Fixtures: usecase.NewFixtureIngestionService(footballData, competitionRepo, usecase.FixtureIngestionConfig{
			Outputs: cfg.FootballDataOutputs,
			Labels:  cfg.FootballDataLabels,
		}, clock, logger),
		Reconciler: usecase.NewScoreReconcileService(espnClient, competitionRepo, usecase.ScoreReconcileConfig{
			Locations:        cfg.FootballDataOutputs,
			FetchConcurrency: cfg.ReconcileFetchConcurrency,
		}, clock, logger),
		News: usecase.NewNewsService(feedFetcher, digestRepo, usecase.NewsConfig{
			Categories:          catalog.Categories(),
			ArticlesPerCategory: cfg.NewsArticlesPerCategory,
			Workers:             cfg.FeedWorkers,
		}, clock, logger),
		History: usecase.NewHistoryService(
			feedFetcher,
			britannica.NewClient(britannica.ClientConfig{Fetcher: pages}),
			wikipedia.NewClient(wikipedia.ClientConfig{Fetcher: pages}),
			digestRepo,
			historyLogRepo,
			usecase.HistoryConfig{
				Feeds: catalog.HistoryFeeds(),
				Policy: news.HistoryPolicy{
					Count:         cfg.HistoryCount,
					LogLimit:      cfg.HistoryLogLimit,
					PreModernYear: cfg.HistoryPreModernYear,
				},
			},
			clock,
			logger,
		),
	}, nil
}
