package rss

import (
	"context"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/mmcdole/gofeed"
	"github.com/riskibarqy/liveticker/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultTimeout = 15 * time.Second

type FetcherConfig struct {
	HTTPClient *http.Client
	UserAgent  string
	Timeout    time.Duration
}

// Fetcher parses RSS, Atom and JSON feeds into feed items.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

func NewFetcher(cfg FetcherConfig) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &Fetcher{
		httpClient: httpClient,
		userAgent:  strings.TrimSpace(cfg.UserAgent),
		timeout:    timeout,
	}
}

func (f *Fetcher) FetchFeed(ctx context.Context, url string) ([]usecase.FeedItem, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	// gofeed.Parser keeps per-parse state, so each call gets its own.
	parser := gofeed.NewParser()
	parser.Client = f.httpClient
	if f.userAgent != "" {
		parser.UserAgent = f.userAgent
	}

	feed, err := parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, crerr.Wrapf(err, "parse feed %s", url)
	}

	out := make([]usecase.FeedItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		out = append(out, usecase.FeedItem{
			GUID:        strings.TrimSpace(item.GUID),
			Link:        strings.TrimSpace(item.Link),
			Title:       item.Title,
			Description: item.Description,
			Content:     item.Content,
			PublishedAt: publishedAt(item),
		})
	}
	return out, nil
}

func publishedAt(item *gofeed.Item) *time.Time {
	switch {
	case item.PublishedParsed != nil:
		value := item.PublishedParsed.UTC()
		return &value
	case item.UpdatedParsed != nil:
		value := item.UpdatedParsed.UTC()
		return &value
	default:
		return nil
	}
}
