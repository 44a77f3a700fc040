package wikipedia

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/liveticker/internal/domain/news"
)

const (
	defaultBaseURL  = "https://en.wikipedia.org/api/rest_v1/feed/onthisday/events"
	fallbackLink    = "https://en.wikipedia.org/wiki/Portal:Current_events"
	sourceName      = "Wikipedia"
	defaultTitle    = "Historisches Ereignis"
	defaultSummary  = "Historischer Eintrag"
	idTextRunes     = 24
	slugTextRunes   = 32
	acceptMediaType = "application/json"
)

// PageFetcher loads a document over HTTP.
type PageFetcher interface {
	Get(ctx context.Context, url, accept string) ([]byte, error)
}

type ClientConfig struct {
	BaseURL string
	Fetcher PageFetcher
}

// Client reads the "on this day" events feed of the Wikipedia REST API.
type Client struct {
	baseURL string
	fetcher PageFetcher
}

type eventsPayload struct {
	Events []eventItem `json:"events"`
}

type eventItem struct {
	Text  *string    `json:"text"`
	Year  *int       `json:"year"`
	Pages []pageItem `json:"pages"`
}

type pageItem struct {
	Extract     *string `json:"extract"`
	ContentURLs *struct {
		Desktop *struct {
			Page *string `json:"page"`
		} `json:"desktop"`
		Mobile *struct {
			Page *string `json:"page"`
		} `json:"mobile"`
	} `json:"content_urls"`
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{baseURL: baseURL, fetcher: cfg.Fetcher}
}

func (c *Client) FetchOnThisDay(ctx context.Context, day time.Time) ([]news.Article, error) {
	endpoint := fmt.Sprintf("%s/%d/%d", c.baseURL, int(day.Month()), day.Day())

	raw, err := c.fetcher.Get(ctx, endpoint, acceptMediaType)
	if err != nil {
		return nil, crerr.Wrap(err, "fetch wikipedia events")
	}

	var payload eventsPayload
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrap(err, "decode wikipedia events")
	}

	out := make([]news.Article, 0, len(payload.Events))
	for i, event := range payload.Events {
		out = append(out, event.toArticle(i))
	}
	return out, nil
}

func (e eventItem) toArticle(index int) news.Article {
	text := ""
	if e.Text != nil {
		text = strings.TrimSpace(*e.Text)
	}

	var year *int
	yearLabel := ""
	if e.Year != nil && *e.Year != 0 {
		value := *e.Year
		year = &value
		yearLabel = strconv.Itoa(value)
	}

	var page pageItem
	if len(e.Pages) > 0 {
		page = e.Pages[0]
	}

	summary := text
	if summary == "" && page.Extract != nil {
		summary = strings.TrimSpace(*page.Extract)
	}
	if summary == "" {
		summary = defaultSummary
	}

	title := text
	if title == "" {
		title = defaultTitle
	}

	idText := prefixRunes(text, idTextRunes)
	if idText == "" {
		idText = strconv.Itoa(index)
	}

	return news.Article{
		ID:         "wiki-" + yearLabel + "-" + idText,
		Slug:       "wiki-" + yearLabel + "-" + prefixRunes(text, slugTextRunes),
		Title:      yearLabel + ": " + title,
		Summary:    summary,
		Paragraphs: []string{summary},
		Link:       page.link(),
		Source:     sourceName,
		Year:       year,
	}
}

func (p pageItem) link() string {
	if p.ContentURLs != nil {
		if desktop := p.ContentURLs.Desktop; desktop != nil && desktop.Page != nil && *desktop.Page != "" {
			return *desktop.Page
		}
		if mobile := p.ContentURLs.Mobile; mobile != nil && mobile.Page != nil && *mobile.Page != "" {
			return *mobile.Page
		}
	}
	return fallbackLink
}

func prefixRunes(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
