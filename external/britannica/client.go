package britannica

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/liveticker/internal/domain/news"
)

const (
	defaultBaseURL = "https://www.britannica.com"
	sourceName     = "Britannica"
	titleMaxRunes  = 90
)

// PageFetcher loads a web page.
type PageFetcher interface {
	Get(ctx context.Context, url, accept string) ([]byte, error)
}

type ClientConfig struct {
	BaseURL string
	Fetcher PageFetcher
}

// Client scrapes the Britannica "on this day" page.
type Client struct {
	baseURL string
	fetcher PageFetcher
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{baseURL: baseURL, fetcher: cfg.Fetcher}
}

func (c *Client) FetchOnThisDay(ctx context.Context, day time.Time) ([]news.Article, error) {
	pageURL := fmt.Sprintf("%s/on-this-day/%s-%d", c.baseURL, day.Month().String(), day.Day())

	raw, err := c.fetcher.Get(ctx, pageURL, "text/html")
	if err != nil {
		return nil, crerr.Wrap(err, "fetch britannica page")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, crerr.Wrap(err, "parse britannica page")
	}

	events := doc.Find(".md-history-event")
	out := make([]news.Article, 0, events.Length())
	events.Each(func(index int, card *goquery.Selection) {
		out = append(out, c.eventArticle(card, index, pageURL))
	})
	return out, nil
}

func (c *Client) eventArticle(card *goquery.Selection, index int, pageURL string) news.Article {
	var year *int
	if parsed, ok := leadingYear(card.Find(".date-label").First().Text()); ok {
		year = &parsed
	}

	body := card.Find(".card-body").First()
	bodyHTML, _ := body.Html()
	summary := news.CleanFragment(bodyHTML)

	link := pageURL
	if href, ok := body.Find("a").First().Attr("href"); ok && strings.TrimSpace(href) != "" {
		link = strings.TrimSpace(href)
	}
	if !strings.HasPrefix(link, "http") {
		link = c.baseURL + link
	}

	title := news.Truncate(summary, titleMaxRunes)
	key := strconv.Itoa(index)
	if year != nil {
		title = strconv.Itoa(*year) + ": " + title
		if *year != 0 {
			key = strconv.Itoa(*year)
		}
	}

	paragraphs := []string{}
	if summary != "" {
		paragraphs = []string{summary}
	}

	slug := "britannica-" + key + "-" + link
	return news.Article{
		ID:         slug,
		Slug:       slug,
		Title:      title,
		Summary:    summary,
		Paragraphs: paragraphs,
		Link:       link,
		Source:     sourceName,
		Year:       year,
	}
}

// leadingYear reads the integer a date label starts with, e.g. "1492" or "-44 BCE".
func leadingYear(text string) (int, bool) {
	text = strings.TrimSpace(text)
	end := 0
	if end < len(text) && (text[end] == '-' || text[end] == '+') {
		end++
	}
	digits := end
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	value, err := strconv.Atoi(text[:end])
	if err != nil {
		return 0, false
	}
	return value, true
}
