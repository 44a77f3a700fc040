package rss

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>kicker</title>
    <item>
      <guid>https://kicker.example/1</guid>
      <title>Bayern gewinnt</title>
      <link>https://kicker.example/1</link>
      <description>Kurzfassung</description>
      <content:encoded><![CDATA[<p>Erster Absatz</p>]]></content:encoded>
      <pubDate>Tue, 05 Mar 2024 21:00:00 +0100</pubDate>
    </item>
    <item>
      <title>Ohne Datum</title>
    </item>
  </channel>
</rss>`

func TestFetcher_FetchFeed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "liveticker-test/1.0" {
			t.Errorf("unexpected user agent %q", got)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	t.Cleanup(server.Close)

	fetcher := NewFetcher(FetcherConfig{HTTPClient: server.Client(), UserAgent: "liveticker-test/1.0", Timeout: time.Second})
	items, err := fetcher.FetchFeed(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "https://kicker.example/1", first.GUID)
	assert.Equal(t, "Bayern gewinnt", first.Title)
	assert.Equal(t, "Kurzfassung", first.Description)
	assert.Equal(t, "<p>Erster Absatz</p>", first.Content)
	require.NotNil(t, first.PublishedAt)
	assert.Equal(t, time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC), *first.PublishedAt)

	assert.Nil(t, items[1].PublishedAt)
}

func TestFetcher_FetchFeedReportsHTTPErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	fetcher := NewFetcher(FetcherConfig{HTTPClient: server.Client()})
	_, err := fetcher.FetchFeed(context.Background(), server.URL)

	var httpErr gofeed.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected gofeed.HTTPError, got %v", err)
	}
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
}
