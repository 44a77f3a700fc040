package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/liveticker/internal/domain/news"
	newsmock "github.com/riskibarqy/liveticker/internal/mocks/domain/news"
	"github.com/riskibarqy/liveticker/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type onThisDayStub struct {
	items []news.Article
	err   error
	day   time.Time
}

func (s *onThisDayStub) FetchOnThisDay(_ context.Context, day time.Time) ([]news.Article, error) {
	s.day = day
	return s.items, s.err
}

func historyEntry(slug string, year int) news.Article {
	return news.Article{ID: slug, Slug: slug, Title: slug, Source: "Wikipedia", Year: intRef(year)}
}

var historyNow = time.Date(2025, 7, 20, 10, 0, 0, 0, time.UTC)

func TestHistoryService_CurateSelectsAndLogs(t *testing.T) {
	t.Parallel()

	fetcher := &feedFetcherStub{items: map[string][]FeedItem{
		"https://history.example/rss": {{Title: "Kalenderblatt", Description: "<p>Was geschah</p>"}},
	}}
	britannica := &onThisDayStub{items: []news.Article{historyEntry("b-1066", 1066)}}
	wikipedia := &onThisDayStub{items: []news.Article{
		historyEntry("w-1492", 1492),
		historyEntry("w-1969", 1969),
		historyEntry("w-2001", 2001),
		historyEntry("w-1350", 1350),
	}}

	digestRepo := newsmock.NewDigestRepository(t)
	digestRepo.On("Load", mock.Anything).Return(news.Digest{
		Categories: map[string][]news.Article{"Sport": {{ID: "s-1"}}},
	}, nil).Once()
	var savedDigest news.Digest
	digestRepo.On("Save", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { savedDigest = args.Get(1).(news.Digest) }).
		Return(nil).
		Once()

	logRepo := newsmock.NewHistoryLogRepository(t)
	logRepo.On("Load", mock.Anything).Return(news.HistoryLog{UsedSlugs: []string{"b-1066"}}, nil).Once()
	logRepo.On("Save", mock.Anything, news.HistoryLog{
		UsedSlugs: []string{"b-1066", "w-1492", "Feed-Kalenderblatt", "w-1969"},
	}).Return(nil).Once()

	service := NewHistoryService(fetcher, britannica, wikipedia, digestRepo, logRepo, HistoryConfig{
		Feeds:  []news.Feed{{Source: "Feed", URL: "https://history.example/rss"}},
		Policy: news.HistoryPolicy{Count: 3},
	}, clockwork.NewFakeClockAt(historyNow), logging.NewNop())

	result, err := service.Curate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, result.PoolSize)
	assert.False(t, result.ReusedPreModern)
	assert.Equal(t, historyNow, wikipedia.day)

	require.Len(t, result.Items, 3)
	assert.Equal(t, "w-1492", result.Items[0].Slug)
	assert.Equal(t, "Feed-Kalenderblatt", result.Items[1].Slug)
	assert.Equal(t, []string{"Was geschah"}, result.Items[1].Paragraphs)
	assert.Equal(t, "w-1969", result.Items[2].Slug)
	assert.Equal(t, historyNow, result.Items[0].PublishedAt)
	assert.Equal(t, []string{}, result.Items[0].Paragraphs)

	assert.Equal(t, result.Items, savedDigest.Categories[news.CategoryHistory])
	assert.Len(t, savedDigest.Categories["Sport"], 1)
	assert.Nil(t, savedDigest.UpdatedAt)
}

func TestHistoryService_CurateToleratesBritannicaFailure(t *testing.T) {
	t.Parallel()

	britannica := &onThisDayStub{err: errors.New("status 503")}
	wikipedia := &onThisDayStub{items: []news.Article{historyEntry("w-1492", 1492), historyEntry("w-1969", 1969)}}

	digestRepo := newsmock.NewDigestRepository(t)
	digestRepo.On("Load", mock.Anything).Return(news.Digest{}, nil).Once()
	digestRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	logRepo := newsmock.NewHistoryLogRepository(t)
	logRepo.On("Load", mock.Anything).Return(news.HistoryLog{UsedSlugs: []string{"w-1492"}}, nil).Once()
	logRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	service := NewHistoryService(nil, britannica, wikipedia, digestRepo, logRepo, HistoryConfig{
		Policy: news.HistoryPolicy{Count: 2},
	}, clockwork.NewFakeClockAt(historyNow), logging.NewNop())

	result, err := service.Curate(context.Background())
	require.NoError(t, err)
	assert.True(t, result.ReusedPreModern)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "w-1492", result.Items[0].Slug)
	assert.Equal(t, "w-1969", result.Items[1].Slug)
}

func TestHistoryService_CurateFailures(t *testing.T) {
	t.Parallel()

	t.Run("wikipedia unavailable", func(t *testing.T) {
		t.Parallel()

		digestRepo := newsmock.NewDigestRepository(t)
		logRepo := newsmock.NewHistoryLogRepository(t)
		logRepo.On("Load", mock.Anything).Return(news.HistoryLog{}, nil).Once()

		service := NewHistoryService(nil, nil, &onThisDayStub{err: errors.New("dial tcp: timeout")}, digestRepo, logRepo,
			HistoryConfig{}, clockwork.NewFakeClockAt(historyNow), logging.NewNop())
		if _, err := service.Curate(context.Background()); !errors.Is(err, ErrDependencyUnavailable) {
			t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
		}
		digestRepo.AssertNotCalled(t, "Load", mock.Anything)
		digestRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("pool too small", func(t *testing.T) {
		t.Parallel()

		digestRepo := newsmock.NewDigestRepository(t)
		logRepo := newsmock.NewHistoryLogRepository(t)
		logRepo.On("Load", mock.Anything).Return(news.HistoryLog{}, nil).Once()

		wikipedia := &onThisDayStub{items: []news.Article{historyEntry("w-1969", 1969)}}
		service := NewHistoryService(nil, nil, wikipedia, digestRepo, logRepo,
			HistoryConfig{}, clockwork.NewFakeClockAt(historyNow), logging.NewNop())
		_, err := service.Curate(context.Background())
		if !errors.Is(err, ErrNotEnoughHistory) {
			t.Fatalf("expected ErrNotEnoughHistory, got %v", err)
		}
	})
}

func TestHistoryService_Verify(t *testing.T) {
	t.Parallel()

	valid := newsmock.NewDigestRepository(t)
	valid.On("Load", mock.Anything).Return(news.Digest{Categories: map[string][]news.Article{
		news.CategoryHistory: {historyEntry("a", 1492), {ID: "b"}},
	}}, nil).Once()

	service := NewHistoryService(nil, nil, nil, valid, nil, HistoryConfig{Policy: news.HistoryPolicy{Count: 2}},
		clockwork.NewFakeClock(), logging.NewNop())
	report, err := service.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Empty(t, report.OutOfRange)

	invalid := newsmock.NewDigestRepository(t)
	invalid.On("Load", mock.Anything).Return(news.Digest{Categories: map[string][]news.Article{
		news.CategoryHistory: {historyEntry("a", 1492), historyEntry("future", 2024)},
	}}, nil).Once()

	service = NewHistoryService(nil, nil, nil, invalid, nil, HistoryConfig{Policy: news.HistoryPolicy{Count: 2}},
		clockwork.NewFakeClock(), logging.NewNop())
	report, err = service.Verify(context.Background())
	if !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
	assert.Equal(t, []string{"future"}, report.OutOfRange)

	short := newsmock.NewDigestRepository(t)
	short.On("Load", mock.Anything).Return(news.Digest{}, nil).Once()
	service = NewHistoryService(nil, nil, nil, short, nil, HistoryConfig{}, clockwork.NewFakeClock(), logging.NewNop())
	if _, err := service.Verify(context.Background()); !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected count mismatch to fail, got %v", err)
	}
}
