package jsonfile

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/liveticker/internal/domain/news"
	"github.com/riskibarqy/liveticker/internal/platform/logging"
	"github.com/riskibarqy/liveticker/internal/usecase"
)

type digestDocument struct {
	UpdatedAt  *string                      `json:"updatedAt"`
	Categories map[string][]articleDocument `json:"categories"`
}

type articleDocument struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Paragraphs  []string `json:"paragraphs"`
	Link        string   `json:"link"`
	Source      string   `json:"source"`
	PublishedAt string   `json:"publishedAt"`
	Year        *int     `json:"year,omitempty"`
	Slug        string   `json:"slug,omitempty"`
}

type historyLogDocument struct {
	UsedSlugs []string `json:"used_slugs"`
}

// DigestRepository keeps the news digest in a single file.
type DigestRepository struct {
	path string
}

func NewDigestRepository(path string) *DigestRepository {
	return &DigestRepository{path: path}
}

func (r *DigestRepository) Load(ctx context.Context) (news.Digest, error) {
	if err := ctx.Err(); err != nil {
		return news.Digest{}, err
	}

	raw, err := readDocument(r.path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return news.Digest{Categories: map[string][]news.Article{}}, nil
		}
		return news.Digest{}, err
	}

	var doc digestDocument
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return news.Digest{}, fmt.Errorf("%w: decode %s: %v", usecase.ErrInvalidDocument, r.path, err)
	}

	out := news.Digest{Categories: make(map[string][]news.Article, len(doc.Categories))}
	if doc.UpdatedAt != nil {
		if parsed, err := time.Parse(time.RFC3339Nano, *doc.UpdatedAt); err == nil {
			parsed = parsed.UTC()
			out.UpdatedAt = &parsed
		}
	}
	for name, rows := range doc.Categories {
		articles := make([]news.Article, 0, len(rows))
		for _, row := range rows {
			articles = append(articles, row.toDomain())
		}
		out.Categories[name] = articles
	}
	return out, nil
}

func (r *DigestRepository) Save(ctx context.Context, digest news.Digest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := digestDocument{Categories: make(map[string][]articleDocument, len(digest.Categories))}
	if digest.UpdatedAt != nil {
		doc.UpdatedAt = stringPtr(digest.UpdatedAt.UTC().Format(GeneratedAtLayout))
	}
	for name, articles := range digest.Categories {
		rows := make([]articleDocument, 0, len(articles))
		for _, article := range articles {
			rows = append(rows, newArticleDocument(article))
		}
		doc.Categories[name] = rows
	}
	return writeDocument(r.path, doc)
}

// HistoryLogRepository keeps the slugs of already published history entries.
// An unreadable log is treated as empty, so a damaged file never blocks curation.
type HistoryLogRepository struct {
	path   string
	logger *logging.Logger
}

func NewHistoryLogRepository(path string, logger *logging.Logger) *HistoryLogRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &HistoryLogRepository{path: path, logger: logger}
}

func (r *HistoryLogRepository) Load(ctx context.Context) (news.HistoryLog, error) {
	if err := ctx.Err(); err != nil {
		return news.HistoryLog{}, err
	}

	raw, err := readDocument(r.path)
	if err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			r.logger.WarnContext(ctx, "history log unreadable, starting empty", "path", r.path, "error", err)
		}
		return news.HistoryLog{}, nil
	}

	var doc historyLogDocument
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		r.logger.WarnContext(ctx, "history log invalid, starting empty", "path", r.path, "error", err)
		return news.HistoryLog{}, nil
	}
	return news.HistoryLog{UsedSlugs: doc.UsedSlugs}, nil
}

func (r *HistoryLogRepository) Save(ctx context.Context, log news.HistoryLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeDocument(r.path, historyLogDocument{UsedSlugs: nonNilStrings(log.UsedSlugs)})
}

func (d articleDocument) toDomain() news.Article {
	out := news.Article{
		ID:         d.ID,
		Slug:       d.Slug,
		Title:      d.Title,
		Summary:    d.Summary,
		Paragraphs: d.Paragraphs,
		Link:       d.Link,
		Source:     d.Source,
		Year:       d.Year,
	}
	if parsed, err := time.Parse(time.RFC3339Nano, d.PublishedAt); err == nil {
		out.PublishedAt = parsed.UTC()
	}
	return out
}

func newArticleDocument(article news.Article) articleDocument {
	return articleDocument{
		ID:          article.ID,
		Title:       article.Title,
		Summary:     article.Summary,
		Paragraphs:  nonNilStrings(article.Paragraphs),
		Link:        article.Link,
		Source:      article.Source,
		PublishedAt: article.PublishedAt.UTC().Format(GeneratedAtLayout),
		Year:        article.Year,
		Slug:        article.Slug,
	}
}
