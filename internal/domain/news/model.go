package news

import "time"

// CategoryHistory is the digest category owned by the history curator.
const CategoryHistory = "history"

// Article is one entry of a digest category.
type Article struct {
	ID          string
	Slug        string
	Title       string
	Summary     string
	Paragraphs  []string
	Link        string
	Source      string
	PublishedAt time.Time
	Year        *int
}

// Digest is the document behind the news dashboard.
type Digest struct {
	UpdatedAt  *time.Time
	Categories map[string][]Article
}

// HistoryLog remembers slugs already shown in the history category.
type HistoryLog struct {
	UsedSlugs []string
}

// Feed is one RSS or Atom source.
type Feed struct {
	Source string
	URL    string
}

// Category is a named group of feeds collected together.
type Category struct {
	Name  string
	Feeds []Feed
}
