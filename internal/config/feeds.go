package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/riskibarqy/liveticker/internal/domain/news"
	"gopkg.in/yaml.v3"
)

//go:embed feeds.yaml
var defaultFeedCatalog []byte

// FeedCatalog lists the news categories and the history feeds.
type FeedCatalog struct {
	News    []CategoryEntry `yaml:"news"`
	History []FeedEntry     `yaml:"history"`
}

type CategoryEntry struct {
	Name  string      `yaml:"name"`
	Feeds []FeedEntry `yaml:"feeds"`
}

type FeedEntry struct {
	Source string `yaml:"source"`
	URL    string `yaml:"url"`
}

// LoadFeedCatalog reads the catalog at path, or the built-in one when path is empty.
func LoadFeedCatalog(path string) (FeedCatalog, error) {
	raw := defaultFeedCatalog
	if path = strings.TrimSpace(path); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return FeedCatalog{}, fmt.Errorf("read FEEDS_FILE: %w", err)
		}
		raw = content
	}
	return ParseFeedCatalog(raw)
}

func ParseFeedCatalog(raw []byte) (FeedCatalog, error) {
	var catalog FeedCatalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return FeedCatalog{}, fmt.Errorf("decode feed catalog: %w", err)
	}
	if err := catalog.validate(); err != nil {
		return FeedCatalog{}, err
	}
	return catalog, nil
}

func (c FeedCatalog) validate() error {
	if len(c.News) == 0 {
		return fmt.Errorf("feed catalog has no news categories")
	}
	seen := make(map[string]struct{}, len(c.News))
	for _, category := range c.News {
		name := strings.TrimSpace(category.Name)
		if name == "" {
			return fmt.Errorf("feed catalog has a category without name")
		}
		if strings.EqualFold(name, news.CategoryHistory) {
			return fmt.Errorf("category %q is reserved for the history curator", name)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("duplicate category %q", name)
		}
		seen[name] = struct{}{}
		for _, feed := range category.Feeds {
			if err := feed.validate(); err != nil {
				return fmt.Errorf("category %q: %w", name, err)
			}
		}
	}
	for _, feed := range c.History {
		if err := feed.validate(); err != nil {
			return fmt.Errorf("history: %w", err)
		}
	}
	return nil
}

func (f FeedEntry) validate() error {
	if strings.TrimSpace(f.Source) == "" {
		return fmt.Errorf("feed %q has no source", f.URL)
	}
	if !strings.HasPrefix(f.URL, "http://") && !strings.HasPrefix(f.URL, "https://") {
		return fmt.Errorf("feed %q has an invalid url %q", f.Source, f.URL)
	}
	return nil
}

func (c FeedCatalog) Categories() []news.Category {
	out := make([]news.Category, 0, len(c.News))
	for _, category := range c.News {
		feeds := make([]news.Feed, 0, len(category.Feeds))
		for _, feed := range category.Feeds {
			feeds = append(feeds, feed.toDomain())
		}
		out = append(out, news.Category{Name: strings.TrimSpace(category.Name), Feeds: feeds})
	}
	return out
}

func (c FeedCatalog) HistoryFeeds() []news.Feed {
	out := make([]news.Feed, 0, len(c.History))
	for _, feed := range c.History {
		out = append(out, feed.toDomain())
	}
	return out
}

func (f FeedEntry) toDomain() news.Feed {
	return news.Feed{Source: strings.TrimSpace(f.Source), URL: strings.TrimSpace(f.URL)}
}
