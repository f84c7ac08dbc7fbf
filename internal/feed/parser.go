// Package feed turns raw RSS/Atom text into flat item tuples. Parsing is
// deliberately tolerant: a broken feed yields zero items, a broken item is
// dropped on its own.
package feed

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// maxItems bounds memory and downstream scoring cost per feed.
const maxItems = 15

// Item is one extracted feed entry.
type Item struct {
	Title       string
	Description string
	Link        string
	PublishedAt time.Time
}

// Parser extracts items from raw feed text.
type Parser struct {
	fp  *gofeed.Parser
	now func() time.Time
}

// NewParser builds a feed parser.
func NewParser() *Parser {
	return &Parser{
		fp:  gofeed.NewParser(),
		now: time.Now,
	}
}

// Parse extracts up to maxItems entries from the raw feed. Malformed feeds
// produce an empty slice, never an error; items missing both a title and a
// link are dropped. An unparsable publish date falls back to now.
func (p *Parser) Parse(raw string) []Item {
	parsed, err := p.fp.ParseString(raw)
	if err != nil || parsed == nil {
		return nil
	}

	items := make([]Item, 0, min(len(parsed.Items), maxItems))
	for _, entry := range parsed.Items {
		if entry == nil {
			continue
		}

		title := strings.TrimSpace(entry.Title)
		link := strings.TrimSpace(entry.Link)
		if title == "" && link == "" {
			continue
		}

		items = append(items, Item{
			Title:       title,
			Description: StripMarkup(entry.Description),
			Link:        link,
			PublishedAt: p.publishedAt(entry),
		})
		if len(items) == maxItems {
			break
		}
	}
	return items
}

func (p *Parser) publishedAt(entry *gofeed.Item) time.Time {
	if entry.PublishedParsed != nil {
		return *entry.PublishedParsed
	}
	if entry.UpdatedParsed != nil {
		return *entry.UpdatedParsed
	}
	return p.now()
}

// StripMarkup removes embedded HTML from a feed description, returning the
// collapsed text content. Input that fails to parse is returned trimmed.
func StripMarkup(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.Contains(raw, "<") {
		return raw
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
