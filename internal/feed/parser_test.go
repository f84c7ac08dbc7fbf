package feed

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const rssEnvelope = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>World</title>%s</channel></rss>`

func rssWithItems(items ...string) string {
	return fmt.Sprintf(rssEnvelope, strings.Join(items, ""))
}

func TestParsePlainAndCDATA(t *testing.T) {
	raw := rssWithItems(
		`<item><title>Plain title</title><description>Plain description</description><link>https://example.com/a</link><pubDate>Mon, 02 Jun 2025 10:00:00 GMT</pubDate></item>`,
		`<item><title><![CDATA[Wrapped title]]></title><description><![CDATA[Wrapped <b>description</b>]]></description><link>https://example.com/b</link><pubDate>Mon, 02 Jun 2025 11:00:00 GMT</pubDate></item>`,
	)

	items := NewParser().Parse(raw)
	require.Len(t, items, 2)

	require.Equal(t, "Plain title", items[0].Title)
	require.Equal(t, "Plain description", items[0].Description)
	require.Equal(t, "https://example.com/a", items[0].Link)
	require.Equal(t, 2025, items[0].PublishedAt.Year())

	require.Equal(t, "Wrapped title", items[1].Title)
	require.Equal(t, "Wrapped description", items[1].Description)
}

func TestParseStripsEmbeddedMarkup(t *testing.T) {
	raw := rssWithItems(
		`<item><title>Markup</title><description><![CDATA[<p>First   part</p><img src="x.jpg"/> second part]]></description><link>https://example.com/c</link></item>`,
	)

	items := NewParser().Parse(raw)
	require.Len(t, items, 1)
	require.Equal(t, "First part second part", items[0].Description)
}

func TestParseDateFallbackToNow(t *testing.T) {
	fixed := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	p := NewParser()
	p.now = func() time.Time { return fixed }

	raw := rssWithItems(
		`<item><title>No date</title><link>https://example.com/d</link><pubDate>not a date</pubDate></item>`,
	)

	items := p.Parse(raw)
	require.Len(t, items, 1)
	require.Equal(t, fixed, items[0].PublishedAt)
}

func TestParseMalformedFeedIsEmptyNotFatal(t *testing.T) {
	require.Empty(t, NewParser().Parse("this is not xml at all"))
	require.Empty(t, NewParser().Parse(""))
}

func TestParseDropsItemMissingTitleAndLink(t *testing.T) {
	raw := rssWithItems(
		`<item><description>orphan description</description></item>`,
		`<item><title>Kept</title><link>https://example.com/e</link></item>`,
	)

	items := NewParser().Parse(raw)
	require.Len(t, items, 1)
	require.Equal(t, "Kept", items[0].Title)
}

func TestParseCapsAdmittedItems(t *testing.T) {
	entries := make([]string, 0, maxItems+5)
	for i := 0; i < maxItems+5; i++ {
		entries = append(entries, fmt.Sprintf(`<item><title>Item %d</title><link>https://example.com/%d</link></item>`, i, i))
	}

	items := NewParser().Parse(rssWithItems(entries...))
	require.Len(t, items, maxItems)
}
