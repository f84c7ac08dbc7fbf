package sources

import (
	"fmt"
	"strings"
	"time"
)

// narrowClause restricts broad regional queries to aviation/geopolitics
// coverage on providers that support boolean search syntax.
const narrowClause = "(aviation OR airspace OR geopolitical)"

// responseSnippet returns a truncated snippet of the response body for logging.
func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

// articleID builds a source-scoped article identity. Records from different
// sources never collide and are never merged.
func articleID(sourceName string, seq int, at time.Time) string {
	return fmt.Sprintf("%s-%d-%d", sourceName, seq, at.UnixNano())
}

// buildQuery OR-joins the region's keyword list, falling back to the region
// name itself when the region is unknown to the keyword table.
func buildQuery(region string, keywords []string, narrow bool) string {
	terms := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			terms = append(terms, quoteTerm(kw))
		}
	}
	if len(terms) == 0 {
		terms = append(terms, quoteTerm(region))
	}

	query := strings.Join(terms, " OR ")
	if len(terms) > 1 {
		query = "(" + query + ")"
	}
	if narrow {
		query += " AND " + narrowClause
	}
	return query
}

func quoteTerm(term string) string {
	if strings.ContainsRune(term, ' ') {
		return `"` + term + `"`
	}
	return term
}

// parseArticleDate tries the timestamp layouts seen across the JSON
// providers. Unparsable dates fall back to now so ordering stays total.
func parseArticleDate(raw string, now func() time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now()
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return now()
}

// lookupField resolves a possibly dotted field path ("source.name") inside
// a decoded JSON object, returning the string value or "".
func lookupField(obj map[string]any, path string) string {
	if path == "" {
		return ""
	}

	parts := strings.Split(path, ".")
	cur := any(obj)
	for _, part := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur, ok = m[part]
		if !ok {
			return ""
		}
	}

	if s, ok := cur.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
