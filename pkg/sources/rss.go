package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/skywatch-ops/riskfeed/internal/classify"
	"github.com/skywatch-ops/riskfeed/internal/domain"
	"github.com/skywatch-ops/riskfeed/internal/feed"
	"github.com/skywatch-ops/riskfeed/internal/logger"
	"github.com/skywatch-ops/riskfeed/pkg/httpclient"
)

// rssAdapter reads one fixed world-news feed. Feeds cannot be queried per
// region, so items are filtered after the fact: keep what mentions the
// region's keywords or anything aviation-related, drop the rest.
type rssAdapter struct {
	cfg      SourceConfig
	client   httpclient.Client
	keywords RegionKeywordsFunc
	parser   *feed.Parser
	log      logger.Logger
	now      func() time.Time
}

func newRSSAdapter(cfg SourceConfig, client httpclient.Client, keywords RegionKeywordsFunc, log logger.Logger) (Adapter, error) {
	if err := validateSourceConfig(cfg); err != nil {
		return nil, err
	}
	return &rssAdapter{
		cfg:      cfg,
		client:   client,
		keywords: keywords,
		parser:   feed.NewParser(),
		log:      log,
		now:      time.Now,
	}, nil
}

func (a *rssAdapter) Name() string { return a.cfg.Name }

func (a *rssAdapter) Fetch(ctx context.Context, region string) ([]domain.Article, error) {
	resp, err := a.client.Get(ctx, a.cfg.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s feed: %w", a.cfg.Name, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%s feed returned status %d body: %s", a.cfg.Name, resp.StatusCode(), responseSnippet(body))
	}

	items := a.parser.Parse(string(body))
	regionTerms := a.keywords(region)

	articles := make([]domain.Article, 0, len(items))
	for _, item := range items {
		text := item.Title + " " + item.Description
		if !relevantToRegion(text, regionTerms) {
			continue
		}

		articles = append(articles, domain.Article{
			ID:              articleID(a.cfg.Name, len(articles), a.now()),
			Title:           item.Title,
			Description:     item.Description,
			URL:             item.Link,
			PublishedAt:     item.PublishedAt,
			SourceName:      a.cfg.Name,
			Category:        classify.Classify(text),
			RiskRelevance:   classify.AssessRisk(text),
			AffectedRegions: []string{region},
			Keywords:        classify.ExtractKeywords(text),
		})
	}

	a.log.DebugObj("feed fetch complete", "feed_fetch", map[string]any{
		"source": a.cfg.Name,
		"region": region,
		"items":  len(items),
		"kept":   len(articles),
	})
	return articles, nil
}

// relevantToRegion keeps an item that mentions any region keyword or any
// fixed aviation term, case-insensitively.
func relevantToRegion(text string, regionTerms []string) bool {
	lowered := strings.ToLower(text)
	for _, term := range regionTerms {
		if term = strings.TrimSpace(term); term == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(term)) {
			return true
		}
	}
	return classify.MentionsAviation(text)
}
