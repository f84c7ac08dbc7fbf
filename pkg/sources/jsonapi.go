package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/skywatch-ops/riskfeed/internal/classify"
	"github.com/skywatch-ops/riskfeed/internal/domain"
	"github.com/skywatch-ops/riskfeed/internal/logger"
	"github.com/skywatch-ops/riskfeed/pkg/httpclient"
)

// jsonAPIAdapter serves every JSON search provider; the per-provider
// request contract and payload shape come from the SourceConfig mappings.
type jsonAPIAdapter struct {
	cfg      SourceConfig
	client   httpclient.Client
	keywords RegionKeywordsFunc
	apiKey   string
	log      logger.Logger
	now      func() time.Time
}

func newJSONAPIAdapter(cfg SourceConfig, client httpclient.Client, keywords RegionKeywordsFunc, apiKey string, log logger.Logger) (Adapter, error) {
	if err := validateSourceConfig(cfg); err != nil {
		return nil, err
	}
	return &jsonAPIAdapter{
		cfg:      cfg,
		client:   client,
		keywords: keywords,
		apiKey:   apiKey,
		log:      log,
		now:      time.Now,
	}, nil
}

func (a *jsonAPIAdapter) Name() string { return a.cfg.Name }

// Fetch queries the provider for the region and maps its payload into the
// common article model. A missing credential fails fast without touching
// the network.
func (a *jsonAPIAdapter) Fetch(ctx context.Context, region string) ([]domain.Article, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("%s: %w", a.cfg.Name, ErrNotConfigured)
	}

	query := make(map[string]string, 4)
	query[a.cfg.Params.Query] = buildQuery(region, a.keywords(region), a.cfg.Params.Narrow)
	if a.cfg.Params.Language != "" {
		query[a.cfg.Params.Language] = a.cfg.Params.LanguageVal
	}
	if a.cfg.Params.PageSize != "" {
		query[a.cfg.Params.PageSize] = a.cfg.Params.PageSizeVal
	}

	var headers map[string]string
	if a.cfg.Params.APIKeyHeader != "" {
		headers = map[string]string{a.cfg.Params.APIKeyHeader: a.apiKey}
	} else {
		query[a.cfg.Params.APIKeyParam] = a.apiKey
	}

	resp, err := a.client.GetWithQuery(ctx, a.cfg.Endpoint, query, headers)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", a.cfg.Name, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d body: %s", a.cfg.Name, resp.StatusCode(), responseSnippet(body))
	}

	articles, err := a.decodeArticles(region, body)
	if err != nil {
		return nil, err
	}

	a.log.DebugObj("source fetch complete", "source_fetch", map[string]any{
		"source":   a.cfg.Name,
		"region":   region,
		"articles": len(articles),
	})
	return articles, nil
}

func (a *jsonAPIAdapter) decodeArticles(region string, body []byte) ([]domain.Article, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", a.cfg.Name, err)
	}

	rawList, ok := envelope[a.cfg.Response.ListField]
	if !ok {
		return nil, fmt.Errorf("%s response has no %q field", a.cfg.Name, a.cfg.Response.ListField)
	}

	var items []map[string]any
	if err := json.Unmarshal(rawList, &items); err != nil {
		return nil, fmt.Errorf("decode %s article list: %w", a.cfg.Name, err)
	}

	articles := make([]domain.Article, 0, len(items))
	for _, item := range items {
		title := lookupField(item, a.cfg.Response.TitleField)
		url := lookupField(item, a.cfg.Response.URLField)
		if title == "" || url == "" {
			continue
		}

		// Providers routinely omit the body; an empty description is valid.
		description := lookupField(item, a.cfg.Response.DescField)
		text := title + " " + description

		// The outlet the provider attributes the article to, when the
		// payload carries one; the adapter name otherwise.
		sourceName := lookupField(item, a.cfg.Response.SourceField)
		if sourceName == "" {
			sourceName = a.cfg.Name
		}

		publishedAt := parseArticleDate(lookupField(item, a.cfg.Response.DateField), a.now)

		articles = append(articles, domain.Article{
			ID:              articleID(a.cfg.Name, len(articles), a.now()),
			Title:           title,
			Description:     description,
			URL:             url,
			PublishedAt:     publishedAt,
			SourceName:      sourceName,
			Category:        classify.Classify(text),
			RiskRelevance:   classify.AssessRisk(text),
			AffectedRegions: []string{region},
			Keywords:        classify.ExtractKeywords(text),
		})
	}
	return articles, nil
}
