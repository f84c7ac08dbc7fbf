package analysis_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skywatch-ops/riskfeed/internal/analysis"
	"github.com/skywatch-ops/riskfeed/internal/domain"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func makeArticles(high, medium, low int) []domain.Article {
	var out []domain.Article
	add := func(rel domain.Relevance, n int) {
		for i := 0; i < n; i++ {
			out = append(out, domain.Article{
				ID:            fmt.Sprintf("test-%s-%d", rel, i),
				Title:         fmt.Sprintf("%s article %d", rel, i),
				PublishedAt:   baseTime.Add(time.Duration(len(out)) * time.Minute),
				SourceName:    "test",
				Category:      domain.CategoryGeopolitical,
				RiskRelevance: rel,
			})
		}
	}
	add(domain.RelevanceHigh, high)
	add(domain.RelevanceMedium, medium)
	add(domain.RelevanceLow, low)
	return out
}

func TestRiskLevelThresholds(t *testing.T) {
	tests := []struct {
		high, medium int
		want         domain.RiskLevel
	}{
		{0, 0, domain.RiskLow},
		{0, 1, domain.RiskLow},
		{0, 2, domain.RiskMedium},
		{0, 4, domain.RiskMedium},
		{0, 5, domain.RiskHigh},
		{1, 0, domain.RiskHigh},
		{2, 0, domain.RiskHigh},
		{3, 0, domain.RiskCritical},
		{4, 3, domain.RiskCritical},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dh_%dm", tt.high, tt.medium), func(t *testing.T) {
			result := analysis.Aggregate("Black Sea", makeArticles(tt.high, tt.medium, 1))
			require.Equal(t, tt.want, result.RiskLevel)
		})
	}
}

func TestAggregateRanksAndTruncates(t *testing.T) {
	// 14 articles: scoring sees all of them, the display list keeps 10.
	articles := makeArticles(4, 6, 4)
	result := analysis.Aggregate("Persian Gulf", articles)

	require.Len(t, result.Articles, 10)
	require.Equal(t, domain.RiskCritical, result.RiskLevel)

	// High relevance first; within a tier, newest first.
	for i := 0; i < 4; i++ {
		require.Equal(t, domain.RelevanceHigh, result.Articles[i].RiskRelevance)
	}
	require.True(t, result.Articles[0].PublishedAt.After(result.Articles[1].PublishedAt))
	for i := 4; i < 10; i++ {
		require.Equal(t, domain.RelevanceMedium, result.Articles[i].RiskRelevance)
	}
}

func TestAggregateEmptyInputIsThinLowRisk(t *testing.T) {
	result := analysis.Aggregate("North Atlantic", nil)

	require.Equal(t, domain.RiskLow, result.RiskLevel)
	require.Empty(t, result.Articles)
	require.Empty(t, result.RiskFactors)
	require.NotEmpty(t, result.Recommendations)
	require.Contains(t, result.Summary, "0 article(s)")
}

func TestRiskFactorsGrouping(t *testing.T) {
	articles := []domain.Article{
		{Category: domain.CategoryAviation, SourceName: "gnews", PublishedAt: baseTime, RiskRelevance: domain.RelevanceLow},
		{Category: domain.CategoryAviation, SourceName: "newsapi", PublishedAt: baseTime.Add(time.Hour), RiskRelevance: domain.RelevanceLow},
		{Category: domain.CategoryAviation, SourceName: "bbc-world", PublishedAt: baseTime.Add(2 * time.Hour), RiskRelevance: domain.RelevanceLow},
		{Category: domain.CategorySecurity, SourceName: "newsdata", PublishedAt: baseTime, RiskRelevance: domain.RelevanceLow},
	}

	result := analysis.Aggregate("Eastern Mediterranean", articles)
	require.Len(t, result.RiskFactors, 2)

	byCategory := map[domain.Category]domain.RiskFactor{}
	for _, f := range result.RiskFactors {
		byCategory[f.Category] = f
	}

	aviation := byCategory[domain.CategoryAviation]
	require.Equal(t, domain.RelevanceHigh, aviation.Impact)
	require.Equal(t, "bbc-world", aviation.Source)
	require.Equal(t, baseTime.Add(2*time.Hour), aviation.LastUpdated)
	require.Contains(t, aviation.Description, "3")

	security := byCategory[domain.CategorySecurity]
	require.Equal(t, domain.RelevanceMedium, security.Impact)
	require.Equal(t, "newsdata", security.Source)
}

func TestRecommendationsRules(t *testing.T) {
	t.Run("always includes monitoring", func(t *testing.T) {
		result := analysis.Aggregate("Black Sea", nil)
		require.Contains(t, result.Recommendations, "Continue monitoring regional developments")
	})

	t.Run("high risk prepends operational actions", func(t *testing.T) {
		result := analysis.Aggregate("Black Sea", makeArticles(3, 0, 0))
		require.GreaterOrEqual(t, len(result.Recommendations), 4)
		require.Contains(t, result.Recommendations[0], "Brief flight crews")
	})

	t.Run("sanctions keyword adds compliance guidance", func(t *testing.T) {
		articles := makeArticles(0, 0, 1)
		articles[0].Keywords = []string{"sanctions"}
		result := analysis.Aggregate("Black Sea", articles)
		require.Contains(t, result.Recommendations, "Review supplier and fuel contracts for sanctions compliance")
	})

	t.Run("airspace keyword adds notam guidance", func(t *testing.T) {
		articles := makeArticles(0, 0, 1)
		articles[0].Keywords = []string{"airspace"}
		result := analysis.Aggregate("Black Sea", articles)
		require.Contains(t, result.Recommendations, "Monitor NOTAMs for airspace closures and restrictions")
	})
}

func TestSummaryContents(t *testing.T) {
	result := analysis.Aggregate("Persian Gulf", makeArticles(1, 0, 2))
	require.Contains(t, result.Summary, "3 article(s)")
	require.Contains(t, result.Summary, "Persian Gulf")
	require.Contains(t, result.Summary, "high")
	require.Contains(t, result.Summary, "1 high-risk article(s)")
}
