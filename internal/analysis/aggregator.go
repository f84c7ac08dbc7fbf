// Package analysis folds raw source articles into per-region risk
// assessments and owns the top-level never-fails analysis operation.
package analysis

import (
	"fmt"
	"sort"

	"github.com/skywatch-ops/riskfeed/internal/domain"
)

// maxDisplayedArticles caps the article list carried in the returned
// analysis. Risk scoring still runs over the full set.
const maxDisplayedArticles = 10

var relevanceRank = map[domain.Relevance]int{
	domain.RelevanceHigh:   2,
	domain.RelevanceMedium: 1,
	domain.RelevanceLow:    0,
}

// Aggregate turns the combined article set for a region into one analysis.
// Zero articles is a legitimate input and yields a thin low-risk result.
func Aggregate(region string, articles []domain.Article) domain.RegionAnalysis {
	ranked := rankArticles(articles)

	display := ranked
	if len(display) > maxDisplayedArticles {
		display = display[:maxDisplayedArticles]
	}

	highCount, mediumCount := relevanceCounts(articles)
	level := riskLevel(highCount, mediumCount)

	return domain.RegionAnalysis{
		Region:          region,
		RiskLevel:       level,
		Articles:        display,
		RiskFactors:     riskFactors(articles),
		Summary:         summarize(region, level, len(articles), highCount),
		Recommendations: recommend(level, articles),
	}
}

// rankArticles orders by risk relevance descending, recency breaking ties.
func rankArticles(articles []domain.Article) []domain.Article {
	ranked := make([]domain.Article, len(articles))
	copy(ranked, articles)

	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := relevanceRank[ranked[i].RiskRelevance], relevanceRank[ranked[j].RiskRelevance]
		if ri != rj {
			return ri > rj
		}
		return ranked[i].PublishedAt.After(ranked[j].PublishedAt)
	})
	return ranked
}

func relevanceCounts(articles []domain.Article) (high, medium int) {
	for _, a := range articles {
		switch a.RiskRelevance {
		case domain.RelevanceHigh:
			high++
		case domain.RelevanceMedium:
			medium++
		}
	}
	return high, medium
}

// riskLevel is a pure function of the relevance distribution.
func riskLevel(high, medium int) domain.RiskLevel {
	switch {
	case high >= 3:
		return domain.RiskCritical
	case high >= 1 || medium >= 5:
		return domain.RiskHigh
	case medium >= 2:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// riskFactors emits one factor per observed category, ordered by category
// name for stable output.
func riskFactors(articles []domain.Article) []domain.RiskFactor {
	groups := make(map[domain.Category][]domain.Article)
	for _, a := range articles {
		groups[a.Category] = append(groups[a.Category], a)
	}

	categories := make([]domain.Category, 0, len(groups))
	for cat := range groups {
		categories = append(categories, cat)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	factors := make([]domain.RiskFactor, 0, len(categories))
	for _, cat := range categories {
		group := groups[cat]
		latest := group[0]
		for _, a := range group[1:] {
			if a.PublishedAt.After(latest.PublishedAt) {
				latest = a
			}
		}

		factors = append(factors, domain.RiskFactor{
			Category:    cat,
			Impact:      factorImpact(len(group)),
			Description: fmt.Sprintf("%d %s article(s) reported", len(group), cat),
			Source:      latest.SourceName,
			LastUpdated: latest.PublishedAt,
		})
	}
	return factors
}

// factorImpact keeps the documented three-tier threshold. The low arm
// cannot fire today: a group only exists once it holds at least one
// article. Kept as-is rather than collapsing the tiers.
func factorImpact(count int) domain.Relevance {
	switch {
	case count >= 3:
		return domain.RelevanceHigh
	case count >= 1:
		return domain.RelevanceMedium
	default:
		return domain.RelevanceLow
	}
}

func summarize(region string, level domain.RiskLevel, total, high int) string {
	return fmt.Sprintf("Analyzed %d article(s) for %s: overall risk level %s with %d high-risk article(s).",
		total, region, level, high)
}

// recommend applies the rule set in readability order; no rule depends on
// another's outcome.
func recommend(level domain.RiskLevel, articles []domain.Article) []string {
	var recs []string

	if level == domain.RiskHigh || level == domain.RiskCritical {
		recs = append(recs,
			"Brief flight crews on elevated regional risk before dispatch",
			"Increase monitoring frequency for this region",
			"Evaluate alternative routings avoiding affected airspace",
		)
	}
	if hasKeyword(articles, "sanctions") {
		recs = append(recs, "Review supplier and fuel contracts for sanctions compliance")
	}
	if hasKeyword(articles, "airspace") {
		recs = append(recs, "Monitor NOTAMs for airspace closures and restrictions")
	}

	recs = append(recs, "Continue monitoring regional developments")
	return recs
}

func hasKeyword(articles []domain.Article, keyword string) bool {
	for _, a := range articles {
		for _, kw := range a.Keywords {
			if kw == keyword {
				return true
			}
		}
	}
	return false
}
