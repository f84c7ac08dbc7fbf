// Package classify assigns categories, risk-relevance tiers, and domain
// keywords to article text via fixed keyword tables. Matching is plain
// lower-cased substring containment; there is no stemming or scoring.
package classify

import (
	"sort"
	"strings"

	"github.com/skywatch-ops/riskfeed/internal/domain"
)

// AviationTerms is the fixed list used both for classification and for the
// RSS relevance filter.
var AviationTerms = []string{"aircraft", "airline", "airport", "flight", "aviation", "airspace", "pilot", "crew"}

var (
	// Classification checks the groups in order; the first hit wins, so an
	// article mentioning both "airport" and "sanctions" is aviation.
	classifyAviationTerms = []string{"aircraft", "airline", "airport", "flight"}
	securityTerms         = []string{"security", "terrorism", "threat"}
	economicTerms         = []string{"trade", "economy", "sanctions", "embargo"}

	// High-risk terms are checked strictly before medium-risk terms.
	highRiskTerms   = []string{"conflict", "war", "crisis", "emergency", "closure", "restriction", "ban", "attack", "threat"}
	mediumRiskTerms = []string{"tension", "dispute", "concern", "warning", "delay", "disruption", "protest"}

	// vocabulary is the fixed keyword-extraction set.
	vocabulary = []string{
		"airspace", "airport", "airline", "aircraft", "flight", "aviation",
		"pilot", "crew", "notam", "sanctions", "embargo", "conflict", "war",
		"military", "missile", "drone", "border", "closure", "restriction",
		"strike", "protest", "terrorism", "security", "diplomatic", "trade",
	}
)

// Classify returns the category for the combined title+description text.
func Classify(text string) domain.Category {
	lowered := strings.ToLower(text)

	if containsAny(lowered, classifyAviationTerms) {
		return domain.CategoryAviation
	}
	if containsAny(lowered, securityTerms) {
		return domain.CategorySecurity
	}
	if containsAny(lowered, economicTerms) {
		return domain.CategoryEconomic
	}
	return domain.CategoryGeopolitical
}

// AssessRisk grades the operational significance of the text.
func AssessRisk(text string) domain.Relevance {
	lowered := strings.ToLower(text)

	if containsAny(lowered, highRiskTerms) {
		return domain.RelevanceHigh
	}
	if containsAny(lowered, mediumRiskTerms) {
		return domain.RelevanceMedium
	}
	return domain.RelevanceLow
}

// ExtractKeywords returns every vocabulary term present in the text, sorted
// so repeated runs over the same input produce the same slice.
func ExtractKeywords(text string) []string {
	lowered := strings.ToLower(text)

	var found []string
	for _, term := range vocabulary {
		if strings.Contains(lowered, term) {
			found = append(found, term)
		}
	}
	sort.Strings(found)
	return found
}

// MentionsAviation reports whether the text contains any fixed aviation term.
func MentionsAviation(text string) bool {
	return containsAny(strings.ToLower(text), AviationTerms)
}

func containsAny(lowered string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}
