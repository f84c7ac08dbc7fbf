package domain

import "time"

// Domain contains the core models shared by adapters, scoring, and cache.

// Category buckets an article by its dominant subject.
type Category string

const (
	CategoryGeopolitical Category = "geopolitical"
	CategoryAviation     Category = "aviation"
	CategoryEconomic     Category = "economic"
	CategorySecurity     Category = "security"
)

// Relevance grades how operationally significant a single article is.
type Relevance string

const (
	RelevanceHigh   Relevance = "high"
	RelevanceMedium Relevance = "medium"
	RelevanceLow    Relevance = "low"
)

// RiskLevel is the region-wide verdict derived from all articles.
type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskLow      RiskLevel = "low"
)

// Article is one normalized news record. Identity is source-scoped, so the
// same story seen through two sources stays two records.
type Article struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	URL             string    `json:"url"`
	PublishedAt     time.Time `json:"published_at"`
	SourceName      string    `json:"source_name"`
	Category        Category  `json:"category"`
	RiskRelevance   Relevance `json:"risk_relevance"`
	AffectedRegions []string  `json:"affected_regions"`
	Keywords        []string  `json:"keywords"`
}

// RiskFactor summarizes one observed category of coverage for a region.
type RiskFactor struct {
	Category    Category  `json:"category"`
	Impact      Relevance `json:"impact"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	LastUpdated time.Time `json:"last_updated"`
}

// RegionAnalysis is the unit cached and handed to dashboard consumers.
// Field names and enum values are part of the downstream contract.
type RegionAnalysis struct {
	Region          string       `json:"region"`
	RiskLevel       RiskLevel    `json:"risk_level"`
	Articles        []Article    `json:"articles"`
	RiskFactors     []RiskFactor `json:"risk_factors"`
	Summary         string       `json:"summary"`
	Recommendations []string     `json:"recommendations"`
}

// CacheEntry wraps an analysis with the instant it was computed.
type CacheEntry struct {
	Region     string         `json:"region"`
	Analysis   RegionAnalysis `json:"analysis"`
	ComputedAt time.Time      `json:"computed_at"`
}
