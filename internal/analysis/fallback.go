package analysis

import (
	"fmt"
	"time"

	"github.com/skywatch-ops/riskfeed/internal/domain"
)

// Fallback produces a well-formed, low-confidence analysis for when the
// normal pipeline hits an unexpected error. Zero articles is not that
// case; an empty set flows through Aggregate normally.
func Fallback(region string) domain.RegionAnalysis {
	now := time.Now()

	return domain.RegionAnalysis{
		Region:    region,
		RiskLevel: domain.RiskMedium,
		Articles:  []domain.Article{},
		RiskFactors: []domain.RiskFactor{
			{
				Category:    domain.CategoryGeopolitical,
				Impact:      domain.RelevanceMedium,
				Description: "Risk data availability is degraded; assessment is operating on reduced information",
				Source:      "riskfeed",
				LastUpdated: now,
			},
		},
		Summary: fmt.Sprintf("Risk analysis for %s is temporarily degraded; showing a conservative default assessment.", region),
		Recommendations: []string{
			"Treat the region as medium risk until live data recovers",
			"Consult official NOTAM and government advisories directly",
			"Retry the analysis shortly",
		},
	}
}
