package analysis

import (
	"context"

	"github.com/skywatch-ops/riskfeed/internal/cache"
	"github.com/skywatch-ops/riskfeed/internal/domain"
	"github.com/skywatch-ops/riskfeed/internal/logger"
)

// Service is the caller-facing risk analysis operation. It never returns
// an error: the worst outcome a consumer can observe is the fallback
// analysis.
type Service struct {
	orchestrator *Orchestrator
	store        cache.Store
	log          logger.Logger
}

// NewService wires the orchestrator and cache store together.
func NewService(orchestrator *Orchestrator, store cache.Store, log logger.Logger) *Service {
	if store == nil {
		store = cache.NewMemoryStore(cache.DefaultTTL)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{orchestrator: orchestrator, store: store, log: log}
}

// RegionRiskAnalysis returns the cached analysis for the region when it is
// still fresh, otherwise recomputes and stores it. Concurrent calls for
// the same region may both recompute; the last writer wins.
func (s *Service) RegionRiskAnalysis(ctx context.Context, region string) (result domain.RegionAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorObj("analysis pipeline panicked, serving fallback", "analysis_panic", map[string]any{
				"region": region,
				"panic":  r,
			})
			result = Fallback(region)
		}
	}()

	if analysis, ok := s.store.Get(region); ok {
		s.log.DebugObj("serving cached analysis", "cache_hit", map[string]any{
			"region": region,
		})
		return analysis
	}

	articles, err := s.orchestrator.Collect(ctx, region)
	if err != nil {
		s.log.ErrorObj("no source returned, serving fallback", "sources_exhausted", map[string]any{
			"region": region,
			"error":  err.Error(),
		})
		return Fallback(region)
	}

	analysis := Aggregate(region, articles)

	if err := s.store.Put(region, analysis); err != nil {
		// A failed write only costs the cache; the fresh analysis is
		// still the right answer.
		s.log.WarnObj("cache write failed", "cache_put_error", map[string]any{
			"region": region,
			"error":  err.Error(),
		})
	}

	return analysis
}
