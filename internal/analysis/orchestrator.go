package analysis

import (
	"context"
	"errors"
	"sync"

	"github.com/skywatch-ops/riskfeed/internal/domain"
	"github.com/skywatch-ops/riskfeed/internal/logger"
	"github.com/skywatch-ops/riskfeed/pkg/sources"
)

// ErrAllSourcesFailed reports a fan-out in which not a single adapter
// returned. Zero articles from live adapters is a normal result; zero
// surviving adapters is not.
var ErrAllSourcesFailed = errors.New("all sources failed")

// Orchestrator fans a region request out to every configured adapter and
// folds whatever succeeded back together. One adapter failing never costs
// the batch the other adapters' articles.
type Orchestrator struct {
	registry sources.Registry
	log      logger.Logger
}

// NewOrchestrator builds an orchestrator over the adapter registry.
func NewOrchestrator(registry sources.Registry, log logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Orchestrator{registry: registry, log: log}
}

// Collect invokes every adapter concurrently and returns the concatenation
// of all successful results, possibly empty. It waits for the full fan-in;
// there is no orchestrator-level timeout or retry. When no adapter
// succeeds at all it returns ErrAllSourcesFailed.
func (o *Orchestrator) Collect(ctx context.Context, region string) ([]domain.Article, error) {
	adapters := o.registry.All()
	if len(adapters) == 0 {
		return nil, ErrAllSourcesFailed
	}

	var (
		mu        sync.Mutex
		combined  []domain.Article
		succeeded int
		wg        sync.WaitGroup
	)

	for _, adapter := range adapters {
		wg.Add(1)
		go func(a sources.Adapter) {
			defer wg.Done()

			articles, err := a.Fetch(ctx, region)
			if err != nil {
				if errors.Is(err, sources.ErrNotConfigured) {
					o.log.DebugObj("source skipped, no credential", "source_not_configured", map[string]any{
						"source": a.Name(),
						"region": region,
					})
				} else {
					o.log.WarnObj("source fetch failed", "source_fetch_error", map[string]any{
						"source": a.Name(),
						"region": region,
						"error":  err.Error(),
					})
				}
				return
			}

			mu.Lock()
			combined = append(combined, articles...)
			succeeded++
			mu.Unlock()
		}(adapter)
	}

	wg.Wait()

	o.log.InfoObj("source fan-out complete", "fanout_done", map[string]any{
		"region":    region,
		"sources":   len(adapters),
		"succeeded": succeeded,
		"articles":  len(combined),
	})

	if succeeded == 0 {
		return nil, ErrAllSourcesFailed
	}
	return combined, nil
}
