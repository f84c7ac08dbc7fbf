// Package sources holds the per-provider news adapters and the registry
// that builds them from configuration. Each adapter knows one upstream's
// query contract and response shape and fails independently of the rest.
package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/skywatch-ops/riskfeed/internal/domain"
	"github.com/skywatch-ops/riskfeed/internal/logger"
	"github.com/skywatch-ops/riskfeed/pkg/httpclient"
)

// ErrNotConfigured marks an adapter whose credential is absent. Callers
// treat it as an expected skip, not a transport failure.
var ErrNotConfigured = errors.New("source not configured")

// Source kinds.
const (
	KindJSONAPI = "json_api"
	KindRSSFeed = "rss_feed"
)

// RegionKeywordsFunc resolves a region name to its query keyword list.
type RegionKeywordsFunc func(region string) []string

// Adapter fetches normalized articles for one upstream source.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, region string) ([]domain.Article, error)
}

// Registry addresses built adapters by name.
type Registry interface {
	AdapterFor(name string) (Adapter, error)
	All() []Adapter
}

type registry struct {
	adapters map[string]Adapter
	ordered  []Adapter
	mu       sync.RWMutex
}

// NewRegistry builds a registry for the provided adapters.
func NewRegistry(adapters ...Adapter) Registry {
	reg := &registry{
		adapters: make(map[string]Adapter, len(adapters)),
	}

	for _, a := range adapters {
		if a == nil {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(a.Name()))
		if _, exists := reg.adapters[key]; exists {
			continue
		}
		reg.adapters[key] = a
		reg.ordered = append(reg.ordered, a)
	}

	return reg
}

// AdapterFor selects the adapter registered under the given source name.
func (r *registry) AdapterFor(name string) (Adapter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, fmt.Errorf("source name is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if a, ok := r.adapters[name]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("no adapter registered for source %q", name)
}

// All returns the adapters in registration order.
func (r *registry) All() []Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Adapter, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// DefaultHTTPClient returns a tuned client for source adapters.
func DefaultHTTPClient() httpclient.Client { return httpclient.NewRestyClient(15 * time.Second) }

// BuildAll constructs one adapter per source config. Credentials are
// resolved through getenv at build time; a source whose credential is
// missing still gets an adapter so its skip is observable per request.
func BuildAll(cfgs []SourceConfig, client httpclient.Client, keywords RegionKeywordsFunc, getenv func(string) string, log logger.Logger) (Registry, error) {
	if client == nil {
		client = DefaultHTTPClient()
	}
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if keywords == nil {
		keywords = func(string) []string { return nil }
	}

	adapters := make([]Adapter, 0, len(cfgs))
	for i, cfg := range cfgs {
		var (
			a   Adapter
			err error
		)
		switch cfg.Kind {
		case KindJSONAPI:
			a, err = newJSONAPIAdapter(cfg, client, keywords, getenv(cfg.CredentialEnv), log)
		case KindRSSFeed:
			a, err = newRSSAdapter(cfg, client, keywords, log)
		default:
			err = fmt.Errorf("kind %q is not supported", cfg.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("sources[%d] %q: %w", i, cfg.Name, err)
		}
		adapters = append(adapters, a)
	}

	return NewRegistry(adapters...), nil
}
