package publishers

import (
	"context"
	"fmt"
)

// BuildAll turns sink configs into live publishers. One unbuildable sink
// fails the whole batch so misconfiguration surfaces at startup, not at
// first delivery.
func BuildAll(ctx context.Context, cfgs []SinkConfig, log Logger) ([]Publisher, error) {
	if len(cfgs) == 0 {
		return nil, nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	log = ensureLogger(log)

	pubs := make([]Publisher, 0, len(cfgs))
	for _, cfg := range cfgs {
		pub, err := buildSink(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("build sink %q: %w", cfg.ID, err)
		}
		pubs = append(pubs, pub)
	}
	return pubs, nil
}

func buildSink(ctx context.Context, cfg SinkConfig, log Logger) (Publisher, error) {
	switch cfg.Type {
	case TypeWebhook:
		return newWebhookPublisher(cfg, log)
	case TypeQueue:
		return newQueuePublisher(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("sink type %q is not supported", cfg.Type)
	}
}
