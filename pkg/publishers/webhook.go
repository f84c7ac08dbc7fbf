package publishers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/skywatch-ops/riskfeed/pkg/httpclient"
)

// webhookPublisher POSTs events to a configured HTTP endpoint.
type webhookPublisher struct {
	id     string
	cfg    WebhookConfig
	client httpclient.Client
	log    Logger
}

func newWebhookPublisher(cfg SinkConfig, log Logger) (Publisher, error) {
	if cfg.Webhook == nil {
		return nil, fmt.Errorf("sink %q has no webhook settings", cfg.ID)
	}

	timeout := time.Duration(cfg.Webhook.TimeoutSeconds) * time.Second
	return &webhookPublisher{
		id:     cfg.ID,
		cfg:    *cfg.Webhook,
		client: httpclient.NewRestyClient(timeout),
		log:    ensureLogger(log),
	}, nil
}

func (p *webhookPublisher) ID() string   { return p.id }
func (p *webhookPublisher) Type() string { return TypeWebhook }

// Publish delivers the event as a JSON body; any non-2xx reply is a
// delivery failure.
func (p *webhookPublisher) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	for key, val := range p.cfg.Headers {
		headers[key] = val
	}

	resp, err := p.client.Post(ctx, p.cfg.URL, payload, headers)
	if err != nil {
		p.log.ErrorObj("webhook send failed", "publisher_webhook_error", map[string]any{
			"url":   p.cfg.URL,
			"error": err.Error(),
		})
		return fmt.Errorf("deliver webhook: %w", err)
	}

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return fmt.Errorf("webhook %s returned status %d", p.cfg.URL, code)
	}

	p.log.DebugObj("webhook delivered event", "publisher_webhook_delivery", map[string]any{
		"url":    p.cfg.URL,
		"region": evt.Region,
	})
	return nil
}
