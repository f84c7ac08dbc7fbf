package publishers

import (
	"context"
	"fmt"
)

// queueSender abstracts provider-specific queue senders.
type queueSender interface {
	Send(ctx context.Context, evt Event) error
}

// queuePublisher dispatches events to a cloud queue provider.
type queuePublisher struct {
	id       string
	provider string
	sender   queueSender
	log      Logger
}

// newQueuePublisher creates a queue publisher for the configured provider.
func newQueuePublisher(ctx context.Context, cfg SinkConfig, log Logger) (Publisher, error) {
	if cfg.Queue == nil {
		return nil, fmt.Errorf("sink %q has no queue settings", cfg.ID)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var (
		sender queueSender
		err    error
	)

	switch cfg.Queue.Provider {
	case ProviderSQS:
		sender, err = newSQSSender(ctx, cfg.Queue.SQS, log)
	case ProviderSNS:
		sender, err = newSNSSender(ctx, cfg.Queue.SNS, log)
	case ProviderPubSub:
		sender, err = newPubSubSender(ctx, cfg.Queue.PubSub, log)
	default:
		err = fmt.Errorf("queue provider %q is not supported", cfg.Queue.Provider)
	}
	if err != nil {
		return nil, err
	}

	return &queuePublisher{
		id:       cfg.ID,
		provider: cfg.Queue.Provider,
		sender:   sender,
		log:      ensureLogger(log),
	}, nil
}

func (p *queuePublisher) ID() string   { return p.id }
func (p *queuePublisher) Type() string { return TypeQueue }

// Publish forwards the event to the configured queue provider.
func (p *queuePublisher) Publish(ctx context.Context, evt Event) error {
	if err := p.sender.Send(ctx, evt); err != nil {
		return fmt.Errorf("queue provider %s send failed: %w", p.provider, err)
	}
	return nil
}
