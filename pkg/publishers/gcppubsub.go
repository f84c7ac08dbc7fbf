package publishers

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// pubSubSender implements queueSender for Google Cloud Pub/Sub.
type pubSubSender struct {
	topic *pubsub.Topic
	log   Logger
}

// newPubSubSender builds a Pub/Sub sender using the provided config.
func newPubSubSender(ctx context.Context, cfg *PubSubConfig, log Logger) (queueSender, error) {
	if cfg == nil {
		return nil, fmt.Errorf("pubsub settings are missing")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	topic := client.Topic(cfg.Topic)

	return &pubSubSender{
		topic: topic,
		log:   ensureLogger(log),
	}, nil
}

// Send publishes the event to the configured Pub/Sub topic.
func (s *pubSubSender) Send(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := &pubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"region":     evt.Region,
			"risk_level": string(evt.RiskLevel),
		},
	}

	res := s.topic.Publish(ctx, msg)
	msgID, err := res.Get(ctx)
	if err != nil {
		s.log.ErrorObj("gcp pubsub publisher send failed", "publisher_gcp_pubsub_error", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("send message to pubsub: %w", err)
	}

	s.log.DebugObj("gcp pubsub publisher delivered event", "publisher_gcp_pubsub_delivery", map[string]any{
		"message_id": msgID,
	})
	return nil
}
