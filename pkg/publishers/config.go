package publishers

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sink types.
const (
	TypeQueue   = "queue"
	TypeWebhook = "webhook"
)

// Queue providers.
const (
	ProviderSQS    = "aws-sqs"
	ProviderSNS    = "aws-sns"
	ProviderPubSub = "gcp-pubsub"
)

const webhookDefaultTimeoutSeconds = 5

// SinkConfig declares one destination for analysis events.
type SinkConfig struct {
	ID      string         `json:"id" yaml:"id"`
	Type    string         `json:"type" yaml:"type"`
	Enabled *bool          `json:"enabled" yaml:"enabled"`
	Queue   *QueueConfig   `json:"queue" yaml:"queue"`
	Webhook *WebhookConfig `json:"webhook" yaml:"webhook"`
}

// QueueConfig selects a cloud queue provider for a sink.
type QueueConfig struct {
	Provider string        `json:"provider" yaml:"provider"`
	SQS      *SQSConfig    `json:"sqs" yaml:"sqs"`
	SNS      *SNSConfig    `json:"sns" yaml:"sns"`
	PubSub   *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

// SQSConfig holds AWS SQS settings.
type SQSConfig struct {
	QueueURL        string `json:"queue_url" yaml:"queue_url"`
	Region          string `json:"region" yaml:"region"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
}

// SNSConfig holds AWS SNS settings.
type SNSConfig struct {
	TopicARN        string `json:"topic_arn" yaml:"topic_arn"`
	Region          string `json:"region" yaml:"region"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
}

// PubSubConfig holds the minimal Google Pub/Sub topic settings.
type PubSubConfig struct {
	ProjectID       string `json:"project_id" yaml:"project_id"`
	Topic           string `json:"topic" yaml:"topic"`
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
}

// WebhookConfig holds the settings for an HTTP sink. Events are always
// delivered as POSTed JSON.
type WebhookConfig struct {
	URL            string            `json:"url" yaml:"url"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// SinkSet is the validated, immutable set of sinks loaded from a config
// file. The zero value is an empty set.
type SinkSet struct {
	sinks []SinkConfig
	byID  map[string]SinkConfig
}

type sinkFile struct {
	Sinks []SinkConfig `json:"sinks" yaml:"sinks"`
}

// LoadSinks reads sink declarations from a YAML or JSON file. Environment
// references (${VAR}) in the file are expanded before parsing, so
// credentials can stay out of the file itself.
func LoadSinks(path string) (SinkSet, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return SinkSet{}, errors.New("sinks file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return SinkSet{}, fmt.Errorf("read sinks file: %w", err)
	}
	expanded := []byte(os.ExpandEnv(string(raw)))

	var file sinkFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(expanded, &file)
	case ".json":
		err = json.Unmarshal(expanded, &file)
	default:
		return SinkSet{}, fmt.Errorf("sinks file extension %q not supported (want .yaml, .yml or .json)", ext)
	}
	if err != nil {
		return SinkSet{}, fmt.Errorf("parse sinks file: %w", err)
	}
	if len(file.Sinks) == 0 {
		return SinkSet{}, errors.New("sinks file declares no sinks")
	}

	set := SinkSet{
		sinks: make([]SinkConfig, 0, len(file.Sinks)),
		byID:  make(map[string]SinkConfig, len(file.Sinks)),
	}
	for i, cfg := range file.Sinks {
		cfg = cfg.normalize()
		if err := cfg.validate(); err != nil {
			return SinkSet{}, fmt.Errorf("sinks[%d]: %w", i, err)
		}
		if _, dup := set.byID[cfg.ID]; dup {
			return SinkSet{}, fmt.Errorf("duplicate sink id %q", cfg.ID)
		}
		set.sinks = append(set.sinks, cfg)
		set.byID[cfg.ID] = cfg
	}
	return set, nil
}

// All returns every declared sink in file order.
func (s SinkSet) All() []SinkConfig {
	out := make([]SinkConfig, len(s.sinks))
	copy(out, s.sinks)
	return out
}

// Enabled returns the sinks that are not switched off.
func (s SinkSet) Enabled() []SinkConfig {
	out := make([]SinkConfig, 0, len(s.sinks))
	for _, cfg := range s.sinks {
		if cfg.Enabled == nil || *cfg.Enabled {
			out = append(out, cfg)
		}
	}
	return out
}

// ByID looks a sink up by its declared id.
func (s SinkSet) ByID(id string) (SinkConfig, bool) {
	cfg, ok := s.byID[strings.TrimSpace(id)]
	return cfg, ok
}

func (c SinkConfig) normalize() SinkConfig {
	c.ID = strings.TrimSpace(c.ID)
	c.Type = strings.ToLower(strings.TrimSpace(c.Type))

	if c.Queue != nil {
		q := *c.Queue
		q.Provider = strings.ToLower(strings.TrimSpace(q.Provider))
		if q.SQS != nil {
			q.SQS = &SQSConfig{
				QueueURL:        strings.TrimSpace(q.SQS.QueueURL),
				Region:          strings.TrimSpace(q.SQS.Region),
				AccessKeyID:     strings.TrimSpace(q.SQS.AccessKeyID),
				SecretAccessKey: strings.TrimSpace(q.SQS.SecretAccessKey),
			}
		}
		if q.SNS != nil {
			q.SNS = &SNSConfig{
				TopicARN:        strings.TrimSpace(q.SNS.TopicARN),
				Region:          strings.TrimSpace(q.SNS.Region),
				AccessKeyID:     strings.TrimSpace(q.SNS.AccessKeyID),
				SecretAccessKey: strings.TrimSpace(q.SNS.SecretAccessKey),
			}
		}
		if q.PubSub != nil {
			q.PubSub = &PubSubConfig{
				ProjectID:       strings.TrimSpace(q.PubSub.ProjectID),
				Topic:           strings.TrimSpace(q.PubSub.Topic),
				CredentialsFile: strings.TrimSpace(q.PubSub.CredentialsFile),
			}
		}
		c.Queue = &q
	}

	if c.Webhook != nil {
		w := *c.Webhook
		w.URL = strings.TrimSpace(w.URL)
		w.Headers = trimmedHeaders(w.Headers)
		if w.TimeoutSeconds <= 0 {
			w.TimeoutSeconds = webhookDefaultTimeoutSeconds
		}
		c.Webhook = &w
	}

	return c
}

func trimmedHeaders(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" && v != "" {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (c SinkConfig) validate() error {
	if c.ID == "" {
		return errors.New("sink id is required")
	}

	switch c.Type {
	case TypeQueue:
		if c.Queue == nil {
			return fmt.Errorf("sink %q: queue settings are required", c.ID)
		}
		return c.Queue.validate(c.ID)
	case TypeWebhook:
		if c.Webhook == nil {
			return fmt.Errorf("sink %q: webhook settings are required", c.ID)
		}
		if c.Webhook.URL == "" {
			return fmt.Errorf("sink %q: webhook.url is required", c.ID)
		}
		return nil
	case "":
		return fmt.Errorf("sink %q: type is required", c.ID)
	default:
		return fmt.Errorf("sink %q: type %q is not supported", c.ID, c.Type)
	}
}

func (q *QueueConfig) validate(id string) error {
	switch q.Provider {
	case ProviderSQS:
		if q.SQS == nil || q.SQS.QueueURL == "" || q.SQS.Region == "" {
			return fmt.Errorf("sink %q: sqs.queue_url and sqs.region are required", id)
		}
		if q.SQS.AccessKeyID == "" || q.SQS.SecretAccessKey == "" {
			return fmt.Errorf("sink %q: sqs credentials are required", id)
		}
	case ProviderSNS:
		if q.SNS == nil || q.SNS.TopicARN == "" || q.SNS.Region == "" {
			return fmt.Errorf("sink %q: sns.topic_arn and sns.region are required", id)
		}
		if q.SNS.AccessKeyID == "" || q.SNS.SecretAccessKey == "" {
			return fmt.Errorf("sink %q: sns credentials are required", id)
		}
	case ProviderPubSub:
		if q.PubSub == nil || q.PubSub.ProjectID == "" || q.PubSub.Topic == "" {
			return fmt.Errorf("sink %q: pubsub.project_id and pubsub.topic are required", id)
		}
	case "":
		return fmt.Errorf("sink %q: queue.provider is required", id)
	default:
		return fmt.Errorf("sink %q: queue provider %q is not supported", id, q.Provider)
	}
	return nil
}
