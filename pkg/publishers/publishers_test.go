package publishers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skywatch-ops/riskfeed/internal/domain"
	"github.com/skywatch-ops/riskfeed/pkg/publishers"
)

func writeSinksFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sinks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func sampleEvent() publishers.Event {
	return publishers.NewEvent(domain.RegionAnalysis{
		Region:          "Black Sea",
		RiskLevel:       domain.RiskHigh,
		Summary:         "sample",
		Recommendations: []string{"Continue monitoring regional developments"},
	})
}

func TestLoadSinksWebhookDefaults(t *testing.T) {
	path := writeSinksFile(t, `
sinks:
  - id: dashboard-hook
    type: webhook
    webhook:
      url: https://dashboard.example.com/hooks/risk
`)

	set, err := publishers.LoadSinks(path)
	require.NoError(t, err)

	cfg, ok := set.ByID("dashboard-hook")
	require.True(t, ok)
	require.Equal(t, 5, cfg.Webhook.TimeoutSeconds)
	require.Len(t, set.Enabled(), 1)
}

func TestLoadSinksRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing id", "sinks:\n  - type: webhook\n    webhook:\n      url: https://x\n"},
		{"unknown type", "sinks:\n  - id: x\n    type: smoke-signal\n"},
		{"webhook without url", "sinks:\n  - id: x\n    type: webhook\n    webhook: {}\n"},
		{"queue without provider config", "sinks:\n  - id: x\n    type: queue\n    queue:\n      provider: aws-sqs\n"},
		{"unknown queue provider", "sinks:\n  - id: x\n    type: queue\n    queue:\n      provider: carrier-pigeon\n"},
		{"duplicate ids", "sinks:\n  - id: x\n    type: webhook\n    webhook:\n      url: https://a\n  - id: x\n    type: webhook\n    webhook:\n      url: https://b\n"},
		{"no sinks at all", "sinks: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := publishers.LoadSinks(writeSinksFile(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestEnabledFiltering(t *testing.T) {
	path := writeSinksFile(t, `
sinks:
  - id: on
    type: webhook
    webhook:
      url: https://a
  - id: off
    type: webhook
    enabled: false
    webhook:
      url: https://b
`)

	set, err := publishers.LoadSinks(path)
	require.NoError(t, err)
	require.Len(t, set.All(), 2)

	enabled := set.Enabled()
	require.Len(t, enabled, 1)
	require.Equal(t, "on", enabled[0].ID)
}

func webhookSink(url string) publishers.SinkConfig {
	return publishers.SinkConfig{
		ID:      "hook",
		Type:    publishers.TypeWebhook,
		Webhook: &publishers.WebhookConfig{URL: url, TimeoutSeconds: 2},
	}
}

func TestWebhookDeliversEvent(t *testing.T) {
	var received publishers.Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	pubs, err := publishers.BuildAll(context.Background(), []publishers.SinkConfig{webhookSink(srv.URL)}, nil)
	require.NoError(t, err)
	require.Len(t, pubs, 1)

	require.NoError(t, pubs[0].Publish(context.Background(), sampleEvent()))
	require.Equal(t, "Black Sea", received.Region)
	require.Equal(t, domain.RiskHigh, received.RiskLevel)
}

func TestWebhookRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	pubs, err := publishers.BuildAll(context.Background(), []publishers.SinkConfig{webhookSink(srv.URL)}, nil)
	require.NoError(t, err)

	err = pubs[0].Publish(context.Background(), sampleEvent())
	require.ErrorContains(t, err, "502")
}

func TestBuildAllFailsOnUnsupportedSink(t *testing.T) {
	cfgs := []publishers.SinkConfig{{ID: "x", Type: "smoke-signal"}}

	_, err := publishers.BuildAll(context.Background(), cfgs, nil)
	require.ErrorContains(t, err, "smoke-signal")
}

type stubPublisher struct {
	id  string
	err error
	got int
}

func (s *stubPublisher) ID() string   { return s.id }
func (s *stubPublisher) Type() string { return "stub" }

func (s *stubPublisher) Publish(context.Context, publishers.Event) error {
	s.got++
	return s.err
}

func TestPublishAllCountsDeliveries(t *testing.T) {
	ok := &stubPublisher{id: "ok"}
	bad := &stubPublisher{id: "bad", err: errors.New("sink down")}

	delivered := publishers.PublishAll(context.Background(), []publishers.Publisher{ok, bad, nil}, sampleEvent(), nil)

	require.Equal(t, 1, delivered)
	require.Equal(t, 1, ok.got)
	require.Equal(t, 1, bad.got, "a failing sink is still attempted")
}
