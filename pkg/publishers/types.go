// Package publishers pushes completed region risk analyses to configured
// sinks (HTTP webhooks and cloud queues) so dashboards can subscribe to
// updates instead of polling. Publish failures never affect the analysis
// result itself.
package publishers

import (
	"context"
	"time"

	"github.com/skywatch-ops/riskfeed/internal/domain"
	"github.com/skywatch-ops/riskfeed/internal/logger"
)

// Logger is the logging surface publishers report through.
type Logger = logger.Logger

// Event is one published analysis snapshot.
type Event struct {
	Region     string                `json:"region"`
	RiskLevel  domain.RiskLevel      `json:"risk_level"`
	Summary    string                `json:"summary"`
	ComputedAt time.Time             `json:"computed_at"`
	Analysis   domain.RegionAnalysis `json:"analysis"`
}

// NewEvent wraps an analysis into a publishable event.
func NewEvent(analysis domain.RegionAnalysis) Event {
	return Event{
		Region:     analysis.Region,
		RiskLevel:  analysis.RiskLevel,
		Summary:    analysis.Summary,
		ComputedAt: time.Now(),
		Analysis:   analysis,
	}
}

// Publisher delivers events to one configured sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return logger.NopLogger{}
	}
	return log
}

// PublishAll fans the event out to every publisher, logging failures and
// returning the count delivered.
func PublishAll(ctx context.Context, pubs []Publisher, evt Event, log Logger) int {
	log = ensureLogger(log)

	delivered := 0
	for _, pub := range pubs {
		if pub == nil {
			continue
		}
		if err := pub.Publish(ctx, evt); err != nil {
			log.WarnObj("publisher delivery failed", "publisher_error", map[string]any{
				"publisher": pub.ID(),
				"type":      pub.Type(),
				"region":    evt.Region,
				"error":     err.Error(),
			})
			continue
		}
		delivered++
	}
	return delivered
}
