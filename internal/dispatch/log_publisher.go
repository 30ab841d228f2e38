package dispatch

import (
	"context"
	"log/slog"
)

// LogPublisher writes envelopes to the log instead of an external system.
// Used when Kafka publishing is disabled.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a log-only publisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishBatch(_ context.Context, envelopes []Envelope) error {
	for _, env := range envelopes {
		p.logger.Info("domain event",
			"event_type", env.Headers["event_type"],
			"key", string(env.Key),
			"payload", string(env.Value),
		)
	}
	return nil
}
