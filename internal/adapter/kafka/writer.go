package kafka

import (
	"context"
	"log/slog"
	"sort"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/photoscout/photoscout/internal/config"
	"github.com/photoscout/photoscout/internal/dispatch"
)

// Writer produces domain event envelopes to a Kafka topic.
// It implements dispatch.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured events topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaEventsTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishBatch writes all envelopes in a single WriteMessages call so a
// dispatched entity buffer lands atomically from the producer's side.
func (w *Writer) PublishBatch(ctx context.Context, envelopes []dispatch.Envelope) error {
	if len(envelopes) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(envelopes))
	for i, env := range envelopes {
		msgs[i] = toMessage(env)
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// toMessage converts an envelope into a Kafka message. Header order is made
// deterministic by sorting keys.
func toMessage(env dispatch.Envelope) kafkago.Message {
	keys := make([]string, 0, len(env.Headers))
	for k := range env.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	headers := make([]kafkago.Header, len(keys))
	for i, k := range keys {
		headers[i] = kafkago.Header{Key: k, Value: []byte(env.Headers[k])}
	}

	return kafkago.Message{
		Key:     env.Key,
		Value:   env.Value,
		Headers: headers,
	}
}
