//go:build integration

package kafka_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/photoscout/photoscout/internal/adapter/kafka"
	"github.com/photoscout/photoscout/internal/config"
	"github.com/photoscout/photoscout/internal/dispatch"
)

const testEventsTopic = "test-domain-events"

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("photoscout-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestWriterRoundTrip verifies that published envelopes arrive on the topic
// with key, value, and headers intact.
func TestWriterRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testEventsTopic)

	cfg := &config.Config{
		KafkaBrokers:     []string{broker},
		KafkaEventsTopic: testEventsTopic,
	}

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	envelopes := []dispatch.Envelope{
		{
			Key:   []byte("7"),
			Value: []byte(`{"location_id":7,"path":"/x.jpg"}`),
			Headers: map[string]string{
				"event_type":  "location.photo_attached",
				"occurred_at": "2026-05-04T08:00:00Z",
			},
		},
		{
			Key:     []byte("7"),
			Value:   []byte(`{"location_id":7}`),
			Headers: map[string]string{"event_type": "location.deleted"},
		},
	}
	require.NoError(t, writer.PublishBatch(ctx, envelopes))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		Topic:   testEventsTopic,
		GroupID: fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()

	first, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err)
	assert.Equal(t, []byte("7"), first.Key)
	assert.JSONEq(t, `{"location_id":7,"path":"/x.jpg"}`, string(first.Value))
	headers := headerMap(first)
	assert.Equal(t, "location.photo_attached", headers["event_type"])
	assert.Equal(t, "2026-05-04T08:00:00Z", headers["occurred_at"])

	second, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err)
	assert.Equal(t, "location.deleted", headerMap(second)["event_type"])
}

func headerMap(msg kafkago.Message) map[string]string {
	out := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		out[h.Key] = string(h.Value)
	}
	return out
}
