package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/couchcryptid/garden-planner-service/internal/config"
	"github.com/couchcryptid/garden-planner-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapMessageToRawMessage(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("key-1"),
		Value:     []byte(`{"state":"TAS","city":"Hobart"}`),
		Topic:     "plan-requests",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("mobile")},
		},
	}

	raw := mapMessageToRawMessage(msg)

	assert.Equal(t, []byte("key-1"), raw.Key)
	assert.JSONEq(t, `{"state":"TAS","city":"Hobart"}`, string(raw.Value))
	assert.Equal(t, "plan-requests", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "mobile", raw.Headers["source"])
	assert.Nil(t, raw.Commit)
}

func TestMapMessageToRawMessage_NoHeaders(t *testing.T) {
	raw := mapMessageToRawMessage(kafkago.Message{Value: []byte("{}")})
	assert.NotNil(t, raw.Headers)
	assert.Empty(t, raw.Headers)
}

func TestToKafkaMessage(t *testing.T) {
	msg := toKafkaMessage(domain.OutputMessage{
		Key:   []byte("plan-0123456789abcdef"),
		Value: []byte(`{"id":"plan-0123456789abcdef"}`),
		Headers: map[string]string{
			"zone":         "cool temperate",
			"month":        "july",
			"generated_at": "2026-07-01T00:00:00Z",
		},
	})

	assert.Equal(t, []byte("plan-0123456789abcdef"), msg.Key)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "generated_at", msg.Headers[0].Key)
	assert.Equal(t, "month", msg.Headers[1].Key)
	assert.Equal(t, []byte("july"), msg.Headers[1].Value)
	assert.Equal(t, "zone", msg.Headers[2].Key)
	assert.Equal(t, []byte("cool temperate"), msg.Headers[2].Value)
}

func TestWriter_LoadBatchEmpty(t *testing.T) {
	w := NewWriter(&config.Config{KafkaBrokers: []string{"localhost:9092"}, KafkaSinkTopic: "weekly-plans"}, nil)
	t.Cleanup(func() { _ = w.Close() })

	assert.NoError(t, w.LoadBatch(context.Background(), nil))
}
