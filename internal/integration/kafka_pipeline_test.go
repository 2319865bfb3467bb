//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/garden-planner-service/internal/adapter/kafka"
	"github.com/couchcryptid/garden-planner-service/internal/composer"
	"github.com/couchcryptid/garden-planner-service/internal/config"
	"github.com/couchcryptid/garden-planner-service/internal/domain"
	"github.com/couchcryptid/garden-planner-service/internal/observability"
	"github.com/couchcryptid/garden-planner-service/internal/pipeline"
	"github.com/couchcryptid/garden-planner-service/internal/reference"
)

const (
	testSourceTopic = "test-plan-requests"
	testSinkTopic   = "test-weekly-plans"
)

// planMessage holds a deserialized message read from the sink topic.
type planMessage struct {
	Recommendation composer.Recommendation
	Key            string
	Headers        map[string]string
}

// readPlan reads a single message from the sink consumer and deserializes it.
func readPlan(ctx context.Context, t *testing.T, consumer *kafkago.Reader) planMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var rec composer.Recommendation
	require.NoError(t, json.Unmarshal(msg.Value, &rec), "unmarshal sink message")

	return planMessage{Recommendation: rec, Key: string(msg.Key), Headers: headers}
}

func testConfig(broker, group string) *config.Config {
	return &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("%s-%d", group, time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}
}

func newComposer(t *testing.T) *composer.Composer {
	t.Helper()
	tables, err := reference.Load()
	require.NoError(t, err)
	return composer.New(tables, composer.Options{MinPerBucket: 2}, discardLogger(), observability.NewMetricsForTesting())
}

func sinkConsumer(t *testing.T, broker string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

func publish(ctx context.Context, t *testing.T, broker string, msgs ...kafkago.Message) {
	t.Helper()
	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: testSourceTopic}
	t.Cleanup(func() { _ = producer.Close() })
	require.NoError(t, producer.WriteMessages(ctx, msgs...))
}

func requestMessage(t *testing.T, key string, req composer.PlanRequest) kafkago.Message {
	t.Helper()
	payload, err := json.Marshal(req)
	require.NoError(t, err)
	return kafkago.Message{Key: []byte(key), Value: payload}
}

// TestKafkaReaderWriter verifies the adapter layer: kafka.Reader and
// kafka.Writer round-trip a plan through Kafka.
func TestKafkaReaderWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-reader")

	msg := requestMessage(t, "test-key", composer.PlanRequest{State: "TAS", City: "Hobart", Month: "july"})
	publish(ctx, t, broker, msg)

	// Retry because the consumer group may need time to rebalance before
	// partitions are assigned and messages become available.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	var batch []domain.RawMessage
	for len(batch) == 0 {
		var err error
		batch, err = reader.ExtractBatch(ctx, 1)
		require.NoError(t, err)
		if ctx.Err() != nil {
			t.Fatal("timed out waiting for message from source topic")
		}
	}
	require.Len(t, batch, 1)
	raw := batch[0]
	assert.Equal(t, []byte("test-key"), raw.Key)
	assert.Equal(t, msg.Value, raw.Value)
	assert.Equal(t, testSourceTopic, raw.Topic)
	require.NotNil(t, raw.Commit, "commit callback should be set")
	require.NoError(t, raw.Commit(ctx))

	out, err := pipeline.NewTransformer(newComposer(t), discardLogger()).Transform(ctx, raw)
	require.NoError(t, err)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	require.NoError(t, writer.LoadBatch(ctx, []domain.OutputMessage{out}))

	pm := readPlan(ctx, t, sinkConsumer(t, broker))
	assert.Equal(t, string(out.Key), pm.Key)
	assert.Equal(t, "cool temperate", pm.Headers["zone"])
	assert.Equal(t, "july", pm.Headers["month"])
	_, err = time.Parse(time.RFC3339, pm.Headers["generated_at"])
	assert.NoError(t, err, "generated_at should be valid RFC3339")

	assert.Equal(t, "Hobart", pm.Recommendation.Location.City)
	assert.Len(t, pm.Recommendation.Plan.Weeks, 4)
}

// TestPipelineEndToEnd wires Reader, PlanTransformer and Writer against a
// real broker and checks every request yields a plan.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-pipeline")

	requests := []composer.PlanRequest{
		{State: "TAS", City: "Hobart", Month: "july"},
		{State: "VIC", City: "Geelong", Month: "march"},
		{State: "NSW", City: "Thredbo", Month: "july"},
		{State: "Queensland", City: "cairns", Month: "may"},
		{State: "NT", City: "Alice Springs", Month: "jan"},
	}
	msgs := make([]kafkago.Message, 0, len(requests))
	for i, req := range requests {
		msgs = append(msgs, requestMessage(t, fmt.Sprintf("request-%d", i), req))
	}
	publish(ctx, t, broker, msgs...)

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	p := pipeline.New(reader, pipeline.NewTransformer(newComposer(t), discardLogger()), writer,
		discardLogger(), observability.NewMetricsForTesting(), 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := sinkConsumer(t, broker)
	byZone := map[string]int{}
	for range requests {
		pm := readPlan(ctx, t, consumer)
		byZone[pm.Headers["zone"]]++
		assert.Equal(t, pm.Recommendation.ID, pm.Key)
		for _, w := range pm.Recommendation.Plan.Weeks {
			assert.GreaterOrEqual(t, len(w.Sow), 2)
		}
	}

	pipelineCancel()
	require.NoError(t, <-errCh)

	assert.Equal(t, map[string]int{
		"cool temperate": 2,
		"alpine":         1,
		"tropical":       1,
		"arid":           1,
	}, byZone)
}

// TestPipelineTransformError verifies that a poison message and an unknown
// location are skipped while valid requests still flow.
func TestPipelineTransformError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-poison")

	publish(ctx, t, broker,
		kafkago.Message{Key: []byte("bad"), Value: []byte("not-json{{{")},
		requestMessage(t, "nowhere", composer.PlanRequest{State: "TAS", City: "Atlantis"}),
		requestMessage(t, "good", composer.PlanRequest{State: "SA", City: "Adelaide", Month: "october"}),
	)

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	p := pipeline.New(reader, pipeline.NewTransformer(newComposer(t), discardLogger()), writer,
		discardLogger(), observability.NewMetricsForTesting(), 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := sinkConsumer(t, broker)
	pm := readPlan(ctx, t, consumer)
	assert.Equal(t, domain.StateSA, pm.Recommendation.Location.State)
	assert.Equal(t, "warm temperate", pm.Headers["zone"])

	// Verify no second message arrives (the bad requests were skipped).
	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err := consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no second message on sink topic")

	pipelineCancel()
	require.NoError(t, <-errCh)
}
