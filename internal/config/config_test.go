package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.ReferenceDataDir)
	assert.Equal(t, 1000, cfg.AdvisoryCacheSize)
	assert.Equal(t, 2, cfg.PlanMinPerBucket)
	assert.False(t, cfg.PipelineEnabled)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "plan-requests", cfg.KafkaSourceTopic)
	assert.Equal(t, "weekly-plans", cfg.KafkaSinkTopic)
	assert.Equal(t, "garden-planner", cfg.KafkaGroupID)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchFlushInterval)
}

func TestLoad_CustomEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("REFERENCE_DATA_DIR", dir)
	t.Setenv("ADVISORY_CACHE_SIZE", "0")
	t.Setenv("PLAN_MIN_PER_BUCKET", "3")
	t.Setenv("PIPELINE_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SOURCE_TOPIC", "custom-source")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("BATCH_FLUSH_INTERVAL", "1s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, dir, cfg.ReferenceDataDir)
	assert.Equal(t, 0, cfg.AdvisoryCacheSize)
	assert.Equal(t, 3, cfg.PlanMinPerBucket)
	assert.True(t, cfg.PipelineEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-source", cfg.KafkaSourceTopic)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 1*time.Second, cfg.BatchFlushInterval)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SHUTDOWN_TIMEOUT", "not-a-duration"},
		{"SHUTDOWN_TIMEOUT", "-1s"},
		{"BATCH_SIZE", "0"},
		{"BATCH_SIZE", "9999"},
		{"BATCH_FLUSH_INTERVAL", "not-a-duration"},
		{"LOG_LEVEL", "verbose"},
		{"LOG_FORMAT", "xml"},
		{"ADVISORY_CACHE_SIZE", "lots"},
		{"ADVISORY_CACHE_SIZE", "-1"},
		{"PLAN_MIN_PER_BUCKET", "0"},
		{"PLAN_MIN_PER_BUCKET", "11"},
		{"PLAN_MIN_PER_BUCKET", "two"},
		{"PIPELINE_ENABLED", "maybe"},
		{"REFERENCE_DATA_DIR", "/does/not/exist"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestValidate_PipelineRequiresKafkaSettings(t *testing.T) {
	cfg := &Config{
		HTTPAddr:         ":8080",
		LogLevel:         "info",
		LogFormat:        "json",
		PlanMinPerBucket: 2,
		PipelineEnabled:  true,
		KafkaBrokers:     []string{defaultBroker},
		KafkaGroupID:     "garden-planner",
	}

	err := describe(validate.Struct(cfg))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_SOURCE_TOPIC is required")
	assert.Contains(t, err.Error(), "KAFKA_SINK_TOPIC is required")

	cfg.PipelineEnabled = false
	assert.NoError(t, validate.Struct(cfg))
}
