package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "garden_planner"

// Metrics holds the Prometheus counters, histograms, and gauges for the
// planner and its Kafka pipeline.
type Metrics struct {
	// Composition metrics.
	PlanRequests        *prometheus.CounterVec // labels: outcome={ok,invalid_location,invalid_request}
	AdvisoryResolutions *prometheus.CounterVec // labels: level={city_month,representative_city,state_default,global_default}
	AdvisoryCache       *prometheus.CounterVec // labels: result={hit,miss}
	EmptyCategories     *prometheus.CounterVec // labels: category={sow,plant}
	PaddedCategories    *prometheus.CounterVec // labels: category={sow,plant}
	ComposeDuration     prometheus.Histogram

	// Pipeline metrics.
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// NewUnregisteredMetrics creates Metrics that are never exported, for
// one-shot CLI commands.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PlanRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_requests_total",
			Help:      "Plan compositions by outcome.",
		}, []string{"outcome"}),
		AdvisoryResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advisory_resolutions_total",
			Help:      "Advisory lookups by the fallback level that answered.",
		}, []string{"level"}),
		AdvisoryCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advisory_cache_total",
			Help:      "Advisory cache lookups by result.",
		}, []string{"result"}),
		EmptyCategories: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_empty_categories_total",
			Help:      "Plans with no candidates at all for a category.",
		}, []string{"category"}),
		PaddedCategories: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_padded_categories_total",
			Help:      "Plans whose category had to be padded with repeats.",
		}, []string{"category"}),
		ComposeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compose_duration_seconds",
			Help:      "Duration of a single plan composition.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "Total plan requests read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_produced_total",
			Help:      "Total weekly plans written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_errors_total",
			Help:      "Total plan requests that could not be composed.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.PlanRequests,
		m.AdvisoryResolutions,
		m.AdvisoryCache,
		m.EmptyCategories,
		m.PaddedCategories,
		m.ComposeDuration,
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
	}
}

// CacheObserver returns a callback that counts advisory cache hits and misses.
func (m *Metrics) CacheObserver() func(hit bool) {
	return func(hit bool) {
		if hit {
			m.AdvisoryCache.WithLabelValues("hit").Inc()
			return
		}
		m.AdvisoryCache.WithLabelValues("miss").Inc()
	}
}
