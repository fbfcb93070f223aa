package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcome label values.
const (
	OutcomeSuccess           = "success"
	OutcomeInvalidInput      = "invalid_input"
	OutcomeMissingCredential = "missing_credential"
	OutcomeNetworkError      = "network_error"
	OutcomeProtocolError     = "protocol_error"
	OutcomeDecodeError       = "decode_error"
)

// Metrics holds the Prometheus collectors for weather lookups.
type Metrics struct {
	FetchRequests     *prometheus.CounterVec
	FetchDuration     prometheus.Histogram
	HistorySaveErrors prometheus.Counter
	PublishErrors     prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.HistorySaveErrors,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather",
			Name:      "fetch_total",
			Help:      "Weather lookups by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a single upstream weather lookup.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		HistorySaveErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather",
			Name:      "history_save_errors_total",
			Help:      "Lookups that could not be written to history.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather",
			Name:      "publish_errors_total",
			Help:      "Lookups that could not be published.",
		}),
	}
}
