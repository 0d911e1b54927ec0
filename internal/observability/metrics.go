package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the analysis
// pipeline.
type Metrics struct {
	Requests           *prometheus.CounterVec   // labels: tool={events,geo}, outcome={ok,error}
	GenerationCalls    *prometheus.CounterVec   // labels: stage={translate,research,extract,geo_extract}, outcome={ok,error}
	GenerationDuration *prometheus.HistogramVec // labels: stage
	TokensConsumed     *prometheus.CounterVec   // labels: direction={input,output}
	EventsAccepted     prometheus.Histogram
}

func newMetrics() *Metrics {
	return &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_lens",
			Name:      "requests_total",
			Help:      "Analysis requests by tool and outcome.",
		}, []string{"tool", "outcome"}),
		GenerationCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_lens",
			Name:      "generation_calls_total",
			Help:      "Generation service calls by stage and outcome.",
		}, []string{"stage", "outcome"}),
		GenerationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "disaster_lens",
			Name:      "generation_duration_seconds",
			Help:      "Duration of one generation service round trip.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"stage"}),
		TokensConsumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_lens",
			Name:      "tokens_total",
			Help:      "Tokens reported by the generation service.",
		}, []string{"direction"}),
		EventsAccepted: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "disaster_lens",
			Name:      "events_accepted",
			Help:      "Number of events in accepted record sets.",
			Buckets:   []float64{10, 20, 30, 50, 75, 100},
		}),
	}
}

// NewMetrics creates and registers all metrics with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Requests,
		m.GenerationCalls,
		m.GenerationDuration,
		m.TokensConsumed,
		m.EventsAccepted,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
