package parserlib_test_harness

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	registry *prometheus.Registry

	// Counters
	nextConnectionID prometheus.CounterFunc
	parses           *prometheus.CounterVec

	// Gauges
	openConnections prometheus.GaugeFunc

	// Latency histograms
	parseLatency *prometheus.SummaryVec
	inputBytes   prometheus.Histogram
}

func newMetrics(s *Server) *metrics {
	m := &metrics{
		nextConnectionID: prometheus.NewCounterFunc(
			prometheus.CounterOpts{
				Name: "next_connection_id",
				Help: "number of websocket connections to this server over its lifetime",
			},
			func() float64 {
				s.mu.Lock()
				defer s.mu.Unlock()
				return float64(s.nextConnectionID)
			},
		),
		parses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parses_total",
				Help: "number of parses run, by language and outcome",
			},
			[]string{"language", "outcome"},
		),
		openConnections: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "open_connections",
				Help: "number of websocket connections currently open",
			},
			func() float64 {
				return float64(s.numConnections())
			},
		),
		parseLatency: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       "parse_latency_seconds",
				Help:       "time to parse one input",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
			[]string{"language"},
		),
		inputBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "parse_input_bytes",
				Help:    "size of parsed inputs",
				Buckets: prometheus.ExponentialBuckets(16, 4, 8),
			},
		),
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(m.nextConnectionID)
	registry.MustRegister(m.parses)
	registry.MustRegister(m.openConnections)
	registry.MustRegister(m.parseLatency)
	registry.MustRegister(m.inputBytes)
	m.registry = registry

	return m
}

func (m *metrics) observeParse(language string, ok bool, size int, duration time.Duration) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.parses.WithLabelValues(language, outcome).Inc()
	m.parseLatency.WithLabelValues(language).Observe(duration.Seconds())
	m.inputBytes.Observe(float64(size))
}
