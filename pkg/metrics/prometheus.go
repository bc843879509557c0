package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	analysesTotal *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	lastClose     *prometheus.GaugeVec
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		analysesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chartsense_analyses_total",
				Help: "Total number of completed analyses by signal class",
			},
			[]string{"signal"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chartsense_errors_total",
				Help: "Total number of analysis errors by kind",
			},
			[]string{"kind"},
		),
		lastClose: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "chartsense_last_close",
				Help: "Last analyzed closing price for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chartsense_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordAnalysis records a completed analysis and its signal class.
func (r *Recorder) RecordAnalysis(signal string) {
	r.analysesTotal.WithLabelValues(signal).Inc()
}

// RecordError records an error occurrence by kind.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastClose records the last analyzed close for a symbol.
func (r *Recorder) RecordLastClose(symbol string, price float64) {
	r.lastClose.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
