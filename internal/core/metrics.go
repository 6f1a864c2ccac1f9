package core

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRecorder receives the outcome and latency of every service operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, op string, success bool, duration time.Duration)
}

// BookSizeRecorder is implemented by recorders that also track how large the
// address book is after each committed change.
type BookSizeRecorder interface {
	ObserveBookSize(stalls, reviews int)
}

type noopMetrics struct{}

func (noopMetrics) Observe(context.Context, string, bool, time.Duration) {}

// PrometheusMetricsRecorder exports operation counters, latency histograms
// and book size gauges.
type PrometheusMetricsRecorder struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	stalls     prometheus.Gauge
	reviews    prometheus.Gauge
}

// NewPrometheusMetricsRecorder registers the collectors with reg.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer) (*PrometheusMetricsRecorder, error) {
	r := &PrometheusMetricsRecorder{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "foodwhere",
			Name:      "operations_total",
			Help:      "Address book operations by name and result.",
		}, []string{"op", "result"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "foodwhere",
			Name:      "operation_duration_seconds",
			Help:      "Address book operation latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"op"}),
		stalls: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "foodwhere",
			Name:      "stalls",
			Help:      "Stalls currently in the address book.",
		}),
		reviews: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "foodwhere",
			Name:      "reviews",
			Help:      "Reviews currently in the address book.",
		}),
	}
	for _, c := range []prometheus.Collector{r.operations, r.latency, r.stalls, r.reviews} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Observe implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) Observe(_ context.Context, op string, success bool, duration time.Duration) {
	result := "success"
	if !success {
		result = "error"
	}
	r.operations.WithLabelValues(op, result).Inc()
	r.latency.WithLabelValues(op).Observe(duration.Seconds())
}

// ObserveBookSize implements BookSizeRecorder.
func (r *PrometheusMetricsRecorder) ObserveBookSize(stalls, reviews int) {
	r.stalls.Set(float64(stalls))
	r.reviews.Set(float64(reviews))
}
