package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prediction labels.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"

	InputTypeText = "text"
	InputTypeURL  = "url"
)

var (
	once sync.Once

	// registry is dedicated to this service so /metrics carries only
	// its own families.
	registry = prometheus.NewRegistry()

	// PredictionsTotal counts analysis calls by outcome and input type.
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "predictions_total",
		Help: "Total number of predictions made by the ML service",
	}, []string{"status", "input_type"})

	// PredictionConfidence is the distribution of returned scores.
	PredictionConfidence = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "prediction_confidence",
		Help:    "Distribution of prediction confidence scores (0-100)",
		Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})

	// InferenceDurationSeconds is wall time per analysis call.
	InferenceDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "inference_duration_seconds",
		Help:    "Time taken for model inference in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	})

	// HTTPRequestsTotal counts handled requests by method, path and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests handled, labeled by method, path and status code",
	}, []string{"method", "path", "status"})

	// HTTPRequestsInFlight is the number of requests currently being served.
	HTTPRequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of in-flight HTTP requests",
	})
)

// Register registers all service metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		registry.MustRegister(
			PredictionsTotal,
			PredictionConfidence,
			InferenceDurationSeconds,
			HTTPRequestsTotal,
			HTTPRequestsInFlight,
		)
	})
}

// RecordPrediction records one analysis call. Confidence is only
// observed for successes; duration is observed either way.
func RecordPrediction(score int, duration time.Duration, status, inputType string) {
	PredictionsTotal.WithLabelValues(status, inputType).Inc()
	if status == StatusSuccess {
		PredictionConfidence.Observe(float64(score))
	}
	InferenceDurationSeconds.Observe(duration.Seconds())
}

// Handler serves the registry in Prometheus exposition format.
func Handler() http.Handler {
	Register()
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
