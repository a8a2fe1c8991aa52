package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func sampleLine(body, name string) string {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, name+" ") {
			return line
		}
	}
	return ""
}

func TestRecordPredictionCounters(t *testing.T) {
	Register()

	before := testutil.ToFloat64(PredictionsTotal.WithLabelValues(StatusSuccess, InputTypeText))
	RecordPrediction(75, 120*time.Millisecond, StatusSuccess, InputTypeText)
	after := testutil.ToFloat64(PredictionsTotal.WithLabelValues(StatusSuccess, InputTypeText))
	assert.Equal(t, before+1, after)

	beforeFail := testutil.ToFloat64(PredictionsTotal.WithLabelValues(StatusFailure, InputTypeURL))
	RecordPrediction(0, 5*time.Millisecond, StatusFailure, InputTypeURL)
	afterFail := testutil.ToFloat64(PredictionsTotal.WithLabelValues(StatusFailure, InputTypeURL))
	assert.Equal(t, beforeFail+1, afterFail)
}

func TestConfidenceObservedOnlyOnSuccess(t *testing.T) {
	Register()

	confBefore := sampleLine(scrape(t), "prediction_confidence_count")
	durBefore := sampleLine(scrape(t), "inference_duration_seconds_count")

	RecordPrediction(0, time.Millisecond, StatusFailure, InputTypeText)
	body := scrape(t)
	assert.Equal(t, confBefore, sampleLine(body, "prediction_confidence_count"),
		"failures must not feed the confidence histogram")
	assert.NotEqual(t, durBefore, sampleLine(body, "inference_duration_seconds_count"),
		"failures still feed the duration histogram")

	RecordPrediction(80, time.Millisecond, StatusSuccess, InputTypeText)
	assert.NotEqual(t, confBefore, sampleLine(scrape(t), "prediction_confidence_count"))
}

func TestHandlerExposition(t *testing.T) {
	Register()
	RecordPrediction(55, 30*time.Millisecond, StatusSuccess, InputTypeText)

	body := scrape(t)
	assert.Contains(t, body, "# TYPE predictions_total counter")
	assert.Contains(t, body, `predictions_total{input_type="text",status="success"}`)
	assert.Contains(t, body, "# TYPE prediction_confidence histogram")
	assert.Contains(t, body, `prediction_confidence_bucket{le="50"}`)
	assert.Contains(t, body, "# TYPE inference_duration_seconds histogram")
	assert.Contains(t, body, `inference_duration_seconds_bucket{le="0.25"}`)
	assert.Contains(t, body, "http_requests_in_flight")

	// the dedicated registry keeps runtime collectors out
	assert.NotContains(t, body, "go_goroutines")
	assert.NotContains(t, body, "process_cpu_seconds_total")
}
