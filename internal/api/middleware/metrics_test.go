package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/packwise/packwise/internal/api/middleware"
)

func newTestMetrics(t *testing.T) (*middleware.Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	m, err := middleware.NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m.Data
			}
		}
	}
	t.Fatalf("metric %s not recorded", name)
	return nil
}

func durationPoints(t *testing.T, reader *sdkmetric.ManualReader) []metricdata.HistogramDataPoint[float64] {
	t.Helper()
	hist, ok := collect(t, reader, "http.server.request.duration").(metricdata.Histogram[float64])
	require.True(t, ok)
	return hist.DataPoints
}

func TestNewMetrics_GlobalProvider(t *testing.T) {
	m, err := middleware.NewMetrics(nil)
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	m, reader := newTestMetrics(t)

	r := chi.NewRouter()
	r.Use(m.Middleware())
	r.Get("/v1/me/trips/{tripId}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"trp_123"}`))
	})

	for _, id := range []string{"trp_1", "trp_2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me/trips/"+id, http.NoBody))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	points := durationPoints(t, reader)
	require.Len(t, points, 1, "distinct IDs share one series")
	assert.Equal(t, uint64(2), points[0].Count)

	route, _ := points[0].Attributes.Value("http.route")
	assert.Equal(t, "/v1/me/trips/{tripId}", route.AsString())
	method, _ := points[0].Attributes.Value("http.request.method")
	assert.Equal(t, http.MethodGet, method.AsString())
	status, _ := points[0].Attributes.Value("http.response.status_code")
	assert.Equal(t, int64(http.StatusOK), status.AsInt64())
	_, hasErr := points[0].Attributes.Value("error.type")
	assert.False(t, hasErr)

	size, ok := collect(t, reader, "http.server.response.body.size").(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, size.DataPoints, 1)
	assert.Equal(t, int64(2*len(`{"id":"trp_123"}`)), size.DataPoints[0].Sum)
}

func TestMetrics_StatusLabels(t *testing.T) {
	tests := []struct {
		name      string
		write     func(w http.ResponseWriter)
		status    int64
		errorType string
	}{
		{"implicit ok", func(w http.ResponseWriter) { _, _ = w.Write([]byte("ok")) }, 200, ""},
		{"client error", func(w http.ResponseWriter) { w.WriteHeader(http.StatusBadRequest) }, 400, ""},
		{"server error", func(w http.ResponseWriter) { w.WriteHeader(http.StatusServiceUnavailable) }, 503, "Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, reader := newTestMetrics(t)
			h := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { tt.write(w) }))

			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/plans", http.NoBody))

			points := durationPoints(t, reader)
			require.Len(t, points, 1)
			status, _ := points[0].Attributes.Value("http.response.status_code")
			assert.Equal(t, tt.status, status.AsInt64())

			route, _ := points[0].Attributes.Value("http.route")
			assert.Equal(t, "unmatched", route.AsString(), "no chi router in front")

			errType, ok := points[0].Attributes.Value("error.type")
			if tt.errorType == "" {
				assert.False(t, ok)
			} else {
				assert.Equal(t, tt.errorType, errType.AsString())
			}
		})
	}
}

func TestMetrics_ActiveRequestsReturnToZero(t *testing.T) {
	m, reader := newTestMetrics(t)
	h := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/v1/me/trips/trp_1", http.NoBody))

	sum, ok := collect(t, reader, "http.server.active_requests").(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Zero(t, sum.DataPoints[0].Value)
}
