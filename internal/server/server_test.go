package server

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thepetra/petra/internal/metrics"
	"github.com/thepetra/petra/internal/server/ratelimit"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		database Pinger
		status   string
		db       string
	}{
		{"no database", nil, "ok", "disabled"},
		{"database up", failingPinger{}, "ok", "ok"},
		{"database down", failingPinger{err: errBoom}, "degraded", "unreachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, func(o *Options) { o.Database = tt.database })

			w := env.do(http.MethodGet, "/health", nil, nil)
			require.Equal(t, http.StatusOK, w.Code)
			body := decode[map[string]string](t, w)
			assert.Equal(t, tt.status, body["status"])
			assert.Equal(t, tt.db, body["database"])
		})
	}
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodOptions, "/recommendations", nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://thepetra.in", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Admin-Key")

	w = env.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, "https://thepetra.in", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DefaultOrigin(t *testing.T) {
	env := newTestEnv(t, func(o *Options) { o.Config.AllowedOrigin = "" })

	w := env.do(http.MethodOptions, "/guides", nil, nil)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, func(o *Options) {
		o.RateLimit = &ratelimit.Config{
			Enabled: true,
			EndpointConfigs: []ratelimit.EndpointConfig{
				{Path: "/leads/", Method: http.MethodPost, Limit: 2, Window: time.Hour, Burst: 2},
			},
		}
	})

	for i := 0; i < 2; i++ {
		w := env.do(http.MethodPost, "/leads/waitlist", "{}", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	// The prefix config shares its bucket with the other lead forms.
	w := env.do(http.MethodPost, "/leads/pet-finder", "{}", nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	body := decode[map[string]any](t, w)
	assert.Equal(t, "rate_limit_exceeded", body["error"])
	assert.EqualValues(t, 2, body["limit"])

	// Unrelated routes fall back to the default limit.
	w = env.do(http.MethodGet, "/assessment/questions", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestMetrics(t *testing.T) {
	env := newTestEnv(t)
	counter := metrics.HTTPRequests.WithLabelValues("GET /assessments/{id}", "GET", "400")
	before := testutil.ToFloat64(counter)

	w := env.do(http.MethodGet, "/assessments/not-a-uuid", nil, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.do(http.MethodGet, "/health", nil, nil)

	w := env.do(http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "petra_http_requests_total"))
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)
	counter := metrics.HTTPRequests.WithLabelValues("unmatched", "GET", "404")
	before := testutil.ToFloat64(counter)

	w := env.do(http.MethodGet, "/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodDelete, "/guides", nil, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestDecodeJSON_Errors(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/recommendations", "{not json", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, w.Body.String())

	big := `{"concern":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	w = env.do(http.MethodPost, "/recommendations", big, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
