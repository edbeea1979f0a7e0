package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/config"
)

func startTestServer(t *testing.T, mutate func(*config.Config)) (*httptest.Server, *http.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)
	if mutate != nil {
		mutate(cfg)
	}

	ts := httptest.NewServer(newServer(cfg, prometheus.NewRegistry()).Handler)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return ts, &http.Client{Jar: jar}
}

func TestServer_CookieKeepsSession(t *testing.T) {
	ts, client := startTestServer(t, nil)

	resp, err := client.Post(ts.URL+"/api/v1/patients", "application/json",
		strings.NewReader(`{"name":"Bob","age":40,"disease":"Flu"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sessionID := resp.Header.Get("X-Session-ID")
	require.NotEmpty(t, sessionID)

	resp, err = client.Get(ts.URL + "/api/v1/patients/count")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Total number of patients: 1", body.Message)
	assert.Equal(t, sessionID, resp.Header.Get("X-Session-ID"))
	assert.Equal(t, "1.0", resp.Header.Get("X-API-Version"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestServer_HealthAndMetrics(t *testing.T) {
	ts, client := startTestServer(t, nil)

	resp, err := client.Get(ts.URL + "/api/v1/health/live")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("X-Session-ID"))

	resp, err = client.Get(ts.URL + "/api/v1/doctors/search?name=nobody")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = client.Get(ts.URL + "/api/v1/health/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	metrics := string(raw)
	assert.Contains(t, metrics, `hospital_registry_search_results_total{result="miss"} 1`)
	assert.Contains(t, metrics, "hospital_session_active 1")
	assert.Contains(t, metrics, "hospital_http_requests_total")
}

func TestServer_MetricsDisabled(t *testing.T) {
	ts, client := startTestServer(t, func(cfg *config.Config) {
		cfg.Metrics.Enabled = false
	})

	resp, err := client.Get(ts.URL + "/api/v1/health/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_RateLimit(t *testing.T) {
	ts, client := startTestServer(t, func(cfg *config.Config) {
		cfg.RateLimit.RequestsPerSecond = 0.001
		cfg.RateLimit.Burst = 2
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := client.Get(ts.URL + "/api/v1/health/live")
		require.NoError(t, err)
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestServer_BodyLimit(t *testing.T) {
	ts, client := startTestServer(t, func(cfg *config.Config) {
		cfg.Server.MaxBodyBytes = 16
	})

	resp, err := client.Post(ts.URL+"/api/v1/doctors", "application/json",
		strings.NewReader(`{"name":"A very long doctor name","specialty":"Cardiology"}`))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}
