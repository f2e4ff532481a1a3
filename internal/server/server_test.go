package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/taxview/internal/config"
	"github.com/rgehrsitz/taxview/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, cfg config.ServerConfig) *Server {
	t.Helper()
	store, err := NewFactsStore(defaultFacts(), nil)
	require.NoError(t, err)
	return New(cfg, store, nil)
}

func get(t *testing.T, s *Server, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestCalculateEndpoint(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{})

	rec := get(t, s, "/api?income=50000")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var payload output.Payload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	assert.Equal(t, 2024, payload.TaxYear)
	assert.Equal(t, "single", payload.FilingStatus)
	assert.Equal(t, 14600.0, payload.StandardDeduction)
	assert.Equal(t, 50000.0, payload.Income)
	assert.Equal(t, 35400.0, payload.TaxableIncome)
	assert.Equal(t, 4016.0, payload.TotalTaxOwed)
	assert.InDelta(t, 0.08032, payload.EffectiveTaxRate, 1e-9)
	assert.Equal(t, 0.12, payload.MarginalTaxRate)

	require.Len(t, payload.BracketDetails, 2)
	assert.Equal(t, 0.10, payload.BracketDetails[0].BracketRate)
	assert.Equal(t, 11600.0, payload.BracketDetails[0].IncomeInThisBracket)
	assert.Equal(t, 1160.0, payload.BracketDetails[0].TaxForThisBracket)
	assert.Equal(t, 11600.0, payload.BracketDetails[1].StartingRange)
	require.NotNil(t, payload.BracketDetails[1].EndingRange)
	assert.Equal(t, 47150.0, *payload.BracketDetails[1].EndingRange)
	assert.Equal(t, 23800.0, payload.BracketDetails[1].IncomeInThisBracket)
	assert.Equal(t, 2856.0, payload.BracketDetails[1].TaxForThisBracket)
}

func TestCalculateEndpoint_EmptyIncome(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{})

	rec := get(t, s, "/api?income=")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bracketDetails":[]`)
	assert.Contains(t, rec.Body.String(), `"totalTaxOwed":0`)
}

func TestCalculateEndpoint_TopBracketHasNullEnd(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{})

	rec := get(t, s, "/api?income=1000000")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload output.Payload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.BracketDetails, 7)
	assert.Nil(t, payload.BracketDetails[6].EndingRange)
	assert.Equal(t, 0.37, payload.MarginalTaxRate)
}

func TestCalculateEndpoint_Rejections(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{})

	tests := []struct {
		target  string
		message string
	}{
		{"/api", "Missing income parameter"},
		{"/api?income=-5", "Income must be a non-negative number"},
		{"/api?income=abc", "Income must be a non-negative number"},
		{"/api/chart", "Missing income parameter"},
		{"/api/chart?income=x", "Income must be a non-negative number"},
		{"/api?income=1e-3000000", "Income must be a non-negative number"},
		{"/api/chart?income=1e-3000000", "Income must be a non-negative number"},
		{"/api?income=1e999999", "Income must be a non-negative number"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, s, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.message), rec.Body.String())
		})
	}
}

func TestChartEndpoint(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{})

	rec := get(t, s, "/api/chart?income=50000")
	require.Equal(t, http.StatusOK, rec.Code)

	var chart output.StackedBarChart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &chart))
	assert.Equal(t, []string{"10%", "12%"}, chart.Labels)
	require.Len(t, chart.Datasets, 2)
	assert.Equal(t, "Tax Paid", chart.Datasets[0].Label)
	assert.Equal(t, []float64{1160, 2856}, chart.Datasets[0].Data)
	assert.Equal(t, "Take-Home Income", chart.Datasets[1].Label)
	assert.Equal(t, []float64{10440, 20944}, chart.Datasets[1].Data)
	assert.InDelta(t, 35400*1.15, chart.SuggestedMax, 1e-6)

	rec = get(t, s, "/api/chart?income=1000")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &chart))
	assert.True(t, chart.Empty(), "No taxable income should clear the chart")
}

func TestStaticAssets(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{})

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{"/", "text/html", "<title>TaxView</title>"},
		{"/css/style.css", "text/css", "--tax"},
		{"/js/main.js", "text/javascript", "/api/chart"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, s, tt.path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), tt.contentType)
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{})

	for _, path := range []string{"/nope", "/index.html", "/js/other.js"} {
		rec := get(t, s, path)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "404 Not Found", rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{})

	rec := get(t, s, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","taxYear":2024,"filingStatus":"single"}`, rec.Body.String())
}

func TestCorrelationID(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{})

	rec := get(t, s, "/healthz")
	assert.Len(t, rec.Header().Get(CorrelationIDHeader), 36, "Should generate a UUID")

	rec = get(t, s, "/healthz", CorrelationIDHeader, "req-123")
	assert.Equal(t, "req-123", rec.Header().Get(CorrelationIDHeader))
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{AllowedOrigins: []string{"http://localhost:3000"}})

	rec := get(t, s, "/api?income=1", "Origin", "http://localhost:3000")
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = get(t, s, "/api?income=1", "Origin", "http://evil.example")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	plain := newTestServer(t, config.ServerConfig{})
	rec = get(t, plain, "/api?income=1", "Origin", "http://localhost:3000")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newTestServer(t, config.ServerConfig{Port: 0})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRun_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	s := newTestServer(t, config.ServerConfig{Port: port})

	err = s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}
