package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/blend-service/internal/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readinessBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func serveReadiness(t *testing.T, h *HealthHandler) (int, readinessBody) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h.Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	var body readinessBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func openBreaker() *circuitbreaker.CircuitBreaker {
	cb := circuitbreaker.New(circuitbreaker.Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Hour})
	_ = cb.Execute(context.Background(), func() error { return errors.New("down") })
	return cb
}

func TestHealthHandler_Liveness(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHealthHandler()
	h.RegisterChecker("catalog", CheckerFunc(func(context.Context) error { return errors.New("catalog is empty") }))
	h.Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	emptyCatalog := CheckerFunc(func(context.Context) error { return errors.New("catalog is empty") })
	healthy := CheckerFunc(func(context.Context) error { return nil })

	tests := []struct {
		name       string
		setup      func(h *HealthHandler)
		wantStatus int
		wantLabel  string
		wantChecks map[string]string
	}{
		{
			name:       "nothing registered",
			setup:      func(*HealthHandler) {},
			wantStatus: http.StatusOK,
			wantLabel:  "ok",
			wantChecks: map[string]string{},
		},
		{
			name: "loaded catalog and closed circuits",
			setup: func(h *HealthHandler) {
				h.RegisterChecker("catalog", healthy)
				h.RegisterCircuitBreaker("gateway", circuitbreaker.New(circuitbreaker.DefaultConfig()))
			},
			wantStatus: http.StatusOK,
			wantLabel:  "ok",
			wantChecks: map[string]string{"catalog": "ok", "gateway_circuit": "closed"},
		},
		{
			name:       "empty catalog",
			setup:      func(h *HealthHandler) { h.RegisterChecker("catalog", emptyCatalog) },
			wantStatus: http.StatusServiceUnavailable,
			wantLabel:  "degraded",
			wantChecks: map[string]string{"catalog": "catalog is empty"},
		},
		{
			name: "open logs circuit",
			setup: func(h *HealthHandler) {
				h.RegisterChecker("catalog", healthy)
				h.RegisterCircuitBreaker("mongodb_logs", openBreaker())
			},
			wantStatus: http.StatusServiceUnavailable,
			wantLabel:  "degraded",
			wantChecks: map[string]string{"catalog": "ok", "mongodb_logs_circuit": "open"},
		},
		{
			name: "re-registering a checker replaces it",
			setup: func(h *HealthHandler) {
				h.RegisterChecker("catalog", emptyCatalog)
				h.RegisterChecker("catalog", healthy)
			},
			wantStatus: http.StatusOK,
			wantLabel:  "ok",
			wantChecks: map[string]string{"catalog": "ok"},
		},
		{
			name: "nil registrations are ignored",
			setup: func(h *HealthHandler) {
				h.RegisterChecker("catalog", nil)
				h.RegisterCircuitBreaker("gateway", nil)
			},
			wantStatus: http.StatusOK,
			wantLabel:  "ok",
			wantChecks: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler()
			tt.setup(h)

			code, body := serveReadiness(t, h)

			assert.Equal(t, tt.wantStatus, code)
			assert.Equal(t, tt.wantLabel, body.Status)
			assert.Equal(t, tt.wantChecks, body.Checks)
		})
	}
}

func TestHealthHandler_ReadinessCheckTimeout(t *testing.T) {
	h := NewHealthHandler().WithCheckTimeout(20 * time.Millisecond)
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	h.RegisterChecker("mongodb", CheckerFunc(func(context.Context) error {
		<-release
		return nil
	}))

	start := time.Now()
	code, body := serveReadiness(t, h)

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "timeout", body.Checks["mongodb"])
}

func TestHealthHandler_WithCheckTimeoutIgnoresNonPositive(t *testing.T) {
	h := NewHealthHandler().WithCheckTimeout(0).WithCheckTimeout(-time.Second)
	assert.Equal(t, DefaultCheckTimeout, h.checkTimeout)
}
