package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/blend-service/internal/metrics"
)

func TestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const route = "/api/v1/formulations/:id/entries/:slot/estimate"

	tests := []struct {
		name        string
		timeout     time.Duration
		handler     gin.HandlerFunc
		wantStatus  int
		wantBody    string
		wantAborted float64
	}{
		{
			name:       "estimate finishes in time",
			timeout:    time.Second,
			handler:    func(c *gin.Context) { c.String(http.StatusOK, "estimated") },
			wantStatus: http.StatusOK,
			wantBody:   "estimated",
		},
		{
			name:        "gateway call outlives the deadline",
			timeout:     20 * time.Millisecond,
			handler:     func(c *gin.Context) { <-c.Request.Context().Done() },
			wantStatus:  http.StatusGatewayTimeout,
			wantBody:    `"error":"timeout"`,
			wantAborted: 1,
		},
		{
			name:    "written response is kept",
			timeout: 20 * time.Millisecond,
			handler: func(c *gin.Context) {
				c.String(http.StatusAccepted, "partial")
				<-c.Request.Context().Done()
			},
			wantStatus:  http.StatusAccepted,
			wantBody:    "partial",
			wantAborted: 1,
		},
		{
			name:    "disabled",
			timeout: 0,
			handler: func(c *gin.Context) {
				if _, ok := c.Request.Context().Deadline(); ok {
					c.Status(http.StatusInternalServerError)
					return
				}
				c.Status(http.StatusNoContent)
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := metrics.RequestsAbortedTotal.WithLabelValues("timeout", route)
			before := testutil.ToFloat64(counter)

			router := gin.New()
			router.Use(RequestID(), Timeout(tt.timeout))
			router.POST(route, tt.handler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/formulations/s-1/entries/3/estimate", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
			assert.Equal(t, tt.wantAborted, testutil.ToFloat64(counter)-before)
		})
	}
}

func TestTimeout_LogsExpiredRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logs := captureLogs(t)

	router := gin.New()
	router.Use(Timeout(10 * time.Millisecond))
	router.POST("/api/v1/formulations/:id/entries/:slot/estimate", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/formulations/s-9/entries/2/estimate", nil))
	require.Equal(t, http.StatusGatewayTimeout, w.Code)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(logs.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "Request timed out", line["message"])
	assert.Equal(t, "s-9", line["session_id"])
	assert.Equal(t, false, line["written"])
}
