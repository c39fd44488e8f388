package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/formulations/:id", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	tests := []struct {
		name   string
		sent   string
		reused bool
	}{
		{name: "missing", sent: ""},
		{name: "well formed", sent: "bench-7:req.42_a", reused: true},
		{name: "header injection", sent: "abc\" injected=1"},
		{name: "unicode", sent: "säft-1"},
		{name: "at the length limit", sent: strings.Repeat("a", maxRequestIDLength), reused: true},
		{name: "over the length limit", sent: strings.Repeat("a", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/formulations/s-1", nil)
			if tt.sent != "" {
				req.Header.Set(RequestIDHeader, tt.sent)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			got := w.Body.String()
			assert.Equal(t, got, w.Header().Get(RequestIDHeader))
			if tt.reused {
				assert.Equal(t, tt.sent, got)
				return
			}
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}

func TestGetRequestID_OutsideMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetRequestID(c))

	c.Set(RequestIDKey, 42)
	assert.Empty(t, GetRequestID(c))
}
