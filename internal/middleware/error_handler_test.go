package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/blend-service/internal/domain/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler_Unanswered(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		attach     func(c *gin.Context)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "plain error",
			attach:     func(c *gin.Context) { _ = c.Error(errors.New("catalog lookup failed")) },
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeInternal,
		},
		{
			name: "bind error",
			attach: func(c *gin.Context) {
				_ = c.Error(errors.New("unexpected EOF")).SetType(gin.ErrorTypeBind)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeInvalidRequest,
		},
		{
			name: "last error decides",
			attach: func(c *gin.Context) {
				_ = c.Error(errors.New("unexpected EOF")).SetType(gin.ErrorTypeBind)
				_ = c.Error(errors.New("session store unavailable"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), ErrorHandler())
			router.POST("/formulations/:id/entries/:slot", tt.attach)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/formulations/s-1/entries/3", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error)
			assert.NotEmpty(t, resp.Message)
			assert.Equal(t, w.Header().Get(RequestIDHeader), resp.RequestID)
		})
	}
}

func TestErrorHandler_LeavesAnsweredRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/formulations/:id", func(c *gin.Context) {
		_ = c.Error(errors.New("session not found"))
		c.String(http.StatusNotFound, "gone")
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/formulations/s-9", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "gone", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
