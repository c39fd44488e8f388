//go:build !integration

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/mocks"
)

func TestStatusLevel(t *testing.T) {
	tests := []struct {
		statusCode int
		expected   zerolog.Level
	}{
		{statusCode: 200, expected: zerolog.InfoLevel},
		{statusCode: 301, expected: zerolog.InfoLevel},
		{statusCode: 404, expected: zerolog.WarnLevel},
		{statusCode: 422, expected: zerolog.WarnLevel},
		{statusCode: 500, expected: zerolog.ErrorLevel},
		{statusCode: 503, expected: zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.statusCode), func(t *testing.T) {
			assert.Equal(t, tt.expected, statusLevel(tt.statusCode))
		})
	}
}

func TestPersistable(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/api/v1/formulations", want: true},
		{path: "/api/v1/evaluate", want: true},
		{path: "/healthz", want: false},
		{path: "/readyz", want: false},
		{path: "/metrics", want: false},
		{path: "/swagger/index.html", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, persistable(tt.path))
		})
	}
}

func TestRequestEntry(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var entry *model.LogEntry
	router := gin.New()
	router.Use(RequestID())
	router.PUT("/api/v1/formulations/:id/entries/:slot", func(c *gin.Context) {
		c.Set(SubjectKey, "lab-user")
		_ = c.Error(errors.New("percentage out of range"))
		c.Status(http.StatusUnprocessableEntity)
		entry = requestEntry(c, 42*time.Millisecond)
	})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/formulations/s-1/entries/3", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	router.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, entry)
	assert.Equal(t, "warn", entry.Level)
	assert.Equal(t, "req-7", entry.RequestID)
	assert.Equal(t, "s-1", entry.SessionID)
	assert.Equal(t, "lab-user", entry.Subject)
	assert.Equal(t, http.MethodPut, entry.Method)
	assert.Equal(t, http.StatusUnprocessableEntity, entry.StatusCode)
	assert.EqualValues(t, 42, entry.Duration)
	assert.Equal(t, "percentage out of range", entry.Error)
	assert.Equal(t, "3", entry.Fields["slot"])
	assert.Equal(t, "/api/v1/formulations/:id/entries/:slot", entry.Fields["route"])
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		path       string
		statusCode int
		withRepo   bool
		setupMock  func(*mocks.MockLoggingService)
	}{
		{
			name:       "api request is persisted",
			path:       "/api/v1/materials",
			statusCode: http.StatusOK,
			withRepo:   true,
			setupMock: func(m *mocks.MockLoggingService) {
				m.On("CreateLog", mock.Anything, mock.AnythingOfType("*model.LogEntry")).Return(nil).Maybe()
			},
		},
		{
			name:       "server error is persisted",
			path:       "/api/v1/materials",
			statusCode: http.StatusInternalServerError,
			withRepo:   true,
			setupMock: func(m *mocks.MockLoggingService) {
				m.On("CreateLog", mock.Anything, mock.AnythingOfType("*model.LogEntry")).Return(nil).Maybe()
			},
		},
		{
			name:       "probe is never persisted",
			path:       "/healthz",
			statusCode: http.StatusOK,
			withRepo:   true,
			setupMock:  func(m *mocks.MockLoggingService) {},
		},
		{
			name:       "no logging service",
			path:       "/api/v1/materials",
			statusCode: http.StatusOK,
			setupMock:  func(m *mocks.MockLoggingService) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLoggingService := mocks.NewMockLoggingService(t)
			tt.setupMock(mockLoggingService)

			router := gin.New()
			router.Use(RequestID())
			if tt.withRepo {
				router.Use(RequestLogger(mockLoggingService))
			} else {
				router.Use(RequestLogger(nil))
			}
			router.GET(tt.path, func(c *gin.Context) {
				c.Status(tt.statusCode)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.statusCode, w.Code)
		})
	}
}
