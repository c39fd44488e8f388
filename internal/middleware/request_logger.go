package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/logger"
	"github.com/guttosm/blend-service/internal/service"
)

// probePrefixes are logged to the console but never persisted.
var probePrefixes = []string{"/healthz", "/readyz", "/metrics", "/swagger"}

// RequestLogger logs every request as one structured line. Entries for API
// routes are persisted through the async logger when one is running.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := requestEntry(c, time.Since(start))

		l := logger.Logger().With().
			Str("request_id", entry.RequestID).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status_code", entry.StatusCode).
			Int64("duration_ms", entry.Duration).
			Str("ip", entry.IP).
			Logger()
		if entry.SessionID != "" {
			l = l.With().Str("session_id", entry.SessionID).Logger()
		}
		event := l.WithLevel(statusLevel(entry.StatusCode))
		if entry.Error != "" {
			event = event.Str("error", entry.Error)
		}
		event.Msg(entry.Message)

		if loggingService == nil || !persistable(entry.Path) {
			return
		}
		if asyncLogger := GetAsyncLogger(); asyncLogger != nil {
			asyncLogger.Log(entry)
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = loggingService.CreateLog(ctx, entry)
		}()
	}
}

// requestEntry builds the persisted record of a finished request.
func requestEntry(c *gin.Context, latency time.Duration) *model.LogEntry {
	status := c.Writer.Status()
	entry := &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      statusLevel(status).String(),
		Message:    "HTTP request",
		RequestID:  GetRequestID(c),
		SessionID:  c.Param("id"),
		Subject:    GetSubject(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		StatusCode: status,
		Duration:   latency.Milliseconds(),
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}
	if slot := c.Param("slot"); slot != "" {
		entry.WithField("slot", slot)
	}
	if route := c.FullPath(); route != "" {
		entry.WithField("route", route)
	}
	if len(c.Errors) > 0 {
		entry.Error = c.Errors.Last().Error()
	}
	return entry
}

func statusLevel(statusCode int) zerolog.Level {
	switch {
	case statusCode >= 500:
		return zerolog.ErrorLevel
	case statusCode >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

func persistable(path string) bool {
	for _, prefix := range probePrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}
