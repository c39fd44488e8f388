package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/blend-service/internal/i18n"
	"github.com/guttosm/blend-service/internal/logger"
	"github.com/guttosm/blend-service/internal/metrics"
)

// DefaultRequestTimeout applies when the configured timeout is unset.
const DefaultRequestTimeout = 30 * time.Second

// Timeout puts a deadline of d on the request context. Handlers stay on the
// request goroutine and watch the deadline themselves; the gateway client
// aborts its call and session locks are never held across it. When the
// deadline passed and nothing was written, the request answers 504.
// A non-positive d disables the deadline.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}

		route := routeLabel(c)
		metrics.RecordAbortedRequest("timeout", route)
		l := logger.Logger()
		l.Warn().
			Str("request_id", GetRequestID(c)).
			Str("session_id", c.Param("id")).
			Str("route", route).
			Dur("timeout", d).
			Bool("written", c.Writer.Written()).
			Msg("Request timed out")

		if !c.Writer.Written() {
			abortWithKey(c, http.StatusGatewayTimeout, i18n.ErrKeyTimeout)
		}
	}
}
