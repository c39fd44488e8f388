package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/blend-service/internal/i18n"
	"github.com/guttosm/blend-service/internal/logger"
)

// ErrorHandler logs the errors a handler attached to the context. When the
// handler returned without answering, bind errors become 400 and anything
// else 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}

		answered := c.Writer.Written()
		status := c.Writer.Status()

		log := logger.Logger()
		event := log.Error()
		if answered && status < http.StatusInternalServerError {
			event = log.Warn()
		}
		event.
			Str("request_id", GetRequestID(c)).
			Str("session_id", c.Param("id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Int("errors", len(c.Errors)).
			Err(last.Err).
			Msg("Request error")

		if answered {
			return
		}
		if last.IsType(gin.ErrorTypeBind) {
			abortWithKey(c, http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody)
			return
		}
		abortWithKey(c, http.StatusInternalServerError, i18n.ErrKeyInternalError)
	}
}
