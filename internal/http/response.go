package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/blend-service/internal/domain/dto"
	"github.com/guttosm/blend-service/internal/i18n"
	"github.com/guttosm/blend-service/internal/middleware"
)

// ResponseBuilder writes the success and error envelopes shared by every
// handler. Error messages are translated for the request locale and the
// underlying error is attached to the gin context for the error logger.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success writes data inside a SuccessResponse.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	b.c.JSON(statusCode, dto.SuccessResponse{
		Data:      data,
		RequestID: middleware.GetRequestID(b.c),
		Timestamp: time.Now().UTC(),
	})
}

func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Error aborts with the translated message for messageKey.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.abort(statusCode, b.translate(messageKey), err, nil)
}

// ErrorWithDetails is Error plus details such as the slot, the failing field
// or suggested material names.
func (b *ResponseBuilder) ErrorWithDetails(statusCode int, messageKey string, err error, details map[string]string) {
	b.abort(statusCode, b.translate(messageKey), err, details)
}

// ErrorWithMessage aborts with a message that is already final.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	b.abort(statusCode, message, err, nil)
}

func (b *ResponseBuilder) translate(key string) string {
	return i18n.GetTranslator().Translate(key, i18n.GetLocale(b.c))
}

func (b *ResponseBuilder) abort(statusCode int, message string, err error, details map[string]string) {
	if err != nil {
		_ = b.c.Error(err)
	}
	resp := dto.NewError(dto.ErrCodeFromStatus(statusCode), message).
		WithRequestID(middleware.GetRequestID(b.c))
	if len(details) > 0 {
		resp = resp.WithDetails(details)
	}
	b.c.AbortWithStatusJSON(statusCode, resp)
}
