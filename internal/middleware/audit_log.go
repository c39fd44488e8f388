package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/service"
)

// AuditLog records a formulation action (entry edits, guide loads, estimates,
// catalog reloads). The session ID is taken from the :id route parameter, or
// from fields["session_id"] on routes that create the session.
func AuditLog(loggingService service.LoggingService, c *gin.Context, actionType string, message string, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := newAuditEntry(c, "info", actionType, message, fields)
	storeAuditEntry(loggingService, entry)
}

// AuditLogError records a failed formulation action.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, actionType string, message string, err error, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := newAuditEntry(c, "error", actionType, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	storeAuditEntry(loggingService, entry)
}

func newAuditEntry(c *gin.Context, level, actionType, message string, fields map[string]interface{}) *model.LogEntry {
	return &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		SessionID:  auditSessionID(c, fields),
		Method:     c.Request.Method,
		Path:       c.FullPath(),
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Subject:    GetSubject(c),
		ActionType: actionType,
		Fields:     fields,
	}
}

// storeAuditEntry hands the entry to the async logger, or writes it from a
// goroutine when no async logger is running.
func storeAuditEntry(loggingService service.LoggingService, entry *model.LogEntry) {
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

func auditSessionID(c *gin.Context, fields map[string]interface{}) string {
	if id := c.Param("id"); id != "" {
		return id
	}
	id, _ := fields["session_id"].(string)
	return id
}
