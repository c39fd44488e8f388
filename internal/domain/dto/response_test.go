package dto

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrCodeFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusBadRequest, ErrCodeInvalidRequest},
		{http.StatusUnauthorized, ErrCodeUnauthorized},
		{http.StatusForbidden, ErrCodeForbidden},
		{http.StatusNotFound, ErrCodeNotFound},
		{http.StatusRequestTimeout, ErrCodeTimeout},
		{http.StatusConflict, ErrCodeConflict},
		{http.StatusUnprocessableEntity, ErrCodeUnprocessable},
		{http.StatusTooManyRequests, ErrCodeRateLimit},
		{http.StatusInternalServerError, ErrCodeInternal},
		{http.StatusBadGateway, ErrCodeBadGateway},
		{http.StatusServiceUnavailable, ErrCodeUnavailable},
		{http.StatusGatewayTimeout, ErrCodeTimeout},
		{http.StatusTeapot, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, ErrCodeFromStatus(tt.status))
		})
	}
}

func TestErrorResponse_Builders(t *testing.T) {
	base := NewError(ErrCodeNotFound, "Material not found")
	assert.Equal(t, time.UTC, base.Timestamp.Location())
	assert.WithinDuration(t, time.Now(), base.Timestamp, time.Second)

	got := base.
		WithRequestID("req-7").
		WithDetails(map[string]string{"name": "Mango", "suggestions": "Mango puree 14Bx"})

	assert.Empty(t, base.RequestID, "builders return copies")
	assert.Nil(t, base.Details)
	assert.Equal(t, "req-7", got.RequestID)
	assert.Equal(t, "Mango puree 14Bx", got.Details["suggestions"])
}

func TestErrorResponse_JSONOmitsEmptyFields(t *testing.T) {
	raw, err := json.Marshal(NewError(ErrCodeConflict, ""))
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "conflict", fields["error"])
	assert.NotContains(t, fields, "message")
	assert.NotContains(t, fields, "details")
	assert.NotContains(t, fields, "request_id")
	assert.Contains(t, fields, "timestamp")
}
