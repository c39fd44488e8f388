package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAPIKeyAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	keys := map[string]bool{"lab-key-123": true, "plant-key-456": true, "revoked-key": false}

	tests := []struct {
		name        string
		keys        map[string]bool
		header      string
		query       string
		wantStatus  int
		wantSubject string
		wantMessage string
	}{
		{name: "header", keys: keys, header: "lab-key-123", wantStatus: http.StatusOK, wantSubject: KeyFingerprint("lab-key-123")},
		{name: "query fallback", keys: keys, query: "plant-key-456", wantStatus: http.StatusOK, wantSubject: KeyFingerprint("plant-key-456")},
		{name: "header wins over query", keys: keys, header: "lab-key-123", query: "unknown", wantStatus: http.StatusOK, wantSubject: KeyFingerprint("lab-key-123")},
		{name: "missing", keys: keys, wantStatus: http.StatusUnauthorized, wantMessage: "API key is required"},
		{name: "prefix of a valid key", keys: keys, header: "lab-key-12", wantStatus: http.StatusUnauthorized},
		{name: "revoked", keys: keys, header: "revoked-key", wantStatus: http.StatusUnauthorized},
		{name: "no keys configured", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), APIKeyAuth(tt.keys))
			router.GET("/api/v1/catalog/materials", func(c *gin.Context) {
				c.String(http.StatusOK, GetSubject(c))
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/materials", nil)
			if tt.header != "" {
				req.Header.Set(APIKeyHeader, tt.header)
			}
			if tt.query != "" {
				req.URL.RawQuery = APIKeyQuery + "=" + tt.query
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantSubject, w.Body.String())
				return
			}
			assert.Contains(t, w.Body.String(), `"error":"unauthorized"`)
			if tt.wantMessage != "" {
				assert.Contains(t, w.Body.String(), tt.wantMessage)
			}
		})
	}
}

func TestKeyFingerprint(t *testing.T) {
	fp := KeyFingerprint("lab-key-123")

	assert.Equal(t, fp, KeyFingerprint("lab-key-123"))
	assert.NotEqual(t, fp, KeyFingerprint("plant-key-456"))
	assert.NotContains(t, fp, "lab-key")
	assert.Regexp(t, `^apikey:[0-9a-f]{8}$`, fp)
}
