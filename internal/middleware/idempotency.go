package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/blend-service/internal/domain/dto"
	"github.com/guttosm/blend-service/internal/i18n"
	"github.com/guttosm/blend-service/internal/service/cache"
)

const (
	IdempotencyKeyHeader      = "Idempotency-Key"
	IdempotencyReplayedHeader = "Idempotent-Replayed"
	// IdempotencyKeyTTL is how long a replayable response is kept.
	IdempotencyKeyTTL = 5 * time.Minute

	maxIdempotencyKeyLen = 255
	idempotencyCapacity  = 10000
)

// StoredResponse is a response kept for replay. While the first request is
// still running the entry only carries its fingerprint and Pending.
type StoredResponse struct {
	Fingerprint string `json:"fingerprint"`
	Pending     bool   `json:"pending,omitempty"`
	Status      int    `json:"status,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body,omitempty"`
}

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	Cache   cache.Cache[*StoredResponse]
	Enabled bool
}

// NewIdempotencyCache returns the in-process store used when Redis is off.
func NewIdempotencyCache() cache.Cache[*StoredResponse] {
	return cache.NewTTL[*StoredResponse]("idempotency", idempotencyCapacity, IdempotencyKeyTTL)
}

// DefaultIdempotencyConfig returns an enabled config backed by an in-process TTL cache.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{Cache: NewIdempotencyCache(), Enabled: true}
}

// Idempotency makes session creation and gateway estimates safe to retry.
// A repeated Idempotency-Key from the same subject on the same path replays
// the first 2xx response. Reusing a key with a different body answers 422 and
// retrying while the first request is still running answers 409. Failed
// requests are forgotten so the client can retry them.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) { c.Next() }
	}

	// serialises check-and-mark for this process; across replicas the
	// shared cache is last-writer-wins
	var mu sync.Mutex

	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" || !mutatingMethod(c.Request.Method) {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen {
			abortWithKey(c, http.StatusBadRequest, i18n.ErrKeyInvalidRequest)
			return
		}

		body, err := readBody(c.Request)
		if err != nil {
			abortWithKey(c, http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody)
			return
		}

		slot := idempotencySlot(GetSubject(c), c.Request.Method, c.Request.URL.Path, key)
		fingerprint := bodyFingerprint(body)

		mu.Lock()
		stored, found := cfg.Cache.Get(slot)
		if !found {
			cfg.Cache.Set(slot, &StoredResponse{Fingerprint: fingerprint, Pending: true})
		}
		mu.Unlock()

		if found {
			switch {
			case stored.Fingerprint != fingerprint:
				abortWithKey(c, http.StatusUnprocessableEntity, i18n.ErrKeyIdempotencyMismatch)
			case stored.Pending:
				abortWithKey(c, http.StatusConflict, i18n.ErrKeyIdempotencyInFlight)
			default:
				c.Header(IdempotencyReplayedHeader, "true")
				c.Data(stored.Status, stored.ContentType, stored.Body)
				c.Abort()
			}
			return
		}

		done := false
		defer func() {
			if !done {
				cfg.Cache.Invalidate(slot)
			}
		}()

		rec := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		if status := rec.Status(); status >= 200 && status < 300 {
			cfg.Cache.Set(slot, &StoredResponse{
				Fingerprint: fingerprint,
				Status:      status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.body.Bytes(),
			})
			done = true
		}
	}
}

func mutatingMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// readBody drains the request body and puts an equivalent reader back.
func readBody(req *http.Request) ([]byte, error) {
	if req.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

func idempotencySlot(subject, method, path, key string) string {
	sum := sha256.Sum256([]byte(subject + "\x00" + method + "\x00" + path + "\x00" + key))
	return hex.EncodeToString(sum[:])
}

func bodyFingerprint(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func abortWithKey(c *gin.Context, status int, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	c.AbortWithStatusJSON(status,
		dto.NewError(dto.ErrCodeFromStatus(status), message).WithRequestID(GetRequestID(c)))
}

// capturingWriter copies the response body while it is written.
type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
