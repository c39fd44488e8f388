package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/blend-service/internal/circuitbreaker"
	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/engine"
	"github.com/guttosm/blend-service/internal/service/cache"
)

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func fastClient(endpoint string, opts ...Option) *Client {
	return NewClient(endpoint, "secret", append([]Option{WithRateLimit(60000, 100)}, opts...)...)
}

func TestClient_Estimate(t *testing.T) {
	var received Request
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&received)
		_, _ = w.Write([]byte("```json\n" + validPayload + "\n```"))
	}))
	defer srv.Close()

	c := fastClient(srv.URL)
	attrs, err := c.Estimate(context.Background(), "Yuzu concentrate", model.CategoryConcentrate)

	require.NoError(t, err)
	assert.Equal(t, 65.0, *attrs.Sugar)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "Yuzu concentrate", received.Name)
	assert.Equal(t, "concentrate", received.Category)
	assert.Contains(t, received.Prompt, "Yuzu concentrate")
}

func TestClient_EstimateFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		hint    model.Category
		wantErr error
	}{
		{name: "server error", status: http.StatusBadGateway, body: "upstream down", wantErr: engine.ErrGatewayFailure},
		{name: "malformed body", status: http.StatusOK, body: "sorry", wantErr: ErrMalformed},
		{name: "partial body", status: http.StatusOK, body: `{"sugar": 10}`, wantErr: ErrIncomplete},
		{
			name:    "suspicious zero",
			status:  http.StatusOK,
			body:    `{"sugar": 0, "ph": 3.7, "acidity": 4.2, "sweetness": 0.8, "price": 5200, "sugar_coeff": 0, "ph_delta": -0.02, "acidity_coeff": 0.042, "sweetness_coeff": 0.008}`,
			hint:    model.CategoryPuree,
			wantErr: ErrSuspicious,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.status, tt.body)

			attrs, err := fastClient(srv.URL).Estimate(context.Background(), "X", tt.hint)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.True(t, errors.Is(err, engine.ErrGatewayFailure))
			assert.True(t, attrs.IsEmpty())
		})
	}
}

func TestClient_Disabled(t *testing.T) {
	c := NewClient("", "")
	assert.False(t, c.Enabled())

	_, err := c.Estimate(context.Background(), "X", model.CategoryUnknown)
	assert.ErrorIs(t, err, ErrDisabled)
	assert.ErrorIs(t, err, engine.ErrGatewayFailure)
}

func TestClient_CachesAcceptedEstimates(t *testing.T) {
	srv, hits := newTestServer(t, http.StatusOK, validPayload)
	store := cache.NewTTL[model.Attributes]("test-estimates", 10, time.Minute)
	defer store.Stop()

	c := fastClient(srv.URL, WithCache(store))
	_, err := c.Estimate(context.Background(), "Yuzu concentrate", model.CategoryConcentrate)
	require.NoError(t, err)
	attrs, err := c.Estimate(context.Background(), "  yuzu CONCENTRATE ", model.CategoryConcentrate)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
	assert.Equal(t, 65.0, *attrs.Sugar)

	_, err = c.Estimate(context.Background(), "Yuzu concentrate", model.CategoryPuree)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits), "the hint is part of the key")
}

func TestClient_CircuitOpens(t *testing.T) {
	srv, hits := newTestServer(t, http.StatusInternalServerError, "boom")
	cb := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
		Name:             "test-gateway",
	})
	c := fastClient(srv.URL, WithCircuitBreaker(cb))

	for i := 0; i < 2; i++ {
		_, err := c.Estimate(context.Background(), "X", model.CategoryUnknown)
		require.Error(t, err)
	}

	_, err := c.Estimate(context.Background(), "X", model.CategoryUnknown)
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrGatewayFailure))
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
	assert.Same(t, cb, c.Breaker())
}

func TestClient_RateLimitHonoursContext(t *testing.T) {
	srv, hits := newTestServer(t, http.StatusOK, validPayload)
	c := NewClient(srv.URL, "", WithRateLimit(1, 1))

	_, err := c.Estimate(context.Background(), "First", model.CategoryUnknown)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Estimate(ctx, "Second", model.CategoryUnknown)

	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrGatewayFailure)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := fastClient(srv.URL, WithTimeout(50*time.Millisecond))
	_, err := c.Estimate(context.Background(), "Slow", model.CategoryUnknown)

	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrGatewayFailure)
}
