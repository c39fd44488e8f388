package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/guttosm/blend-service/internal/circuitbreaker"
	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/engine"
	"github.com/guttosm/blend-service/internal/metrics"
	"github.com/guttosm/blend-service/internal/service/cache"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultPerMinute = 20
	maxResponseBytes = 1 << 20
)

// ErrDisabled is returned when no gateway endpoint is configured.
var ErrDisabled = fmt.Errorf("%w: gateway not configured", engine.ErrGatewayFailure)

// Request is the body sent to the gateway.
type Request struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Prompt   string `json:"prompt"`
}

// Client calls the estimation gateway under a rate limit and a circuit breaker.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *circuitbreaker.CircuitBreaker
	cache      cache.Cache[model.Attributes]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit allows perMinute requests with the given burst.
func WithRateLimit(perMinute, burst int) Option {
	return func(c *Client) {
		if perMinute <= 0 {
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60), burst)
	}
}

// WithCircuitBreaker guards calls with cb.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) {
		c.breaker = cb
	}
}

// WithCache stores accepted estimates keyed by name and hint.
func WithCache(ch cache.Cache[model.Attributes]) Option {
	return func(c *Client) {
		c.cache = ch
	}
}

// NewClient creates a gateway client. An empty endpoint yields a disabled client.
func NewClient(endpoint, apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint:   strings.TrimSpace(endpoint),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(float64(defaultPerMinute)/60), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		cfg := circuitbreaker.DefaultConfig()
		cfg.Name = "estimation-gateway"
		c.breaker = circuitbreaker.New(cfg)
	}
	return c
}

// Enabled reports whether an endpoint is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.endpoint != ""
}

// Breaker exposes the client's circuit breaker for health reporting.
func (c *Client) Breaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}

func cacheKey(name string, hint model.Category) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + string(hint)
}

// Estimate requests attributes for name. Every failure wraps
// engine.ErrGatewayFailure; the caller's formulation is never touched here.
func (c *Client) Estimate(ctx context.Context, name string, hint model.Category) (model.Attributes, error) {
	if !c.Enabled() {
		return model.Attributes{}, ErrDisabled
	}

	key := cacheKey(name, hint)
	if c.cache != nil {
		if attrs, ok := c.cache.Get(key); ok {
			metrics.RecordGatewayRequest(0, "cached")
			return attrs.Clone(), nil
		}
	}

	start := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		metrics.RecordGatewayRequest(time.Since(start), "rate_limited")
		return model.Attributes{}, fmt.Errorf("%w: rate limit wait: %v", engine.ErrGatewayFailure, err)
	}

	var est Estimate
	err := c.breaker.Execute(ctx, func() error {
		payload, err := c.call(ctx, name, hint)
		if err != nil {
			return err
		}
		est, err = ParseEstimate(payload, hint)
		return err
	})
	duration := time.Since(start)

	if err != nil {
		result := "error"
		switch {
		case errors.Is(err, circuitbreaker.ErrCircuitOpen):
			result = "circuit_open"
			err = fmt.Errorf("%w: %v", engine.ErrGatewayFailure, err)
		case errors.Is(err, ErrSuspicious), errors.Is(err, ErrIncomplete), errors.Is(err, ErrMalformed):
			result = "rejected"
		case !errors.Is(err, engine.ErrGatewayFailure):
			err = fmt.Errorf("%w: %v", engine.ErrGatewayFailure, err)
		}
		metrics.RecordGatewayRequest(duration, result)
		log.Warn().Err(err).Str("material", name).Str("category", string(hint)).Str("result", result).Msg("Estimation gateway request failed")
		return model.Attributes{}, err
	}

	metrics.RecordGatewayRequest(duration, "success")
	attrs := est.Attributes()
	if c.cache != nil {
		c.cache.Set(key, attrs)
	}
	log.Debug().Str("material", name).Dur("duration", duration).Msg("Estimation gateway request succeeded")
	return attrs, nil
}

func (c *Client) call(ctx context.Context, name string, hint model.Category) ([]byte, error) {
	body, err := json.Marshal(Request{Name: name, Category: string(hint), Prompt: Prompt(name, hint)})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrGatewayFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", engine.ErrGatewayFailure, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", engine.ErrGatewayFailure, resp.StatusCode, truncate(string(respBody), 200))
	}
	return respBody, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
