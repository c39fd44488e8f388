package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/blend-service/internal/circuitbreaker"
)

// DefaultCheckTimeout bounds a single readiness check.
const DefaultCheckTimeout = 2 * time.Second

// Checker reports whether a dependency can serve traffic.
type Checker interface {
	Check(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) error

// Check calls f.
func (f CheckerFunc) Check(ctx context.Context) error {
	return f(ctx)
}

type namedChecker struct {
	name    string
	checker Checker
}

type namedBreaker struct {
	name string
	cb   *circuitbreaker.CircuitBreaker
}

// HealthHandler serves the liveness and readiness probes. Readiness runs every
// registered check concurrently and reports the state of each circuit breaker.
type HealthHandler struct {
	checkTimeout time.Duration
	checkers     []namedChecker
	breakers     []namedBreaker
}

// NewHealthHandler creates a HealthHandler using DefaultCheckTimeout.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{checkTimeout: DefaultCheckTimeout}
}

// WithCheckTimeout overrides the per-check deadline. Non-positive values are ignored.
func (h *HealthHandler) WithCheckTimeout(d time.Duration) *HealthHandler {
	if d > 0 {
		h.checkTimeout = d
	}
	return h
}

// RegisterChecker adds a readiness check. Registering a name twice replaces it.
func (h *HealthHandler) RegisterChecker(name string, checker Checker) {
	if checker == nil {
		return
	}
	for i := range h.checkers {
		if h.checkers[i].name == name {
			h.checkers[i].checker = checker
			return
		}
	}
	h.checkers = append(h.checkers, namedChecker{name: name, checker: checker})
}

// RegisterCircuitBreaker reports cb as "<name>_circuit". An open breaker makes
// the service not ready.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	if cb == nil {
		return
	}
	h.breakers = append(h.breakers, namedBreaker{name: name, cb: cb})
}

// Register mounts /healthz and /readyz.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK while the process is running.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles the readiness probe endpoint.
// @Summary     Readiness probe
// @Description Returns OK when the catalog is loaded and no dependency circuit is open.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks, ready := h.evaluate(c.Request.Context())

	status, label := http.StatusOK, "ok"
	if !ready {
		status, label = http.StatusServiceUnavailable, "degraded"
	}
	c.JSON(status, gin.H{"status": label, "checks": checks})
}

func (h *HealthHandler) evaluate(ctx context.Context) (map[string]string, bool) {
	results := make([]string, len(h.checkers))

	var wg sync.WaitGroup
	for i, nc := range h.checkers {
		wg.Add(1)
		go func(i int, checker Checker) {
			defer wg.Done()
			results[i] = h.run(ctx, checker)
		}(i, nc.checker)
	}
	wg.Wait()

	checks := make(map[string]string, len(h.checkers)+len(h.breakers))
	ready := true
	for i, nc := range h.checkers {
		checks[nc.name] = results[i]
		if results[i] != "ok" {
			ready = false
		}
	}
	for _, nb := range h.breakers {
		stats := nb.cb.GetStats()
		checks[nb.name+"_circuit"] = stats.State
		if !stats.IsHealthy {
			ready = false
		}
	}
	return checks, ready
}

func (h *HealthHandler) run(ctx context.Context, checker Checker) string {
	ctx, cancel := context.WithTimeout(ctx, h.checkTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- checker.Check(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			return err.Error()
		}
		return "ok"
	case <-ctx.Done():
		return "timeout"
	}
}
