package repository

import (
	"context"
	"errors"

	"github.com/guttosm/blend-service/internal/circuitbreaker"
	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/metrics"
)

// guarded runs a read through cb and returns its result.
func guarded[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, read func(context.Context) (T, error)) (T, error) {
	var out T
	err := cb.Execute(ctx, func() error {
		var err error
		out, err = read(ctx)
		return err
	})
	return out, err
}

// CatalogRepositoryWithCircuitBreaker guards catalog reads and writes. An open
// circuit surfaces as circuitbreaker.ErrCircuitOpen, so a reload keeps the
// snapshot it already serves.
type CatalogRepositoryWithCircuitBreaker struct {
	repo CatalogRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewCatalogRepositoryWithCircuitBreaker wraps repo with cb.
func NewCatalogRepositoryWithCircuitBreaker(repo CatalogRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *CatalogRepositoryWithCircuitBreaker {
	return &CatalogRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *CatalogRepositoryWithCircuitBreaker) FindMaterials(ctx context.Context) ([]model.Material, error) {
	return guarded(ctx, r.cb, r.repo.FindMaterials)
}

func (r *CatalogRepositoryWithCircuitBreaker) FindSpecifications(ctx context.Context) ([]model.Specification, error) {
	return guarded(ctx, r.cb, r.repo.FindSpecifications)
}

func (r *CatalogRepositoryWithCircuitBreaker) FindGuides(ctx context.Context) ([]model.GuideEntry, error) {
	return guarded(ctx, r.cb, r.repo.FindGuides)
}

func (r *CatalogRepositoryWithCircuitBreaker) FindDiluent(ctx context.Context) (*model.Material, error) {
	return guarded(ctx, r.cb, r.repo.FindDiluent)
}

func (r *CatalogRepositoryWithCircuitBreaker) CountMaterials(ctx context.Context) (int64, error) {
	return guarded(ctx, r.cb, r.repo.CountMaterials)
}

func (r *CatalogRepositoryWithCircuitBreaker) ReplaceAll(ctx context.Context, doc CatalogDocument) error {
	return r.cb.Execute(ctx, func() error { return r.repo.ReplaceAll(ctx, doc) })
}

// Breaker exposes the circuit breaker for health reporting.
func (r *CatalogRepositoryWithCircuitBreaker) Breaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

// LogsRepositoryWithCircuitBreaker guards the logs collection. Writes made
// while the circuit is open are dropped and counted, since request and audit
// logs never fail the request that produced them.
type LogsRepositoryWithCircuitBreaker struct {
	repo LogsRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo with cb.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	return r.write(ctx, 1, func() error { return r.repo.Create(ctx, entry) })
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	if len(entries) == 0 {
		return nil
	}
	return r.write(ctx, len(entries), func() error { return r.repo.CreateMany(ctx, entries) })
}

func (r *LogsRepositoryWithCircuitBreaker) write(ctx context.Context, n int, fn func() error) error {
	err := r.cb.Execute(ctx, fn)
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		metrics.RecordAsyncLogEntries("circuit_open", n)
		return nil
	}
	return err
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return guarded(ctx, r.cb, func(ctx context.Context) ([]*LogEntryDocument, error) {
		return r.repo.Query(ctx, opts)
	})
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return guarded(ctx, r.cb, func(ctx context.Context) (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// Breaker exposes the circuit breaker for health reporting.
func (r *LogsRepositoryWithCircuitBreaker) Breaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}
