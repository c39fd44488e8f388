package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/blend-service/internal/catalog"
	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/engine"
)

var (
	// ErrMaterialNotFound is returned for names with no exact catalog match.
	ErrMaterialNotFound = errors.New("material not found in catalog")
	// ErrNotInferable is returned when no inference rule yields a complete attribute set.
	ErrNotInferable = fmt.Errorf("%w: no inference rule matched", engine.ErrUnresolvedMaterial)
	// ErrReloadUnavailable is returned when the catalog was not loaded from a reloadable source.
	ErrReloadUnavailable = errors.New("catalog has no reload source")
)

// MaterialNotFoundError carries "did you mean" suggestions for a missing material.
type MaterialNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *MaterialNotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMaterialNotFound, e.Name)
}

func (e *MaterialNotFoundError) Unwrap() error {
	return ErrMaterialNotFound
}

// MaterialFilter narrows a material listing. Empty fields match everything.
type MaterialFilter struct {
	Category model.Category
	Query    string
}

// CatalogInfo describes the snapshot currently served.
//
// @Description Catalog snapshot summary
type CatalogInfo struct {
	Source         string    `json:"source" example:"file:data/catalog.json"`
	LoadedAt       time.Time `json:"loaded_at"`
	Materials      int       `json:"materials" example:"13"`
	Specifications int       `json:"specifications" example:"4"`
}

// CatalogService exposes read access to the material catalog.
type CatalogService interface {
	Materials(ctx context.Context, filter MaterialFilter) []model.Material
	Material(ctx context.Context, name string) (model.Material, error)
	Specifications(ctx context.Context) []model.Specification
	Infer(ctx context.Context, name string) (*engine.Inference, error)
	Validate(ctx context.Context, candidates []model.Candidate) model.ValidationReport
	Reload(ctx context.Context) (CatalogInfo, error)
	Info(ctx context.Context) CatalogInfo
}

// CatalogServiceImpl implements CatalogService over an atomically swapped store.
type CatalogServiceImpl struct {
	store    *catalog.Store
	loader   catalog.Loader
	resolver *engine.Resolver
}

// NewCatalogService creates a catalog service. loader may be nil, in which
// case Reload is unavailable.
func NewCatalogService(store *catalog.Store, loader catalog.Loader, resolver *engine.Resolver) *CatalogServiceImpl {
	if resolver == nil {
		resolver = engine.NewResolver()
	}
	return &CatalogServiceImpl{store: store, loader: loader, resolver: resolver}
}

func (s *CatalogServiceImpl) Materials(ctx context.Context, filter MaterialFilter) []model.Material {
	all := s.store.Snapshot().Materials()
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	if filter.Category == model.CategoryUnknown && query == "" {
		return all
	}

	out := make([]model.Material, 0, len(all))
	for _, m := range all {
		if filter.Category != model.CategoryUnknown && m.Category != filter.Category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(m.Name), query) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (s *CatalogServiceImpl) Material(ctx context.Context, name string) (model.Material, error) {
	snap := s.store.Snapshot()
	if m, ok := snap.Material(name); ok {
		return m, nil
	}
	return model.Material{}, &MaterialNotFoundError{
		Name:        name,
		Suggestions: engine.Suggest(name, snap, engine.DefaultMaxSuggestions),
	}
}

func (s *CatalogServiceImpl) Specifications(ctx context.Context) []model.Specification {
	return s.store.Snapshot().Specifications()
}

// Infer resolves a name with the inference rules only; the catalog is not consulted.
func (s *CatalogServiceImpl) Infer(ctx context.Context, name string) (*engine.Inference, error) {
	if inf := s.resolver.Infer(name); inf != nil {
		return inf, nil
	}
	return nil, &engine.EntryError{Name: name, Err: ErrNotInferable}
}

func (s *CatalogServiceImpl) Validate(ctx context.Context, candidates []model.Candidate) model.ValidationReport {
	// One snapshot for the whole report, even if a reload lands meanwhile.
	return engine.Validate(candidates, s.store.Snapshot())
}

// Reload re-reads the catalog from its loader. A failed reload keeps the
// current snapshot.
func (s *CatalogServiceImpl) Reload(ctx context.Context) (CatalogInfo, error) {
	if s.loader == nil {
		return CatalogInfo{}, ErrReloadUnavailable
	}
	if err := s.store.Reload(ctx, s.loader); err != nil {
		return CatalogInfo{}, err
	}
	return s.Info(ctx), nil
}

func (s *CatalogServiceImpl) Info(ctx context.Context) CatalogInfo {
	snap := s.store.Snapshot()
	return CatalogInfo{
		Source:         snap.Source(),
		LoadedAt:       snap.LoadedAt(),
		Materials:      snap.Len(),
		Specifications: len(snap.Specifications()),
	}
}
