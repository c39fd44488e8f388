package catalog

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/metrics"
)

// Loader produces a fresh snapshot from a catalog source.
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
	Name() string
}

// Store holds the active snapshot. Readers take the current pointer and keep
// using it; a reload never mutates a snapshot already handed out.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store serving initial, or an empty snapshot when nil.
func NewStore(initial *Snapshot) *Store {
	if initial == nil {
		initial = Empty()
	}
	s := &Store{}
	s.current.Store(initial)
	return s
}

// Snapshot returns the active snapshot.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Swap installs next and returns the previous snapshot.
func (s *Store) Swap(next *Snapshot) *Snapshot {
	return s.current.Swap(next)
}

// Reload loads a snapshot through loader and installs it.
// On failure the active snapshot is kept.
func (s *Store) Reload(ctx context.Context, loader Loader) error {
	next, err := loader.Load(ctx)
	if err != nil {
		metrics.RecordCatalogReload(loader.Name(), "error", 0)
		return fmt.Errorf("reload catalog from %s: %w", loader.Name(), err)
	}

	prev := s.Swap(next)
	metrics.RecordCatalogReload(loader.Name(), "success", next.Len())
	log.Info().
		Str("source", next.Source()).
		Int("materials", next.Len()).
		Int("previous_materials", prev.Len()).
		Int("specifications", len(next.Specifications())).
		Msg("Catalog snapshot installed")
	return nil
}

// Material looks up a material in the active snapshot.
func (s *Store) Material(name string) (model.Material, bool) {
	return s.Snapshot().Material(name)
}

// Materials lists the materials of the active snapshot.
func (s *Store) Materials() []model.Material {
	return s.Snapshot().Materials()
}
