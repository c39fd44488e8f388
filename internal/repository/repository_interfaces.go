package repository

import (
	"context"

	"github.com/guttosm/blend-service/internal/domain/model"
)

// CatalogRepositoryInterface defines the interface for catalog repository operations.
// It satisfies catalog.Documents so a MongoDB catalog can feed a catalog.Store.
type CatalogRepositoryInterface interface {
	FindMaterials(ctx context.Context) ([]model.Material, error)
	FindSpecifications(ctx context.Context) ([]model.Specification, error)
	FindGuides(ctx context.Context) ([]model.GuideEntry, error)
	FindDiluent(ctx context.Context) (*model.Material, error)
	CountMaterials(ctx context.Context) (int64, error)
	ReplaceAll(ctx context.Context, doc CatalogDocument) error
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
