package app

import (
	"context"
	"fmt"

	"github.com/guttosm/blend-service/config"
	"github.com/guttosm/blend-service/internal/catalog"
	"github.com/guttosm/blend-service/internal/repository"
	"github.com/rs/zerolog/log"
)

// CatalogComponents holds the active catalog and the source it reloads from.
type CatalogComponents struct {
	Store   *catalog.Store
	Loader  catalog.Loader
	Watcher *catalog.Watcher
}

// InitializeCatalog loads the first catalog snapshot. With a database the
// catalog is read from MongoDB, seeded from the bundled file when empty;
// otherwise the file is served directly and optionally watched for changes.
func InitializeCatalog(ctx context.Context, cfg config.CatalogConfig, db *DatabaseComponents) (*CatalogComponents, error) {
	file := catalog.NewFileLoader(cfg.File)

	if db != nil {
		if cfg.Seed {
			if err := seedCatalog(ctx, db.CatalogRepo, file); err != nil {
				log.Warn().Err(err).Str("file", cfg.File).Msg("Failed to seed catalog into MongoDB")
			}
		}
		return loadCatalog(ctx, catalog.NewDocumentLoader(db.Catalog))
	}

	components, err := loadCatalog(ctx, file)
	if err != nil {
		return nil, err
	}

	if cfg.Watch {
		watcher, err := catalog.NewWatcher(components.Store, file, catalog.WithDebounce(cfg.WatchDebounce))
		if err != nil {
			log.Warn().Err(err).Msg("Catalog hot reload disabled")
			return components, nil
		}
		watcher.Start(ctx)
		components.Watcher = watcher
	}
	return components, nil
}

// Close stops the file watcher, if any.
func (c *CatalogComponents) Close() {
	if c == nil || c.Watcher == nil {
		return
	}
	if err := c.Watcher.Stop(); err != nil {
		log.Warn().Err(err).Msg("Failed to stop catalog watcher")
	}
}

func loadCatalog(ctx context.Context, loader catalog.Loader) (*CatalogComponents, error) {
	snap, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", loader.Name(), err)
	}
	log.Info().
		Str("source", snap.Source()).
		Int("materials", snap.Len()).
		Int("specifications", len(snap.Specifications())).
		Msg("Catalog loaded")
	return &CatalogComponents{Store: catalog.NewStore(snap), Loader: loader}, nil
}

// seedCatalog copies the file catalog into an empty MongoDB catalog.
func seedCatalog(ctx context.Context, repo *repository.CatalogRepository, file *catalog.FileLoader) error {
	data, err := file.Read()
	if err != nil {
		return err
	}
	seeded, err := repo.SeedIfEmpty(ctx, repository.CatalogDocument{
		Diluent:        data.Diluent,
		Materials:      data.Materials,
		Specifications: data.Specifications,
		Guides:         data.Guides,
	})
	if err != nil {
		return err
	}
	if seeded {
		log.Info().Int("materials", len(data.Materials)).Msg("Seeded MongoDB catalog from file")
	}
	return nil
}
