//go:build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/blend-service/config"
	"github.com/guttosm/blend-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integrationDatabaseConfig(t *testing.T) config.DatabaseConfig {
	return config.DatabaseConfig{
		URI:                            testutil.MongoURI(t),
		DatabaseName:                   testutil.DatabaseName(t),
		LogsTTL:                        30 * 24 * time.Hour,
		Enabled:                        true,
		CircuitBreakerFailureThreshold: 5,
		CircuitBreakerSuccessThreshold: 2,
		CircuitBreakerTimeout:          30 * time.Second,
	}
}

func TestInitializeDatabase_Integration(t *testing.T) {
	t.Parallel()

	t.Run("initialize with enabled database", func(t *testing.T) {
		t.Parallel()

		components := InitializeDatabase(integrationDatabaseConfig(t))
		require.NotNil(t, components)
		t.Cleanup(components.Close)

		assert.NotNil(t, components.CatalogRepo)
		assert.NotNil(t, components.Catalog)
		assert.NotNil(t, components.LoggingService)

		stats := components.CatalogCircuitBreaker.GetStats()
		assert.Equal(t, "closed", stats.State)
		assert.True(t, stats.IsHealthy)
		assert.True(t, components.LogsCircuitBreaker.GetStats().IsHealthy)
	})

	t.Run("unreachable database", func(t *testing.T) {
		t.Parallel()
		cfg := integrationDatabaseConfig(t)
		cfg.URI = "mongodb://127.0.0.1:1"

		assert.Nil(t, InitializeDatabase(cfg))
	})
}

func TestInitializeCatalog_SeedsMongoDB(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := InitializeDatabase(integrationDatabaseConfig(t))
	require.NotNil(t, db)
	t.Cleanup(db.Close)

	file := writeCatalogFile(t, smallCatalog())

	components, err := InitializeCatalog(ctx, config.CatalogConfig{File: file, Seed: true, Watch: true}, db)
	require.NoError(t, err)
	t.Cleanup(components.Close)

	assert.Equal(t, "mongodb", components.Loader.Name())
	assert.Nil(t, components.Watcher, "a MongoDB catalog is not file-watched")
	assert.Equal(t, 1, components.Store.Snapshot().Len())

	n, err := db.CatalogRepo.CountMaterials(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	t.Run("seeding an existing catalog is a no-op", func(t *testing.T) {
		data := smallCatalog()
		data.Materials = append(data.Materials, data.Materials[0])
		data.Materials[1].Name = "Apple concentrate 70Bx"

		again, err := InitializeCatalog(ctx, config.CatalogConfig{File: writeCatalogFile(t, data), Seed: true}, db)
		require.NoError(t, err)
		assert.Equal(t, 1, again.Store.Snapshot().Len())
	})
}
