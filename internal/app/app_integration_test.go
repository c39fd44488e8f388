//go:build integration

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeApp_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("initialize app with MongoDB enabled", func(t *testing.T) {
		cfg := testConfig(bundledCatalogFile)
		cfg.Catalog.Seed = true
		cfg.Database = integrationDatabaseConfig(t)

		application, err := InitializeApp(context.Background(), cfg)
		require.NoError(t, err)
		t.Cleanup(application.Close)

		assert.Equal(t, "mongodb", application.Catalog.Loader.Name())
		assert.Positive(t, application.Catalog.Store.Snapshot().Len())

		w := httptest.NewRecorder()
		application.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "mongodb_catalog_circuit")
		assert.Contains(t, w.Body.String(), "mongodb_logs_circuit")
	})

	t.Run("initialize app with MongoDB disabled", func(t *testing.T) {
		application, err := InitializeApp(context.Background(), testConfig(bundledCatalogFile))
		require.NoError(t, err)
		t.Cleanup(application.Close)

		assert.Equal(t, "file", application.Catalog.Loader.Name())
	})

	t.Run("empty MongoDB catalog without seeding", func(t *testing.T) {
		cfg := testConfig(bundledCatalogFile)
		cfg.Database = integrationDatabaseConfig(t)

		application, err := InitializeApp(context.Background(), cfg)
		require.NoError(t, err)
		t.Cleanup(application.Close)

		w := httptest.NewRecorder()
		application.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "catalog is empty")
	})
}
