package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/guttosm/blend-service/config"
	"github.com/guttosm/blend-service/internal/catalog"
	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/stretchr/testify/require"
)

// bundledCatalogFile is the catalog shipped with the service.
var bundledCatalogFile = filepath.Join("..", "..", "data", "catalog.json")

func smallCatalog() catalog.Data {
	return catalog.Data{
		Materials: []model.Material{
			{
				Name:     "Orange concentrate 65Bx",
				Category: model.CategoryConcentrate,
				Attributes: model.Attributes{
					Sugar: model.Float(65), PH: model.Float(3.7), Acidity: model.Float(4.2), Sweetness: model.Float(0.8),
				},
			},
		},
		Specifications: []model.Specification{
			{BeverageType: "fruit_drink", SugarMin: 8, SugarMax: 14, PHMin: 2.8, PHMax: 4.2, AcidityMin: 0.2, AcidityMax: 0.6},
		},
	}
}

func writeCatalogFile(t *testing.T, data catalog.Data) string {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}

// testConfig returns a configuration that needs no external services.
func testConfig(catalogFile string) config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			RateLimit:      100,
			RateWindow:     time.Minute,
			RequestTimeout: 5 * time.Second,
		},
		Engine: config.EngineConfig{
			Slots:       20,
			ReferencePH: 3.5,
			PHMode:      "ion",
			MinDiluent:  50,
			VolumeML:    500,
		},
		Catalog: config.CatalogConfig{File: catalogFile},
		Session: config.SessionConfig{TTL: time.Hour, Capacity: 100, Shards: 4},
		Gateway: config.GatewayConfig{CacheSize: 10, CacheTTL: time.Minute},
		Logging: config.LoggingConfig{Level: "error"},
	}
}
