//go:build !integration

package app

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/blend-service/config"
	"github.com/guttosm/blend-service/internal/catalog"
	"github.com/guttosm/blend-service/internal/circuitbreaker"
	"github.com/guttosm/blend-service/internal/http"
	"github.com/guttosm/blend-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeRouter(t *testing.T) {
	cat := newTestCatalogComponents(t)

	tests := []struct {
		name         string
		services     func(t *testing.T) *ServiceComponents
		dbComponents *DatabaseComponents
		cfg          config.Config
		validate     func(*testing.T, *RouterComponents)
	}{
		{
			name: "creates router config with services only",
			services: func(t *testing.T) *ServiceComponents {
				s := InitializeServices(testConfig(""), cat, nil)
				t.Cleanup(s.Close)
				return s
			},
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:      100,
					RateWindow:     time.Minute,
					RequestTimeout: 10 * time.Second,
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components.HealthHandler)
				assert.False(t, components.Config.EnableAuth)
				assert.True(t, components.Config.EnableIdempotency)
				assert.Equal(t, 100, components.Config.RateLimit)
				assert.Equal(t, 10*time.Second, components.Config.RequestTimeout)
				assert.NotNil(t, components.Config.Formulations)
				assert.NotNil(t, components.Config.Catalog)
				assert.Nil(t, components.Config.LoggingService)
			},
		},
		{
			name: "creates router config with api key auth",
			cfg: config.Config{
				Auth: config.AuthConfig{
					Enabled: true,
					APIKeys: map[string]bool{"test-key": true},
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.True(t, components.Config.EnableAuth)
				assert.Equal(t, map[string]bool{"test-key": true}, components.Config.APIKeys)
				assert.Empty(t, components.Config.JWTSecret)
			},
		},
		{
			name: "creates router config with jwt auth",
			cfg: config.Config{
				Auth: config.AuthConfig{Enabled: true, JWTSecret: "s3cret"},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.Equal(t, []byte("s3cret"), components.Config.JWTSecret)
			},
		},
		{
			name: "uses database logging service",
			dbComponents: &DatabaseComponents{
				LoggingService:        new(mocks.MockLoggingService),
				CatalogCircuitBreaker: circuitbreaker.New(circuitbreaker.DefaultConfig()),
				LogsCircuitBreaker:    circuitbreaker.New(circuitbreaker.DefaultConfig()),
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components.Config.LoggingService)
			},
		},
		{
			name: "nil services leave groups unregistered",
			validate: func(t *testing.T, components *RouterComponents) {
				assert.Nil(t, components.Config.Formulations)
				assert.Nil(t, components.Config.Catalog)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var services *ServiceComponents
			if tt.services != nil {
				services = tt.services(t)
			}

			components := InitializeRouter(services, cat, tt.dbComponents, tt.cfg)

			require.NotNil(t, components)
			tt.validate(t, components)
		})
	}
}

func TestInitializeRouter_Readiness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		store          func(t *testing.T) *catalog.Store
		openGateway    bool
		expectedStatus int
	}{
		{
			name:           "catalog loaded",
			store:          func(t *testing.T) *catalog.Store { return newTestCatalogComponents(t).Store },
			expectedStatus: nethttp.StatusOK,
		},
		{
			name:           "empty catalog",
			store:          func(t *testing.T) *catalog.Store { return catalog.NewStore(catalog.Empty()) },
			expectedStatus: nethttp.StatusServiceUnavailable,
		},
		{
			name:           "gateway breaker open",
			store:          func(t *testing.T) *catalog.Store { return newTestCatalogComponents(t).Store },
			openGateway:    true,
			expectedStatus: nethttp.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("")
			cfg.Gateway.URL = "http://127.0.0.1:1/estimate"
			cat := &CatalogComponents{Store: tt.store(t)}
			services := InitializeServices(cfg, cat, nil)
			t.Cleanup(services.Close)

			if tt.openGateway {
				cb := services.Gateway.Breaker()
				for i := 0; i < circuitbreaker.DefaultConfig().FailureThreshold; i++ {
					_ = cb.Execute(context.Background(), func() error { return assert.AnError })
				}
				require.True(t, cb.IsOpen())
			}

			components := InitializeRouter(services, cat, nil, cfg)
			router := http.NewRouter(components.HealthHandler, components.Config)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}
