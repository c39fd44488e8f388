// Package main is the entry point for the blend-service application.
//
// @title           Blend Service API
// @version         1.0.0
// @description     API for building beverage formulations and checking them against product specifications.
//
//	Formulation sessions hold up to twenty material slots plus the diluent. Every change is re-evaluated for sugar, acidity, sweetness, pH, cost and compliance.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/blend-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer JWT signed with the service secret. Required if authentication is enabled.
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Used when no JWT secret is configured.
//
// @tag.name        Formulations
// @tag.description Formulation sessions and composition evaluation
//
// @tag.name        Catalog
// @tag.description Materials, specifications and catalog reloads
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"

	_ "github.com/guttosm/blend-service/docs" // swagger docs

	"github.com/guttosm/blend-service/config"
	"github.com/guttosm/blend-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.InitializeApp(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	server := app.NewServer(application.Router, cfg.Server)
	if err := server.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Server error")
	}
}
