//go:build integration

package testutil

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	mongoImage = "mongo:7.0"
	redisImage = "redis:7-alpine"
)

// Service is a throwaway container and the address clients dial: a
// connection string for MongoDB, host:port for Redis.
type Service struct {
	Container testcontainers.Container
	Endpoint  string
}

// Cleanup terminates the container.
func (s *Service) Cleanup(ctx context.Context) error {
	if s == nil || s.Container == nil {
		return nil
	}
	if err := s.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("terminate %s: %w", s.Endpoint, err)
	}
	return nil
}

// SetupMongoDB starts a single MongoDB node. Prefer RunWithMongoDB, which
// shares one node per package.
func SetupMongoDB(ctx context.Context) (*Service, error) {
	c, err := mongodb.Run(ctx, mongoImage)
	if err != nil {
		return nil, fmt.Errorf("start mongodb: %w", err)
	}
	uri, err := c.ConnectionString(ctx)
	return started(ctx, c, uri, err)
}

// SetupRedis starts a Redis server for the shared estimate and idempotency
// caches.
func SetupRedis(ctx context.Context) (*Service, error) {
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        redisImage,
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start redis: %w", err)
	}
	endpoint, err := c.Endpoint(ctx, "")
	return started(ctx, c, endpoint, err)
}

// started terminates c when its endpoint could not be resolved.
func started(ctx context.Context, c testcontainers.Container, endpoint string, err error) (*Service, error) {
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("resolve endpoint: %w", err)
	}
	return &Service{Container: c, Endpoint: endpoint}, nil
}
