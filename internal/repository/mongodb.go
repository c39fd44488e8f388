// Package repository provides the MongoDB data access layer: the material
// catalog collections and the request/audit log.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	materialsCollection      = "materials"
	specificationsCollection = "specifications"
	guidesCollection         = "guides"
	logsCollection           = "logs"

	logsTTLIndexName = "logs_ttl"
)

// MongoConfig holds MongoDB connection pool configuration.
type MongoConfig struct {
	// MaxPoolSize is the maximum number of connections in the pool.
	MaxPoolSize uint64
	// MinPoolSize is the minimum number of connections to keep in the pool.
	MinPoolSize uint64
	// MaxConnIdleTime is how long a connection can remain idle before being closed.
	MaxConnIdleTime time.Duration
	// ConnectTimeout bounds connecting, pinging and index creation.
	ConnectTimeout time.Duration
	// ServerSelectionTimeout is how long to wait for server selection.
	ServerSelectionTimeout time.Duration
	// SocketTimeout is the timeout for socket read/write operations.
	SocketTimeout time.Duration
	// EnableCompression enables wire protocol compression.
	EnableCompression bool
}

// DefaultMongoConfig returns the connection settings used by the service.
// The catalog is small and read on reload only, so the pool stays modest.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            20,
		MinPoolSize:            2,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

// MongoDB provides MongoDB client and database access.
type MongoDB struct {
	Client         *mongo.Client
	Database       *mongo.Database
	Materials      *mongo.Collection
	Specifications *mongo.Collection
	Guides         *mongo.Collection
	Logs           *mongo.Collection
}

// NewMongoDB connects with the default configuration.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects, verifies the server and ensures the
// catalog and log indexes exist.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetAppName("blend-service").
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)
	if cfg.EnableCompression {
		clientOptions.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}

	db := client.Database(databaseName)
	mongoDB := &MongoDB{
		Client:         client,
		Database:       db,
		Materials:      db.Collection(materialsCollection),
		Specifications: db.Collection(specificationsCollection),
		Guides:         db.Collection(guidesCollection),
		Logs:           db.Collection(logsCollection),
	}

	if err := mongoDB.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return mongoDB, nil
}

// indexPlan lists the indexes each collection needs. The unique ones carry
// catalog invariants: one material per name (diluent included), one
// specification per beverage type, one guide row per type_flavor_slot key.
func (m *MongoDB) indexPlan() map[*mongo.Collection][]mongo.IndexModel {
	unique := options.Index().SetUnique(true)
	return map[*mongo.Collection][]mongo.IndexModel{
		m.Materials: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		m.Specifications: {
			{Keys: bson.D{{Key: "beverage_type", Value: 1}}, Options: unique},
		},
		m.Guides: {
			{Keys: bson.D{{Key: "beverage_type", Value: 1}, {Key: "flavor", Value: 1}, {Key: "slot", Value: 1}}, Options: unique},
		},
		m.Logs: {
			{Keys: bson.D{{Key: "request_id", Value: 1}}},
			{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		},
	}
}

func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	var errs []error
	for coll, models := range m.indexPlan() {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			errs = append(errs, fmt.Errorf("indexes on %s: %w", coll.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// SetLogsTTL (re)creates the expiry index of the logs collection. A
// non-positive ttl removes it so logs are kept indefinitely.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttl time.Duration) error {
	if _, err := m.Logs.Indexes().DropOne(ctx, logsTTLIndexName); err != nil && !isIndexNotFound(err) {
		return fmt.Errorf("drop logs ttl index: %w", err)
	}
	if ttl <= 0 {
		return nil
	}

	seconds := int32(ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	_, err := m.Logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetName(logsTTLIndexName).SetExpireAfterSeconds(seconds),
	})
	if err != nil {
		return fmt.Errorf("create logs ttl index: %w", err)
	}
	return nil
}

// isIndexNotFound reports the server error for dropping a missing index,
// or a drop on a collection that does not exist yet.
func isIndexNotFound(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == 27 || cmdErr.Code == 26 // IndexNotFound, NamespaceNotFound
	}
	return false
}

// Close closes the MongoDB connection.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck verifies the MongoDB connection is healthy.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
