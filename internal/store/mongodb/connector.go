// Package mongodb is the MongoDB backend for the store contract and the
// primary connector used by the API.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"userapi/internal/config"
	"userapi/internal/logging"
	"userapi/internal/model"
)

// Connector resolves typed collections from one client and database.
// It holds no state beyond those handles and may serve any number of repositories.
type Connector struct {
	client         *mongo.Client
	db             *mongo.Database
	collectionName string
}

// NewConnector validates cfg, connects and pings the deployment.
func NewConnector(ctx context.Context, cfg config.StoreConfig) (*Connector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := options.Client().ApplyURI(cfg.ConnectionString)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(uint64(cfg.MaxPoolSize))
	}
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(uint64(cfg.MinPoolSize))
	}
	if cfg.ConnMaxLifetimeSec > 0 {
		opts.SetMaxConnIdleTime(time.Duration(cfg.ConnMaxLifetimeSec) * time.Second)
	}
	if cfg.TimeoutSec > 0 {
		timeout := time.Duration(cfg.TimeoutSec) * time.Second
		opts.SetConnectTimeout(timeout)
		opts.SetServerSelectionTimeout(timeout)
	}

	start := time.Now()
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	logging.JSON(map[string]any{
		"component":   "store",
		"event":       "store_connected",
		"status":      "success",
		"driver":      config.DriverMongoDB,
		"database":    cfg.DatabaseName,
		"collection":  cfg.CollectionName,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return NewConnectorFromDatabase(client.Database(cfg.DatabaseName), cfg.CollectionName), nil
}

// NewConnectorFromDatabase wraps an existing database handle.
func NewConnectorFromDatabase(db *mongo.Database, collectionName string) *Connector {
	return &Connector{
		client:         db.Client(),
		db:             db,
		collectionName: collectionName,
	}
}

// Ping checks that the primary is reachable.
func (c *Connector) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (c *Connector) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// GetCollection returns a typed handle on the configured collection.
func GetCollection[T model.Entity](c *Connector) *Collection[T] {
	return NewCollection[T](c.db.Collection(c.collectionName))
}
