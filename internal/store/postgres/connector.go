// Package postgres stores documents as JSONB rows so the repositories can run
// against PostgreSQL with the same collection semantics as MongoDB.
package postgres

import (
	"context"
	"database/sql"

	"userapi/internal/config"
	"userapi/internal/database"
	"userapi/internal/model"
)

// Connector resolves typed collections from one *sql.DB.
type Connector struct {
	db             *sql.DB
	collectionName string
}

// NewConnector validates cfg and opens the instrumented connection pool.
func NewConnector(cfg config.StoreConfig) (*Connector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	db, err := database.NewPostgres(cfg)
	if err != nil {
		return nil, err
	}
	return NewConnectorFromDB(db, cfg.CollectionName), nil
}

// NewConnectorFromDB wraps an existing pool.
func NewConnectorFromDB(db *sql.DB, collectionName string) *Connector {
	return &Connector{db: db, collectionName: collectionName}
}

// DB exposes the pool for schema migration.
func (c *Connector) DB() *sql.DB { return c.db }

func (c *Connector) Ping(ctx context.Context) error { return c.db.PingContext(ctx) }

func (c *Connector) Close(context.Context) error { return c.db.Close() }

// GetCollection returns a typed handle on the configured collection.
func GetCollection[T model.Entity](c *Connector) *Collection[T] {
	return NewCollection[T](c.db, c.collectionName)
}
