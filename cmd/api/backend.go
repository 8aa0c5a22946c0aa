package main

import (
	"context"
	"fmt"

	"userapi/internal/config"
	"userapi/internal/database/migration"
	"userapi/internal/model"
	"userapi/internal/store"
	"userapi/internal/store/memory"
	"userapi/internal/store/mongodb"
	"userapi/internal/store/postgres"
)

// backend is the connector chosen by STORE_DRIVER and its users collection.
type backend struct {
	store.Pinger
	users store.Collection[*model.User]
	close func(context.Context) error
}

func (b *backend) Close(ctx context.Context) error { return b.close(ctx) }

func openBackend(ctx context.Context, cfg config.StoreConfig) (*backend, error) {
	switch cfg.Driver {
	case config.DriverMongoDB, "":
		conn, err := mongodb.NewConnector(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &backend{Pinger: conn, users: mongodb.GetCollection[*model.User](conn), close: conn.Close}, nil

	case config.DriverPostgres:
		conn, err := postgres.NewConnector(cfg)
		if err != nil {
			return nil, err
		}
		if err := migration.EnsureMigrated(ctx, conn.DB(), cfg.DatabaseName); err != nil {
			conn.Close(ctx)
			return nil, err
		}
		return &backend{Pinger: conn, users: postgres.GetCollection[*model.User](conn), close: conn.Close}, nil

	case config.DriverMemory:
		conn, err := memory.NewConnector(cfg)
		if err != nil {
			return nil, err
		}
		return &backend{Pinger: conn, users: memory.GetCollection[*model.User](conn), close: conn.Close}, nil
	}
	return nil, fmt.Errorf("%w: unsupported store driver %q", config.ErrConfiguration, cfg.Driver)
}
