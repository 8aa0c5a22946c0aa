package store

import (
	"context"

	"userapi/internal/model"
)

// Package store holds the collection contract shared by every backend.
// Backends live in subpackages (mongodb, postgres, memory); each exposes a
// Connector built from config.StoreConfig and a generic GetCollection function.

// Collection is a typed handle on one named collection of documents.
// Implementations return store errors unchanged; absence is never an error.
type Collection[T model.Entity] interface {
	// Name returns the collection name the handle is bound to.
	Name() string

	// Find returns every document. The result is never nil.
	Find(ctx context.Context) ([]T, error)

	// FindByID returns the document with the given id and whether it exists.
	FindByID(ctx context.Context, id int) (T, bool, error)

	// MaxID returns the highest id in the collection, or 0 when it is empty.
	MaxID(ctx context.Context) (int, error)

	// InsertOne stores doc as-is.
	InsertOne(ctx context.Context, doc T) error

	// ReplaceByID overwrites the whole document matching id. Unmatched ids are a no-op.
	ReplaceByID(ctx context.Context, id int, doc T) error

	// DeleteByID removes the document matching id. Unmatched ids are a no-op.
	DeleteByID(ctx context.Context, id int) error
}

// Pinger is implemented by connectors that can report store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
