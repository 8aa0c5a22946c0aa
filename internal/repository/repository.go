package repository

// Package repository contains the data access layer: a generic CRUD capability set
// shared by every entity type and the sequential-id repositories built on it.
// Backends are reached only through store.Collection.

import (
	"context"
	"errors"

	"userapi/internal/model"
)

// ErrInvalidArgument is returned synchronously when a nil entity is passed in.
var ErrInvalidArgument = errors.New("invalid argument")

// Repository is the CRUD capability set for one entity type.
// Absence is reported through the found flag or as a no-op, never as an error.
type Repository[T model.Entity] interface {
	// Insert persists entity and returns it.
	Insert(ctx context.Context, entity T) (T, error)

	// GetAll returns every entity in the collection, in no particular order.
	GetAll(ctx context.Context) ([]T, error)

	// GetByID returns the matching entity and true, or the zero value and false.
	GetByID(ctx context.Context, id int) (T, bool, error)

	// UpdateByID replaces the whole stored document. Unmatched ids are a no-op.
	UpdateByID(ctx context.Context, id int, entity T) error

	// RemoveByID deletes the matching document. Unmatched ids are a no-op.
	RemoveByID(ctx context.Context, id int) error

	// RemoveByEntity deletes the document matching entity. What "matching" means
	// is up to the concrete repository.
	RemoveByEntity(ctx context.Context, entity T) error

	// Collection returns a read-only snapshot for in-memory composition.
	Collection(ctx context.Context) (View[T], error)
}

// UserRepository is the repository for users.
type UserRepository interface {
	Repository[*model.User]

	// NextID previews the identifier the next Insert would assign.
	NextID(ctx context.Context) (int, error)
}
