package repository

import (
	"userapi/internal/model"
	"userapi/internal/store"
)

// NewUserRepository returns the sequential-id repository for users.
func NewUserRepository(collection store.Collection[*model.User], opts ...Option) UserRepository {
	return NewSequential(collection, opts...)
}

var _ UserRepository = (*Sequential[*model.User])(nil)
