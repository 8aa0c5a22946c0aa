package repository

import (
	"context"
	"sync"

	"userapi/internal/model"
	"userapi/internal/store"
)

// NextIDFunc computes the next identifier. It runs with the allocation lock held.
type NextIDFunc func(ctx context.Context) (int, error)

// Option configures a Sequential repository.
type Option func(o *options)

type options struct {
	nextID NextIDFunc
}

// WithNextID replaces the max+1 allocator, e.g. with a fixed value in tests.
func WithNextID(fn NextIDFunc) Option {
	return func(o *options) {
		o.nextID = fn
	}
}

// Sequential assigns max(id)+1 on insert. Allocation and insert run under one
// mutex owned by the repository, so concurrent inserts in this process never
// reuse an id. Other processes writing to the same collection are not covered.
type Sequential[T model.Entity] struct {
	*Base[T]

	mu     sync.Mutex
	nextID NextIDFunc
}

// NewSequential creates a sequential-id repository over collection.
func NewSequential[T model.Entity](collection store.Collection[T], opts ...Option) *Sequential[T] {
	o := &options{}
	for _, op := range opts {
		op(o)
	}

	r := &Sequential[T]{Base: NewBase(collection)}
	r.nextID = o.nextID
	if r.nextID == nil {
		r.nextID = r.maxPlusOne
	}
	return r
}

// Insert allocates the next id, assigns it to entity and stores entity.
// The store is read again on every call; nothing is cached between inserts.
func (r *Sequential[T]) Insert(ctx context.Context, entity T) (T, error) {
	if isNil(entity) {
		var zero T
		return zero, nilEntityError[T]()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.nextID(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	entity.SetID(id)

	return r.Base.Insert(ctx, entity)
}

// NextID returns the id the next Insert would assign.
func (r *Sequential[T]) NextID(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextID(ctx)
}

// RemoveByEntity deletes by entity id; every other field is ignored.
func (r *Sequential[T]) RemoveByEntity(ctx context.Context, entity T) error {
	if isNil(entity) {
		return nilEntityError[T]()
	}
	return r.Base.RemoveByID(ctx, entity.GetID())
}

func (r *Sequential[T]) maxPlusOne(ctx context.Context) (int, error) {
	highest, err := r.collection.MaxID(ctx)
	if err != nil {
		return 0, err
	}
	return highest + 1, nil
}
