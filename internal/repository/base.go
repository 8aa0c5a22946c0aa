package repository

import (
	"context"
	"fmt"
	"reflect"

	"userapi/internal/model"
	"userapi/internal/store"
)

// Base implements every Repository operation except RemoveByEntity on top of a
// store.Collection. Concrete repositories embed it.
type Base[T model.Entity] struct {
	collection store.Collection[T]
}

// NewBase creates a Base bound to collection.
func NewBase[T model.Entity](collection store.Collection[T]) *Base[T] {
	return &Base[T]{collection: collection}
}

// Insert stores entity as-is. It assigns no identifier.
func (b *Base[T]) Insert(ctx context.Context, entity T) (T, error) {
	if isNil(entity) {
		var zero T
		return zero, nilEntityError[T]()
	}
	if err := b.collection.InsertOne(ctx, entity); err != nil {
		var zero T
		return zero, err
	}
	return entity, nil
}

func (b *Base[T]) GetAll(ctx context.Context) ([]T, error) {
	return b.collection.Find(ctx)
}

func (b *Base[T]) GetByID(ctx context.Context, id int) (T, bool, error) {
	return b.collection.FindByID(ctx, id)
}

// UpdateByID stamps id onto entity and replaces the stored document with it.
func (b *Base[T]) UpdateByID(ctx context.Context, id int, entity T) error {
	if isNil(entity) {
		return nilEntityError[T]()
	}
	entity.SetID(id)
	return b.collection.ReplaceByID(ctx, id, entity)
}

func (b *Base[T]) RemoveByID(ctx context.Context, id int) error {
	return b.collection.DeleteByID(ctx, id)
}

func (b *Base[T]) Collection(ctx context.Context) (View[T], error) {
	items, err := b.collection.Find(ctx)
	if err != nil {
		return View[T]{}, err
	}
	return NewView(items), nil
}

func nilEntityError[T any]() error {
	return fmt.Errorf("%w: %s is nil", ErrInvalidArgument, reflect.TypeOf((*T)(nil)).Elem())
}

// isNil reports whether v is a nil interface or a typed nil pointer, map or slice.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
