// Package memory is an in-process backend for the store contract. Documents are
// kept bson-encoded so readers never share memory with writers, which gives the
// same full-replace and copy semantics as a real document store.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"userapi/internal/config"
	"userapi/internal/model"
	"userapi/internal/store"
)

// ErrDuplicateKey mirrors the unique _id index of a real collection.
var ErrDuplicateKey = errors.New("memory: duplicate key")

// Connector hands out collections that live as long as the connector.
type Connector struct {
	database string
	name     string

	mu          sync.Mutex
	collections map[string]any
}

// NewConnector validates cfg and returns an empty in-memory database.
func NewConnector(cfg config.StoreConfig) (*Connector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Connector{
		database:    cfg.DatabaseName,
		name:        cfg.CollectionName,
		collections: make(map[string]any),
	}, nil
}

// Ping always succeeds.
func (c *Connector) Ping(context.Context) error { return nil }

// Close is a no-op.
func (c *Connector) Close(context.Context) error { return nil }

// GetCollection returns the typed collection bound to the configured name.
// Repeated calls for the same entity type share one collection.
func GetCollection[T model.Entity](c *Connector) *Collection[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := fmt.Sprintf("%s.%s/%T", c.database, c.name, *new(T))
	if existing, ok := c.collections[key].(*Collection[T]); ok {
		return existing
	}
	coll := NewCollection[T](c.name)
	c.collections[key] = coll
	return coll
}

// Collection implements store.Collection in memory. It is safe for concurrent use.
type Collection[T model.Entity] struct {
	name string

	mu   sync.RWMutex
	docs map[int][]byte
}

// NewCollection creates an empty standalone collection.
func NewCollection[T model.Entity](name string) *Collection[T] {
	return &Collection[T]{name: name, docs: make(map[int][]byte)}
}

var _ store.Collection[*model.User] = (*Collection[*model.User])(nil)

func (c *Collection[T]) Name() string { return c.name }

// Len returns the number of stored documents.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

func (c *Collection[T]) Find(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.docs))
	for _, raw := range c.docs {
		doc, err := decode[T](raw)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (c *Collection[T]) FindByID(ctx context.Context, id int) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	c.mu.RLock()
	raw, ok := c.docs[id]
	c.mu.RUnlock()
	if !ok {
		return zero, false, nil
	}
	doc, err := decode[T](raw)
	if err != nil {
		return zero, false, err
	}
	return doc, true, nil
}

func (c *Collection[T]) MaxID(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	highest := 0
	for id := range c.docs {
		if id > highest {
			highest = id
		}
	}
	return highest, nil
}

func (c *Collection[T]) InsertOne(ctx context.Context, doc T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	id := doc.GetID()

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.docs[id]; exists {
		return fmt.Errorf("%w: _id %d", ErrDuplicateKey, id)
	}
	c.docs[id] = raw
	return nil
}

func (c *Collection[T]) ReplaceByID(ctx context.Context, id int, doc T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.docs[id]; !exists {
		return nil
	}
	c.docs[id] = raw
	return nil
}

func (c *Collection[T]) DeleteByID(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.docs, id)
	return nil
}

func decode[T model.Entity](raw []byte) (T, error) {
	var doc T
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return doc, err
	}
	return doc, nil
}
