package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"userapi/internal/model"
	"userapi/internal/store"
)

const keyField = "_id"

// Collection implements store.Collection on top of *mongo.Collection.
// Driver errors are returned as-is.
type Collection[T model.Entity] struct {
	coll *mongo.Collection
}

// NewCollection wraps coll.
func NewCollection[T model.Entity](coll *mongo.Collection) *Collection[T] {
	return &Collection[T]{coll: coll}
}

var _ store.Collection[*model.User] = (*Collection[*model.User])(nil)

func (c *Collection[T]) Name() string { return c.coll.Name() }

func (c *Collection[T]) Find(ctx context.Context) ([]T, error) {
	cur, err := c.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = make([]T, 0)
	}
	return out, nil
}

func (c *Collection[T]) FindByID(ctx context.Context, id int) (T, bool, error) {
	var doc T
	err := c.coll.FindOne(ctx, byID(id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, err
	}
	return doc, true, nil
}

// MaxID reads only the _id of the highest document.
func (c *Collection[T]) MaxID(ctx context.Context) (int, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: keyField, Value: -1}}).
		SetProjection(bson.D{{Key: keyField, Value: 1}})

	var top struct {
		ID int `bson:"_id"`
	}
	err := c.coll.FindOne(ctx, bson.D{}, opts).Decode(&top)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return top.ID, nil
}

func (c *Collection[T]) InsertOne(ctx context.Context, doc T) error {
	_, err := c.coll.InsertOne(ctx, doc)
	return err
}

func (c *Collection[T]) ReplaceByID(ctx context.Context, id int, doc T) error {
	_, err := c.coll.ReplaceOne(ctx, byID(id), doc)
	return err
}

func (c *Collection[T]) DeleteByID(ctx context.Context, id int) error {
	_, err := c.coll.DeleteOne(ctx, byID(id))
	return err
}

func byID(id int) bson.D {
	return bson.D{{Key: keyField, Value: id}}
}
