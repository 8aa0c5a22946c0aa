package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/goccy/go-json"

	"userapi/internal/model"
	"userapi/internal/store"
)

// Collection implements store.Collection over the documents table.
// The id column duplicates the entity id so max(id) stays an index lookup.
type Collection[T model.Entity] struct {
	db   *sql.DB
	name string
}

func NewCollection[T model.Entity](db *sql.DB, name string) *Collection[T] {
	return &Collection[T]{db: db, name: name}
}

var _ store.Collection[*model.User] = (*Collection[*model.User])(nil)

func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) Find(ctx context.Context) ([]T, error) {
	const q = `SELECT body FROM documents WHERE collection = $1`
	rows, err := c.db.QueryContext(ctx, q, c.name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		doc, err := decode[T](body)
		if err != nil {
			return nil, err
		}
		items = append(items, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Collection[T]) FindByID(ctx context.Context, id int) (T, bool, error) {
	const q = `SELECT body FROM documents WHERE collection = $1 AND id = $2`
	var zero T
	var body []byte
	err := c.db.QueryRowContext(ctx, q, c.name, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	doc, err := decode[T](body)
	if err != nil {
		return zero, false, err
	}
	return doc, true, nil
}

func (c *Collection[T]) MaxID(ctx context.Context) (int, error) {
	const q = `SELECT COALESCE(MAX(id), 0) FROM documents WHERE collection = $1`
	var id int
	if err := c.db.QueryRowContext(ctx, q, c.name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (c *Collection[T]) InsertOne(ctx context.Context, doc T) error {
	const q = `INSERT INTO documents (collection, id, body) VALUES ($1, $2, $3)`
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx, q, c.name, doc.GetID(), body)
	return err
}

// ReplaceByID ignores rows affected; an unmatched id is a no-op.
func (c *Collection[T]) ReplaceByID(ctx context.Context, id int, doc T) error {
	const q = `UPDATE documents SET body = $3, updated_at = now() WHERE collection = $1 AND id = $2`
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx, q, c.name, id, body)
	return err
}

func (c *Collection[T]) DeleteByID(ctx context.Context, id int) error {
	const q = `DELETE FROM documents WHERE collection = $1 AND id = $2`
	_, err := c.db.ExecContext(ctx, q, c.name, id)
	return err
}

func decode[T model.Entity](body []byte) (T, error) {
	var doc T
	err := json.Unmarshal(body, &doc)
	return doc, err
}
