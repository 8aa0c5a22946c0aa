// Package migration creates and upgrades the PostgreSQL schema of the documents backend.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"userapi/internal/logging"
)

// Step is one versioned schema change. Steps run in version order, each inside
// its own transaction together with the row recording it.
type Step struct {
	Version int
	Name    string
	SQL     string
}

// Steps is the full schema history. Append only; never renumber.
var Steps = []Step{
	{
		Version: 1,
		Name:    "create_table_documents",
		// every collection shares this table; (collection, id) is the key
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  collection TEXT        NOT NULL,
  id         INTEGER     NOT NULL CHECK (id > 0),
  body       JSONB       NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (collection, id)
);`,
	},
	{
		Version: 2,
		Name:    "create_index_documents_updated_at",
		SQL:     `CREATE INDEX IF NOT EXISTS idx_documents_updated_at ON documents (updated_at);`,
	},
}

const (
	createVersionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
  version    INTEGER     PRIMARY KEY,
  name       TEXT        NOT NULL,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`
	selectVersion = `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`
	insertVersion = `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`
)

// EnsureMigrated applies every step newer than the recorded schema version.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbName string) error {
	return Run(ctx, db, dbName, Steps)
}

// Run applies the pending steps of steps. It is safe to call on every start.
func Run(ctx context.Context, db *sql.DB, dbName string, steps []Step) error {
	start := time.Now()
	event := func(name, status string, fields map[string]any) {
		entry := map[string]any{
			"component": "database",
			"event":     name,
			"status":    status,
			"db_name":   dbName,
		}
		for k, v := range fields {
			entry[k] = v
		}
		logging.JSON(entry)
	}

	if _, err := db.ExecContext(ctx, createVersionTable); err != nil {
		event("db_migration_failed", "error", map[string]any{"error_message": err.Error()})
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx, selectVersion).Scan(&current); err != nil {
		event("db_migration_failed", "error", map[string]any{"error_message": err.Error()})
		return fmt.Errorf("read schema version: %w", err)
	}

	applied := 0
	for _, step := range steps {
		if step.Version <= current {
			continue
		}
		stepStart := time.Now()
		if err := apply(ctx, db, step); err != nil {
			event("db_migration_failed", "error", map[string]any{
				"migration_step":   step.Name,
				"version":          step.Version,
				"error_message":    err.Error(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		applied++
		event("db_migration_step", "success", map[string]any{
			"migration_step":   step.Name,
			"version":          step.Version,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	if applied == 0 {
		event("db_migration_skip", "success", map[string]any{
			"msg":         "schema up to date",
			"version":     current,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}
	event("db_migration_success", "success", map[string]any{
		"applied":     applied,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

func apply(ctx context.Context, db *sql.DB, step Step) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, insertVersion, step.Version, step.Name); err != nil {
		return err
	}
	return tx.Commit()
}
