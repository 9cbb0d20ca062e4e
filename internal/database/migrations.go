package database

import (
	"context"
	"database/sql"
)

// runMigrations creates the database schema. One durable record per board
// instance, keyed by board identifier; the snapshot column holds the full
// serialized board.
func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS boards (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			snapshot TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}
