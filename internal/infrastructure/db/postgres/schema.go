package postgres

import (
	"context"
	"database/sql"
)

// Schema stores every table as rows of JSON string arrays. Row 0 is the header.
const Schema = `
CREATE TABLE IF NOT EXISTS rowstore_tables (
	name       TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS rowstore_rows (
	table_name TEXT NOT NULL REFERENCES rowstore_tables(name) ON DELETE CASCADE,
	row_index  INT  NOT NULL CHECK (row_index >= 0),
	cells      JSONB NOT NULL DEFAULT '[]'::jsonb,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (table_name, row_index)
);
`

// Migrate creates the row-store schema if it does not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}
