package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/researcher10001-hub/bytecity-accounting/internal/application/credentials"
	"github.com/researcher10001-hub/bytecity-accounting/internal/domain"
)

type RowStore struct {
	db *sql.DB
}

func NewRowStore(db *sql.DB) *RowStore {
	return &RowStore{db: db}
}

func (s *RowStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ---------- credentials.RowStore ----------

func (s *RowStore) Table(ctx context.Context, name string) (credentials.Table, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM rowstore_tables WHERE name = $1);`

	var ok bool
	if err := s.db.QueryRowContext(ctx, q, name).Scan(&ok); err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	if !ok {
		return nil, domain.ErrTableNotFound(name)
	}
	return &Table{db: s.db, name: name}, nil
}

// ReplaceTable creates the table if needed and replaces all of its rows.
func (s *RowStore) ReplaceTable(ctx context.Context, name string, rows [][]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ErrStoreUnavailable(err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO rowstore_tables (name) VALUES ($1) ON CONFLICT (name) DO NOTHING;`, name); err != nil {
		return fmt.Errorf("create table %q: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM rowstore_rows WHERE table_name = $1;`, name); err != nil {
		return fmt.Errorf("clear table %q: %w", name, err)
	}
	for i, cells := range rows {
		b, err := encodeCells(cells)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO rowstore_rows (table_name, row_index, cells) VALUES ($1, $2, $3::jsonb);`,
			name, i, b); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// EnsureTable creates an empty table holding only header when name does not
// exist yet. Existing tables are left untouched. Reports whether it created one.
func (s *RowStore) EnsureTable(ctx context.Context, name string, header []string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, domain.ErrStoreUnavailable(err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO rowstore_tables (name) VALUES ($1) ON CONFLICT (name) DO NOTHING;`, name)
	if err != nil {
		return false, fmt.Errorf("create table %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	b, err := encodeCells(header)
	if err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO rowstore_rows (table_name, row_index, cells) VALUES ($1, 0, $2::jsonb);`,
		name, b); err != nil {
		return false, fmt.Errorf("insert header: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, domain.ErrStoreUnavailable(err)
	}
	return true, nil
}

// ---------- credentials.Table ----------

type Table struct {
	db   *sql.DB
	name string
}

func (t *Table) ReadAllRows(ctx context.Context) ([][]string, error) {
	const q = `
SELECT row_index, cells
FROM rowstore_rows
WHERE table_name = $1
ORDER BY row_index;
`
	rs, err := t.db.QueryContext(ctx, q, t.name)
	if err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	defer rs.Close()

	var rows [][]string
	for rs.Next() {
		var (
			idx int
			raw []byte
		)
		if err := rs.Scan(&idx, &raw); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		cells, err := decodeCells(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", idx, err)
		}
		// gaps in row_index read back as empty rows
		for len(rows) < idx {
			rows = append(rows, nil)
		}
		rows = append(rows, cells)
	}
	if err := rs.Err(); err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	return rows, nil
}

// WriteCell locks the row, patches one cell and writes the row back.
func (t *Table) WriteCell(ctx context.Context, row, col int, value string) error {
	if row < 0 || col < 0 {
		return domain.ErrRowOutOfRange(row)
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ErrStoreUnavailable(err)
	}
	defer func() { _ = tx.Rollback() }()

	var raw []byte
	err = tx.QueryRowContext(ctx,
		`SELECT cells FROM rowstore_rows WHERE table_name = $1 AND row_index = $2 FOR UPDATE;`,
		t.name, row).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrRowOutOfRange(row)
		}
		return domain.ErrStoreUnavailable(err)
	}

	cells, err := decodeCells(raw)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	for len(cells) <= col {
		cells = append(cells, "")
	}
	cells[col] = value

	b, err := encodeCells(cells)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE rowstore_rows SET cells = $3::jsonb, updated_at = now() WHERE table_name = $1 AND row_index = $2;`,
		t.name, row, b); err != nil {
		return domain.ErrStoreUnavailable(err)
	}
	return tx.Commit()
}

// ---------- helpers ----------

func decodeCells(raw []byte) ([]string, error) {
	var cells []string
	if len(raw) == 0 {
		return cells, nil
	}
	if err := json.Unmarshal(raw, &cells); err != nil {
		return nil, fmt.Errorf("decode cells: %w", err)
	}
	return cells, nil
}

func encodeCells(cells []string) (string, error) {
	if cells == nil {
		cells = []string{}
	}
	b, err := json.Marshal(cells)
	if err != nil {
		return "", fmt.Errorf("encode cells: %w", err)
	}
	return string(b), nil
}
