package memory

import (
	"context"
	"sync"

	"github.com/researcher10001-hub/bytecity-accounting/internal/application/credentials"
	"github.com/researcher10001-hub/bytecity-accounting/internal/domain"
)

// RowStore keeps named tables in process memory. Used in dev and tests.
type RowStore struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

func NewRowStore() *RowStore {
	return &RowStore{tables: make(map[string]*Table)}
}

// CreateTable creates (or replaces) a table holding a copy of rows.
func (s *RowStore) CreateTable(name string, rows [][]string) *Table {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &Table{rows: copyRows(rows)}
	s.tables[name] = t
	return t
}

// ReplaceTable satisfies the same seeding contract as the persistent stores.
func (s *RowStore) ReplaceTable(ctx context.Context, name string, rows [][]string) error {
	s.CreateTable(name, rows)
	return nil
}

func (s *RowStore) Table(ctx context.Context, name string) (credentials.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[name]
	if !ok {
		return nil, domain.ErrTableNotFound(name)
	}
	return t, nil
}

func (s *RowStore) Ping(ctx context.Context) error { return nil }

type Table struct {
	mu   sync.RWMutex
	rows [][]string
}

func (t *Table) ReadAllRows(ctx context.Context) ([][]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return copyRows(t.rows), nil
}

// WriteCell sets a single cell, padding the row with empty cells if needed.
func (t *Table) WriteCell(ctx context.Context, row, col int, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if row < 0 || row >= len(t.rows) || col < 0 {
		return domain.ErrRowOutOfRange(row)
	}
	for len(t.rows[row]) <= col {
		t.rows[row] = append(t.rows[row], "")
	}
	t.rows[row][col] = value
	return nil
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
