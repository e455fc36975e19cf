package credentials

import (
	"context"
	"errors"
	"sync"

	"github.com/researcher10001-hub/bytecity-accounting/internal/domain"
)

/*
Fakes for ports
*/

type cellWrite struct {
	row, col int
	value    string
}

type fakeTable struct {
	mu   sync.Mutex
	rows [][]string

	readErr  error
	writeErr error

	reads  int
	writes []cellWrite
}

func (t *fakeTable) ReadAllRows(ctx context.Context) ([][]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.reads++
	if t.readErr != nil {
		return nil, t.readErr
	}
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (t *fakeTable) WriteCell(ctx context.Context, row, col int, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.writeErr != nil {
		return t.writeErr
	}
	for len(t.rows[row]) <= col {
		t.rows[row] = append(t.rows[row], "")
	}
	t.rows[row][col] = value
	t.writes = append(t.writes, cellWrite{row, col, value})
	return nil
}

type fakeStore struct {
	tables map[string]*fakeTable
	err    error
	calls  int
}

func newFakeStore(name string, rows [][]string) (*fakeStore, *fakeTable) {
	tbl := &fakeTable{rows: rows}
	return &fakeStore{tables: map[string]*fakeTable{name: tbl}}, tbl
}

func (s *fakeStore) Table(ctx context.Context, name string) (Table, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	tbl, ok := s.tables[name]
	if !ok {
		return nil, domain.ErrTableNotFound(name)
	}
	return tbl, nil
}

type fakeHasher struct {
	err error
}

func (h fakeHasher) Hash(email, password string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "h(" + email + "," + password + ")", nil
}

type panicHasher struct{}

func (panicHasher) Hash(string, string) (string, error) {
	panic("hasher exploded")
}

var errBoom = errors.New("boom")

func header() []string {
	return []string{"id", "email", "password_hash"}
}
