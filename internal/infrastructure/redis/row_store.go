package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/researcher10001-hub/bytecity-accounting/internal/application/credentials"
	"github.com/researcher10001-hub/bytecity-accounting/internal/domain"
)

const tableKeyPrefix = "rowstore:table:"

// RowStore keeps each table as a Redis list; list element i is row i encoded
// as a JSON array of strings.
type RowStore struct {
	c *Client
}

func NewRowStore(c *Client) *RowStore {
	return &RowStore{c: c}
}

func tableKey(name string) string { return tableKeyPrefix + name }

func (s *RowStore) Ping(ctx context.Context) error { return s.c.Ping(ctx) }

func (s *RowStore) Table(ctx context.Context, name string) (credentials.Table, error) {
	n, err := s.c.rdb.Exists(ctx, tableKey(name)).Result()
	if err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	if n == 0 {
		return nil, domain.ErrTableNotFound(name)
	}
	return &Table{c: s.c, key: tableKey(name)}, nil
}

// ReplaceTable atomically replaces the table's rows.
func (s *RowStore) ReplaceTable(ctx context.Context, name string, rows [][]string) error {
	vals := make([]any, 0, len(rows))
	for _, r := range rows {
		b, err := encodeRow(r)
		if err != nil {
			return err
		}
		vals = append(vals, b)
	}

	key := tableKey(name)
	_, err := s.c.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Del(ctx, key)
		if len(vals) > 0 {
			p.RPush(ctx, key, vals...)
		}
		return nil
	})
	if err != nil {
		return domain.ErrStoreUnavailable(err)
	}
	return nil
}

type Table struct {
	c   *Client
	key string
}

func (t *Table) ReadAllRows(ctx context.Context) ([][]string, error) {
	raw, err := t.c.rdb.LRange(ctx, t.key, 0, -1).Result()
	if err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	rows := make([][]string, 0, len(raw))
	for i, r := range raw {
		cells, err := decodeRow(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// WriteCell rewrites one list element. Only the target row is read and
// replaced, so writes to other rows never conflict with it. Concurrent writes
// to the same row are last-write-wins.
func (t *Table) WriteCell(ctx context.Context, row, col int, value string) error {
	if row < 0 || col < 0 {
		return domain.ErrRowOutOfRange(row)
	}

	raw, err := t.c.rdb.LIndex(ctx, t.key, int64(row)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.ErrRowOutOfRange(row)
		}
		return domain.ErrStoreUnavailable(err)
	}

	cells, err := decodeRow(raw)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	for len(cells) <= col {
		cells = append(cells, "")
	}
	cells[col] = value

	b, err := encodeRow(cells)
	if err != nil {
		return err
	}
	if err := t.c.rdb.LSet(ctx, t.key, int64(row), b).Err(); err != nil {
		// the list shrank between LINDEX and LSET
		if strings.Contains(err.Error(), "index out of range") {
			return domain.ErrRowOutOfRange(row)
		}
		return domain.ErrStoreUnavailable(err)
	}
	return nil
}

func decodeRow(raw string) ([]string, error) {
	var cells []string
	if err := json.Unmarshal([]byte(raw), &cells); err != nil {
		return nil, fmt.Errorf("decode row: %w", err)
	}
	return cells, nil
}

func encodeRow(cells []string) (string, error) {
	if cells == nil {
		cells = []string{}
	}
	b, err := json.Marshal(cells)
	if err != nil {
		return "", fmt.Errorf("encode row: %w", err)
	}
	return string(b), nil
}
