package credentials

import "context"

/*
RowStore
--------
Tabular persistence port. Tables are addressed by name; a missing table is
reported as domain.ErrTableNotFound.
*/
type RowStore interface {
	Table(ctx context.Context, name string) (Table, error)
}

/*
Table
-----
Row 0 is the header. Indices are 0-based for both rows and columns.
*/
type Table interface {
	ReadAllRows(ctx context.Context) ([][]string, error)
	WriteCell(ctx context.Context, row, col int, value string) error
}

/*
Hasher
------
Derives the stored password hash from (email, password).
Must be deterministic.
*/
type Hasher interface {
	Hash(email, password string) (string, error)
}
