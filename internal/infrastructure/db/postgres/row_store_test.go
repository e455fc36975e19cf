package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researcher10001-hub/bytecity-accounting/internal/domain"
)

/*
RowStore test cases:
1) Table exists / missing / query failure
2) ReadAllRows orders rows and fills index gaps
3) ReadAllRows rejects malformed cells
4) WriteCell patches one cell inside a transaction
5) WriteCell on a missing row rolls back
6) ReplaceTable inserts header + rows
7) EnsureTable writes a header only for new tables
*/

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *RowStore) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock database")
	t.Cleanup(func() { _ = db.Close() })
	return db, mock, NewRowStore(db)
}

func TestRowStore_Table_Exists(t *testing.T) {
	_, mock, s := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM rowstore_tables WHERE name = $1)")).
		WithArgs("Users").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	tbl, err := s.Table(context.Background(), "Users")
	require.NoError(t, err)
	assert.NotNil(t, tbl)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRowStore_Table_Missing(t *testing.T) {
	_, mock, s := setupMockDB(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("Users").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := s.Table(context.Background(), "Users")
	assert.True(t, domain.Is(err, "table_not_found"), "got %v", err)
}

func TestRowStore_Table_QueryError(t *testing.T) {
	_, mock, s := setupMockDB(t)

	mock.ExpectQuery("SELECT EXISTS").WillReturnError(errors.New("conn refused"))

	_, err := s.Table(context.Background(), "Users")
	assert.True(t, domain.Is(err, "store_unavailable"), "got %v", err)
}

func TestTable_ReadAllRows_OrdersAndFillsGaps(t *testing.T) {
	db, mock, _ := setupMockDB(t)
	tbl := &Table{db: db, name: "Users"}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT row_index, cells")).
		WithArgs("Users").
		WillReturnRows(sqlmock.NewRows([]string{"row_index", "cells"}).
			AddRow(0, []byte(`["id","email","password_hash"]`)).
			AddRow(2, []byte(`["2","bob@x.com","h"]`)))

	rows, err := tbl.ReadAllRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "email", "password_hash"}, rows[0])
	assert.Nil(t, rows[1])
	assert.Equal(t, "bob@x.com", rows[2][1])
}

func TestTable_ReadAllRows_MalformedCells(t *testing.T) {
	db, mock, _ := setupMockDB(t)
	tbl := &Table{db: db, name: "Users"}

	mock.ExpectQuery("SELECT row_index, cells").
		WillReturnRows(sqlmock.NewRows([]string{"row_index", "cells"}).AddRow(0, []byte(`{not json`)))

	_, err := tbl.ReadAllRows(context.Background())
	assert.Error(t, err)
}

func TestTable_WriteCell_PatchesSingleCell(t *testing.T) {
	db, mock, _ := setupMockDB(t)
	tbl := &Table{db: db, name: "Users"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT cells FROM rowstore_rows WHERE table_name = $1 AND row_index = $2 FOR UPDATE")).
		WithArgs("Users", 1).
		WillReturnRows(sqlmock.NewRows([]string{"cells"}).AddRow([]byte(`["1","bob@x.com","oldhash"]`)))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE rowstore_rows SET cells = $3::jsonb")).
		WithArgs("Users", 1, `["1","bob@x.com","newhash"]`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, tbl.WriteCell(context.Background(), 1, 2, "newhash"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTable_WriteCell_PadsShortRow(t *testing.T) {
	db, mock, _ := setupMockDB(t)
	tbl := &Table{db: db, name: "Users"}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT cells FROM rowstore_rows").
		WithArgs("Users", 3).
		WillReturnRows(sqlmock.NewRows([]string{"cells"}).AddRow([]byte(`["3"]`)))
	mock.ExpectExec("UPDATE rowstore_rows").
		WithArgs("Users", 3, `["3","","h"]`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, tbl.WriteCell(context.Background(), 3, 2, "h"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTable_WriteCell_MissingRow_RollsBack(t *testing.T) {
	db, mock, _ := setupMockDB(t)
	tbl := &Table{db: db, name: "Users"}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT cells FROM rowstore_rows").
		WithArgs("Users", 9).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := tbl.WriteCell(context.Background(), 9, 2, "h")
	assert.True(t, domain.Is(err, "row_out_of_range"), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTable_WriteCell_NegativeIndex(t *testing.T) {
	db, _, _ := setupMockDB(t)
	tbl := &Table{db: db, name: "Users"}

	err := tbl.WriteCell(context.Background(), -1, 2, "h")
	assert.True(t, domain.Is(err, "row_out_of_range"))
}

func TestRowStore_ReplaceTable(t *testing.T) {
	_, mock, s := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rowstore_tables (name)")).
		WithArgs("Users").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM rowstore_rows")).
		WithArgs("Users").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rowstore_rows")).
		WithArgs("Users", 0, `["id","email","password_hash"]`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rowstore_rows")).
		WithArgs("Users", 1, `["1","bob@x.com","h"]`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.ReplaceTable(context.Background(), "Users", [][]string{
		{"id", "email", "password_hash"},
		{"1", "bob@x.com", "h"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRowStore_EnsureTable_Creates(t *testing.T) {
	_, mock, s := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rowstore_tables (name)")).
		WithArgs("Users").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rowstore_rows (table_name, row_index, cells) VALUES ($1, 0, $2::jsonb)")).
		WithArgs("Users", `["id","email","password_hash"]`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := s.EnsureTable(context.Background(), "Users", []string{"id", "email", "password_hash"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRowStore_EnsureTable_CommitFails_NotCreated(t *testing.T) {
	_, mock, s := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rowstore_tables (name)")).
		WithArgs("Users").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rowstore_rows")).
		WithArgs("Users", `["id","email","password_hash"]`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	created, err := s.EnsureTable(context.Background(), "Users", []string{"id", "email", "password_hash"})
	require.Error(t, err)
	assert.False(t, created)
	assert.True(t, domain.Is(err, "store_unavailable"), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRowStore_EnsureTable_ExistingUntouched(t *testing.T) {
	_, mock, s := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rowstore_tables (name)")).
		WithArgs("Users").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	created, err := s.EnsureTable(context.Background(), "Users", []string{"id", "email", "password_hash"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_ExecutesSchema(t *testing.T) {
	db, mock, _ := setupMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS rowstore_tables")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
