package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/researcher10001-hub/bytecity-accounting/internal/domain"
)

const DefaultUsersTable = "Users"

// UpdateRequest carries the inputs of a password update.
type UpdateRequest struct {
	Email       string
	NewPassword string
}

type Updater struct {
	store  RowStore
	hasher Hasher
	table  string
}

func NewUpdater(store RowStore, hasher Hasher, table string) *Updater {
	if table == "" {
		table = DefaultUsersTable
	}
	return &Updater{store: store, hasher: hasher, table: table}
}

// Update replaces the password hash of the first user whose email matches
// req.Email case-insensitively. It writes at most one cell.
func (u *Updater) Update(ctx context.Context, req UpdateRequest) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Internal(fmt.Errorf("%v", p))
		}
	}()

	if req.Email == "" || req.NewPassword == "" {
		return fromDomain(domain.ErrMissingFields())
	}

	tbl, err := u.store.Table(ctx, u.table)
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) && de.Code == "table_not_found" {
			return fromDomain(de)
		}
		return Internal(err)
	}

	rows, err := tbl.ReadAllRows(ctx)
	if err != nil {
		return Internal(err)
	}

	for i := domain.HeaderRow + 1; i < len(rows); i++ {
		if !domain.RecordFromRow(i, rows[i]).MatchesEmail(req.Email) {
			continue
		}

		hash, err := u.hasher.Hash(req.Email, req.NewPassword)
		if err != nil {
			return Internal(err)
		}
		if err := tbl.WriteCell(ctx, i, domain.ColPasswordHash, hash); err != nil {
			return Internal(err)
		}
		return success()
	}

	return fromDomain(domain.ErrUserNotFound())
}
