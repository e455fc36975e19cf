package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/researcher10001-hub/bytecity-accounting/internal/application/credentials"
	"github.com/researcher10001-hub/bytecity-accounting/internal/domain"
	"github.com/researcher10001-hub/bytecity-accounting/internal/logger"
)

// SeedUsers creates the users table with a header row and demo accounts for
// local development. Calling it again resets the table.
func SeedUsers(ctx context.Context, store *RowStore, table string, hasher credentials.Hasher) {
	seeds := []struct {
		Email string
		Pass  string
	}{
		{Email: "admin@example.com", Pass: "AdminPassword123!"},
		{Email: "user@example.com", Pass: "UserPassword123!"},
	}

	rows := [][]string{domain.UsersHeader()}
	for _, s := range seeds {
		hash, err := hasher.Hash(s.Email, s.Pass)
		if err != nil {
			logger.Logger.Warn().Err(err).Str("email", s.Email).Msg("seed hash failed")
			continue
		}
		rows = append(rows, []string{uuid.NewString(), s.Email, hash})
	}

	store.CreateTable(table, rows)
	logger.Logger.Info().Int("users", len(rows)-1).Str("table", table).Msg("in-memory users seeded")
}
