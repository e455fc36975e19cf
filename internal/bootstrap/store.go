package bootstrap

import (
	"context"
	"fmt"

	"google.golang.org/api/option"

	"github.com/researcher10001-hub/bytecity-accounting/internal/application/credentials"
	"github.com/researcher10001-hub/bytecity-accounting/internal/config"
	"github.com/researcher10001-hub/bytecity-accounting/internal/infrastructure/db/postgres"
	"github.com/researcher10001-hub/bytecity-accounting/internal/infrastructure/memory"
	"github.com/researcher10001-hub/bytecity-accounting/internal/infrastructure/redis"
	"github.com/researcher10001-hub/bytecity-accounting/internal/logger"
)

// RowStore is what the server needs from a backing store: table access for
// the updater and a ping for readiness.
type RowStore interface {
	credentials.RowStore
	Ping(ctx context.Context) error
}

// TableReplacer is implemented by stores that can be bulk-loaded.
type TableReplacer interface {
	ReplaceTable(ctx context.Context, name string, rows [][]string) error
}

// OpenStore connects the row store selected by cfg.RowStoreDriver. The
// returned cleanup releases whatever connections were opened.
func OpenStore(ctx context.Context, cfg *config.Config, deps Deps) (RowStore, func(), error) {
	switch cfg.RowStoreDriver {
	case config.DriverMemory:
		return memory.NewRowStore(), func() {}, nil

	case config.DriverPostgres:
		db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		logger.Logger.Info().Msg("postgres row store connected")
		return postgres.NewRowStore(db), func() { _ = db.Close() }, nil

	case config.DriverRedis:
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := c.Ping(ctx); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("redis: %w", err)
		}
		logger.Logger.Info().Str("addr", cfg.RedisAddr).Msg("redis row store connected")
		return redis.NewRowStore(c), func() { _ = c.Close() }, nil

	case config.DriverSheets:
		var opts []option.ClientOption
		if cfg.SheetsCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.SheetsCredentialsFile))
		}
		s, err := deps.NewSheets(ctx, cfg.SheetsSpreadsheetID, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("sheets: %w", err)
		}
		logger.Logger.Info().Str("spreadsheet", cfg.SheetsSpreadsheetID).Msg("sheets row store ready")
		return s, func() {}, nil
	}

	return nil, nil, fmt.Errorf("unsupported row store driver %q", cfg.RowStoreDriver)
}
