package bootstrap

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/api/option"

	"github.com/researcher10001-hub/bytecity-accounting/internal/application/credentials"
	"github.com/researcher10001-hub/bytecity-accounting/internal/config"
	"github.com/researcher10001-hub/bytecity-accounting/internal/infrastructure/memory"
	"github.com/researcher10001-hub/bytecity-accounting/internal/infrastructure/redis"
	"github.com/researcher10001-hub/bytecity-accounting/internal/infrastructure/security"
	"github.com/researcher10001-hub/bytecity-accounting/internal/infrastructure/sheets"
	"github.com/researcher10001-hub/bytecity-accounting/internal/logger"
	http_handlers "github.com/researcher10001-hub/bytecity-accounting/internal/transport/http/handlers"
	"github.com/researcher10001-hub/bytecity-accounting/internal/transport/http/middleware"
	"github.com/researcher10001-hub/bytecity-accounting/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(DefaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string, debug bool) (*sql.DB, error)

	NewRedis func(addr, password string, db int) *redis.Client

	NewSheets func(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*sheets.RowStore, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	ctx := context.Background()

	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) row store
	store, closeStore, err := OpenStore(ctx, cfg, deps)
	if err != nil {
		return nil, nil, err
	}
	cleanupFns := []func(){closeStore}

	// 2) hasher
	hasher, err := security.NewHasher(cfg.HashAlgorithm)
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// seed (dev only)
	if mem, ok := store.(*memory.RowStore); ok && cfg.Env == "dev" {
		memory.SeedUsers(ctx, mem, cfg.UsersTable, hasher)
	}

	// 3) service
	updater := credentials.NewUpdater(store, hasher, cfg.UsersTable)

	// 4) handlers
	passwordH := http_handlers.NewPasswordHandler(updater)
	healthH := http_handlers.NewHealthHandler(store)

	// 5) router
	mux, err := deps.NewRouter(router.Deps{
		Health:      healthH,
		Password:    passwordH,
		RequestIDMW: middleware.RequestID,
		AccessLogMW: middleware.AccessLog,
		MetricsMW:   middleware.Metrics,
		BodyLimitMW: middleware.BodyLimit(cfg.RequestBodyMaxSize),
		Metrics:     promhttp.Handler(),
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 6) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	logger.Logger.Info().
		Str("driver", cfg.RowStoreDriver).
		Str("table", cfg.UsersTable).
		Str("hash", cfg.HashAlgorithm).
		Msg("credential service wired")

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func DefaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB:      config.NewDB,
		NewRedis:   redis.New,
		NewSheets:  sheets.NewRowStore,
		NewRouter:  router.New,
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
