// Package server initializes and runs the authkeeper server.
// It opens the configured storage backends, runs migrations, wires the auth
// services and runs the HTTP API, the gRPC health endpoint and the
// invalidation-set pruner until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"

	gs "github.com/dmitrijs2005/authkeeper/internal/server/grpc"
)

const dbPingTimeout = 5 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	closers     []io.Closer
	revoked     revokedtokens.Repository
	userService *services.UserService
	metrics     *httpapi.Metrics
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, logging.NewJSONLogger(os.Stdout, c.LogLevel))
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (_ *App, err error) {
	app := &App{config: c, logger: logger, metrics: httpapi.NewMetrics()}
	defer func() {
		if err != nil {
			app.close(ctx)
		}
	}()

	var db *sql.DB
	if c.NeedsDatabase() {
		db, err = openDB(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		app.closers = append(app.closers, db)

		if err = repomanager.NewPostgresRepositoryManager().RunMigrations(ctx, db); err != nil {
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
	}

	rm, userDB := userStore(c, db)

	switch c.BlacklistBackend {
	case config.BackendPostgres:
		app.revoked = repomanager.NewPostgresRepositoryManager().RevokedTokens(db)
	case config.BackendRedis:
		client, rerr := revokedtokens.NewRedisClient(ctx, c.RedisURL)
		if rerr != nil {
			return nil, fmt.Errorf("redis init error: %w", rerr)
		}
		app.closers = append(app.closers, client)
		app.revoked = revokedtokens.NewRedisRepository(client, "")
	default:
		app.revoked = repomanager.NewMemoryRepositoryManager().RevokedTokens(nil)
	}

	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte(c.SecretKey),
		TTL:    c.TokenValidityDuration,
		Issuer: c.TokenIssuer,
	}, app.revoked)
	if err != nil {
		return nil, fmt.Errorf("token service init error: %w", err)
	}

	app.userService = services.NewUserService(userDB, rm, tokens, auth.NewBcryptHasher(c.BcryptCost), logger)

	logger.Info(ctx, "App initialized",
		"user_store", c.UserStore,
		"blacklist_backend", c.BlacklistBackend,
		"token_ttl", tokens.TTL().String(),
	)
	return app, nil
}

// userStore picks the user repository manager. The database handle is
// returned only for the postgres store, so a memory store never runs inside
// a database transaction.
func userStore(c *config.Config, db *sql.DB) (repomanager.RepositoryManager, *sql.DB) {
	if c.UserStore == config.BackendPostgres {
		return repomanager.NewPostgresRepositoryManager(), db
	}
	return repomanager.NewMemoryRepositoryManager(), nil
}

func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	h := httpapi.NewHandler(app.userService, app.metrics, app.logger)
	router := httpapi.NewRouter(h, app.metrics, app.logger)

	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, router, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a signal arrives or a server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		revokedtokens.NewPruner(app.revoked, app.config.BlacklistPruneInterval, app.logger).Run(ctx)
	}()

	wg.Wait()

	app.close(context.WithoutCancel(ctx))
	app.logger.Info(ctx, "App stopped")
}

func (app *App) close(ctx context.Context) {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	app.closers = nil
	if err := errors.Join(errs...); err != nil {
		app.logger.Error(ctx, "close failed", "error", err)
	}
}
