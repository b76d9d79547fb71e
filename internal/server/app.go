// Package server wires the userkeeper server together: logger, database,
// migrations, admin bootstrap and the gRPC endpoint, and handles graceful
// shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/config"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userkeeper/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"

	gs "github.com/dmitrijs2005/userkeeper/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	bootstrap   *services.Bootstrap
	grpcServer  *gs.GRPCServer
}

// NewApp builds the logger and opens the database described by c. The
// connection is established lazily, on first use.
func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return newApp(c, logger, db, repomanager.NewPostgresRepositoryManager())
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) (*App, error) {
	hasher, err := auth.NewBcryptHasher(c.BcryptCost)
	if err != nil {
		return nil, err
	}
	codec := auth.NewTokenCodec([]byte(c.SecretKey), c.TokenValidityDuration)

	us := services.NewUserService(db, rm, hasher, codec, logger.With("module", "user_service"))
	as := services.NewAppService(db, rm, logger.With("module", "app_service"))
	bs := services.NewBootstrap(db, rm, hasher, logger.With("module", "bootstrap"))
	gate := gs.NewGate(codec, gs.DefaultRules)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		repomanager: rm,
		bootstrap:   bs,
		grpcServer:  gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, as, gate),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run migrates the schema, provisions the administrator and serves gRPC
// until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	defer app.close(ctx)

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(ctx, cancelFunc)

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migrations failed", "error", err)
		return fmt.Errorf("run migrations: %w", err)
	}

	if err := app.bootstrap.EnsureAdmin(ctx, app.config.AdminLogin, app.config.AdminPassword); err != nil {
		app.logger.Error(ctx, "admin bootstrap failed", "error", err)
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	if err := app.grpcServer.Run(ctx); err != nil {
		app.logger.Error(ctx, "gRPC server failed", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}

func (app *App) close(ctx context.Context) {
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "closing database", "error", err)
	}
	if s, ok := app.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}
