// Package server wires the petcare process together: database, migrations,
// image store, services, the REST API, the gRPC health endpoint and the
// refresh-token sweeper, with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/petcare/internal/logging"
	"github.com/dmitrijs2005/petcare/internal/metrics"
	"github.com/dmitrijs2005/petcare/internal/server/auth"
	"github.com/dmitrijs2005/petcare/internal/server/config"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/petcare/internal/server/rest"
	"github.com/dmitrijs2005/petcare/internal/server/services"
	"github.com/dmitrijs2005/petcare/internal/server/shared/db"
	"github.com/dmitrijs2005/petcare/internal/server/storage"

	gs "github.com/dmitrijs2005/petcare/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	http    *rest.Server
	health  *gs.HealthServer
	sweeper *services.TokenSweeper
}

// NewBackend builds the object store backend selected by cfg.StorageBackend
// and makes sure its bucket exists.
func NewBackend(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
	opts := storage.S3Options{
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Endpoint:  cfg.S3BaseEndpoint,
		Bucket:    cfg.S3Bucket,
	}

	var (
		backend storage.Backend
		err     error
	)
	switch cfg.StorageBackend {
	case config.StorageS3:
		backend, err = storage.NewS3Backend(ctx, opts)
	case config.StorageMinio:
		backend, err = storage.NewMinioBackend(opts, cfg.S3UseSSL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	if err := backend.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("storage bucket error: %w", err)
	}
	return backend, nil
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	conn, err := db.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	backend, err := NewBackend(ctx, c)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	files := storage.NewImageStore(backend, c.MaxUploadSize)

	m := metrics.New()
	tokens := auth.NewTokenProvider([]byte(c.SecretKey), c.AccessTokenValidityDuration, c.RefreshTokenValidityDuration)
	us := services.NewUserService(conn, rm, tokens)

	router := rest.NewRouter(rest.Options{
		Users:         us,
		Pets:          services.NewPetService(conn, rm),
		Boards:        services.NewBoardService(conn, rm),
		Comments:      services.NewCommentService(conn, rm),
		Journals:      services.NewJournalService(conn, rm),
		Walks:         services.NewWalkService(conn, rm),
		Files:         files,
		Tokens:        tokens,
		Logger:        logger,
		Metrics:       m,
		LoginLimiter:  rest.NewRateLimiter(c.LoginRateLimit, c.LoginRateBurst, m.RateLimited),
		MaxUploadSize: c.MaxUploadSize,
	})

	return &App{
		config:  c,
		logger:  logger,
		db:      conn,
		http:    rest.NewServer(c.HTTPAddr, router, logger, c.ShutdownTimeout),
		health:  gs.NewHealthServer(c.GRPCHealthAddr, logger),
		sweeper: services.NewTokenSweeper(us, c.TokenSweepInterval, logger, m.SweptTokens),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// runServer runs one listener; a failure cancels the whole process.
func (app *App) runServer(ctx context.Context, cancelFunc context.CancelFunc, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "http", app.http.Run)
	}()
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "grpc_health", app.health.Run)
	}()
	go func() {
		defer wg.Done()
		app.sweeper.Run(ctx)
	}()

	<-ctx.Done()
	app.health.Shutdown()
	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
