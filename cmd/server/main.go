package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/caresign/caresign/internal/assist"
	"github.com/caresign/caresign/internal/config"
	"github.com/caresign/caresign/internal/documents"
	"github.com/caresign/caresign/internal/merge"
	"github.com/caresign/caresign/internal/migrations"
	"github.com/caresign/caresign/internal/overlay"
	"github.com/caresign/caresign/internal/sessions"
	"github.com/caresign/caresign/internal/storage"
	"github.com/caresign/caresign/internal/verify"
	"github.com/caresign/caresign/pkg/logging"
	"github.com/caresign/caresign/pkg/middleware"
	"github.com/caresign/caresign/pkg/routes"
)

// Application holds the wired service systems.
type Application struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *sql.DB
	blobs    storage.System
	sessions sessions.System
	verify   verify.System
	docs     documents.System
	overlay  overlay.System
	merge    merge.System
	assist   assist.System
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", config.BaseConfigFile, "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := logging.New(&cfg.Logging)

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	blobs, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return err
	}
	if err := blobs.Init(); err != nil {
		return err
	}

	sessionStore := sessions.New(db, logger)
	app := &Application{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		blobs:    blobs,
		sessions: sessionStore,
		verify:   verify.NewSystem(verify.NewCredentials(db, logger), sessionStore, logger),
		docs:     documents.New(db, blobs, sessionStore, logger),
		assist:   assist.New(logger),
	}
	app.overlay = overlay.New(app.docs, blobs, sessionStore, logger)
	app.merge = merge.New(app.docs, blobs, sessionStore, logger)

	return app.serve()
}

func openDB(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetimeDuration())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnTimeoutDuration())
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

func (app *Application) serve() error {
	router := routes.New(app.logger)
	app.registerRoutes(router)

	handler := middleware.TrimSlash()(router.Build())
	handler = middleware.CORS(&app.cfg.CORS)(handler)
	handler = middleware.Logger(app.logger)(handler)

	server := &http.Server{
		Addr:         app.cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  app.cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: app.cfg.Server.WriteTimeoutDuration(),
		IdleTimeout:  app.cfg.Server.IdleTimeoutDuration(),
	}

	shutdownErr := make(chan error, 1)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit

		app.logger.Info("shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(
			context.Background(), app.cfg.Server.ShutdownTimeoutDuration())
		defer cancel()

		shutdownErr <- server.Shutdown(ctx)
	}()

	app.logger.Info("server starting", "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	app.logger.Info("server stopped")
	return nil
}
