package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/scentquiz/internal/catalog"
	"github.com/example/scentquiz/internal/config"
	"github.com/example/scentquiz/internal/database"
	"github.com/example/scentquiz/internal/logging"
	"github.com/example/scentquiz/internal/routes"
	"github.com/example/scentquiz/internal/session"
)

func main() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	var (
		sessions     session.Store = session.NewMemoryStore(cfg.SessionTTL)
		catalogStore catalog.Store = catalog.NewFileStore(cfg.CatalogPath)
	)

	if cfg.NeedsDatabase() {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			logging.Fatal().Err(err).Msg("database unavailable")
		}
		if cfg.SessionStore == "postgres" {
			sessions = session.NewDBStore(db, cfg.SessionTTL)
		}
		if cfg.CatalogSource == "postgres" {
			catalogStore = catalog.NewDBStore(db)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	session.StartCleanupRoutine(ctx, sessions, 10*time.Minute)

	products := catalog.New(catalogStore)
	if err := products.Reload(ctx); err != nil {
		// Serve with an empty catalog; an admin reload can recover later.
		logging.Warn().Err(err).Str("source", cfg.CatalogSource).Msg("starting without a catalog")
	}

	app := routes.NewApp()
	routes.Register(app, routes.Deps{
		Config:   cfg,
		Catalog:  products,
		Sessions: sessions,
	})

	go func() {
		logging.Info().Str("port", cfg.AppPort).Str("sessions", cfg.SessionStore).Msg("starting server")
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			logging.Fatal().Err(err).Msg("fiber.Listen error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("shutting down")
	cancel()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
}
