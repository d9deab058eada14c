// Package syncjob wires configuration into a catalog sync run for the
// sync-* commands.
package syncjob

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/example/scentquiz/internal/catalog"
	"github.com/example/scentquiz/internal/catalogsync"
	"github.com/example/scentquiz/internal/config"
	"github.com/example/scentquiz/internal/database"
	"github.com/example/scentquiz/internal/logging"
	"github.com/example/scentquiz/internal/services"
	"github.com/example/scentquiz/internal/shopify"
)

// Main parses flags, runs one sync in mode and exits non-zero on failure.
func Main(mode catalogsync.Mode) {
	cfg := config.Load()

	fs := flag.NewFlagSet(string(mode), flag.ExitOnError)
	output := fs.String("output", cfg.CatalogPath, "catalog feed file to replace")
	pageSize := fs.Int("page-size", cfg.ShopifyPageSize, "products per GraphQL page (max 250)")
	mirror := fs.Bool("mirror-db", cfg.SyncMirrorDatabase, "also replace the Postgres catalog mirror")
	titles := fs.String("collections", strings.Join(catalogsync.DefaultCollectionTitles, ","), "collection titles (collections mode)")
	timeout := fs.Duration("timeout", 10*time.Minute, "overall run timeout")
	_ = fs.Parse(os.Args[1:])

	cfg.CatalogPath = *output
	cfg.ShopifyPageSize = *pageSize
	cfg.SyncMirrorDatabase = *mirror

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if _, err := Run(ctx, cfg, mode, splitTitles(*titles)); err != nil {
		logging.Error().Err(err).Str("mode", string(mode)).Msg("sync failed")
		cancel()
		stop()
		os.Exit(1)
	}
}

// Run builds the client, stores and notifier from cfg and performs one sync.
func Run(ctx context.Context, cfg *config.Config, mode catalogsync.Mode, titles []string) (*catalogsync.Summary, error) {
	client, err := shopify.NewClient(shopify.Config{
		Store:         cfg.ShopifyStore,
		AccessToken:   cfg.ShopifyAccessToken,
		APIVersion:    cfg.ShopifyAPIVersion,
		RatePerSecond: cfg.ShopifyRatePerSecond,
	})
	if err != nil {
		return nil, fmt.Errorf("configure shopify client: %w", err)
	}

	var store catalog.Store = catalog.NewFileStore(cfg.CatalogPath)
	if cfg.SyncMirrorDatabase {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store = catalog.NewMultiStore(store, catalog.NewDBStore(db))
	}

	notifier := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)

	syncer := catalogsync.NewSyncer(client, store, notifier, catalogsync.Options{
		PageSize:         shopify.ClampPageSize(cfg.ShopifyPageSize),
		CollectionTitles: titles,
		StorefrontURL:    cfg.StorefrontBaseURL,
	})
	return syncer.Run(ctx, mode)
}

func splitTitles(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
