// Package app assembles the pipeline from configuration: it picks the
// store driver and analysis backend, connects the optional cache, and
// hands the binaries a ready object graph.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/valkey-io/valkey-go"

	"github.com/solentra/enrichflow/config"
	"github.com/solentra/enrichflow/internal/clients"
	"github.com/solentra/enrichflow/internal/db"
	"github.com/solentra/enrichflow/internal/enrichment"
	"github.com/solentra/enrichflow/internal/notify"
	"github.com/solentra/enrichflow/internal/pipeline"
)

// Dependencies is the wired object graph for one process.
type Dependencies struct {
	Pipeline *pipeline.Pipeline
	Store    db.ResultStore

	cache valkey.Client
}

// Build constructs the dependency graph described by cfg. On error,
// anything already opened is closed before returning.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Dependencies, error) {
	store, err := newStore(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}

	enricher, err := newEnricher(cfg.Enricher, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	var cache valkey.Client
	if cfg.Cache.Address != "" {
		cache, err = clients.NewValkeyClient(cfg.Cache, logger)
		if err != nil {
			store.Close()
			return nil, err
		}
		enricher = enrichment.NewCachedEnricher(enricher, cache, cfg.Cache.TTL, logger)
	}

	pipe, err := pipeline.New(pipeline.Deps{
		Fetcher:  clients.NewSourceClient(cfg.Source, logger),
		Enricher: enricher,
		Store:    store,
		Notifier: newNotifier(cfg.Notify, logger),
		Logger:   logger,
	})
	if err != nil {
		if cache != nil {
			cache.Close()
		}
		store.Close()
		return nil, err
	}

	return &Dependencies{Pipeline: pipe, Store: store, cache: cache}, nil
}

// Close releases the store and cache connections.
func (d *Dependencies) Close() {
	if d.cache != nil {
		d.cache.Close()
	}
	if d.Store != nil {
		_ = d.Store.Close()
	}
}

func newStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (db.ResultStore, error) {
	switch cfg.Driver {
	case "postgres":
		return db.NewPostgresStore(ctx, cfg.PostgresURL, logger)
	case "sqlite", "":
		return db.NewSQLiteStore(ctx, cfg.SQLitePath, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func newEnricher(cfg config.EnricherConfig, logger *slog.Logger) (enrichment.Enricher, error) {
	switch cfg.Provider {
	case "vader":
		return enrichment.NewVaderEnricher(), nil
	case "openai", "":
		return enrichment.NewOpenAIEnricher(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown enricher provider %q", cfg.Provider)
	}
}

func newNotifier(cfg config.NotifyConfig, logger *slog.Logger) notify.Notifier {
	if cfg.WebhookURL != "" {
		return notify.NewWebhookNotifier(cfg, logger)
	}
	return notify.NewLogNotifier(cfg.Recipient, logger)
}
