package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/solentra/enrichflow/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func baseConfig() config.Config {
	return config.Config{
		Source: config.SourceConfig{
			URL:     "http://127.0.0.1:0/records",
			Limit:   3,
			Timeout: time.Second,
		},
		Enricher: config.EnricherConfig{Provider: "vader"},
		Store:    config.StoreConfig{Driver: "sqlite", SQLitePath: ":memory:"},
		Notify:   config.NotifyConfig{Recipient: "ops@example.com", Timeout: time.Second},
	}
}

func TestBuildWiresPipeline(t *testing.T) {
	deps, err := Build(context.Background(), baseConfig(), discardLogger())
	require.NoError(t, err)
	t.Cleanup(deps.Close)

	require.NotNil(t, deps.Pipeline)
	require.NotNil(t, deps.Store)
	require.NoError(t, deps.Store.Ping(context.Background()))
}

func TestBuildRejectsUnknownStoreDriver(t *testing.T) {
	cfg := baseConfig()
	cfg.Store.Driver = "etcd"

	_, err := Build(context.Background(), cfg, discardLogger())
	require.ErrorContains(t, err, `unknown store driver "etcd"`)
}

func TestBuildRejectsUnknownEnricherProvider(t *testing.T) {
	cfg := baseConfig()
	cfg.Enricher.Provider = "llama"

	_, err := Build(context.Background(), cfg, discardLogger())
	require.ErrorContains(t, err, `unknown enricher provider "llama"`)
}

func TestBuildDefaultsToSQLiteAndOpenAI(t *testing.T) {
	cfg := baseConfig()
	cfg.Store.Driver = ""
	cfg.Enricher = config.EnricherConfig{APIKey: "test-key", Model: "gpt-4o-mini", Timeout: time.Second}

	deps, err := Build(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	deps.Close()
}
