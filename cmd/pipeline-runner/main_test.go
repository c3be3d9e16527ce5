package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solentra/enrichflow/config"
	"github.com/solentra/enrichflow/internal/models"
)

func runnerConfig(sourceURL string) config.Config {
	return config.Config{
		Source:   config.SourceConfig{URL: sourceURL, Limit: 3, Timeout: time.Second},
		Enricher: config.EnricherConfig{Provider: "vader"},
		Store:    config.StoreConfig{Driver: "sqlite", SQLitePath: ":memory:"},
		Notify:   config.NotifyConfig{Recipient: "ops@example.com", Timeout: time.Second},
	}
}

func TestRunFetchFailureStillPrintsReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	var out bytes.Buffer
	err := run(context.Background(), runnerConfig(server.URL), models.PipelineRequest{Source: "cli"}, &out)

	require.NoError(t, err, "a run that produced a report is not a failure")
	assert.Contains(t, out.String(), "API Fetch Error: ")
	assert.Contains(t, out.String(), `"items": []`)
	assert.Contains(t, out.String(), `"notificationSent": false`)
}

func TestRunPrintsStoredItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Leanne Graham"}]`))
	}))
	t.Cleanup(server.Close)

	var out bytes.Buffer
	err := run(context.Background(), runnerConfig(server.URL), models.PipelineRequest{Source: "cli"}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), `"stored": true`)
	assert.Contains(t, out.String(), `"notificationSent": true`)
	assert.Contains(t, out.String(), `"errors": []`)
}

func TestRunSetupFailureReturnsError(t *testing.T) {
	cfg := runnerConfig("http://127.0.0.1:0/records")
	cfg.Store.Driver = "etcd"

	err := run(context.Background(), cfg, models.PipelineRequest{Source: "cli"}, io.Discard)
	require.ErrorContains(t, err, `unknown store driver "etcd"`)
}
