package notify

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solentra/enrichflow/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLogNotifierAlwaysSucceeds(t *testing.T) {
	notifier := NewLogNotifier("pipeline-ops@example.com", discardLogger())

	assert.NoError(t, notifier.Notify(context.Background()))
}

func TestWebhookNotifierPostsPayload(t *testing.T) {
	var gotContentType string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(server.Close)

	notifier := NewWebhookNotifier(config.NotifyConfig{
		Recipient:  "pipeline-ops@example.com",
		WebhookURL: server.URL,
		Timeout:    time.Second,
	}, discardLogger())

	err := notifier.Notify(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotContentType)

	var payload struct {
		Recipient string `json:"recipient"`
		SentAt    string `json:"sentAt"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, "pipeline-ops@example.com", payload.Recipient)
	assert.Regexp(t, `Z$`, payload.SentAt)
}

func TestWebhookNotifierRejectedDelivery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "teapot", http.StatusTeapot)
	}))
	t.Cleanup(server.Close)

	notifier := NewWebhookNotifier(config.NotifyConfig{
		Recipient:  "pipeline-ops@example.com",
		WebhookURL: server.URL,
		Timeout:    time.Second,
	}, discardLogger())

	err := notifier.Notify(context.Background())
	require.Error(t, err)

	var notifyErr *NotifyError
	require.ErrorAs(t, err, &notifyErr)
	assert.Contains(t, err.Error(), "notification failed")
}

func TestWebhookNotifierUnreachableEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	notifier := NewWebhookNotifier(config.NotifyConfig{
		Recipient:  "pipeline-ops@example.com",
		WebhookURL: server.URL,
		Timeout:    time.Second,
	}, discardLogger())

	err := notifier.Notify(context.Background())

	var notifyErr *NotifyError
	require.ErrorAs(t, err, &notifyErr)
}
