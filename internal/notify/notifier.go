// Package notify delivers the run-complete signal. The default notifier
// writes to the process log; deployments with a webhook endpoint get an
// HTTP POST instead.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/solentra/enrichflow/config"
	"github.com/solentra/enrichflow/internal/models"
)

// Notifier signals that a pipeline run finished. Its outcome lands in the
// report's notificationSent flag and never affects item results.
type Notifier interface {
	Notify(ctx context.Context) error
}

// NotifyError wraps a delivery failure.
type NotifyError struct {
	Err error
}

func (e *NotifyError) Error() string {
	return fmt.Sprintf("notification failed: %v", e.Err)
}

func (e *NotifyError) Unwrap() error { return e.Err }

// LogNotifier records the notification in the process log. It stands in
// for a real channel in environments without a webhook.
type LogNotifier struct {
	recipient string
	logger    *slog.Logger
}

func NewLogNotifier(recipient string, logger *slog.Logger) *LogNotifier {
	return &LogNotifier{recipient: recipient, logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context) error {
	n.logger.Info("[Notifier] Notification sent", slog.String("recipient", n.recipient))
	return nil
}

// WebhookNotifier posts a small JSON payload to the configured endpoint
// once per run.
type WebhookNotifier struct {
	endpoint  string
	recipient string
	client    *http.Client
	logger    *slog.Logger
}

func NewWebhookNotifier(cfg config.NotifyConfig, logger *slog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		endpoint:  cfg.WebhookURL,
		recipient: cfg.Recipient,
		client:    &http.Client{Timeout: cfg.Timeout},
		logger:    logger,
	}
}

type webhookPayload struct {
	Recipient string `json:"recipient"`
	SentAt    string `json:"sentAt"`
}

func (n *WebhookNotifier) Notify(ctx context.Context) error {
	payload, _ := json.Marshal(webhookPayload{
		Recipient: n.recipient,
		SentAt:    models.UTCTimestamp(time.Now()),
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(payload))
	if err != nil {
		return &NotifyError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.client.Do(req)
	if err != nil {
		n.logger.Error("[Notifier] Webhook request failed", slog.String("error", err.Error()))
		return &NotifyError{Err: err}
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		n.logger.Error("[Notifier] Webhook rejected notification", slog.Int("statusCode", res.StatusCode))
		return &NotifyError{Err: fmt.Errorf("unexpected status %s", res.Status)}
	}

	n.logger.Info("[Notifier] Notification sent", slog.String("recipient", n.recipient))
	return nil
}
