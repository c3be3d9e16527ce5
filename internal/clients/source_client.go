package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/solentra/enrichflow/config"
	"github.com/solentra/enrichflow/internal/models"
)

// SourceClient fetches the record batch that seeds a pipeline run. The
// provider is any endpoint returning a JSON array of objects; only the
// first Limit elements are kept.
type SourceClient struct {
	endpoint string
	limit    int
	client   *http.Client
	logger   *slog.Logger
}

func NewSourceClient(cfg config.SourceConfig, logger *slog.Logger) *SourceClient {
	return &SourceClient{
		endpoint: cfg.URL,
		limit:    cfg.Limit,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   logger,
	}
}

// FetchRecords performs a single GET against the source endpoint. There is
// no retry: a run either has source data or reports the failure and stops.
func (c *SourceClient) FetchRecords(ctx context.Context) ([]models.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, &FetchError{Op: "request", Err: err}
	}

	c.logger.Info("[SourceClient] Fetching records", slog.String("endpoint", c.endpoint))

	res, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("[SourceClient] Request failed", slog.String("error", err.Error()))
		return nil, &FetchError{Op: "request", Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		c.logger.Error("[SourceClient] Unexpected status", slog.Int("statusCode", res.StatusCode))
		return nil, &FetchError{Op: "response", Err: fmt.Errorf("unexpected status %s", res.Status)}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		c.logger.Error("[SourceClient] Failed to read response body", slog.String("error", err.Error()))
		return nil, &FetchError{Op: "read", Err: err}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(body, &elements); err != nil {
		c.logger.Error("[SourceClient] Failed to parse JSON response", slog.String("error", err.Error()))
		return nil, &FetchError{Op: "decode", Err: err}
	}

	if len(elements) > c.limit {
		elements = elements[:c.limit]
	}

	records := make([]models.RawRecord, 0, len(elements))
	for _, e := range elements {
		records = append(records, models.RawRecord(e))
	}

	c.logger.Info("[SourceClient] Successfully fetched records", slog.Int("count", len(records)))
	return records, nil
}
