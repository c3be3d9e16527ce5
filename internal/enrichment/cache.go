package enrichment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/solentra/enrichflow/internal/models"
)

// CachedEnricher fronts another Enricher with a Valkey lookaside cache
// keyed by a digest of the input text. Cache trouble is logged and
// otherwise ignored: a run never fails because the cache is down.
type CachedEnricher struct {
	inner  Enricher
	client valkey.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedEnricher(inner Enricher, client valkey.Client, ttl time.Duration, logger *slog.Logger) *CachedEnricher {
	return &CachedEnricher{inner: inner, client: client, ttl: ttl, logger: logger}
}

// cacheKey derives a stable key from the canonical text, mirroring how
// rendered records are compared: equal text, equal analysis.
func cacheKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "enrich:" + hex.EncodeToString(hash[:])
}

func (c *CachedEnricher) Enrich(ctx context.Context, text string) (models.Analysis, error) {
	key := cacheKey(text)

	res := c.client.Do(ctx, c.client.B().Get().Key(key).Build())
	if err := res.Error(); err == nil {
		body, asErr := res.AsBytes()
		if asErr == nil {
			var cached models.Analysis
			if jsonErr := json.Unmarshal(body, &cached); jsonErr == nil {
				c.logger.Debug("[CachedEnricher] Cache hit", slog.String("key", key))
				return cached, nil
			}
		}
	} else if !valkey.IsValkeyNil(err) {
		c.logger.Warn("[CachedEnricher] Cache read failed", slog.String("error", err.Error()))
	}

	analysis, err := c.inner.Enrich(ctx, text)
	if err != nil {
		return models.Analysis{}, err
	}

	body, _ := json.Marshal(analysis)
	completed := []valkey.Completed{
		c.client.B().Set().Key(key).Value(string(body)).Build(),
		c.client.B().Expire().Key(key).Seconds(int64(c.ttl.Seconds())).Build(),
	}
	for _, res := range c.client.DoMulti(ctx, completed...) {
		if err := res.Error(); err != nil {
			c.logger.Warn("[CachedEnricher] Cache write failed", slog.String("error", err.Error()))
			break
		}
	}

	return analysis, nil
}
