package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/solentra/enrichflow/config"
)

const valkeyPingTimeout = 3 * time.Second

// NewValkeyClient connects to the cache and verifies the connection with a
// ping. The caller owns the returned client and must Close it.
func NewValkeyClient(cfg config.CacheConfig, logger *slog.Logger) (valkey.Client, error) {
	opts := valkey.ClientOption{
		InitAddress: []string{
			cfg.Address,
		},
		Password:         cfg.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if cfg.TLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), valkeyPingTimeout)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping valkey: %w", err)
	}

	logger.Info("[ValkeyClient] Successfully connected to valkey")
	return client, nil
}
