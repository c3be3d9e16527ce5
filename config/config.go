package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variable defaults. Every knob can be overridden; the zero
// configuration runs the pipeline against the public demo source with a
// local SQLite file.
const (
	defaultHTTPAddr      = ":8080"
	defaultLogLevel      = "info"
	defaultSourceURL     = "https://jsonplaceholder.typicode.com/users"
	defaultFetchLimit    = 3
	defaultSourceTimeout = 5 * time.Second
	defaultEnrichTimeout = 60 * time.Second
	defaultNotifyTimeout = 5 * time.Second
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultSQLitePath    = "pipeline.db"
	defaultRecipient     = "pipeline-ops@example.com"
	defaultCacheTTL      = 24 * time.Hour
)

// Config is the full runtime configuration, assembled once at startup and
// handed to constructors. Nothing reads the environment after Load.
type Config struct {
	HTTPAddr string
	LogLevel string

	Source   SourceConfig
	Enricher EnricherConfig
	Store    StoreConfig
	Notify   NotifyConfig
	Cache    CacheConfig
	CORS     CORSConfig
}

// SourceConfig points at the record provider seeding each run.
type SourceConfig struct {
	URL     string
	Limit   int
	Timeout time.Duration
}

// EnricherConfig selects and tunes the analysis backend. Provider is
// "openai" or "vader"; the OpenAI fields are ignored for the latter.
type EnricherConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// StoreConfig selects the persistence driver: "sqlite" (default) or
// "postgres" with a DSN.
type StoreConfig struct {
	Driver      string
	SQLitePath  string
	PostgresURL string
}

// NotifyConfig configures run-complete notifications. An empty WebhookURL
// keeps notifications in the process log.
type NotifyConfig struct {
	Recipient  string
	WebhookURL string
	Timeout    time.Duration
}

// CacheConfig configures the optional Valkey cache in front of the
// enricher. An empty Address disables caching entirely.
type CacheConfig struct {
	Address  string
	Password string
	TLS      bool
	TTL      time.Duration
}

// CORSConfig lists the origins allowed to call the HTTP API. "*" allows
// any origin.
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads the process environment into a Config, applying defaults for
// anything unset.
func Load() Config {
	return Config{
		HTTPAddr: envOr("HTTP_ADDR", defaultHTTPAddr),
		LogLevel: envOr("LOG_LEVEL", defaultLogLevel),
		Source: SourceConfig{
			URL:     envOr("SOURCE_URL", defaultSourceURL),
			Limit:   envIntOr("FETCH_LIMIT", defaultFetchLimit),
			Timeout: envDurationOr("SOURCE_TIMEOUT", defaultSourceTimeout),
		},
		Enricher: EnricherConfig{
			Provider: envOr("ENRICHER", "openai"),
			APIKey:   os.Getenv("OPENAI_API_KEY"),
			Model:    envOr("OPENAI_MODEL", defaultOpenAIModel),
			BaseURL:  os.Getenv("OPENAI_BASE_URL"),
			Timeout:  envDurationOr("ENRICH_TIMEOUT", defaultEnrichTimeout),
		},
		Store: StoreConfig{
			Driver:      envOr("DB_DRIVER", "sqlite"),
			SQLitePath:  envOr("SQLITE_PATH", defaultSQLitePath),
			PostgresURL: os.Getenv("DATABASE_URL"),
		},
		Notify: NotifyConfig{
			Recipient:  envOr("NOTIFY_RECIPIENT", defaultRecipient),
			WebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
			Timeout:    envDurationOr("NOTIFY_TIMEOUT", defaultNotifyTimeout),
		},
		Cache: CacheConfig{
			Address:  os.Getenv("VALKEY_INIT_ADDRESS"),
			Password: os.Getenv("VALKEY_PASSWORD"),
			TLS:      os.Getenv("VALKEY_TLS") == "true",
			TTL:      envDurationOr("CACHE_TTL", defaultCacheTTL),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(envOr("CORS_ALLOWED_ORIGINS", "*")),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
