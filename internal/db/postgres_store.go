package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solentra/enrichflow/internal/models"
)

const createResultsPostgres = `
CREATE TABLE IF NOT EXISTS results (
	id BIGSERIAL PRIMARY KEY,
	original TEXT,
	analysis TEXT,
	sentiment TEXT,
	source TEXT,
	timestamp TEXT
);
`

const insertResultPostgres = `INSERT INTO results (original, analysis, sentiment, source, timestamp) VALUES ($1, $2, $3, $4, $5) RETURNING id;`

// PostgresStore is the ResultStore for deployments that share a database
// across processes.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresStore connects to dsn, verifies the connection, and ensures
// the results table exists.
func NewPostgresStore(ctx context.Context, dsn string, logger *slog.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("[PostgresStore] failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("[PostgresStore] failed to ping postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, createResultsPostgres); err != nil {
		pool.Close()
		return nil, fmt.Errorf("[PostgresStore] failed to create results table: %w", err)
	}

	logger.Info("[PostgresStore] Database ready")
	return &PostgresStore{pool: pool, logger: logger}, nil
}

// Insert appends one row and returns the timestamp it generated for it.
func (s *PostgresStore) Insert(ctx context.Context, record models.EnrichedRecord) (string, error) {
	timestamp := models.UTCTimestamp(time.Now())

	var id int64
	err := s.pool.QueryRow(ctx, insertResultPostgres,
		record.Original, record.Analysis, record.Sentiment, record.Source, timestamp).Scan(&id)
	if err != nil {
		return "", &StoreError{Driver: "postgres", Err: err}
	}

	s.logger.Debug("[PostgresStore] Stored result",
		slog.Int64("id", id),
		slog.String("sentiment", record.Sentiment))
	return timestamp, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
