package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/solentra/enrichflow/internal/models"
)

const createResultsSQLite = `
CREATE TABLE IF NOT EXISTS results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	original TEXT,
	analysis TEXT,
	sentiment TEXT,
	source TEXT,
	timestamp TEXT
);
`

const insertResultSQLite = `INSERT INTO results (original, analysis, sentiment, source, timestamp) VALUES (?, ?, ?, ?, ?);`

// SQLiteStore is the default ResultStore: an embedded database behind a
// small connection pool.
type SQLiteStore struct {
	pool   *sqlitex.Pool
	logger *slog.Logger
}

// NewSQLiteStore opens the database at path, creating the file and the
// results table if needed. ":memory:" opens an in-process throwaway
// database; its pool is capped at one connection because separate
// in-memory connections would each see their own database.
func NewSQLiteStore(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	poolSize := 4
	if path == ":memory:" {
		poolSize = 1
	}

	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{
		PoolSize:    poolSize,
		PrepareConn: prepareConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("[SQLiteStore] failed to open %s: %w", path, err)
	}

	conn, err := pool.Take(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("[SQLiteStore] failed to take connection: %w", err)
	}

	err = sqlitex.ExecuteScript(conn, createResultsSQLite, nil)
	pool.Put(conn)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("[SQLiteStore] failed to create results table: %w", err)
	}

	logger.Info("[SQLiteStore] Database ready", slog.String("path", path))
	return &SQLiteStore{pool: pool, logger: logger}, nil
}

func prepareConnection(conn *sqlite.Conn) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

// Insert appends one row and returns the timestamp it generated for it.
func (s *SQLiteStore) Insert(ctx context.Context, record models.EnrichedRecord) (string, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return "", &StoreError{Driver: "sqlite", Err: err}
	}
	defer s.pool.Put(conn)

	timestamp := models.UTCTimestamp(time.Now())

	err = sqlitex.Execute(conn, insertResultSQLite, &sqlitex.ExecOptions{
		Args: []any{record.Original, record.Analysis, record.Sentiment, record.Source, timestamp},
	})
	if err != nil {
		return "", &StoreError{Driver: "sqlite", Err: err}
	}

	s.logger.Debug("[SQLiteStore] Stored result",
		slog.Int64("id", conn.LastInsertRowID()),
		slog.String("sentiment", record.Sentiment))
	return timestamp, nil
}

// Ping verifies a connection can still be taken from the pool.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return err
	}
	s.pool.Put(conn)
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.pool.Close()
}
