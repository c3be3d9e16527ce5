// Package db persists enriched records to a single results table, backed
// by SQLite (default) or PostgreSQL. Both drivers create the table
// idempotently on startup and never alter or drop it afterwards.
package db

import (
	"context"

	"github.com/solentra/enrichflow/internal/models"
)

// ResultStore appends enriched records. Insert generates the authoritative
// storage timestamp for the row and returns it; row ids are assigned by
// the database and increase monotonically.
type ResultStore interface {
	Insert(ctx context.Context, record models.EnrichedRecord) (string, error)
	Ping(ctx context.Context) error
	Close() error
}
