// Package history persists conversion audit records in Postgres.
// The store is optional: when no database is configured the service
// runs fully in memory and nothing in this package is constructed.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"catbridge/internal/core"
)

// DBTX abstracts a pool, a single connection or a transaction, so the
// store works the same inside and outside transactions.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store reads and writes the conversions table. It implements
// core.ConversionLog.
type Store struct {
	db DBTX
}

// New returns a Store backed by db.
func New(db DBTX) *Store {
	return &Store{db: db}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS conversions (
	batch_id     UUID PRIMARY KEY,
	platform     TEXT NOT NULL,
	filename     TEXT NOT NULL DEFAULT '',
	products     INTEGER NOT NULL,
	variants     INTEGER NOT NULL,
	rows_total   INTEGER NOT NULL,
	rows_skipped INTEGER NOT NULL,
	duration_ms  BIGINT NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS conversions_created_at_idx ON conversions (created_at DESC);
`

// EnsureSchema creates the conversions table when it does not exist.
// Called once at startup; safe to call repeatedly.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure conversions schema: %w", err)
	}
	return nil
}

const insertSQL = `
INSERT INTO conversions (batch_id, platform, filename, products, variants, rows_total, rows_skipped, duration_ms, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

// Record inserts one batch audit row.
func (s *Store) Record(ctx context.Context, conv core.Conversion) error {
	created := conv.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	_, err := s.db.Exec(ctx, insertSQL,
		pgUUID(conv.BatchID[:]),
		conv.Platform,
		conv.Filename,
		conv.Products,
		conv.Variants,
		conv.RowsTotal,
		conv.RowsSkipped,
		conv.DurationMS,
		pgtype.Timestamptz{Time: created, Valid: true},
	)
	if err != nil {
		return fmt.Errorf("record conversion %s: %w", conv.BatchID, err)
	}
	return nil
}

const recentSQL = `
SELECT batch_id, platform, filename, products, variants, rows_total, rows_skipped, duration_ms, created_at
FROM conversions
ORDER BY created_at DESC
LIMIT $1
`

// Recent returns the newest batches, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]core.Conversion, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(ctx, recentSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("query conversions: %w", err)
	}
	defer rows.Close()

	var out []core.Conversion
	for rows.Next() {
		var (
			id      pgtype.UUID
			created pgtype.Timestamptz
			conv    core.Conversion
		)
		err := rows.Scan(&id, &conv.Platform, &conv.Filename,
			&conv.Products, &conv.Variants, &conv.RowsTotal, &conv.RowsSkipped, &conv.DurationMS, &created)
		if err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		conv.BatchID = uuid.UUID(id.Bytes)
		conv.CreatedAt = created.Time
		out = append(out, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversions: %w", err)
	}
	return out, nil
}

const purgeSQL = `DELETE FROM conversions WHERE created_at < $1`

// Purge deletes audit rows older than the retention window and returns
// how many were removed.
func (s *Store) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	tag, err := s.db.Exec(ctx, purgeSQL, pgtype.Timestamptz{Time: cutoff, Valid: true})
	if err != nil {
		return 0, fmt.Errorf("purge conversions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func pgUUID(b []byte) pgtype.UUID {
	var id pgtype.UUID
	copy(id.Bytes[:], b)
	id.Valid = true
	return id
}
