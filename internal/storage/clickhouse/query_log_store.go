package clickhouse

import (
	"context"
	"fmt"

	"solana-blink-bot/internal/domain"
	"solana-blink-bot/internal/storage"
)

// QueryLogStore implements storage.QueryLogStore using ClickHouse. The table
// is append-only; MergeTree does not enforce uniqueness and the log does not
// need it.
type QueryLogStore struct {
	conn *Conn
}

// NewQueryLogStore creates a new QueryLogStore.
func NewQueryLogStore(conn *Conn) *QueryLogStore {
	return &QueryLogStore{conn: conn}
}

// Compile-time interface check.
var _ storage.QueryLogStore = (*QueryLogStore)(nil)

// Insert appends one query record.
func (s *QueryLogStore) Insert(ctx context.Context, rec *domain.QueryRecord) error {
	if rec == nil || rec.Query == "" {
		return storage.ErrInvalidInput
	}
	return s.InsertBulk(ctx, []*domain.QueryRecord{rec})
}

// InsertBulk appends multiple records in a single batch.
func (s *QueryLogStore) InsertBulk(ctx context.Context, records []*domain.QueryRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO query_log (
			query, intent, resolution, resolved, duration_ms, timestamp_ms
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, rec := range records {
		if rec == nil || rec.Query == "" {
			return storage.ErrInvalidInput
		}
		err = batch.Append(
			rec.Query, rec.Intent, string(rec.Resolution),
			rec.Resolved, rec.DurationMs, rec.TimestampMs,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetRecent retrieves up to limit records, newest first.
func (s *QueryLogStore) GetRecent(ctx context.Context, limit int) ([]*domain.QueryRecord, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidInput
	}

	rows, err := s.conn.Query(ctx, `
		SELECT query, intent, resolution, resolved, duration_ms, timestamp_ms
		FROM query_log
		ORDER BY timestamp_ms DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent records: %w", err)
	}
	defer rows.Close()

	var records []*domain.QueryRecord
	for rows.Next() {
		var (
			rec        domain.QueryRecord
			resolution string
		)
		if err := rows.Scan(
			&rec.Query, &rec.Intent, &resolution,
			&rec.Resolved, &rec.DurationMs, &rec.TimestampMs,
		); err != nil {
			return nil, fmt.Errorf("scan query record: %w", err)
		}
		rec.Resolution = domain.Resolution(resolution)
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate query records: %w", err)
	}
	return records, nil
}

// CountByIntent aggregates logged queries per intent label, a convenience
// for offline analysis of classification traffic.
func (s *QueryLogStore) CountByIntent(ctx context.Context) (map[string]uint64, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT intent, count() AS n
		FROM query_log
		GROUP BY intent`,
	)
	if err != nil {
		return nil, fmt.Errorf("query intent counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]uint64)
	for rows.Next() {
		var (
			intent string
			n      uint64
		)
		if err := rows.Scan(&intent, &n); err != nil {
			return nil, fmt.Errorf("scan intent count: %w", err)
		}
		counts[intent] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate intent counts: %w", err)
	}
	return counts, nil
}
