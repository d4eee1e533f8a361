package postgres

import (
	"context"
	"fmt"

	"solana-blink-bot/internal/domain"
	"solana-blink-bot/internal/storage"
)

// QueryLogStore implements storage.QueryLogStore on a query_log table.
type QueryLogStore struct {
	pool *Pool
}

// NewQueryLogStore creates a new QueryLogStore.
func NewQueryLogStore(pool *Pool) *QueryLogStore {
	return &QueryLogStore{pool: pool}
}

// Compile-time interface check.
var _ storage.QueryLogStore = (*QueryLogStore)(nil)

// Insert appends one query record.
func (s *QueryLogStore) Insert(ctx context.Context, rec *domain.QueryRecord) error {
	if rec == nil || rec.Query == "" {
		return storage.ErrInvalidInput
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO query_log (query, intent, resolution, resolved, duration_ms, timestamp_ms)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.Query, rec.Intent, string(rec.Resolution), rec.Resolved, rec.DurationMs, rec.TimestampMs,
	)
	if err != nil {
		return fmt.Errorf("insert query record: %w", err)
	}
	return nil
}

// GetRecent retrieves up to limit records, newest first.
func (s *QueryLogStore) GetRecent(ctx context.Context, limit int) ([]*domain.QueryRecord, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidInput
	}

	rows, err := s.pool.Query(ctx, `
		SELECT query, intent, resolution, resolved, duration_ms, timestamp_ms
		FROM query_log
		ORDER BY timestamp_ms DESC, id DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent records: %w", err)
	}
	defer rows.Close()

	var records []*domain.QueryRecord
	for rows.Next() {
		rec, err := scanQueryRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan query record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate query records: %w", err)
	}
	return records, nil
}

// Latest returns the most recently logged record, or ErrNotFound when the
// log is empty.
func (s *QueryLogStore) Latest(ctx context.Context) (*domain.QueryRecord, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT query, intent, resolution, resolved, duration_ms, timestamp_ms
		FROM query_log
		ORDER BY timestamp_ms DESC, id DESC
		LIMIT 1`,
	)

	rec, err := scanQueryRecord(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQueryRecord(row rowScanner) (*domain.QueryRecord, error) {
	var (
		rec        domain.QueryRecord
		resolution string
	)
	if err := row.Scan(&rec.Query, &rec.Intent, &resolution, &rec.Resolved, &rec.DurationMs, &rec.TimestampMs); err != nil {
		return nil, err
	}
	rec.Resolution = domain.Resolution(resolution)
	return &rec, nil
}
