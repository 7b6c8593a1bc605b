package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	key      text PRIMARY KEY,
	value    jsonb NOT NULL,
	saved_at timestamptz NOT NULL DEFAULT now()
)`

// PostgresKV persists key-value entries in a single Postgres table.
type PostgresKV struct {
	pool *pgxpool.Pool
}

// NewPostgresKV connects to the given DSN and ensures the backing table
// exists.
func NewPostgresKV(ctx context.Context, dsn string) (*PostgresKV, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: connect: %w", err)
	}
	if _, err := pool.Exec(ctx, kvSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: ensure kv_entries: %w", err)
	}
	return &PostgresKV{pool: pool}, nil
}

func (p *PostgresKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := p.pool.QueryRow(ctx, `SELECT value FROM kv_entries WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: get %s: %w", key, err)
	}
	return value, true, nil
}

func (p *PostgresKV) Put(ctx context.Context, key string, value []byte) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO kv_entries (key, value, saved_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, saved_at = now()`,
		key, value)
	if err != nil {
		return fmt.Errorf("storage: put %s: %w", key, err)
	}
	return nil
}

func (p *PostgresKV) Delete(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM kv_entries WHERE key = $1`, key); err != nil {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}

func (p *PostgresKV) Close() {
	p.pool.Close()
}
