package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cyfung/portfolio-helper-sub001/internal/config"
	"github.com/cyfung/portfolio-helper-sub001/internal/model"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS quotes (
	symbol         TEXT PRIMARY KEY,
	price          DOUBLE PRECISION,
	previous_close DOUBLE PRECISION,
	updated_at     TIMESTAMPTZ NOT NULL
)`

const upsertSQL = `
INSERT INTO quotes (symbol, price, previous_close, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (symbol) DO UPDATE SET
	price          = EXCLUDED.price,
	previous_close = EXCLUDED.previous_close,
	updated_at     = EXCLUDED.updated_at`

const selectAllSQL = `
SELECT symbol, price, previous_close, updated_at FROM quotes`

// Store persists one last-known quote row per symbol.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Open connects to the database, verifies the connection, and ensures the
// quotes table exists.
func Open(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	poolCfg, err := pgxpool.ParseConfig(BuildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create quotes table: %w", err)
	}

	return &Store{pool: pool, logger: logger}, nil
}

// SaveQuote upserts the last-known record for a symbol.
func (s *Store) SaveQuote(ctx context.Context, rec model.QuoteRecord) error {
	_, err := s.pool.Exec(ctx, upsertSQL,
		rec.Symbol,
		rec.Price,
		rec.PreviousClose,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert quote %s: %w", rec.Symbol, err)
	}
	return nil
}

// LoadQuotes returns every persisted record.
func (s *Store) LoadQuotes(ctx context.Context) ([]model.QuoteRecord, error) {
	rows, err := s.pool.Query(ctx, selectAllSQL)
	if err != nil {
		return nil, fmt.Errorf("select quotes: %w", err)
	}
	defer rows.Close()

	var out []model.QuoteRecord
	for rows.Next() {
		var rec model.QuoteRecord
		if err := rows.Scan(&rec.Symbol, &rec.Price, &rec.PreviousClose, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan quote row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quote rows: %w", err)
	}

	return out, nil
}

// Ping verifies the connection is healthy.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
