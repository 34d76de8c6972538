// Package store persists catalog snapshots and an audit log of accepted
// orders in Postgres. Resolution itself never touches the database; it runs
// on in-memory snapshots loaded from here.
package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"warunggo/internal/domain"
)

var ErrNoSnapshot = errors.New("no catalog snapshot stored")

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS catalog_items (
			item_key TEXT PRIMARY KEY,
			price BIGINT NOT NULL DEFAULT 0,
			stock BIGINT NOT NULL DEFAULT 0,
			position INT NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id TEXT PRIMARY KEY,
			chat_id TEXT NOT NULL,
			lines JSONB NOT NULL,
			total BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_orders_chat_created ON orders(chat_id, created_at);`,
	}
	for _, q := range queries {
		if _, err := s.pool.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// SaveSnapshot replaces the stored catalog with the given snapshot in one
// transaction, keeping row positions so listings stay in source order.
func (s *Store) SaveSnapshot(ctx context.Context, snap domain.Snapshot) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM catalog_items`); err != nil {
		return err
	}
	for i, key := range snap.Keys {
		_, err := tx.Exec(ctx,
			`INSERT INTO catalog_items (item_key, price, stock, position, updated_at)
			 VALUES ($1, $2, $3, $4, NOW())`,
			key, snap.Menu[key], snap.Stock[key], i,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// LoadSnapshot reads the stored catalog in position order. ErrNoSnapshot
// when nothing has been synced yet.
func (s *Store) LoadSnapshot(ctx context.Context) (domain.Snapshot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT item_key, price, stock FROM catalog_items ORDER BY position`)
	if err != nil {
		return domain.Snapshot{}, err
	}
	defer rows.Close()

	snap := domain.NewSnapshot()
	for rows.Next() {
		var key string
		var price, stock int64
		if err := rows.Scan(&key, &price, &stock); err != nil {
			return domain.Snapshot{}, err
		}
		snap.Add(key, int(price), int(stock))
	}
	if err := rows.Err(); err != nil {
		return domain.Snapshot{}, err
	}
	if snap.Empty() {
		return domain.Snapshot{}, ErrNoSnapshot
	}
	return snap, nil
}

// RecordOrder appends one accepted invoice to the audit log and returns its
// generated id.
func (s *Store) RecordOrder(ctx context.Context, chatID string, lines []domain.ValidatedLine, total int) (string, error) {
	payload, err := json.Marshal(lines)
	if err != nil {
		return "", err
	}
	orderID := uuid.NewString()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO orders (order_id, chat_id, lines, total) VALUES ($1, $2, $3, $4)`,
		orderID, chatID, payload, total,
	)
	if err != nil {
		return "", err
	}
	return orderID, nil
}

// OrderCount reports how many orders a conversation has placed. Used by the
// admin surface only.
func (s *Store) OrderCount(ctx context.Context, chatID string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE chat_id = $1`, chatID).Scan(&n)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return n, err
}
