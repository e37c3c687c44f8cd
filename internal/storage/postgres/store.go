package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dexlens/internal/model"
)

// Store provides Postgres persistence for book snapshots.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertBookSnapshot inserts a snapshot row and its per-level rows in one
// batch, replacing any snapshot previously stored for the same order book
// at the same timestamp.
func (s *Store) UpsertBookSnapshot(ctx context.Context, snapshot model.BookSnapshot) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO book_snapshots (
			chain_id, order_book, taken_at, order_count, best_bid, best_ask, spread, spread_percent, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		ON CONFLICT (chain_id, order_book, taken_at)
		DO UPDATE SET
			order_count = EXCLUDED.order_count,
			best_bid = EXCLUDED.best_bid,
			best_ask = EXCLUDED.best_ask,
			spread = EXCLUDED.spread,
			spread_percent = EXCLUDED.spread_percent,
			updated_at = now()
	`,
		int64(snapshot.ChainID),
		snapshot.OrderBook,
		snapshot.TakenAt,
		snapshot.OrderCount,
		snapshot.BestBid,
		snapshot.BestAsk,
		snapshot.Spread,
		snapshot.SpreadPercent,
	)

	batch.Queue(`
		DELETE FROM book_levels
		WHERE chain_id = $1 AND order_book = $2 AND taken_at = $3
	`,
		int64(snapshot.ChainID),
		snapshot.OrderBook,
		snapshot.TakenAt,
	)

	for _, level := range snapshot.Levels {
		batch.Queue(`
			INSERT INTO book_levels (
				chain_id, order_book, taken_at, side, position, price, amount, cumulative_amount, order_count, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		`,
			int64(snapshot.ChainID),
			snapshot.OrderBook,
			snapshot.TakenAt,
			int16(level.Side),
			level.Position,
			level.Price,
			level.Amount,
			level.CumulativeAmount,
			level.OrderCount,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < len(snapshot.Levels)+2; i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
