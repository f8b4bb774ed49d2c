package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"auction-service/internal/auctionerrors"
	model "auction-service/internal/models"
)

const auctionColumns = `id, seller, reserve_price, current_high_bid, auction_start, auction_end, created_at, updated_at, make, model, color, mileage, year, image_url`

// PostgresStore is a Postgres-backed implementation of AuctionStore using
// database/sql with the pq driver. The item is stored flattened into the
// auctions row, which enforces the Auction/Item ownership cascade.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a store backed by the given database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the auctions table if it does not exist. Schema
// migration proper is out of scope; this keeps a fresh database usable.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS auctions (
			id UUID PRIMARY KEY,
			seller TEXT NOT NULL,
			reserve_price INT NOT NULL DEFAULT 0,
			current_high_bid INT NOT NULL DEFAULT 0,
			auction_start TIMESTAMPTZ NOT NULL,
			auction_end TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			make TEXT NOT NULL,
			model TEXT NOT NULL,
			color TEXT NOT NULL,
			mileage INT NOT NULL,
			year INT NOT NULL,
			image_url TEXT NOT NULL DEFAULT ''
		)
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure auctions schema: %w", err)
	}
	return nil
}

// List returns all auctions ordered by make ascending, created_at breaking
// ties so equal makes keep insertion order.
func (s *PostgresStore) List(ctx context.Context, updatedAfter *time.Time) ([]model.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions ORDER BY make ASC, created_at ASC`
	args := []any{}
	if updatedAfter != nil {
		query = `SELECT ` + auctionColumns + ` FROM auctions WHERE updated_at > $1 ORDER BY make ASC, created_at ASC`
		args = append(args, *updatedAfter)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	defer rows.Close()

	var auctions []model.Auction
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("list auctions: %w", err)
		}
		auctions = append(auctions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	return auctions, nil
}

// GetByID returns the auction matching id
func (s *PostgresStore) GetByID(ctx context.Context, id string) (model.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = $1`
	row := s.db.QueryRowContext(ctx, query, id)

	a, err := scanAuction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", id, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", id, err)
	}
	return a, nil
}

// Insert adds a new auction row
func (s *PostgresStore) Insert(ctx context.Context, a model.Auction) (int64, error) {
	query := `
		INSERT INTO auctions (` + auctionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	result, err := s.db.ExecContext(ctx, query,
		a.ID, a.Seller, a.ReservePrice, a.CurrentHighBid,
		a.AuctionStart, a.AuctionEnd, a.CreatedAt, a.UpdatedAt,
		a.Item.Make, a.Item.Model, a.Item.Color, a.Item.Mileage, a.Item.Year, a.Item.ImageURL,
	)
	if err != nil {
		return 0, fmt.Errorf("insert auction %s: %w", a.ID, err)
	}
	return result.RowsAffected()
}

// Update replaces the mutable columns of an auction row. Last commit wins at
// the row level.
func (s *PostgresStore) Update(ctx context.Context, a model.Auction) (int64, error) {
	query := `
		UPDATE auctions
		SET make = $1, model = $2, color = $3, mileage = $4, year = $5, image_url = $6,
			reserve_price = $7, current_high_bid = $8, auction_end = $9, updated_at = $10
		WHERE id = $11
	`
	result, err := s.db.ExecContext(ctx, query,
		a.Item.Make, a.Item.Model, a.Item.Color, a.Item.Mileage, a.Item.Year, a.Item.ImageURL,
		a.ReservePrice, a.CurrentHighBid, a.AuctionEnd, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("update auction %s: %w", a.ID, err)
	}
	return result.RowsAffected()
}

// Delete removes the auction row by id
func (s *PostgresStore) Delete(ctx context.Context, id string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM auctions WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete auction %s: %w", id, err)
	}
	return result.RowsAffected()
}

// scanAuction reads one auction row from either *sql.Row or *sql.Rows.
func scanAuction(row interface{ Scan(...any) error }) (model.Auction, error) {
	var a model.Auction
	err := row.Scan(
		&a.ID, &a.Seller, &a.ReservePrice, &a.CurrentHighBid,
		&a.AuctionStart, &a.AuctionEnd, &a.CreatedAt, &a.UpdatedAt,
		&a.Item.Make, &a.Item.Model, &a.Item.Color, &a.Item.Mileage, &a.Item.Year, &a.Item.ImageURL,
	)
	return a, err
}
