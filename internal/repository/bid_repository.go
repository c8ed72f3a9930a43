package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bid-match/internal/database"
	"bid-match/internal/domain/bid"

	"github.com/jackc/pgx/v5"
)

type BidRepository interface {
	Save(ctx context.Context, b *bid.Bid) error
	FindByID(ctx context.Context, id string) (*bid.Bid, error)
	FindAll(ctx context.Context) ([]*bid.Bid, error)
	Delete(ctx context.Context, id string) error
}

type PostgresBidRepository struct {
	db database.DB
}

func NewPostgresBidRepository(db database.DB) *PostgresBidRepository {
	return &PostgresBidRepository{db: db}
}

func (r *PostgresBidRepository) Save(ctx context.Context, b *bid.Bid) error {
	doc, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode bid: %w", err)
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO bids (id, doc, created_at) VALUES ($1, $2, $3)`,
		b.ID, doc, b.CreatedAt,
	)
	return err
}

func (r *PostgresBidRepository) FindByID(ctx context.Context, id string) (*bid.Bid, error) {
	var doc []byte
	err := r.db.QueryRow(ctx, `SELECT doc FROM bids WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeBid(doc)
}

func (r *PostgresBidRepository) FindAll(ctx context.Context) ([]*bid.Bid, error) {
	rows, err := r.db.Query(ctx, `SELECT doc FROM bids ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*bid.Bid, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		b, err := decodeBid(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresBidRepository) Delete(ctx context.Context, id string) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM bids WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeBid(doc []byte) (*bid.Bid, error) {
	var b bid.Bid
	if err := json.Unmarshal(doc, &b); err != nil {
		return nil, fmt.Errorf("decode bid: %w", err)
	}
	return &b, nil
}
