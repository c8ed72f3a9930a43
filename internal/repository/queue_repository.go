package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bid-match/internal/database"
	"bid-match/internal/domain/reviewqueue"

	"github.com/jackc/pgx/v5"
)

const queueSingletonKey = "current"

// QueueRepository persists the process-wide unknown-skill review queue as a
// single document, with the same revision check as the dictionary.
type QueueRepository interface {
	GetCurrent(ctx context.Context) (*reviewqueue.Queue, int64, error)
	Save(ctx context.Context, q *reviewqueue.Queue, expectedRevision int64) error
}

type PostgresQueueRepository struct {
	db database.DB
}

func NewPostgresQueueRepository(db database.DB) *PostgresQueueRepository {
	return &PostgresQueueRepository{db: db}
}

func (r *PostgresQueueRepository) GetCurrent(ctx context.Context) (*reviewqueue.Queue, int64, error) {
	var doc []byte
	var revision int64
	err := r.db.QueryRow(ctx,
		`SELECT doc, revision FROM review_queues WHERE singleton_key = $1`,
		queueSingletonKey,
	).Scan(&doc, &revision)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.seed(ctx)
		}
		return nil, 0, err
	}

	q, err := reviewqueue.FromJSON(doc)
	if err != nil {
		return nil, 0, err
	}
	return q, revision, nil
}

func (r *PostgresQueueRepository) seed(ctx context.Context) (*reviewqueue.Queue, int64, error) {
	q := reviewqueue.New()
	doc, err := json.Marshal(q)
	if err != nil {
		return nil, 0, err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO review_queues (singleton_key, doc, revision) VALUES ($1, $2, 1)
		 ON CONFLICT (singleton_key) DO NOTHING`,
		queueSingletonKey, doc,
	)
	if err != nil {
		return nil, 0, err
	}
	var stored []byte
	var revision int64
	err = r.db.QueryRow(ctx,
		`SELECT doc, revision FROM review_queues WHERE singleton_key = $1`,
		queueSingletonKey,
	).Scan(&stored, &revision)
	if err != nil {
		return nil, 0, err
	}
	q, err = reviewqueue.FromJSON(stored)
	if err != nil {
		return nil, 0, err
	}
	return q, revision, nil
}

func (r *PostgresQueueRepository) Save(ctx context.Context, q *reviewqueue.Queue, expectedRevision int64) error {
	doc, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encode review queue: %w", err)
	}
	affected, err := r.db.Exec(ctx,
		`UPDATE review_queues
		 SET doc = $2, revision = revision + 1, updated_at = now()
		 WHERE singleton_key = $1 AND revision = $3`,
		queueSingletonKey, doc, expectedRevision,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrConcurrentModification
	}
	return nil
}
