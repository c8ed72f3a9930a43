package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bid-match/internal/database"

	"github.com/jackc/pgx/v5"
)

// Resume is the flat skill inventory attached to a tracked resume. Only the
// usage-statistics workflow reads these.
type Resume struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Skills    []string  `json:"skills"`
	CreatedAt time.Time `json:"created_at"`
}

type ResumeRepository interface {
	Save(ctx context.Context, r Resume) error
	FindByID(ctx context.Context, id string) (Resume, error)
	FindAll(ctx context.Context) ([]Resume, error)
	Delete(ctx context.Context, id string) error
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

func (p *PostgresResumeRepository) Save(ctx context.Context, r Resume) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode resume: %w", err)
	}
	_, err = p.db.Exec(ctx,
		`INSERT INTO resumes (id, doc, created_at) VALUES ($1, $2, $3)`,
		r.ID, doc, r.CreatedAt,
	)
	return err
}

func (p *PostgresResumeRepository) FindByID(ctx context.Context, id string) (Resume, error) {
	var doc []byte
	err := p.db.QueryRow(ctx, `SELECT doc FROM resumes WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	var r Resume
	if err := json.Unmarshal(doc, &r); err != nil {
		return Resume{}, fmt.Errorf("decode resume: %w", err)
	}
	return r, nil
}

func (p *PostgresResumeRepository) FindAll(ctx context.Context) ([]Resume, error) {
	rows, err := p.db.Query(ctx, `SELECT doc FROM resumes ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var r Resume
		if err := json.Unmarshal(doc, &r); err != nil {
			return nil, fmt.Errorf("decode resume: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *PostgresResumeRepository) Delete(ctx context.Context, id string) error {
	affected, err := p.db.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
