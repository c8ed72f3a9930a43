package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bid-match/internal/database"
	"bid-match/internal/domain/jdspec"

	"github.com/jackc/pgx/v5"
)

type JDSpecRepository interface {
	Save(ctx context.Context, spec *jdspec.Spec) error
	FindByID(ctx context.Context, id string) (*jdspec.Spec, error)
	FindAll(ctx context.Context) ([]*jdspec.Spec, error)
	Update(ctx context.Context, spec *jdspec.Spec) error
	Delete(ctx context.Context, id string) error
}

type PostgresJDSpecRepository struct {
	db database.DB
}

func NewPostgresJDSpecRepository(db database.DB) *PostgresJDSpecRepository {
	return &PostgresJDSpecRepository{db: db}
}

func (r *PostgresJDSpecRepository) Save(ctx context.Context, spec *jdspec.Spec) error {
	doc, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("encode jd spec: %w", err)
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO jd_specs (id, doc, created_at) VALUES ($1, $2, $3)`,
		spec.ID(), doc, spec.CreatedAt(),
	)
	return err
}

func (r *PostgresJDSpecRepository) FindByID(ctx context.Context, id string) (*jdspec.Spec, error) {
	var doc []byte
	err := r.db.QueryRow(ctx, `SELECT doc FROM jd_specs WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return jdspec.FromJSON(doc)
}

func (r *PostgresJDSpecRepository) FindAll(ctx context.Context) ([]*jdspec.Spec, error) {
	rows, err := r.db.Query(ctx, `SELECT doc FROM jd_specs ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*jdspec.Spec, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		spec, err := jdspec.FromJSON(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the stored document wholesale; specs are immutable, so an
// update is always replace-by-id.
func (r *PostgresJDSpecRepository) Update(ctx context.Context, spec *jdspec.Spec) error {
	doc, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("encode jd spec: %w", err)
	}
	affected, err := r.db.Exec(ctx, `UPDATE jd_specs SET doc = $2 WHERE id = $1`, spec.ID(), doc)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresJDSpecRepository) Delete(ctx context.Context, id string) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM jd_specs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
