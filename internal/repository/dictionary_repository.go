package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bid-match/internal/database"
	"bid-match/internal/domain/dictionary"

	"github.com/jackc/pgx/v5"
)

const dictionarySingletonKey = "current"

// DictionaryRepository persists the process-wide canonical skill dictionary
// as a single document. Save takes the revision observed at load time; a
// mismatch means another writer got there first and surfaces as
// ErrConcurrentModification instead of silently losing their edit.
type DictionaryRepository interface {
	GetCurrent(ctx context.Context) (*dictionary.Dictionary, int64, error)
	Save(ctx context.Context, d *dictionary.Dictionary, expectedRevision int64) error
	GetVersion(ctx context.Context) (string, error)
	AllVersions(ctx context.Context) ([]string, error)
}

type PostgresDictionaryRepository struct {
	db database.DB
}

func NewPostgresDictionaryRepository(db database.DB) *PostgresDictionaryRepository {
	return &PostgresDictionaryRepository{db: db}
}

// GetCurrent loads the singleton, seeding an empty dictionary versioned
// <current-year>.1 on first use.
func (r *PostgresDictionaryRepository) GetCurrent(ctx context.Context) (*dictionary.Dictionary, int64, error) {
	var doc []byte
	var revision int64
	err := r.db.QueryRow(ctx,
		`SELECT doc, revision FROM skill_dictionaries WHERE singleton_key = $1`,
		dictionarySingletonKey,
	).Scan(&doc, &revision)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.seed(ctx)
		}
		return nil, 0, err
	}

	d, err := dictionary.FromJSON(doc)
	if err != nil {
		return nil, 0, err
	}
	return d, revision, nil
}

func (r *PostgresDictionaryRepository) seed(ctx context.Context) (*dictionary.Dictionary, int64, error) {
	d, err := dictionary.New(fmt.Sprintf("%d.1", time.Now().UTC().Year()))
	if err != nil {
		return nil, 0, err
	}
	doc, err := json.Marshal(d)
	if err != nil {
		return nil, 0, err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO skill_dictionaries (singleton_key, doc, revision) VALUES ($1, $2, 1)
		 ON CONFLICT (singleton_key) DO NOTHING`,
		dictionarySingletonKey, doc,
	)
	if err != nil {
		return nil, 0, err
	}
	// A concurrent seeder may have won the insert; re-read either way.
	var stored []byte
	var revision int64
	err = r.db.QueryRow(ctx,
		`SELECT doc, revision FROM skill_dictionaries WHERE singleton_key = $1`,
		dictionarySingletonKey,
	).Scan(&stored, &revision)
	if err != nil {
		return nil, 0, err
	}
	d, err = dictionary.FromJSON(stored)
	if err != nil {
		return nil, 0, err
	}
	return d, revision, nil
}

func (r *PostgresDictionaryRepository) Save(ctx context.Context, d *dictionary.Dictionary, expectedRevision int64) error {
	doc, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode dictionary: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	affected, err := tx.Exec(ctx,
		`UPDATE skill_dictionaries
		 SET doc = $2, revision = revision + 1, updated_at = now()
		 WHERE singleton_key = $1 AND revision = $3`,
		dictionarySingletonKey, doc, expectedRevision,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrConcurrentModification
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO skill_dictionary_history (version, doc) VALUES ($1, $2)`,
		d.Version(), doc,
	)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PostgresDictionaryRepository) GetVersion(ctx context.Context) (string, error) {
	var version string
	err := r.db.QueryRow(ctx,
		`SELECT doc->>'version' FROM skill_dictionaries WHERE singleton_key = $1`,
		dictionarySingletonKey,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return version, nil
}

func (r *PostgresDictionaryRepository) AllVersions(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT version FROM skill_dictionary_history ORDER BY id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
