// Package schema creates the document-store tables on startup. Each
// aggregate maps to one JSONB document; the dictionary and review queue are
// singletons guarded by a revision column.
package schema

import (
	"context"
	"fmt"

	"bid-match/internal/database"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS jd_specs (
		id TEXT PRIMARY KEY,
		doc JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS bids (
		id TEXT PRIMARY KEY,
		doc JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS resumes (
		id TEXT PRIMARY KEY,
		doc JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS skill_dictionaries (
		singleton_key TEXT PRIMARY KEY,
		doc JSONB NOT NULL,
		revision BIGINT NOT NULL DEFAULT 1,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS skill_dictionary_history (
		id BIGSERIAL PRIMARY KEY,
		version TEXT NOT NULL,
		doc JSONB NOT NULL,
		saved_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS review_queues (
		singleton_key TEXT PRIMARY KEY,
		doc JSONB NOT NULL,
		revision BIGINT NOT NULL DEFAULT 1,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Ensure creates any missing tables. It is idempotent and safe to run on
// every boot.
func Ensure(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
