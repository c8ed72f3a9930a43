package repository

import "errors"

var (
	// ErrNotFound is returned when a document lookup misses.
	ErrNotFound = errors.New("document not found")

	// ErrConcurrentModification is returned when a singleton save loses an
	// optimistic revision check: another writer saved in between.
	ErrConcurrentModification = errors.New("concurrent modification")
)
