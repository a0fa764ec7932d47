package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrReferentialIntegrity is returned when a write references a
	// nonexistent parent record.
	ErrReferentialIntegrity = errors.New("referenced record does not exist")
)
