package db

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates no record matched the query.
	ErrNotFound = errors.New("not found")
	// ErrCategoryNotFound indicates a subcategory referenced a missing category.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrConflict indicates a uniqueness violation on a record's name.
	ErrConflict = errors.New("duplicate name")
	// ErrHasDependents indicates a delete blocked by referential integrity.
	ErrHasDependents = errors.New("record has dependents")
)

// DuplicateKeyError names the contact field that collided with an existing
// record.
type DuplicateKeyError struct {
	Field string
}

func (e DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate value for %s", e.Field)
}

// ValidationError carries a per-field message map for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s)", len(e.Fields))
}
