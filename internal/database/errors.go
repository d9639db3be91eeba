package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the referenced row does not exist
	// or is soft-deleted.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when an insert or update violates a
	// uniqueness constraint (author name, username). Callers decide
	// how to surface it; it is never swallowed at this layer.
	ErrConflict = errors.New("record already exists")
)

// TranslateError maps driver-level errors onto the package taxonomy.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if IsUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

// IsUniqueViolation reports whether err is a sqlite UNIQUE constraint
// failure. Matched on message text because the pure-Go and CGO sqlite
// drivers expose different error types.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
