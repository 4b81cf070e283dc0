package repository

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("unique constraint violated")
	// ErrInvalidReference is returned when a foreign key points at a missing row.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// ConflictError names the unique column that rejected a write.
type ConflictError struct {
	Table string
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Table, e.Field, ErrConflict.Error())
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// SQLite reports e.g. "UNIQUE constraint failed: users.username (2067)".
var uniqueViolationRe = regexp.MustCompile(`UNIQUE constraint failed: (\w+)\.(\w+)`)

// classifyWriteError translates constraint failures into repository errors.
// Anything else is wrapped with op for context.
func classifyWriteError(op string, err error) error {
	msg := err.Error()
	if m := uniqueViolationRe.FindStringSubmatch(msg); m != nil {
		return &ConflictError{Table: m[1], Field: m[2]}
	}
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return fmt.Errorf("%s: %w", op, ErrInvalidReference)
	}
	return fmt.Errorf("%s: %w", op, err)
}
