package service

import (
	"errors"
	"fmt"

	"bookfans/internal/repository"
)

// Domain errors returned by services. Handlers translate them to HTTP codes.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrInvalidTimeRange   = errors.New("invalid time range: from must be <= to")
)

// ConflictError reports a uniqueness violation on a single field.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string        { return e.Message }
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// NotFoundError names the missing resource ("user", "book", ...).
type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string        { return e.Resource + " not found" }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// conflictFromStore turns a store-level unique violation into a ConflictError
// carrying the user-facing message for that column.
func conflictFromStore(err error, messages map[string]string) error {
	var ce *repository.ConflictError
	if !errors.As(err, &ce) {
		return err
	}
	msg, ok := messages[ce.Field]
	if !ok {
		msg = fmt.Sprintf("%s already exists", ce.Field)
	}
	return &ConflictError{Field: ce.Field, Message: msg}
}

func notFound(err error, resource string, id int) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return err
}
