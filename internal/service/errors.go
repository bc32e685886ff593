package service

import (
	"errors"
	"fmt"

	"github.com/stemsi/institute-backend/internal/repository"
)

// Sentinel causes wrapped by ValidationError.
var (
	ErrNoAssignment         = errors.New("no assignment exists for this institute, class and section")
	ErrSectionClassMismatch = errors.New("section does not belong to the selected class")
	ErrNoSectionSelected    = errors.New("no section selected")
	ErrInvalidDateRange     = errors.New("end date is before start date")
	ErrSectionInUse         = errors.New("section is referenced by assignments, register entries or shares")
	ErrNegativeAmount       = errors.New("amount must not be negative")
	ErrAmountPrecision      = errors.New("amount must have at most 2 decimal places and 12 whole digits")
	ErrInvalidPermission    = errors.New("invalid institute permission")
	ErrDuplicateUserID      = errors.New("user id already in use")
	ErrPasswordTooLong      = errors.New("password must be at most 72 bytes")
	ErrUnsupportedDocument  = errors.New("unsupported document type")
	ErrDocumentTooLarge     = errors.New("document too large")
)

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("not found")

// ValidationError rejects a write before anything is persisted.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Reason: err.Error(), Err: err}
}

func invalidf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError names a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StorageError is a failed blob write. Callers decide whether it is fatal.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("document storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// notFound converts repository.ErrNotFound into a NotFoundError for entity.
func notFound(err error, entity string, id any) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return err
}
