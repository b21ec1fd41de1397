package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// Database & Storage Specific Errors
var (
	ErrUniqueConstraintViolation = errors.New("unique constraint violation")
	ErrForeignKeyConstraint      = errors.New("foreign key constraint violation")
)

func NewAlreadyExists(entity string) *ApiErr {
	e := newErr(http.StatusConflict, ErrAlreadyExists, fmt.Sprintf("%s already exists", entity))
	e.Exists = true
	return e
}

func NewNotFound(entity string) *ApiErr {
	return newErr(http.StatusNotFound, ErrNotFound, fmt.Sprintf("%s not found", entity))
}

// IsUniqueViolation reports whether err comes from a unique index, whether
// GORM translated it or the driver message leaked through.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrUniqueConstraintViolation) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether err comes from a foreign key check.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, ErrForeignKeyConstraint) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "foreign key constraint") || strings.Contains(msg, "FOREIGN KEY constraint failed")
}

// NewDatabaseError maps a store failure to the client-visible taxonomy. The
// cause is kept on the returned error for logging only.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	var apiErr *ApiErr
	if errors.As(cause, &apiErr) {
		return apiErr
	}

	var e *ApiErr
	switch {
	case errors.Is(cause, ErrNotFound), errors.Is(cause, gorm.ErrRecordNotFound):
		e = NewNotFound(entity)
	case IsUniqueViolation(cause):
		e = NewAlreadyExists(entity)
	case IsForeignKeyViolation(cause):
		e = newErr(http.StatusBadRequest, ErrForeignKeyConstraint, fmt.Sprintf("invalid reference in %s", entity))
	case cause != nil && strings.Contains(cause.Error(), "connection refused"):
		e = newErr(http.StatusInternalServerError, ErrDatabaseConnection, GenericMessage)
	default:
		e = newErr(http.StatusInternalServerError, ErrDatabaseQuery, GenericMessage)
	}
	e.Cause = fmt.Errorf("failed to %s %s: %w", operation, entity, cause)
	return e
}
