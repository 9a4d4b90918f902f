// Package apperr defines the error taxonomy exposed by the HTTP API and the
// single place where storage errors are translated into it.
package apperr

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// HTTPStatus maps a kind onto its response code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Unavailable(msg string, err error) *Error {
	return &Error{Kind: KindUnavailable, Message: msg, Err: err}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// IsNotFound reports whether err classifies as a not-found error.
func IsNotFound(err error) bool {
	c := Classify(err)
	return c != nil && c.Kind == KindNotFound
}

// Classify walks err's chain and returns its place in the taxonomy. Low-level
// database errors are translated here and nowhere else.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{Kind: KindNotFound, Message: "record not found", Err: err}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &Error{Kind: KindConflict, Message: "duplicate value violates a unique constraint", Err: err}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &Error{Kind: KindConflict, Message: "record is referenced by other records", Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fromPgError(pgErr)
	}

	if isConnectionError(err) {
		return &Error{Kind: KindUnavailable, Message: "database unavailable", Err: err}
	}

	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

func fromPgError(pgErr *pgconn.PgError) *Error {
	switch pgErr.Code {
	case "23505":
		msg := "duplicate value violates a unique constraint"
		if pgErr.ConstraintName != "" {
			msg = fmt.Sprintf("duplicate value violates %s", pgErr.ConstraintName)
		}
		return &Error{Kind: KindConflict, Message: msg, Err: pgErr}
	case "23503":
		return &Error{Kind: KindConflict, Message: "record is referenced by other records", Err: pgErr}
	case "23502":
		return &Error{
			Kind:    KindValidation,
			Message: "missing required field",
			Fields:  []FieldError{{Field: pgErr.ColumnName, Message: "is required"}},
			Err:     pgErr,
		}
	case "23514", "22001":
		return &Error{Kind: KindValidation, Message: "value rejected by the database", Err: pgErr}
	}
	if strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P") {
		return &Error{Kind: KindUnavailable, Message: "database unavailable", Err: pgErr}
	}
	return &Error{Kind: KindInternal, Message: "database error", Err: pgErr}
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
