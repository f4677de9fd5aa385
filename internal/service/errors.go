package service

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Fault taxonomy shared by all services. Handlers map these onto HTTP codes;
// anything not wrapped here is an unhandled fault and surfaces as a generic
// server error.
var (
	// ErrIDRequired flags an empty id argument.
	ErrIDRequired = errors.New("id is required")
	// ErrNotFound means no active/non-deleted record matched the id.
	ErrNotFound = errors.New("record not found")
	// ErrValidation flags malformed or missing client input.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate flags a unique-constraint violation (username, email).
	ErrDuplicate = errors.New("duplicate value")
	// ErrStorage flags an object storage failure during ingestion.
	ErrStorage = errors.New("object storage failure")
	// ErrReaderNil flags an upload with no content reader.
	ErrReaderNil = errors.New("reader is nil")
)

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
