package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/matheusmosca/brewery-orders-service/internal/apperr"
)

// PostgreSQL error codes the gateways care about
const (
	PgErrForeignKeyViolation = "23503" // foreign_key_violation
	PgErrUniqueViolation     = "23505" // unique_violation
	PgErrCheckViolation      = "23514" // check_violation
	PgErrNotNullViolation    = "23502" // not_null_violation
)

// ErrVersionConflict is returned when an update targets a version that is no longer current.
var ErrVersionConflict = errors.New("version conflict")

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// Classify turns store refusals into apperr.ConflictError and leaves every
// other error untouched.
func Classify(err error, detail string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrVersionConflict) {
		return apperr.Conflict(detail+" was modified concurrently", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrForeignKeyViolation:
			return apperr.Conflict(detail+" is still referenced or references a missing row", err)
		case PgErrUniqueViolation:
			return apperr.Conflict(detail+" already exists", err)
		case PgErrCheckViolation, PgErrNotNullViolation:
			return apperr.Conflict(detail+" violates a store constraint", err)
		}
	}

	return err
}
