package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
)

// PostgreSQL error codes the adapters care about.
const (
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeCheckViolation       = "23514"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeLockNotAvailable     = "55P03"
)

// MapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped: they pass through.
// id is anything printable that identifies the row (uuid, domain.Target).
func MapError(err error, entity string, id any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case CodeUniqueViolation:
			return fmt.Errorf("%s %v: %w", entity, id, domain.ErrAlreadyExists)
		case CodeForeignKeyViolation:
			return fmt.Errorf("%s %v: %w", entity, id, domain.ErrNotFound)
		case CodeCheckViolation:
			return fmt.Errorf("%s %v: %w", entity, id, domain.ErrValidation)
		case CodeSerializationFailure, CodeDeadlockDetected, CodeLockNotAvailable:
			return fmt.Errorf("%s %v: %w", entity, id, domain.ErrConflict)
		}
		if unavailableCode(pgErr.Code) {
			return fmt.Errorf("%s %v: %w: %w", entity, id, domain.ErrStorageUnavailable, err)
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%s %v: %w: %w", entity, id, domain.ErrStorageUnavailable, err)
	}

	return fmt.Errorf("%s %v: %w", entity, id, err)
}

// IsCheckViolation reports whether err is a check constraint violation on
// the named constraint. An empty name matches any check constraint.
func IsCheckViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != CodeCheckViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// unavailableCode matches connection exceptions (08), insufficient
// resources (53) and operator intervention (57) such as admin shutdown or
// statement timeout.
func unavailableCode(code string) bool {
	if len(code) < 2 {
		return false
	}
	switch code[:2] {
	case "08", "53", "57":
		return true
	}
	return false
}
