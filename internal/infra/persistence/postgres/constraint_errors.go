package postgres

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes for integrity violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

func pgErrorCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}

	return "", ""
}

// Helper functions for PostgreSQL error checking
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	code, _ := pgErrorCode(err)

	return code == pgUniqueViolation
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	code, _ := pgErrorCode(err)

	return code == pgForeignKeyViolation
}

func isNotNullConstraintViolation(err error) bool {
	code, _ := pgErrorCode(err)

	return code == pgNotNullViolation
}

func isCheckConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	code, _ := pgErrorCode(err)

	return code == pgCheckViolation
}

// violatedConstraint returns the lowercased constraint name, or "" when the
// driver did not report one (for example after gorm translated the error).
func violatedConstraint(err error) string {
	_, constraint := pgErrorCode(err)

	return strings.ToLower(constraint)
}
