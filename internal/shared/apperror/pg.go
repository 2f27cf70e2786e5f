package apperror

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a Postgres unique violation. When
// constraint is given, only that constraint matches.
func IsUniqueViolation(err error, constraint ...string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return false
		}
		return len(constraint) == 0 || pgErr.ConstraintName == constraint[0]
	}

	// Drivers that do not surface *pgconn.PgError still carry the server text.
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "duplicate key value") {
		return false
	}
	return len(constraint) == 0 || strings.Contains(msg, strings.ToLower(constraint[0]))
}

// IsForeignKeyViolation reports whether err is a Postgres foreign key
// violation, typically a delete of a row that is still referenced.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "violates foreign key constraint")
}
