// Package postgres implements the user and URL repositories on top of
// PostgreSQL using sqlx and the pgx driver.
package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationErrCode = "23505"

const (
	urlsShortCodeConstraint = "urls_short_code_key"
	usersEmailConstraint    = "users_email_active_key"
)

// uniqueViolation reports whether err is a unique violation and, if so, which
// constraint was violated.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationErrCode {
		return pgErr.ConstraintName, true
	}

	return "", false
}

// isExternalID reports whether s can be an external id at all. Anything else
// cannot match a row, and sending it to a UUID column would fail the query.
func isExternalID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
