package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// unique_violation in the postgres error code table.
const uniqueViolationCode = "23505"

// IsDuplicate reports whether err is a unique constraint violation;
// an already claimed order surfaces from the stop-row insert this way.
func IsDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsNotFound reports whether err is pgx's empty query result.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
