package common

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the service reacts to
const (
	PgUniqueViolation     = "23505"
	PgForeignKeyViolation = "23503"
	PgStringTooLong       = "22001"
	PgCheckViolation      = "23514"
)

var (
	emailConstraints = map[string]bool{
		"email_unique":           true,
		"authority_email_unique": true,
	}
	phoneConstraints = map[string]bool{
		"unique_phone_number":           true,
		"authority_unique_phone_number": true,
	}
	userFKConstraints = map[string]bool{
		"useraddress_userid_fkey": true,
		"orders_userid_fkey":      true,
	}
)

// AsPgError unwraps err to a *pgconn.PgError when there is one
func AsPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsUniqueViolation reports whether err is a unique violation and on which constraint
func IsUniqueViolation(err error) (string, bool) {
	pgErr, ok := AsPgError(err)
	if !ok || pgErr.Code != PgUniqueViolation {
		return "", false
	}
	return pgErr.ConstraintName, true
}

// PostgresMessage maps a known constraint failure to its user-facing message
func PostgresMessage(err error) (string, bool) {
	pgErr, ok := AsPgError(err)
	if !ok {
		return "", false
	}

	switch pgErr.Code {
	case PgUniqueViolation:
		if emailConstraints[pgErr.ConstraintName] {
			return MsgEmailTaken, true
		}
		if phoneConstraints[pgErr.ConstraintName] {
			return MsgPhoneTaken, true
		}
	case PgStringTooLong:
		return MsgValueTooLong, true
	case PgForeignKeyViolation:
		if userFKConstraints[pgErr.ConstraintName] {
			return MsgUnknownUserID, true
		}
	}
	return "", false
}
