package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

// constraintFields maps unique constraint names from the migrations to the
// request field they guard. Keeping the table here means every repository
// reports conflicts the same way.
var constraintFields = map[string]string{
	"categories_name_key": "name",
	"categories_slug_key": "slug",
	"authors_name_key":    "name",
	"books_isbn_key":      "isbn",
	"books_slug_key":      "slug",
	"users_username_key":  "username",
	"users_email_key":     "email",
	"user_favorites_pkey": "book_id",
}

// UniqueViolationField returns the field behind a unique-constraint
// violation, or ok=false if err is not one.
func UniqueViolationField(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	if pgErr.Code != uniqueViolation {
		return "", false
	}

	field, known := constraintFields[pgErr.ConstraintName]
	if !known {
		return pgErr.ConstraintName, true
	}
	return field, true
}

// IsUniqueViolation reports whether err is a duplicate-key error.
func IsUniqueViolation(err error) bool {
	_, ok := UniqueViolationField(err)
	return ok
}

// IsForeignKeyViolation reports whether err is a broken-reference error.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23503"
}
