package database

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUniqueViolationField(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	field, ok := UniqueViolationField(err)
	assert.True(t, ok)
	assert.Equal(t, "email", field)
}

func TestUniqueViolationFieldWrapped(t *testing.T) {
	inner := &pgconn.PgError{Code: "23505", ConstraintName: "books_isbn_key"}
	err := fmt.Errorf("failed to insert book: %w", inner)

	field, ok := UniqueViolationField(err)
	assert.True(t, ok)
	assert.Equal(t, "isbn", field)
}

func TestUniqueViolationFieldUnknownConstraint(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "something_else"}

	field, ok := UniqueViolationField(err)
	assert.True(t, ok)
	assert.Equal(t, "something_else", field)
}

func TestNonUniqueErrors(t *testing.T) {
	assert.False(t, IsUniqueViolation(fmt.Errorf("plain error")))
	assert.False(t, IsUniqueViolation(nil))

	fk := &pgconn.PgError{Code: "23503"}
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
}
