package book

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows and orders the books collection.
type ListFilter struct {
	Search        string
	CategoryID    *uuid.UUID
	AuthorID      *uuid.UUID
	PublishedDate *time.Time
	OrderBy       string // whitelisted column
	Desc          bool
}

// Repository is the entity-store contract for books and the
// user-favorites relation.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)
	// Create persists the book and its author links in one transaction.
	Create(ctx context.Context, b *Book, authorIDs []uuid.UUID) error
	// Update persists the book; a non-nil authorIDs replaces the author
	// links, nil leaves them untouched.
	Update(ctx context.Context, b *Book, authorIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	// MissingAuthors returns the subset of ids with no matching author row.
	MissingAuthors(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	CategoryExists(ctx context.Context, id uuid.UUID) (bool, error)

	// ToggleFavorite flips the (user, book) favorite state atomically and
	// reports whether the book is now favorited.
	ToggleFavorite(ctx context.Context, userID, bookID uuid.UUID) (added bool, err error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]Book, error)
}
