package author

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows and orders the authors collection.
type ListFilter struct {
	Search  string
	OrderBy string // whitelisted column
	Desc    bool
}

// Repository is the entity-store contract for authors.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)
	Create(ctx context.Context, a *Author) error
	Update(ctx context.Context, a *Author) error
	Delete(ctx context.Context, id uuid.UUID) error
}
