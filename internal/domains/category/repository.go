package category

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows and orders the categories collection.
type ListFilter struct {
	Search  string
	OrderBy string // whitelisted column
	Desc    bool
}

// Repository is the entity-store contract for categories.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	Create(ctx context.Context, cat *Category) error
	Update(ctx context.Context, cat *Category) error
	// Delete removes the category; books referencing it keep existing
	// with a cleared category (ON DELETE SET NULL).
	Delete(ctx context.Context, id uuid.UUID) error
}
