package category

import "github.com/google/uuid"

// Category is the domain entity, mapped 1:1 to the categories table.
// Slug is derived from Name at creation time and never changes afterwards.
type Category struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	Slug        string    `db:"slug" json:"slug"`
}

// CategoryResponse is the wire representation, nested into book responses.
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Slug        string    `json:"slug"`
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Slug:        c.Slug,
	}
}
