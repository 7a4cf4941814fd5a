package author

import "github.com/google/uuid"

// Author is the domain entity, mapped 1:1 to the authors table.
type Author struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
	Bio  *string   `db:"bio" json:"bio"`
}

// AuthorResponse is the wire representation, nested into book responses.
type AuthorResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Bio  *string   `json:"bio"`
}

func (a *Author) ToResponse() AuthorResponse {
	return AuthorResponse{
		ID:   a.ID,
		Name: a.Name,
		Bio:  a.Bio,
	}
}
