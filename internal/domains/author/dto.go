package author

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateAuthorRequest is the write payload for POST and PUT.
type CreateAuthorRequest struct {
	Name string  `json:"name"`
	Bio  *string `json:"bio"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
	)
}

// PatchAuthorRequest applies only the provided fields.
type PatchAuthorRequest struct {
	Name *string `json:"name"`
	Bio  *string `json:"bio"`
}

func (r PatchAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.NilOrNotEmpty.Error("name must not be empty"),
			validation.Length(1, 255),
		),
	)
}

// ListAuthorsRequest carries the collection query parameters.
type ListAuthorsRequest struct {
	Search   string `form:"search"`
	Ordering string `form:"ordering"`
}

func (r ListAuthorsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Ordering,
			validation.In("", "name", "-name").Error("ordering must be one of: name"),
		),
	)
}
