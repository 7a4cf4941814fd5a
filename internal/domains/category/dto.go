package category

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateCategoryRequest is the write payload for POST and PUT. Slug is
// not accepted from clients; it is derived server-side.
type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
	)
}

// PatchCategoryRequest applies only the provided fields.
type PatchCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (r PatchCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.NilOrNotEmpty.Error("name must not be empty"),
			validation.Length(1, 255),
		),
	)
}

// ListCategoriesRequest carries the collection query parameters.
type ListCategoriesRequest struct {
	Search   string `form:"search"`
	Ordering string `form:"ordering"`
}

func (r ListCategoriesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Ordering,
			validation.In("", "name", "-name").Error("ordering must be one of: name"),
		),
	)
}
