package book

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateBookRequest is the write payload for POST and PUT. It accepts
// flat identifiers (category_id, author_ids) instead of the nested
// objects found in read responses. Slug is derived server-side; a
// client-sent slug field is simply not bound. Timestamps are rejected
// outright. Form tags cover the multipart variant used for cover upload.
type CreateBookRequest struct {
	Title         string   `json:"title" form:"title"`
	Description   *string  `json:"description" form:"description"`
	CategoryID    *string  `json:"category_id" form:"category_id"`
	AuthorIDs     []string `json:"author_ids" form:"author_ids"`
	PublishedDate *string  `json:"published_date" form:"published_date"`
	ISBN          *string  `json:"isbn" form:"isbn"`
	CreatedAt     *string  `json:"created_at" form:"created_at"`
	UpdatedAt     *string  `json:"updated_at" form:"updated_at"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.CategoryID, is.UUIDv4.Error("category_id must be a valid uuid")),
		validation.Field(&r.AuthorIDs,
			validation.Each(is.UUIDv4.Error("author_ids must contain valid uuids")),
		),
		validation.Field(&r.PublishedDate,
			validation.Date(dateLayout).Error("published_date must be YYYY-MM-DD"),
		),
		validation.Field(&r.ISBN, validation.By(validateISBN)),
		validation.Field(&r.CreatedAt, validation.Nil.Error("created_at is not writable")),
		validation.Field(&r.UpdatedAt, validation.Nil.Error("updated_at is not writable")),
	)
}

// PatchBookRequest applies only the provided fields. A present but empty
// author_ids list clears the relation.
type PatchBookRequest struct {
	Title         *string   `json:"title" form:"title"`
	Description   *string   `json:"description" form:"description"`
	CategoryID    *string   `json:"category_id" form:"category_id"`
	AuthorIDs     *[]string `json:"author_ids" form:"author_ids"`
	PublishedDate *string   `json:"published_date" form:"published_date"`
	ISBN          *string   `json:"isbn" form:"isbn"`
	CreatedAt     *string   `json:"created_at" form:"created_at"`
	UpdatedAt     *string   `json:"updated_at" form:"updated_at"`
}

func (r PatchBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title must not be empty"),
			validation.Length(1, 255),
		),
		validation.Field(&r.CategoryID, is.UUIDv4.Error("category_id must be a valid uuid")),
		validation.Field(&r.AuthorIDs,
			validation.Each(is.UUIDv4.Error("author_ids must contain valid uuids")),
		),
		validation.Field(&r.PublishedDate,
			validation.Date(dateLayout).Error("published_date must be YYYY-MM-DD"),
		),
		validation.Field(&r.ISBN, validation.By(validateISBN)),
		validation.Field(&r.CreatedAt, validation.Nil.Error("created_at is not writable")),
		validation.Field(&r.UpdatedAt, validation.Nil.Error("updated_at is not writable")),
	)
}

func validateISBN(value interface{}) error {
	s, _ := value.(*string)
	if s == nil {
		return nil
	}
	if !ValidISBN13(*s) {
		return fmt.Errorf("isbn must be a valid ISBN-13")
	}
	return nil
}

var orderingValues = []interface{}{
	"", "title", "-title",
	"published_date", "-published_date",
	"created_at", "-created_at",
}

// ListBooksRequest carries the collection query parameters: one free
// text search term, exact-match filters and the ordering key.
type ListBooksRequest struct {
	Search        string `form:"search"`
	Category      string `form:"category"`
	Author        string `form:"author"`
	PublishedDate string `form:"published_date"`
	Ordering      string `form:"ordering"`
}

func (r ListBooksRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category, is.UUIDv4.Error("category must be a valid uuid")),
		validation.Field(&r.Author, is.UUIDv4.Error("author must be a valid uuid")),
		validation.Field(&r.PublishedDate,
			validation.Date(dateLayout).Error("published_date must be YYYY-MM-DD"),
		),
		validation.Field(&r.Ordering,
			validation.In(orderingValues...).Error("ordering must be one of: title, published_date, created_at"),
		),
	)
}

// CacheKey is stable across identical queries.
func (r ListBooksRequest) CacheKey() string {
	return fmt.Sprintf("books:list:%s:%s:%s:%s:%s",
		r.Search, r.Category, r.Author, r.PublishedDate, r.Ordering)
}
