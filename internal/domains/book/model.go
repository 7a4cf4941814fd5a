package book

import (
	"time"

	"bookcatalog-backend/internal/domains/author"
	"bookcatalog-backend/internal/domains/category"

	"github.com/google/uuid"
)

// Book is the domain entity, mapped to the books table plus its joined
// relations. Authors and Category are hydrated by the repository; the
// raw foreign key stays in CategoryID.
type Book struct {
	ID            uuid.UUID  `db:"id"`
	Title         string     `db:"title"`
	Description   *string    `db:"description"`
	CategoryID    *uuid.UUID `db:"category_id"`
	PublishedDate *time.Time `db:"published_date"`
	ISBN          string     `db:"isbn"`
	CoverImage    *string    `db:"cover_image"`
	Slug          string     `db:"slug"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`

	Authors  []author.Author    `db:"-"`
	Category *category.Category `db:"-"`
}

// BookResponse is the wire representation. Relations render as full
// nested objects, never bare identifiers.
type BookResponse struct {
	ID            uuid.UUID                  `json:"id"`
	Title         string                     `json:"title"`
	Description   *string                    `json:"description"`
	Authors       []author.AuthorResponse    `json:"authors"`
	Category      *category.CategoryResponse `json:"category"`
	PublishedDate *string                    `json:"published_date"`
	ISBN          string                     `json:"isbn"`
	CoverImage    *string                    `json:"cover_image"`
	Slug          string                     `json:"slug"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

const dateLayout = "2006-01-02"

func (b *Book) ToResponse() BookResponse {
	authors := make([]author.AuthorResponse, 0, len(b.Authors))
	for i := range b.Authors {
		authors = append(authors, b.Authors[i].ToResponse())
	}

	var cat *category.CategoryResponse
	if b.Category != nil {
		c := b.Category.ToResponse()
		cat = &c
	}

	var published *string
	if b.PublishedDate != nil {
		s := b.PublishedDate.Format(dateLayout)
		published = &s
	}

	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Description:   b.Description,
		Authors:       authors,
		Category:      cat,
		PublishedDate: published,
		ISBN:          b.ISBN,
		CoverImage:    b.CoverImage,
		Slug:          b.Slug,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
