package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCreateBookRequestValidate(t *testing.T) {
	valid := CreateBookRequest{
		Title:         "Dune",
		CategoryID:    strPtr("a2b5c1de-3f41-4a6b-9c8d-0e1f2a3b4c5d"),
		AuthorIDs:     []string{"b3c6d2ef-4a52-4b7c-8d9e-1f2a3b4c5d6e"},
		PublishedDate: strPtr("1965-08-01"),
		ISBN:          strPtr("9780306406157"),
	}
	assert.NoError(t, valid.Validate())

	t.Run("title required", func(t *testing.T) {
		req := valid
		req.Title = ""
		assert.Error(t, req.Validate())
	})

	t.Run("bad category id", func(t *testing.T) {
		req := valid
		req.CategoryID = strPtr("42")
		assert.Error(t, req.Validate())
	})

	t.Run("bad author id", func(t *testing.T) {
		req := valid
		req.AuthorIDs = []string{"nope"}
		assert.Error(t, req.Validate())
	})

	t.Run("bad published date", func(t *testing.T) {
		req := valid
		req.PublishedDate = strPtr("01/08/1965")
		assert.Error(t, req.Validate())
	})

	t.Run("bad isbn checksum", func(t *testing.T) {
		req := valid
		req.ISBN = strPtr("9780306406158")
		assert.Error(t, req.Validate())
	})

	t.Run("client timestamps rejected", func(t *testing.T) {
		req := valid
		req.CreatedAt = strPtr("2024-01-01T00:00:00Z")
		assert.Error(t, req.Validate())

		req = valid
		req.UpdatedAt = strPtr("2024-01-01T00:00:00Z")
		assert.Error(t, req.Validate())
	})

	t.Run("minimal payload", func(t *testing.T) {
		req := CreateBookRequest{Title: "Dune"}
		assert.NoError(t, req.Validate())
	})
}

func TestPatchBookRequestValidate(t *testing.T) {
	t.Run("empty patch is valid", func(t *testing.T) {
		assert.NoError(t, PatchBookRequest{}.Validate())
	})

	t.Run("empty title rejected", func(t *testing.T) {
		req := PatchBookRequest{Title: strPtr("")}
		assert.Error(t, req.Validate())
	})

	t.Run("empty author list allowed", func(t *testing.T) {
		ids := []string{}
		req := PatchBookRequest{AuthorIDs: &ids}
		assert.NoError(t, req.Validate())
	})
}

func TestListBooksRequestValidate(t *testing.T) {
	t.Run("ordering whitelist", func(t *testing.T) {
		for _, ordering := range []string{"", "title", "-title", "published_date", "-published_date", "created_at", "-created_at"} {
			req := ListBooksRequest{Ordering: ordering}
			assert.NoError(t, req.Validate(), ordering)
		}

		req := ListBooksRequest{Ordering: "isbn"}
		assert.Error(t, req.Validate())
	})

	t.Run("filter ids must be uuids", func(t *testing.T) {
		assert.Error(t, ListBooksRequest{Category: "1"}.Validate())
		assert.Error(t, ListBooksRequest{Author: "1"}.Validate())
	})
}

func TestListBooksRequestCacheKey(t *testing.T) {
	a := ListBooksRequest{Search: "dune", Ordering: "-title"}
	b := ListBooksRequest{Search: "dune", Ordering: "title"}
	assert.NotEqual(t, a.CacheKey(), b.CacheKey())
	assert.Equal(t, a.CacheKey(), a.CacheKey())
}

func TestBookToResponse(t *testing.T) {
	b := Book{Title: "Dune", ISBN: "9780306406157"}
	resp := b.ToResponse()

	assert.NotNil(t, resp.Authors)
	assert.Empty(t, resp.Authors)
	assert.Nil(t, resp.Category)
	assert.Nil(t, resp.PublishedDate)
}
