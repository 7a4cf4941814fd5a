//go:build integration

package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"bookcatalog-backend/internal/domains/book"
	bookrepo "bookcatalog-backend/internal/domains/book/repository"
	"bookcatalog-backend/internal/domains/category"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPool connects to the database named by TEST_DATABASE_URL; the
// migrations must already be applied.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func TestDeleteCategoryNullsBookReferences(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	categoryRepo := NewPostgresRepository(pool)
	bookRepo := bookrepo.NewPostgresRepository(pool)

	suffix := uuid.NewString()
	cat := &category.Category{
		ID:   uuid.New(),
		Name: "orphan-test-" + suffix,
		Slug: "orphan-test-" + suffix,
	}
	require.NoError(t, categoryRepo.Create(ctx, cat))

	now := time.Now().UTC()
	var bookIDs []uuid.UUID
	for i := 0; i < 3; i++ {
		b := &book.Book{
			ID:         uuid.New(),
			Title:      fmt.Sprintf("orphan test book %d %s", i, suffix),
			CategoryID: &cat.ID,
			ISBN:       book.GenerateISBN13(),
			Slug:       fmt.Sprintf("orphan-test-book-%d-%s", i, suffix),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		require.NoError(t, bookRepo.Create(ctx, b, nil))
		bookIDs = append(bookIDs, b.ID)
	}
	t.Cleanup(func() {
		for _, id := range bookIDs {
			_, _ = pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
		}
		_, _ = pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, cat.ID)
	})

	require.NoError(t, categoryRepo.Delete(ctx, cat.ID))

	// Every dependent book survives with its category reference cleared.
	for _, id := range bookIDs {
		got, err := bookRepo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, got.CategoryID)
		assert.Nil(t, got.Category)
	}
}
