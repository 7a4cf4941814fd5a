//go:build integration

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"bookcatalog-backend/internal/domains/book"

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

func insertTestUser(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	id := uuid.New()
	suffix := uuid.NewString()
	now := time.Now().UTC()
	_, err := pool.Exec(ctx, `
		INSERT INTO users (id, username, email, first_name, last_name, bio,
			password_hash, is_active, is_staff, is_superuser, created_at, updated_at)
		VALUES ($1, $2, $3, '', '', NULL, 'x', TRUE, FALSE, FALSE, $4, $4)
	`, id, "toggle-test-"+suffix, "toggle-test-"+suffix+"@test.example", now)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	})

	return id
}

func insertTestBook(t *testing.T, repo book.Repository, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC()
	b := &book.Book{
		ID:        uuid.New(),
		Title:     "toggle test " + uuid.NewString(),
		ISBN:      book.GenerateISBN13(),
		Slug:      "toggle-test-" + uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, b, nil))

	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, b.ID)
	})

	return b.ID
}

// Two simultaneous toggles on the same pair must serialize into one
// "added" and one "removed", never an error, regardless of which one
// wins the insert.
func TestToggleFavoriteConcurrentFlipsSerialize(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	repo := NewPostgresRepository(pool)
	userID := insertTestUser(t, pool)
	bookID := insertTestBook(t, repo, pool)

	type outcome struct {
		added bool
		err   error
	}
	results := make(chan outcome, 2)

	for i := 0; i < 2; i++ {
		go func() {
			added, err := repo.ToggleFavorite(ctx, userID, bookID)
			results <- outcome{added: added, err: err}
		}()
	}

	first := <-results
	second := <-results
	require.NoError(t, first.err)
	require.NoError(t, second.err)
	assert.NotEqual(t, first.added, second.added, "one flip must add, the other remove")

	// An even number of flips lands back on not-favorited.
	var count int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT count(*) FROM user_favorites WHERE user_id = $1 AND book_id = $2`,
		userID, bookID).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestToggleFavoriteSequentialFlips(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	repo := NewPostgresRepository(pool)
	userID := insertTestUser(t, pool)
	bookID := insertTestBook(t, repo, pool)

	added, err := repo.ToggleFavorite(ctx, userID, bookID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.ToggleFavorite(ctx, userID, bookID)
	require.NoError(t, err)
	assert.False(t, added)
}
