package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"bookcatalog-backend/internal/domains/author"
	"bookcatalog-backend/internal/domains/book"
	"bookcatalog-backend/internal/domains/category"
	"bookcatalog-backend/internal/infrastructure/database"
	txdb "bookcatalog-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// bookColumns is the shared SELECT list: the book row, the joined
// category row and the author set aggregated to JSON.
const bookColumns = `
	b.id, b.title, b.description, b.category_id, b.published_date, b.isbn,
	b.cover_image, b.slug, b.created_at, b.updated_at,
	c.name, c.description, c.slug,
	COALESCE(aa.authors, '[]')`

const bookJoins = `
	LEFT JOIN categories c ON c.id = b.category_id
	LEFT JOIN LATERAL (
		SELECT json_agg(
			json_build_object('id', a.id, 'name', a.name, 'bio', a.bio)
			ORDER BY a.name
		) AS authors
		FROM book_authors ba
		JOIN authors a ON a.id = ba.author_id
		WHERE ba.book_id = b.id
	) aa ON TRUE`

// orderColumns whitelists what ORDER BY may reference.
var orderColumns = map[string]string{
	"title":          "b.title",
	"published_date": "b.published_date",
	"created_at":     "b.created_at",
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) book.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) List(ctx context.Context, filter book.ListFilter) ([]book.Book, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIndex := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(`(
			b.title ILIKE $%d OR b.description ILIKE $%d OR b.isbn ILIKE $%d
			OR c.name ILIKE $%d
			OR EXISTS (
				SELECT 1 FROM book_authors sba
				JOIN authors sa ON sa.id = sba.author_id
				WHERE sba.book_id = b.id AND sa.name ILIKE $%d
			))`, argIndex, argIndex, argIndex, argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("b.category_id = $%d", argIndex))
		args = append(args, *filter.CategoryID)
		argIndex++
	}
	if filter.AuthorID != nil {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM book_authors fba WHERE fba.book_id = b.id AND fba.author_id = $%d)",
			argIndex))
		args = append(args, *filter.AuthorID)
		argIndex++
	}
	if filter.PublishedDate != nil {
		conditions = append(conditions, fmt.Sprintf("b.published_date = $%d", argIndex))
		args = append(args, *filter.PublishedDate)
		argIndex++
	}

	orderBy, ok := orderColumns[filter.OrderBy]
	if !ok {
		orderBy = "b.title"
	}
	direction := "ASC"
	if filter.Desc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM books b %s
		WHERE %s
		ORDER BY %s %s
	`, bookColumns, bookJoins, strings.Join(conditions, " AND "), orderBy, direction)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books query failed: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows)
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books b %s
		WHERE b.id = $1
	`, bookColumns, bookJoins)

	b, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, book.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return b, nil
}

func (r *postgresRepository) Create(ctx context.Context, b *book.Book, authorIDs []uuid.UUID) error {
	return txdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO books (id, title, description, category_id, published_date,
				isbn, cover_image, slug, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
		_, err := tx.Exec(ctx, query,
			b.ID, b.Title, b.Description, b.CategoryID, b.PublishedDate,
			b.ISBN, b.CoverImage, b.Slug, b.CreatedAt, b.UpdatedAt,
		)
		if err != nil {
			return mapBookWriteError(err, "insert book")
		}

		return replaceAuthors(ctx, tx, b.ID, authorIDs)
	})
}

func (r *postgresRepository) Update(ctx context.Context, b *book.Book, authorIDs []uuid.UUID) error {
	return txdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			UPDATE books
			SET title = $1, description = $2, category_id = $3,
				published_date = $4, isbn = $5, cover_image = $6, updated_at = $7
			WHERE id = $8
		`
		result, err := tx.Exec(ctx, query,
			b.Title, b.Description, b.CategoryID,
			b.PublishedDate, b.ISBN, b.CoverImage, b.UpdatedAt, b.ID,
		)
		if err != nil {
			return mapBookWriteError(err, "update book")
		}
		if result.RowsAffected() == 0 {
			return book.ErrBookNotFound
		}

		if authorIDs == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM book_authors WHERE book_id = $1`, b.ID); err != nil {
			return fmt.Errorf("failed to clear book authors: %w", err)
		}
		return replaceAuthors(ctx, tx, b.ID, authorIDs)
	})
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

func (r *postgresRepository) MissingAuthors(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id FROM authors WHERE id = ANY($1::uuid[])`, pq.Array(uuidStrings(ids)))
	if err != nil {
		return nil, fmt.Errorf("author lookup failed: %w", err)
	}

	found, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("collect rows failed: %w", err)
	}

	known := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		known[id] = struct{}{}
	}

	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r *postgresRepository) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("category lookup failed: %w", err)
	}
	return exists, nil
}

// toggleRetryLimit bounds how often a flip re-reads the relation when a
// concurrent toggle on the same pair wins a round.
const toggleRetryLimit = 3

// ToggleFavorite deletes the relation row if present, inserts it if not.
// A concurrent toggle on the same pair can commit between the two
// statements: the DELETE sees nothing while the rival INSERT is still
// uncommitted, and the own INSERT then lands on the occupied primary
// key. ON CONFLICT DO NOTHING absorbs that collision and the loop flips
// again against the state the winner left behind, so each call still
// changes the state exactly once.
func (r *postgresRepository) ToggleFavorite(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	return txdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (bool, error) {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, bookID).Scan(&exists)
		if err != nil {
			return false, fmt.Errorf("book lookup failed: %w", err)
		}
		if !exists {
			return false, book.ErrBookNotFound
		}

		for attempt := 0; attempt < toggleRetryLimit; attempt++ {
			result, err := tx.Exec(ctx,
				`DELETE FROM user_favorites WHERE user_id = $1 AND book_id = $2`, userID, bookID)
			if err != nil {
				return false, fmt.Errorf("failed to remove favorite: %w", err)
			}
			if result.RowsAffected() > 0 {
				return false, nil
			}

			result, err = tx.Exec(ctx, `
				INSERT INTO user_favorites (user_id, book_id)
				VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, userID, bookID)
			if err != nil {
				return false, fmt.Errorf("failed to add favorite: %w", err)
			}
			if result.RowsAffected() > 0 {
				return true, nil
			}
		}

		return false, fmt.Errorf("favorite toggle did not settle for user %s, book %s", userID, bookID)
	})
}

func (r *postgresRepository) ListFavorites(ctx context.Context, userID uuid.UUID) ([]book.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM user_favorites uf
		JOIN books b ON b.id = uf.book_id %s
		WHERE uf.user_id = $1
		ORDER BY b.title ASC
	`, bookColumns, bookJoins)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites query failed: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows)
}

func replaceAuthors(ctx context.Context, tx pgx.Tx, bookID uuid.UUID, authorIDs []uuid.UUID) error {
	if len(authorIDs) == 0 {
		return nil
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO book_authors (book_id, author_id)
		SELECT $1, unnest($2::uuid[])
	`, bookID, pq.Array(uuidStrings(authorIDs)))
	if err != nil {
		return fmt.Errorf("failed to link authors: %w", err)
	}
	return nil
}

func mapBookWriteError(err error, op string) error {
	if field, ok := database.UniqueViolationField(err); ok {
		switch field {
		case "isbn":
			return book.ErrISBNAlreadyExists
		case "slug":
			return book.ErrSlugAlreadyExists
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func collectBooks(rows pgx.Rows) ([]book.Book, error) {
	books := []book.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book failed: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books failed: %w", err)
	}
	return books, nil
}

func scanBook(row pgx.Row) (*book.Book, error) {
	var (
		b              book.Book
		publishedDate  *time.Time
		catName        *string
		catDescription *string
		catSlug        *string
		authorsJSON    []byte
	)

	err := row.Scan(
		&b.ID, &b.Title, &b.Description, &b.CategoryID, &publishedDate, &b.ISBN,
		&b.CoverImage, &b.Slug, &b.CreatedAt, &b.UpdatedAt,
		&catName, &catDescription, &catSlug,
		&authorsJSON,
	)
	if err != nil {
		return nil, err
	}

	b.PublishedDate = publishedDate
	if b.CategoryID != nil && catName != nil && catSlug != nil {
		b.Category = &category.Category{
			ID:          *b.CategoryID,
			Name:        *catName,
			Description: catDescription,
			Slug:        *catSlug,
		}
	}
	if err := json.Unmarshal(authorsJSON, &b.Authors); err != nil {
		return nil, fmt.Errorf("decode authors: %w", err)
	}
	if b.Authors == nil {
		b.Authors = []author.Author{}
	}

	return &b, nil
}
