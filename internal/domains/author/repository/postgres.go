package repository

import (
	"context"
	"fmt"
	"strings"

	"bookcatalog-backend/internal/domains/author"
	"bookcatalog-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) author.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) List(ctx context.Context, filter author.ListFilter) ([]author.Author, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIndex := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR bio ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	orderBy := "name"
	if filter.OrderBy != "" {
		orderBy = filter.OrderBy
	}
	direction := "ASC"
	if filter.Desc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT id, name, bio
		FROM authors
		WHERE %s
		ORDER BY %s %s
	`, strings.Join(conditions, " AND "), orderBy, direction)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list authors query failed: %w", err)
	}

	authors, err := pgx.CollectRows(rows, pgx.RowToStructByName[author.Author])
	if err != nil {
		return nil, fmt.Errorf("collect rows failed: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	query := `SELECT id, name, bio FROM authors WHERE id = $1`

	var a author.Author
	err := r.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.Bio)
	if err == pgx.ErrNoRows {
		return nil, author.ErrAuthorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	return &a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) error {
	query := `INSERT INTO authors (id, name, bio) VALUES ($1, $2, $3)`

	_, err := r.pool.Exec(ctx, query, a.ID, a.Name, a.Bio)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return author.ErrNameAlreadyExists
		}
		return fmt.Errorf("failed to insert author: %w", err)
	}

	return nil
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) error {
	query := `UPDATE authors SET name = $1, bio = $2 WHERE id = $3`

	result, err := r.pool.Exec(ctx, query, a.Name, a.Bio, a.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return author.ErrNameAlreadyExists
		}
		return fmt.Errorf("failed to update author: %w", err)
	}
	if result.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if result.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	return nil
}
