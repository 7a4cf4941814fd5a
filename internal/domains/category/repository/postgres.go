package repository

import (
	"context"
	"fmt"
	"strings"

	"bookcatalog-backend/internal/domains/category"
	"bookcatalog-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) category.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) List(ctx context.Context, filter category.ListFilter) ([]category.Category, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIndex := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
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
		SELECT id, name, description, slug
		FROM categories
		WHERE %s
		ORDER BY %s %s
	`, strings.Join(conditions, " AND "), orderBy, direction)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories query failed: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[category.Category])
	if err != nil {
		return nil, fmt.Errorf("collect rows failed: %w", err)
	}

	return categories, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := `SELECT id, name, description, slug FROM categories WHERE id = $1`

	var cat category.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(&cat.ID, &cat.Name, &cat.Description, &cat.Slug)
	if err == pgx.ErrNoRows {
		return nil, category.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &cat, nil
}

func (r *postgresRepository) Create(ctx context.Context, cat *category.Category) error {
	query := `INSERT INTO categories (id, name, description, slug) VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query, cat.ID, cat.Name, cat.Description, cat.Slug)
	if err != nil {
		if field, ok := database.UniqueViolationField(err); ok {
			return uniqueError(field)
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

func (r *postgresRepository) Update(ctx context.Context, cat *category.Category) error {
	query := `UPDATE categories SET name = $1, description = $2 WHERE id = $3`

	result, err := r.pool.Exec(ctx, query, cat.Name, cat.Description, cat.ID)
	if err != nil {
		if field, ok := database.UniqueViolationField(err); ok {
			return uniqueError(field)
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}

	return nil
}

func uniqueError(field string) error {
	if field == "slug" {
		return category.ErrSlugAlreadyExists
	}
	return category.ErrNameAlreadyExists
}
