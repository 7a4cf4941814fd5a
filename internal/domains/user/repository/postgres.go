package repository

import (
	"context"
	"fmt"

	"bookcatalog-backend/internal/domains/user"
	"bookcatalog-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, username, email, first_name, last_name, bio,
	password_hash, is_active, is_staff, is_superuser, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, username, email, first_name, last_name, bio,
			password_hash, is_active, is_staff, is_superuser, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.Bio,
		u.PasswordHash, u.IsActive, u.IsStaff, u.IsSuperuser, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return mapUserWriteError(err, "insert user")
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.getOne(ctx, query, id)
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return r.getOne(ctx, query, email)
}

func (r *postgresRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET username = $1, first_name = $2, last_name = $3, bio = $4,
			password_hash = $5, is_active = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := r.pool.Exec(ctx, query,
		u.Username, u.FirstName, u.LastName, u.Bio,
		u.PasswordHash, u.IsActive, u.UpdatedAt, u.ID,
	)
	if err != nil {
		return mapUserWriteError(err, "update user")
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *postgresRepository) getOne(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	var u user.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Bio,
		&u.PasswordHash, &u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

func mapUserWriteError(err error, op string) error {
	if field, ok := database.UniqueViolationField(err); ok {
		switch field {
		case "email":
			return user.ErrEmailAlreadyExists
		case "username":
			return user.ErrUsernameAlreadyExists
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
