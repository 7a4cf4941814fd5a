package user

import (
	"time"

	"bookcatalog-backend/internal/domains/book"

	"github.com/google/uuid"
)

// User is the account entity, mapped 1:1 to the users table. Favorites
// live in the user_favorites relation and are hydrated on demand.
type User struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Bio          *string   `db:"bio"`
	PasswordHash string    `db:"password_hash"`
	IsActive     bool      `db:"is_active"`
	IsStaff      bool      `db:"is_staff"`
	IsSuperuser  bool      `db:"is_superuser"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// UserResponse is the wire representation. The password hash never
// leaves the service; favorites render as full nested book objects.
type UserResponse struct {
	ID        uuid.UUID           `json:"id"`
	Username  string              `json:"username"`
	Email     string              `json:"email"`
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	Bio       *string             `json:"bio"`
	Favorites []book.BookResponse `json:"favorites"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func (u *User) ToResponse(favorites []book.BookResponse) UserResponse {
	if favorites == nil {
		favorites = []book.BookResponse{}
	}
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Favorites: favorites,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
