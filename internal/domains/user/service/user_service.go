package service

import (
	"context"
	"time"

	"bookcatalog-backend/internal/domains/book"
	bookservice "bookcatalog-backend/internal/domains/book/service"
	"bookcatalog-backend/internal/domains/user"
	"bookcatalog-backend/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// UserService owns registration, login, token refresh and the profile
// endpoint. Favorites are hydrated through the book service so profile
// responses carry full book objects.
type UserService struct {
	repo  user.Repository
	books *bookservice.BookService
	jwt   *jwt.Manager
}

func NewUserService(repo user.Repository, books *bookservice.BookService, manager *jwt.Manager) *UserService {
	return &UserService{repo: repo, books: books, jwt: manager}
}

// Register creates an account and returns it. Tokens are issued by the
// login endpoint, not here. The password is stored only as a bcrypt
// hash; new accounts hold no staff or superuser rights.
func (s *UserService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Bio:          req.Bio,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	resp := u.ToResponse([]book.BookResponse{})
	return &resp, nil
}

// Login authenticates by email and password and issues a token pair.
func (s *UserService) Login(ctx context.Context, req user.LoginRequest) (*user.AuthResponse, error) {
	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		// A wrong email and a wrong password answer identically.
		return nil, user.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, user.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, user.ErrInvalidCredentials
	}

	favorites, err := s.books.Favorites(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return s.authResponse(u, favorites)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *UserService) Refresh(ctx context.Context, req user.RefreshRequest) (*user.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, user.ErrInvalidRefreshToken
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidRefreshToken
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, user.ErrInvalidRefreshToken
	}
	if !u.IsActive {
		return nil, user.ErrInvalidRefreshToken
	}

	return s.tokenPair(u)
}

// Profile returns the account with its favorites hydrated.
func (s *UserService) Profile(ctx context.Context, id uuid.UUID) (*user.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	favorites, err := s.books.Favorites(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := u.ToResponse(favorites)
	return &resp, nil
}

// UpdateProfile changes the mutable profile fields. Email cannot change
// through this path.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req user.UpdateProfileRequest) (*user.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Bio != nil {
		u.Bio = req.Bio
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	favorites, err := s.books.Favorites(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := u.ToResponse(favorites)
	return &resp, nil
}

func (s *UserService) authResponse(u *user.User, favorites []book.BookResponse) (*user.AuthResponse, error) {
	tokens, err := s.tokenPair(u)
	if err != nil {
		return nil, err
	}

	return &user.AuthResponse{
		User:   u.ToResponse(favorites),
		Tokens: *tokens,
	}, nil
}

func (s *UserService) tokenPair(u *user.User) (*user.TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(u.ID.String(), u.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwt.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, err
	}

	return &user.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
