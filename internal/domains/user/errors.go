package user

import (
	"errors"

	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidRefreshToken   = errors.New("invalid refresh token")
)

// HandleUserError renders known domain errors; returns true if err was
// handled (or was an unexpected error rendered as 500).
func HandleUserError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(c, "the specified user does not exist")
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Conflict(c, "email", "an account with this email already exists")
	case errors.Is(err, ErrUsernameAlreadyExists):
		response.Conflict(c, "username", "an account with this username already exists")
	case errors.Is(err, ErrInvalidCredentials):
		response.Unauthorized(c, "invalid email or password")
	case errors.Is(err, ErrInvalidRefreshToken):
		response.Unauthorized(c, "invalid or expired refresh token")
	default:
		logger.Error("user operation failed", err)
		response.InternalServerError(c, "internal server error")
	}

	return true
}
