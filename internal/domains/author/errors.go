package author

import (
	"errors"

	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

var (
	ErrAuthorNotFound    = errors.New("author not found")
	ErrNameAlreadyExists = errors.New("author name already exists")
)

// HandleAuthorError renders known domain errors; returns true if err was
// handled (or was an unexpected error rendered as 500).
func HandleAuthorError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, ErrAuthorNotFound):
		response.NotFound(c, "the specified author does not exist")
	case errors.Is(err, ErrNameAlreadyExists):
		response.Conflict(c, "name", "an author with this name already exists")
	default:
		logger.Error("author operation failed", err)
		response.InternalServerError(c, "internal server error")
	}

	return true
}
