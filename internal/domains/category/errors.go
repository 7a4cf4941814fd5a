package category

import (
	"errors"

	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrNameAlreadyExists = errors.New("category name already exists")
	ErrSlugAlreadyExists = errors.New("category slug already exists")
)

// HandleCategoryError renders known domain errors; returns true if err
// was handled (or was an unexpected error rendered as 500).
func HandleCategoryError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, ErrCategoryNotFound):
		response.NotFound(c, "the specified category does not exist")
	case errors.Is(err, ErrNameAlreadyExists):
		response.Conflict(c, "name", "a category with this name already exists")
	case errors.Is(err, ErrSlugAlreadyExists):
		response.Conflict(c, "slug", "a category with this slug already exists")
	default:
		logger.Error("category operation failed", err)
		response.InternalServerError(c, "internal server error")
	}

	return true
}
