package book

import (
	"errors"
	"fmt"

	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrISBNAlreadyExists = errors.New("isbn already exists")
	ErrSlugAlreadyExists = errors.New("book slug already exists")
)

// UnknownIDError reports a write payload referencing an entity that does
// not exist, e.g. a category_id pointing nowhere.
type UnknownIDError struct {
	Field string
	ID    string
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("unknown %s: %s", e.Field, e.ID)
}

// InvalidCoverError reports a rejected cover upload.
type InvalidCoverError struct {
	Reason string
}

func (e *InvalidCoverError) Error() string {
	return "invalid cover image: " + e.Reason
}

// HandleBookError renders known domain errors; returns true if err was
// handled (or was an unexpected error rendered as 500).
func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var unknownID *UnknownIDError
	var invalidCover *InvalidCoverError

	switch {
	case errors.Is(err, ErrBookNotFound):
		response.NotFound(c, "the specified book does not exist")
	case errors.Is(err, ErrISBNAlreadyExists):
		response.Conflict(c, "isbn", "a book with this isbn already exists")
	case errors.Is(err, ErrSlugAlreadyExists):
		response.Conflict(c, "slug", "a book with this slug already exists")
	case errors.As(err, &unknownID):
		response.ValidationFailed(c, gin.H{unknownID.Field: unknownID.Error()})
	case errors.As(err, &invalidCover):
		response.ValidationFailed(c, gin.H{"cover_image": invalidCover.Reason})
	default:
		logger.Error("book operation failed", err)
		response.InternalServerError(c, "internal server error")
	}

	return true
}
