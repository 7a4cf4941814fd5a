package handler

import (
	"io"
	"net/http"
	"strings"

	"bookcatalog-backend/internal/domains/book"
	"bookcatalog-backend/internal/domains/book/service"
	"bookcatalog-backend/internal/shared/middleware"
	"bookcatalog-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookHandler struct {
	service *service.BookService
}

func NewBookHandler(s *service.BookService) *BookHandler {
	return &BookHandler{service: s}
}

// List handles GET /api/v1/books
func (h *BookHandler) List(c *gin.Context) {
	var req book.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	books, err := h.service.List(c.Request.Context(), req)
	if book.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, books)
}

// Get handles GET /api/v1/books/:id
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), id)
	if book.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, b)
}

// Create handles POST /api/v1/books. The payload is JSON, or multipart
// form data when a cover image rides along.
func (h *BookHandler) Create(c *gin.Context) {
	var req book.CreateBookRequest
	cover, ok := bindWrite(c, &req)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), req, cover)
	if book.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, b)
}

// Replace handles PUT /api/v1/books/:id
func (h *BookHandler) Replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req book.CreateBookRequest
	cover, ok := bindWrite(c, &req)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	b, err := h.service.Replace(c.Request.Context(), id, req, cover)
	if book.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, b)
}

// Patch handles PATCH /api/v1/books/:id
func (h *BookHandler) Patch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req book.PatchBookRequest
	cover, ok := bindWrite(c, &req)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	b, err := h.service.Patch(c.Request.Context(), id, req, cover)
	if book.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, b)
}

// Delete handles DELETE /api/v1/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := h.service.Delete(c.Request.Context(), id)
	if book.HandleBookError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleFavorite handles POST /api/v1/books/:id/toggle-favorite
func (h *BookHandler) ToggleFavorite(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	status, err := h.service.ToggleFavorite(c.Request.Context(), userID, id)
	if book.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": status})
}

// bindWrite binds a JSON or multipart write payload and extracts the
// optional cover image from the multipart variant.
func bindWrite(c *gin.Context, req interface{}) (*service.CoverUpload, bool) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBindJSON(req); err != nil {
			response.BadRequest(c, "invalid request body")
			return nil, false
		}
		return nil, true
	}

	if err := c.ShouldBind(req); err != nil {
		response.BadRequest(c, "invalid form data")
		return nil, false
	}

	fileHeader, err := c.FormFile("cover_image")
	if err == http.ErrMissingFile || fileHeader == nil {
		return nil, true
	}
	if err != nil {
		response.BadRequest(c, "invalid cover image upload")
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot read cover image")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "cannot read cover image")
		return nil, false
	}

	return &service.CoverUpload{
		Data:        data,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return uuid.Nil, false
	}
	return id, true
}
