package handler

import (
	"net/http"

	"bookcatalog-backend/internal/domains/author"
	"bookcatalog-backend/internal/domains/author/service"
	"bookcatalog-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthorHandler struct {
	service *service.AuthorService
}

func NewAuthorHandler(s *service.AuthorService) *AuthorHandler {
	return &AuthorHandler{service: s}
}

// List handles GET /api/v1/authors
func (h *AuthorHandler) List(c *gin.Context) {
	var req author.ListAuthorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	authors, err := h.service.List(c.Request.Context(), req)
	if author.HandleAuthorError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, authors)
}

// Get handles GET /api/v1/authors/:id
func (h *AuthorHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	a, err := h.service.Get(c.Request.Context(), id)
	if author.HandleAuthorError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, a)
}

// Create handles POST /api/v1/authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if author.HandleAuthorError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, a)
}

// Replace handles PUT /api/v1/authors/:id
func (h *AuthorHandler) Replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req author.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	a, err := h.service.Replace(c.Request.Context(), id, req)
	if author.HandleAuthorError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, a)
}

// Patch handles PATCH /api/v1/authors/:id
func (h *AuthorHandler) Patch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req author.PatchAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	a, err := h.service.Patch(c.Request.Context(), id, req)
	if author.HandleAuthorError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, a)
}

// Delete handles DELETE /api/v1/authors/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := h.service.Delete(c.Request.Context(), id)
	if author.HandleAuthorError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return uuid.Nil, false
	}
	return id, true
}
