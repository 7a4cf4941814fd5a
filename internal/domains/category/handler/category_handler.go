package handler

import (
	"net/http"

	"bookcatalog-backend/internal/domains/category"
	"bookcatalog-backend/internal/domains/category/service"
	"bookcatalog-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoryHandler struct {
	service *service.CategoryService
}

func NewCategoryHandler(s *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

// List handles GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	var req category.ListCategoriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	categories, err := h.service.List(c.Request.Context(), req)
	if category.HandleCategoryError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, categories)
}

// Get handles GET /api/v1/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	cat, err := h.service.Get(c.Request.Context(), id)
	if category.HandleCategoryError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, cat)
}

// Create handles POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	cat, err := h.service.Create(c.Request.Context(), req)
	if category.HandleCategoryError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, cat)
}

// Replace handles PUT /api/v1/categories/:id
func (h *CategoryHandler) Replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req category.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	cat, err := h.service.Replace(c.Request.Context(), id, req)
	if category.HandleCategoryError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, cat)
}

// Patch handles PATCH /api/v1/categories/:id
func (h *CategoryHandler) Patch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req category.PatchCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	cat, err := h.service.Patch(c.Request.Context(), id, req)
	if category.HandleCategoryError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, cat)
}

// Delete handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := h.service.Delete(c.Request.Context(), id)
	if category.HandleCategoryError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return uuid.Nil, false
	}
	return id, true
}
