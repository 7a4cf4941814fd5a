package service

import (
	"context"
	"fmt"
	"time"

	"bookcatalog-backend/internal/domains/category"
	"bookcatalog-backend/internal/shared/utils"
	"bookcatalog-backend/pkg/cache"
	"bookcatalog-backend/pkg/logger"

	"github.com/google/uuid"
)

const (
	categoryListTTL      = 5 * time.Minute
	categoryListCacheKey = "categories:list:%s:%s"
)

// CategoryService derives slugs at creation and keeps the cache honest.
// Deleting a category does not touch its books; the database clears their
// category reference.
type CategoryService struct {
	repo  category.Repository
	cache cache.Cache
}

func NewCategoryService(repo category.Repository, c cache.Cache) *CategoryService {
	return &CategoryService{repo: repo, cache: c}
}

func (s *CategoryService) List(ctx context.Context, req category.ListCategoriesRequest) ([]category.CategoryResponse, error) {
	key := fmt.Sprintf(categoryListCacheKey, req.Search, req.Ordering)

	var cached []category.CategoryResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	orderBy, desc := utils.ParseOrdering(req.Ordering, "name")
	categories, err := s.repo.List(ctx, category.ListFilter{
		Search:  req.Search,
		OrderBy: orderBy,
		Desc:    desc,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]category.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		responses = append(responses, cat.ToResponse())
	}

	if err := s.cache.Set(ctx, key, responses, categoryListTTL); err != nil {
		logger.Warn("failed to cache category list", map[string]interface{}{"error": err.Error()})
	}

	return responses, nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*category.CategoryResponse, error) {
	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := cat.ToResponse()
	return &resp, nil
}

func (s *CategoryService) Create(ctx context.Context, req category.CreateCategoryRequest) (*category.CategoryResponse, error) {
	cat := &category.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Slug:        utils.GenerateSlug(req.Name),
	}

	if err := s.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	resp := cat.ToResponse()
	return &resp, nil
}

// Replace overwrites name and description, PUT semantics. The slug keeps
// its creation-time value even when the name changes.
func (s *CategoryService) Replace(ctx context.Context, id uuid.UUID, req category.CreateCategoryRequest) (*category.CategoryResponse, error) {
	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cat.Name = req.Name
	cat.Description = req.Description

	if err := s.repo.Update(ctx, cat); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	resp := cat.ToResponse()
	return &resp, nil
}

// Patch applies only the fields present in the request.
func (s *CategoryService) Patch(ctx context.Context, id uuid.UUID, req category.PatchCategoryRequest) (*category.CategoryResponse, error) {
	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		cat.Name = *req.Name
	}
	if req.Description != nil {
		cat.Description = req.Description
	}

	if err := s.repo.Update(ctx, cat); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	resp := cat.ToResponse()
	return &resp, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	for _, pattern := range []string{"categories:*", "books:*"} {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			logger.Warn("cache invalidation failed", map[string]interface{}{
				"pattern": pattern,
				"error":   err.Error(),
			})
		}
	}
}
