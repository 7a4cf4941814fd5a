package service

import (
	"context"
	"fmt"
	"time"

	"bookcatalog-backend/internal/domains/author"
	"bookcatalog-backend/internal/shared/utils"
	"bookcatalog-backend/pkg/cache"
	"bookcatalog-backend/pkg/logger"

	"github.com/google/uuid"
)

const (
	authorListTTL      = 5 * time.Minute
	authorListCacheKey = "authors:list:%s:%s"
)

// AuthorService wraps author persistence with caching and invalidation.
// Book payloads embed author names, so author writes also flush the book
// cache namespace.
type AuthorService struct {
	repo  author.Repository
	cache cache.Cache
}

func NewAuthorService(repo author.Repository, c cache.Cache) *AuthorService {
	return &AuthorService{repo: repo, cache: c}
}

func (s *AuthorService) List(ctx context.Context, req author.ListAuthorsRequest) ([]author.AuthorResponse, error) {
	key := fmt.Sprintf(authorListCacheKey, req.Search, req.Ordering)

	var cached []author.AuthorResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	orderBy, desc := utils.ParseOrdering(req.Ordering, "name")
	authors, err := s.repo.List(ctx, author.ListFilter{
		Search:  req.Search,
		OrderBy: orderBy,
		Desc:    desc,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]author.AuthorResponse, 0, len(authors))
	for _, a := range authors {
		responses = append(responses, a.ToResponse())
	}

	if err := s.cache.Set(ctx, key, responses, authorListTTL); err != nil {
		logger.Warn("failed to cache author list", map[string]interface{}{"error": err.Error()})
	}

	return responses, nil
}

func (s *AuthorService) Get(ctx context.Context, id uuid.UUID) (*author.AuthorResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := a.ToResponse()
	return &resp, nil
}

func (s *AuthorService) Create(ctx context.Context, req author.CreateAuthorRequest) (*author.AuthorResponse, error) {
	a := &author.Author{
		ID:   uuid.New(),
		Name: req.Name,
		Bio:  req.Bio,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	resp := a.ToResponse()
	return &resp, nil
}

// Replace overwrites every mutable field, PUT semantics.
func (s *AuthorService) Replace(ctx context.Context, id uuid.UUID, req author.CreateAuthorRequest) (*author.AuthorResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Name = req.Name
	a.Bio = req.Bio

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	resp := a.ToResponse()
	return &resp, nil
}

// Patch applies only the fields present in the request.
func (s *AuthorService) Patch(ctx context.Context, id uuid.UUID, req author.PatchAuthorRequest) (*author.AuthorResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Bio != nil {
		a.Bio = req.Bio
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	resp := a.ToResponse()
	return &resp, nil
}

func (s *AuthorService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *AuthorService) invalidate(ctx context.Context) {
	for _, pattern := range []string{"authors:*", "books:*"} {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			logger.Warn("cache invalidation failed", map[string]interface{}{
				"pattern": pattern,
				"error":   err.Error(),
			})
		}
	}
}
