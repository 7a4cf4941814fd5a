package service

import (
	"context"
	"testing"
	"time"

	"bookcatalog-backend/internal/domains/category"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	categories map[uuid.UUID]*category.Category
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{categories: map[uuid.UUID]*category.Category{}}
}

func (r *fakeRepo) List(ctx context.Context, filter category.ListFilter) ([]category.Category, error) {
	out := []category.Category{}
	for _, cat := range r.categories {
		out = append(out, *cat)
	}
	return out, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	cat, ok := r.categories[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	copied := *cat
	return &copied, nil
}

func (r *fakeRepo) Create(ctx context.Context, cat *category.Category) error {
	for _, existing := range r.categories {
		if existing.Name == cat.Name {
			return category.ErrNameAlreadyExists
		}
		if existing.Slug == cat.Slug {
			return category.ErrSlugAlreadyExists
		}
	}
	copied := *cat
	r.categories[cat.ID] = &copied
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, cat *category.Category) error {
	if _, ok := r.categories[cat.ID]; !ok {
		return category.ErrCategoryNotFound
	}
	copied := *cat
	r.categories[cat.ID] = &copied
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.categories[id]; !ok {
		return category.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}
func (noopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (noopCache) Delete(ctx context.Context, keys ...string) error        { return nil }
func (noopCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (noopCache) Ping(ctx context.Context) error                          { return nil }

func TestCreateDerivesSlug(t *testing.T) {
	svc := NewCategoryService(newFakeRepo(), noopCache{})

	resp, err := svc.Create(context.Background(), category.CreateCategoryRequest{Name: "Science Fiction"})
	require.NoError(t, err)
	assert.Equal(t, "science-fiction", resp.Slug)
}

func TestCreateDuplicateNameConflicts(t *testing.T) {
	svc := NewCategoryService(newFakeRepo(), noopCache{})

	_, err := svc.Create(context.Background(), category.CreateCategoryRequest{Name: "Fiction"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), category.CreateCategoryRequest{Name: "Fiction"})
	assert.ErrorIs(t, err, category.ErrNameAlreadyExists)
}

func TestRenameKeepsSlug(t *testing.T) {
	svc := NewCategoryService(newFakeRepo(), noopCache{})

	created, err := svc.Create(context.Background(), category.CreateCategoryRequest{Name: "Fiction"})
	require.NoError(t, err)

	name := "Literary Fiction"
	patched, err := svc.Patch(context.Background(), created.ID, category.PatchCategoryRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, name, patched.Name)
	assert.Equal(t, created.Slug, patched.Slug)
}

func TestDeleteUnknownCategory(t *testing.T) {
	svc := NewCategoryService(newFakeRepo(), noopCache{})

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
}
