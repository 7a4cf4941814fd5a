package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookcatalog-backend/internal/domains/book"
	"bookcatalog-backend/internal/infrastructure/storage"
	"bookcatalog-backend/internal/shared/utils"
	"bookcatalog-backend/pkg/cache"
	"bookcatalog-backend/pkg/logger"

	"github.com/google/uuid"
)

const (
	bookListTTL        = 5 * time.Minute
	bookDetailTTL      = 10 * time.Minute
	bookDetailCacheKey = "books:detail:%s"

	// isbnRetryLimit bounds re-draws when an auto-generated ISBN collides
	// with a stored one.
	isbnRetryLimit = 5

	dateLayout = "2006-01-02"
)

// CoverUpload is a raw cover image as received from the client.
type CoverUpload struct {
	Data        []byte
	ContentType string
}

// BookService owns the book write path: reference resolution, slug and
// ISBN derivation, cover processing and cache upkeep.
type BookService struct {
	repo      book.Repository
	cache     cache.Cache
	storage   *storage.MinIOStorage
	processor *storage.ImageProcessor
}

func NewBookService(repo book.Repository, c cache.Cache, st *storage.MinIOStorage, proc *storage.ImageProcessor) *BookService {
	return &BookService{repo: repo, cache: c, storage: st, processor: proc}
}

func (s *BookService) List(ctx context.Context, req book.ListBooksRequest) ([]book.BookResponse, error) {
	key := req.CacheKey()

	var cached []book.BookResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	filter, err := listFilter(req)
	if err != nil {
		return nil, err
	}

	books, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]book.BookResponse, 0, len(books))
	for i := range books {
		responses = append(responses, books[i].ToResponse())
	}

	if err := s.cache.Set(ctx, key, responses, bookListTTL); err != nil {
		logger.Warn("failed to cache book list", map[string]interface{}{"error": err.Error()})
	}

	return responses, nil
}

func (s *BookService) Get(ctx context.Context, id uuid.UUID) (*book.BookResponse, error) {
	key := fmt.Sprintf(bookDetailCacheKey, id)

	var cached book.BookResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := b.ToResponse()
	if err := s.cache.Set(ctx, key, resp, bookDetailTTL); err != nil {
		logger.Warn("failed to cache book", map[string]interface{}{"error": err.Error()})
	}

	return &resp, nil
}

func (s *BookService) Create(ctx context.Context, req book.CreateBookRequest, cover *CoverUpload) (*book.BookResponse, error) {
	categoryID, authorIDs, publishedDate, err := parseWriteRefs(req.CategoryID, req.AuthorIDs, req.PublishedDate)
	if err != nil {
		return nil, err
	}
	if err := s.resolveRefs(ctx, categoryID, authorIDs); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b := &book.Book{
		ID:            uuid.New(),
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    categoryID,
		PublishedDate: publishedDate,
		Slug:          utils.GenerateSlug(req.Title),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if cover != nil {
		url, err := s.uploadCover(ctx, b.ID, cover)
		if err != nil {
			return nil, err
		}
		b.CoverImage = &url
	}

	autogen := req.ISBN == nil
	if !autogen {
		b.ISBN = *req.ISBN
	}

	for attempt := 0; ; attempt++ {
		if autogen {
			b.ISBN = book.GenerateISBN13()
		}
		err = s.repo.Create(ctx, b, authorIDs)
		if err == nil {
			break
		}
		if autogen && errors.Is(err, book.ErrISBNAlreadyExists) && attempt < isbnRetryLimit {
			continue
		}
		if cover != nil {
			s.removeCover(ctx, b.ID)
		}
		return nil, err
	}

	s.invalidate(ctx)
	return s.fresh(ctx, b.ID)
}

// Replace overwrites every mutable field, PUT semantics. Slug and
// created_at keep their creation-time values; omitting isbn keeps the
// stored one.
func (s *BookService) Replace(ctx context.Context, id uuid.UUID, req book.CreateBookRequest, cover *CoverUpload) (*book.BookResponse, error) {
	categoryID, authorIDs, publishedDate, err := parseWriteRefs(req.CategoryID, req.AuthorIDs, req.PublishedDate)
	if err != nil {
		return nil, err
	}
	if err := s.resolveRefs(ctx, categoryID, authorIDs); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Title = req.Title
	b.Description = req.Description
	b.CategoryID = categoryID
	b.PublishedDate = publishedDate
	if req.ISBN != nil {
		b.ISBN = *req.ISBN
	}
	b.UpdatedAt = time.Now().UTC()

	if cover != nil {
		url, err := s.uploadCover(ctx, b.ID, cover)
		if err != nil {
			return nil, err
		}
		b.CoverImage = &url
	}

	if err := s.repo.Update(ctx, b, authorIDs); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return s.fresh(ctx, b.ID)
}

// Patch applies only the fields present in the request. Author links are
// replaced only when author_ids is present; an empty list clears them.
func (s *BookService) Patch(ctx context.Context, id uuid.UUID, req book.PatchBookRequest, cover *CoverUpload) (*book.BookResponse, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var categoryID *uuid.UUID
	if req.CategoryID != nil {
		parsed, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, &book.UnknownIDError{Field: "category_id", ID: *req.CategoryID}
		}
		categoryID = &parsed
		b.CategoryID = categoryID
	}

	var authorIDs []uuid.UUID
	if req.AuthorIDs != nil {
		authorIDs = make([]uuid.UUID, 0, len(*req.AuthorIDs))
		for _, raw := range *req.AuthorIDs {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				return nil, &book.UnknownIDError{Field: "author_ids", ID: raw}
			}
			authorIDs = append(authorIDs, parsed)
		}
	}

	if err := s.resolveRefs(ctx, categoryID, authorIDs); err != nil {
		return nil, err
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Description != nil {
		b.Description = req.Description
	}
	if req.PublishedDate != nil {
		parsed, err := time.Parse(dateLayout, *req.PublishedDate)
		if err != nil {
			return nil, &book.UnknownIDError{Field: "published_date", ID: *req.PublishedDate}
		}
		b.PublishedDate = &parsed
	}
	if req.ISBN != nil {
		b.ISBN = *req.ISBN
	}
	b.UpdatedAt = time.Now().UTC()

	if cover != nil {
		url, err := s.uploadCover(ctx, b.ID, cover)
		if err != nil {
			return nil, err
		}
		b.CoverImage = &url
	}

	if err := s.repo.Update(ctx, b, authorIDs); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return s.fresh(ctx, b.ID)
}

func (s *BookService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.removeCover(ctx, id)
	s.invalidate(ctx)
	return nil
}

// ToggleFavorite flips the favorite state and reports the resulting
// transition as "added" or "removed".
func (s *BookService) ToggleFavorite(ctx context.Context, userID, bookID uuid.UUID) (string, error) {
	added, err := s.repo.ToggleFavorite(ctx, userID, bookID)
	if err != nil {
		return "", err
	}
	if added {
		return "added", nil
	}
	return "removed", nil
}

// Favorites returns the user's favorited books, hydrated the same way as
// the collection endpoint.
func (s *BookService) Favorites(ctx context.Context, userID uuid.UUID) ([]book.BookResponse, error) {
	books, err := s.repo.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]book.BookResponse, 0, len(books))
	for i := range books {
		responses = append(responses, books[i].ToResponse())
	}
	return responses, nil
}

// resolveRefs verifies the referenced category and authors exist before
// any write is attempted.
func (s *BookService) resolveRefs(ctx context.Context, categoryID *uuid.UUID, authorIDs []uuid.UUID) error {
	if categoryID != nil {
		exists, err := s.repo.CategoryExists(ctx, *categoryID)
		if err != nil {
			return err
		}
		if !exists {
			return &book.UnknownIDError{Field: "category_id", ID: categoryID.String()}
		}
	}

	if len(authorIDs) > 0 {
		missing, err := s.repo.MissingAuthors(ctx, authorIDs)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return &book.UnknownIDError{Field: "author_ids", ID: missing[0].String()}
		}
	}

	return nil
}

func (s *BookService) uploadCover(ctx context.Context, bookID uuid.UUID, cover *CoverUpload) (string, error) {
	if err := s.processor.ValidateImage(cover.Data); err != nil {
		return "", &book.InvalidCoverError{Reason: err.Error()}
	}

	processed, thumbnail, err := s.processor.ProcessCover(cover.Data)
	if err != nil {
		return "", &book.InvalidCoverError{Reason: err.Error()}
	}

	url, err := s.storage.Upload(ctx, coverKey(bookID), processed, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("cover upload failed: %w", err)
	}
	if _, err := s.storage.Upload(ctx, thumbKey(bookID), thumbnail, "image/jpeg"); err != nil {
		return "", fmt.Errorf("thumbnail upload failed: %w", err)
	}

	return url, nil
}

func (s *BookService) removeCover(ctx context.Context, bookID uuid.UUID) {
	if err := s.storage.DeleteByPrefix(ctx, fmt.Sprintf("book/covers/%s", bookID)); err != nil {
		logger.Warn("failed to remove cover blobs", map[string]interface{}{
			"book_id": bookID.String(),
			"error":   err.Error(),
		})
	}
}

func (s *BookService) fresh(ctx context.Context, id uuid.UUID) (*book.BookResponse, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := b.ToResponse()
	return &resp, nil
}

func (s *BookService) invalidate(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "books:*"); err != nil {
		logger.Warn("cache invalidation failed", map[string]interface{}{
			"pattern": "books:*",
			"error":   err.Error(),
		})
	}
}

func coverKey(bookID uuid.UUID) string {
	return fmt.Sprintf("book/covers/%s.jpg", bookID)
}

func thumbKey(bookID uuid.UUID) string {
	return fmt.Sprintf("book/covers/%s_thumb.jpg", bookID)
}

func parseWriteRefs(categoryID *string, rawAuthorIDs []string, publishedDate *string) (*uuid.UUID, []uuid.UUID, *time.Time, error) {
	var catID *uuid.UUID
	if categoryID != nil {
		parsed, err := uuid.Parse(*categoryID)
		if err != nil {
			return nil, nil, nil, &book.UnknownIDError{Field: "category_id", ID: *categoryID}
		}
		catID = &parsed
	}

	authorIDs := make([]uuid.UUID, 0, len(rawAuthorIDs))
	for _, raw := range rawAuthorIDs {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return nil, nil, nil, &book.UnknownIDError{Field: "author_ids", ID: raw}
		}
		authorIDs = append(authorIDs, parsed)
	}

	var published *time.Time
	if publishedDate != nil {
		parsed, err := time.Parse(dateLayout, *publishedDate)
		if err != nil {
			return nil, nil, nil, &book.UnknownIDError{Field: "published_date", ID: *publishedDate}
		}
		published = &parsed
	}

	return catID, authorIDs, published, nil
}

func listFilter(req book.ListBooksRequest) (book.ListFilter, error) {
	orderBy, desc := utils.ParseOrdering(req.Ordering, "title")
	filter := book.ListFilter{
		Search:  req.Search,
		OrderBy: orderBy,
		Desc:    desc,
	}

	if req.Category != "" {
		id, err := uuid.Parse(req.Category)
		if err != nil {
			return filter, &book.UnknownIDError{Field: "category", ID: req.Category}
		}
		filter.CategoryID = &id
	}
	if req.Author != "" {
		id, err := uuid.Parse(req.Author)
		if err != nil {
			return filter, &book.UnknownIDError{Field: "author", ID: req.Author}
		}
		filter.AuthorID = &id
	}
	if req.PublishedDate != "" {
		d, err := time.Parse(dateLayout, req.PublishedDate)
		if err != nil {
			return filter, &book.UnknownIDError{Field: "published_date", ID: req.PublishedDate}
		}
		filter.PublishedDate = &d
	}

	return filter, nil
}
