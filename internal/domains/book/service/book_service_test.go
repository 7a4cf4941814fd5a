package service

import (
	"context"
	"testing"
	"time"

	"bookcatalog-backend/internal/domains/book"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory book.Repository good enough to drive the
// service's derivation and toggle logic.
type fakeRepo struct {
	books      map[uuid.UUID]*book.Book
	bookOrder  []uuid.UUID
	links      map[uuid.UUID][]uuid.UUID
	favorites  map[uuid.UUID]map[uuid.UUID]bool
	categories map[uuid.UUID]bool
	authors    map[uuid.UUID]bool

	// isbnConflicts makes the next N creates fail as if the drawn ISBN
	// already existed.
	isbnConflicts int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		books:      map[uuid.UUID]*book.Book{},
		links:      map[uuid.UUID][]uuid.UUID{},
		favorites:  map[uuid.UUID]map[uuid.UUID]bool{},
		categories: map[uuid.UUID]bool{},
		authors:    map[uuid.UUID]bool{},
	}
}

func (r *fakeRepo) List(ctx context.Context, filter book.ListFilter) ([]book.Book, error) {
	out := []book.Book{}
	for _, id := range r.bookOrder {
		out = append(out, *r.books[id])
	}
	return out, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) Create(ctx context.Context, b *book.Book, authorIDs []uuid.UUID) error {
	if r.isbnConflicts > 0 {
		r.isbnConflicts--
		return book.ErrISBNAlreadyExists
	}
	for _, existing := range r.books {
		if existing.Slug == b.Slug {
			return book.ErrSlugAlreadyExists
		}
		if existing.ISBN == b.ISBN {
			return book.ErrISBNAlreadyExists
		}
	}
	copied := *b
	r.books[b.ID] = &copied
	r.bookOrder = append(r.bookOrder, b.ID)
	r.links[b.ID] = authorIDs
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, b *book.Book, authorIDs []uuid.UUID) error {
	if _, ok := r.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	copied := *b
	r.books[b.ID] = &copied
	if authorIDs != nil {
		r.links[b.ID] = authorIDs
	}
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *fakeRepo) MissingAuthors(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	var missing []uuid.UUID
	for _, id := range ids {
		if !r.authors[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r *fakeRepo) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.categories[id], nil
}

func (r *fakeRepo) ToggleFavorite(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	if _, ok := r.books[bookID]; !ok {
		return false, book.ErrBookNotFound
	}
	if r.favorites[userID] == nil {
		r.favorites[userID] = map[uuid.UUID]bool{}
	}
	if r.favorites[userID][bookID] {
		delete(r.favorites[userID], bookID)
		return false, nil
	}
	r.favorites[userID][bookID] = true
	return true, nil
}

func (r *fakeRepo) ListFavorites(ctx context.Context, userID uuid.UUID) ([]book.Book, error) {
	out := []book.Book{}
	for id := range r.favorites[userID] {
		out = append(out, *r.books[id])
	}
	return out, nil
}

// noopCache never hits and swallows writes.
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

func newTestService(repo *fakeRepo) *BookService {
	return NewBookService(repo, noopCache{}, nil, nil)
}

func TestCreateDerivesSlugAndISBN(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	resp, err := svc.Create(context.Background(), book.CreateBookRequest{Title: "Dune"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "dune", resp.Slug)
	assert.True(t, book.ValidISBN13(resp.ISBN), "generated isbn %q", resp.ISBN)
	assert.Equal(t, resp.CreatedAt, resp.UpdatedAt)
	assert.Empty(t, resp.Authors)
	assert.Nil(t, resp.Category)
}

func TestCreateKeepsClientISBN(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	isbn := "9780306406157"
	resp, err := svc.Create(context.Background(), book.CreateBookRequest{Title: "Dune", ISBN: &isbn}, nil)
	require.NoError(t, err)
	assert.Equal(t, isbn, resp.ISBN)
}

func TestCreateRetriesISBNCollision(t *testing.T) {
	repo := newFakeRepo()
	repo.isbnConflicts = 2
	svc := newTestService(repo)

	resp, err := svc.Create(context.Background(), book.CreateBookRequest{Title: "Dune"}, nil)
	require.NoError(t, err)
	assert.True(t, book.ValidISBN13(resp.ISBN))
}

func TestCreateDoesNotRetryClientISBNCollision(t *testing.T) {
	repo := newFakeRepo()
	repo.isbnConflicts = 1
	svc := newTestService(repo)

	isbn := "9780306406157"
	_, err := svc.Create(context.Background(), book.CreateBookRequest{Title: "Dune", ISBN: &isbn}, nil)
	assert.ErrorIs(t, err, book.ErrISBNAlreadyExists)
}

func TestCreateDuplicateTitleConflictsOnSlug(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), book.CreateBookRequest{Title: "Dune"}, nil)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), book.CreateBookRequest{Title: "Dune"}, nil)
	assert.ErrorIs(t, err, book.ErrSlugAlreadyExists)
}

func TestCreateUnknownReferences(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	catID := uuid.NewString()
	_, err := svc.Create(context.Background(), book.CreateBookRequest{
		Title:      "Dune",
		CategoryID: &catID,
	}, nil)

	var unknownID *book.UnknownIDError
	require.ErrorAs(t, err, &unknownID)
	assert.Equal(t, "category_id", unknownID.Field)
	assert.Equal(t, catID, unknownID.ID)

	authorID := uuid.NewString()
	_, err = svc.Create(context.Background(), book.CreateBookRequest{
		Title:     "Dune",
		AuthorIDs: []string{authorID},
	}, nil)

	require.ErrorAs(t, err, &unknownID)
	assert.Equal(t, "author_ids", unknownID.Field)
	assert.Equal(t, authorID, unknownID.ID)
}

func TestPatchBumpsUpdatedAtOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), book.CreateBookRequest{Title: "Dune"}, nil)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	title := "Dune Messiah"
	patched, err := svc.Patch(context.Background(), created.ID, book.PatchBookRequest{Title: &title}, nil)
	require.NoError(t, err)

	assert.Equal(t, title, patched.Title)
	assert.Equal(t, created.Slug, patched.Slug, "slug keeps its creation-time value")
	assert.True(t, patched.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, patched.UpdatedAt.After(created.UpdatedAt))
}

func TestToggleFavoriteFlipsState(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), book.CreateBookRequest{Title: "Dune"}, nil)
	require.NoError(t, err)

	userID := uuid.New()

	status, err := svc.ToggleFavorite(context.Background(), userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "added", status)

	status, err = svc.ToggleFavorite(context.Background(), userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "removed", status)

	status, err = svc.ToggleFavorite(context.Background(), userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "added", status)
}

func TestCoverKeyScheme(t *testing.T) {
	id := uuid.MustParse("a2b5c1de-3f41-4a6b-9c8d-0e1f2a3b4c5d")

	assert.Equal(t, "book/covers/"+id.String()+".jpg", coverKey(id))
	assert.Equal(t, "book/covers/"+id.String()+"_thumb.jpg", thumbKey(id))
}

func TestToggleFavoriteUnknownBook(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.ToggleFavorite(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}
