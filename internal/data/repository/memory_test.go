package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"book-review/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedUser(t *testing.T, repo *Repository, username string) *entity.User {
	t.Helper()
	u := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: time.Now().UTC()},
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         entity.RoleUser,
	}
	require.NoError(t, repo.User.Create(context.Background(), u))
	return u
}

func seedBook(t *testing.T, repo *Repository, owner *entity.User, title string) *entity.Book {
	t.Helper()
	b := &entity.Book{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now().UTC()},
		Title:       title,
		Author:      "Author",
		Description: "Description",
		AddedBy:     owner.ID,
	}
	require.NoError(t, repo.Book.Create(context.Background(), b))
	return b
}

func seedReview(t *testing.T, repo *Repository, book *entity.Book, author *entity.User, at time.Time) *entity.Review {
	t.Helper()
	r := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: at},
		BookID:     book.ID,
		UserID:     author.ID,
		Rating:     4,
		Comment:    "good",
	}
	require.NoError(t, repo.Review.Create(context.Background(), r))
	return r
}

func TestMemoryUserUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())
	alice := seedUser(t, repo, "alice")

	sameEmail := &entity.User{Base: entity.Base{ID: uuid.New()}, Username: "other", Email: alice.Email}
	assert.ErrorIs(t, repo.User.Create(ctx, sameEmail), ErrConflict)

	sameName := &entity.User{Base: entity.Base{ID: uuid.New()}, Username: "alice", Email: "new@example.com"}
	assert.ErrorIs(t, repo.User.Create(ctx, sameName), ErrConflict)

	found, err := repo.User.FindByEmailOrUsername(ctx, "nobody@example.com", "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	_, err = repo.User.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUpdateRole(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())
	bob := seedUser(t, repo, "bob")

	updated, err := repo.User.UpdateRole(ctx, bob.ID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, updated.Role)

	reloaded, err := repo.User.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, reloaded.Role)

	_, err = repo.User.UpdateRole(ctx, uuid.New(), entity.RoleAdmin)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryBookDetail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())
	owner := seedUser(t, repo, "owner")
	reader := seedUser(t, repo, "reader")
	book := seedBook(t, repo, owner, "Dune")

	base := time.Now().UTC()
	later := seedReview(t, repo, book, reader, base.Add(time.Minute))
	earlier := seedReview(t, repo, book, owner, base)

	detail, err := repo.Book.FindDetail(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", detail.Title)
	assert.Equal(t, owner.Username, detail.Owner.Username)

	require.Len(t, detail.Reviews, 2)
	assert.Equal(t, earlier.ID, detail.Reviews[0].ID)
	assert.Equal(t, owner.ID, detail.Reviews[0].Author.ID)
	assert.Equal(t, later.ID, detail.Reviews[1].ID)
	assert.Equal(t, reader.Username, detail.Reviews[1].Author.Username)

	_, err = repo.Book.FindDetail(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryFindAllDetailsOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())
	owner := seedUser(t, repo, "owner")

	titles := []string{"First", "Second", "Third"}
	for _, title := range titles {
		seedBook(t, repo, owner, title)
	}

	details, err := repo.Book.FindAllDetails(ctx)
	require.NoError(t, err)
	require.Len(t, details, len(titles))
	for i, d := range details {
		assert.Equal(t, titles[i], d.Title)
		assert.NotNil(t, d.Reviews)
		assert.Empty(t, d.Reviews)
	}
}

func TestMemoryFindAllDetailsMissingOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())

	ghost := &entity.User{Base: entity.Base{ID: uuid.New()}}
	seedBook(t, repo, ghost, "Orphan")

	_, err := repo.Book.FindAllDetails(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestMemoryReviewDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())
	owner := seedUser(t, repo, "owner")
	book := seedBook(t, repo, owner, "Emma")
	review := seedReview(t, repo, book, owner, time.Now().UTC())

	require.NoError(t, repo.Review.Delete(ctx, review.ID))

	_, err := repo.Review.FindByID(ctx, review.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Review.Delete(ctx, review.ID), ErrNotFound)

	detail, err := repo.Book.FindDetail(ctx, book.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Reviews)
}

func TestMemoryPing(t *testing.T) {
	assert.NoError(t, NewMemoryRepository(zap.NewNop()).Ping(context.Background()))
}

func TestPgError(t *testing.T) {
	err := pgError("create user", assert.AnError)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, ErrConflict)

	dup := pgError("create user", &pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, dup, ErrConflict)
	assert.NotErrorIs(t, dup, ErrUnavailable)
}

func TestMemoryConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())
	owner := seedUser(t, repo, "owner")
	book := seedBook(t, repo, owner, "Shared")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := &entity.Review{
				BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now().UTC()},
				BookID:     book.ID,
				UserID:     owner.ID,
				Rating:     3,
			}
			assert.NoError(t, repo.Review.Create(ctx, r))
			_, err := repo.Book.FindAllDetails(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	detail, err := repo.Book.FindDetail(ctx, book.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Reviews, 20)
}
