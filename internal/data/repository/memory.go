package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"book-review/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memoryStore keeps every record in-process. It is used for local runs
// (DATABASE_URL=memory://) and tests.
type memoryStore struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]entity.User
	books   map[uuid.UUID]entity.Book
	reviews map[uuid.UUID]entity.Review
	order   []uuid.UUID // book insertion order
	log     *zap.Logger
}

func NewMemoryRepository(log *zap.Logger) *Repository {
	m := &memoryStore{
		users:   make(map[uuid.UUID]entity.User),
		books:   make(map[uuid.UUID]entity.Book),
		reviews: make(map[uuid.UUID]entity.Review),
		log:     log.With(zap.String("repository", "memory")),
	}
	return &Repository{
		User:   (*userMemory)(m),
		Book:   (*bookMemory)(m),
		Review: (*reviewMemory)(m),
	}
}

type userMemory memoryStore

func (m *userMemory) Create(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email || u.Username == user.Username {
			return ErrConflict
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *userMemory) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *userMemory) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *userMemory) FindByEmailOrUsername(_ context.Context, email, username string) (*entity.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email || u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *userMemory) UpdateRole(_ context.Context, id uuid.UUID, role entity.UserRole) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	m.users[id] = u
	return &u, nil
}

type bookMemory memoryStore

func (m *bookMemory) Create(_ context.Context, book *entity.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.books[book.ID]; exists {
		return ErrConflict
	}
	m.books[book.ID] = *book
	m.order = append(m.order, book.ID)
	return nil
}

func (m *bookMemory) FindByID(_ context.Context, id uuid.UUID) (*entity.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (m *bookMemory) FindDetail(_ context.Context, id uuid.UUID) (*entity.BookDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m.detail(b)
}

func (m *bookMemory) FindAllDetails(_ context.Context) ([]*entity.BookDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	details := make([]*entity.BookDetail, 0, len(m.order))
	for _, id := range m.order {
		d, err := m.detail(m.books[id])
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

// detail expands b without password hashes, matching the database loaders.
// The caller holds the read lock.
func (m *bookMemory) detail(b entity.Book) (*entity.BookDetail, error) {
	owner, ok := m.users[b.AddedBy]
	if !ok {
		m.log.Error("Book owner missing", zap.String("book_id", b.ID.String()))
		return nil, ErrUnavailable
	}

	owner.PasswordHash = ""
	d := &entity.BookDetail{Book: b, Owner: owner, Reviews: []entity.ReviewDetail{}}
	for _, r := range m.reviews {
		if r.BookID != b.ID {
			continue
		}
		author, ok := m.users[r.UserID]
		if !ok {
			m.log.Error("Review author missing", zap.String("review_id", r.ID.String()))
			return nil, ErrUnavailable
		}
		author.PasswordHash = ""
		d.Reviews = append(d.Reviews, entity.ReviewDetail{Review: r, Author: author})
	}
	sort.Slice(d.Reviews, func(i, j int) bool {
		a, c := d.Reviews[i], d.Reviews[j]
		if a.CreatedAt.Equal(c.CreatedAt) {
			return a.ID.String() < c.ID.String()
		}
		return a.CreatedAt.Before(c.CreatedAt)
	})
	return d, nil
}

type reviewMemory memoryStore

func (m *reviewMemory) Create(_ context.Context, review *entity.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.reviews[review.ID]; exists {
		return ErrConflict
	}
	m.reviews[review.ID] = *review
	return nil
}

func (m *reviewMemory) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *reviewMemory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(m.reviews, id)
	return nil
}
