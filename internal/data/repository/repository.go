package repository

import (
	"context"
	"errors"
	"fmt"

	"book-review/internal/data/entity"
	"book-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	// ErrNotFound means the record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict means a unique constraint rejected the write.
	ErrConflict = errors.New("record already exists")
	// ErrUnavailable wraps every other store failure.
	ErrUnavailable = errors.New("store unavailable")
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) (*entity.User, error)
}

type BookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error)

	// Loaders returning books with owner and reviews expanded
	FindDetail(ctx context.Context, id uuid.UUID) (*entity.BookDetail, error)
	FindAllDetails(ctx context.Context) ([]*entity.BookDetail, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Repository struct {
	User   UserRepository
	Book   BookRepository
	Review ReviewRepository

	ping func(ctx context.Context) error
}

// Ping checks the backing store is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:   NewUserRepository(db, log),
		Book:   NewBookRepository(db, log),
		Review: NewReviewRepository(db, log),
		ping:   db.Ping,
	}
}

// pgError maps a pgx failure onto the store error kinds.
func pgError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%s: %w", op, ErrConflict)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
