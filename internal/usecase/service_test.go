package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"book-review/internal/data/entity"
	"book-review/internal/data/repository"
	"book-review/internal/dto/request"
	"book-review/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	service *Service
	repo    *repository.Repository
	tokens  *utils.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := repository.NewMemoryRepository(zap.NewNop())
	tokens := utils.NewJWTManager("test-secret")
	return &testEnv{
		service: NewService(repo, tokens, zap.NewNop()),
		repo:    repo,
		tokens:  tokens,
	}
}

// register creates a user and returns it as a request principal.
func (e *testEnv) register(t *testing.T, username string) *utils.Principal {
	t.Helper()
	res, err := e.service.Auth.Register(context.Background(), &request.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "pw",
	})
	require.NoError(t, err)
	return utils.PrincipalFromClaims(e.tokens.VerifyToken(res.Token))
}

func (e *testEnv) admin(t *testing.T, username string) *utils.Principal {
	t.Helper()
	p := e.register(t, username)
	_, err := e.repo.User.UpdateRole(context.Background(), p.ID, entity.RoleAdmin)
	require.NoError(t, err)
	p.Role = entity.RoleAdmin
	return p
}

func (e *testEnv) addBook(t *testing.T, caller *utils.Principal, title string) string {
	t.Helper()
	book, err := e.service.Book.AddBook(context.Background(), caller, &request.AddBookRequest{
		Title:       title,
		Author:      "Frank Herbert",
		Description: "Desert planet",
	})
	require.NoError(t, err)
	return book.ID
}

func requireCode(t *testing.T, err error, code utils.ErrorCode, msg string) {
	t.Helper()
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected *utils.AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	if msg != "" {
		assert.Equal(t, msg, appErr.Message)
	}
}

// brokenStore fails every call the way an unreachable database does.
type brokenStore struct{}

var errDown = fmt.Errorf("query: %w: %w", repository.ErrUnavailable, errors.New("dial tcp: connection refused"))

func (brokenStore) Create(context.Context, *entity.User) error { return errDown }

func (brokenStore) FindByID(context.Context, uuid.UUID) (*entity.User, error) { return nil, errDown }

func (brokenStore) FindByEmail(context.Context, string) (*entity.User, error) { return nil, errDown }

func (brokenStore) FindByEmailOrUsername(context.Context, string, string) (*entity.User, error) {
	return nil, errDown
}

func (brokenStore) UpdateRole(context.Context, uuid.UUID, entity.UserRole) (*entity.User, error) {
	return nil, errDown
}

type brokenBooks struct{}

func (brokenBooks) Create(context.Context, *entity.Book) error { return errDown }

func (brokenBooks) FindByID(context.Context, uuid.UUID) (*entity.Book, error) { return nil, errDown }

func (brokenBooks) FindDetail(context.Context, uuid.UUID) (*entity.BookDetail, error) {
	return nil, errDown
}

func (brokenBooks) FindAllDetails(context.Context) ([]*entity.BookDetail, error) {
	return nil, errDown
}

type brokenReviews struct{}

func (brokenReviews) Create(context.Context, *entity.Review) error { return errDown }

func (brokenReviews) FindByID(context.Context, uuid.UUID) (*entity.Review, error) {
	return nil, errDown
}

func (brokenReviews) Delete(context.Context, uuid.UUID) error { return errDown }

func newBrokenService() *Service {
	repo := &repository.Repository{
		User:   brokenStore{},
		Book:   brokenBooks{},
		Review: brokenReviews{},
	}
	return NewService(repo, utils.NewJWTManager("test-secret"), zap.NewNop())
}

func TestStoreFailuresAreInternal(t *testing.T) {
	ctx := context.Background()
	svc := newBrokenService()
	caller := &utils.Principal{ID: uuid.New(), Role: entity.RoleAdmin}

	tests := []struct {
		name string
		msg  string
		call func() error
	}{
		{"register", "Error registering user", func() error {
			_, err := svc.Auth.Register(ctx, &request.RegisterRequest{Username: "u", Email: "u@example.com", Password: "pw"})
			return err
		}},
		{"login", "Error logging in", func() error {
			_, err := svc.Auth.Login(ctx, &request.LoginRequest{Email: "u@example.com", Password: "pw"})
			return err
		}},
		{"getBooks", "Error fetching books", func() error {
			_, err := svc.Book.GetBooks(ctx)
			return err
		}},
		{"getBook", "Error fetching book", func() error {
			_, err := svc.Book.GetBook(ctx, uuid.NewString())
			return err
		}},
		{"addBook", "Error adding book", func() error {
			_, err := svc.Book.AddBook(ctx, caller, &request.AddBookRequest{Title: "t", Author: "a", Description: "d"})
			return err
		}},
		{"addReview", "Error adding review", func() error {
			_, err := svc.Review.AddReview(ctx, caller, &request.AddReviewRequest{BookID: uuid.NewString(), Rating: 3})
			return err
		}},
		{"deleteReview", "Error deleting review", func() error {
			_, err := svc.Review.DeleteReview(ctx, caller, uuid.NewString())
			return err
		}},
		{"updateUserRole", "Error updating user role", func() error {
			_, err := svc.User.UpdateUserRole(ctx, caller, &request.UpdateUserRoleRequest{UserID: uuid.NewString(), Role: "admin"})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			requireCode(t, err, utils.CodeInternal, tt.msg)
			assert.NotContains(t, err.Error(), "connection refused")
			assert.ErrorIs(t, err, repository.ErrUnavailable)
		})
	}
}
