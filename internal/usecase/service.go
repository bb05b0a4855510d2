package usecase

import (
	"book-review/internal/data/repository"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	User   UserService
	Book   BookService
	Review ReviewService
}

func NewService(repo *repository.Repository, tokens *utils.JWTManager, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo.User, tokens, log),
		User:   NewUserService(repo.User, log),
		Book:   NewBookService(repo.Book, log),
		Review: NewReviewService(repo, log),
	}
}
