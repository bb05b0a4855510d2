package usecase

import (
	"context"
	"errors"
	"time"

	"book-review/internal/data/entity"
	"book-review/internal/data/repository"
	"book-review/internal/dto/request"
	"book-review/internal/dto/response"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

const (
	MsgAddBookLogin     = "You must be logged in to add a book"
	msgFetchBooksFailed = "Error fetching books"
	msgFetchBookFailed  = "Error fetching book"
	msgAddBookFailed    = "Error adding book"
)

type BookService interface {
	GetBooks(ctx context.Context) ([]*response.BookResponse, error)
	GetBook(ctx context.Context, id string) (*response.BookResponse, error)
	AddBook(ctx context.Context, caller *utils.Principal, req *request.AddBookRequest) (*response.BookResponse, error)
}

type bookService struct {
	bookRepo repository.BookRepository
	log      *zap.Logger
}

func NewBookService(bookRepo repository.BookRepository, log *zap.Logger) BookService {
	return &bookService{
		bookRepo: bookRepo,
		log:      log.With(zap.String("service", "book")),
	}
}

// GetBooks returns every book. Any failure fails the whole list.
func (s *bookService) GetBooks(ctx context.Context) ([]*response.BookResponse, error) {
	details, err := s.bookRepo.FindAllDetails(ctx)
	if err != nil {
		return nil, utils.Internal(msgFetchBooksFailed, err)
	}

	s.log.Debug("Books retrieved", zap.Int("count", len(details)))
	return response.BooksToResponse(details), nil
}

// GetBook returns nil without error when the book does not exist.
func (s *bookService) GetBook(ctx context.Context, id string) (*response.BookResponse, error) {
	bookID, ok := utils.ParseID(id)
	if !ok {
		return nil, nil
	}

	detail, err := s.bookRepo.FindDetail(ctx, bookID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.Internal(msgFetchBookFailed, err)
	}

	return response.BookToResponse(detail), nil
}

func (s *bookService) AddBook(ctx context.Context, caller *utils.Principal, req *request.AddBookRequest) (*response.BookResponse, error) {
	// 1. Authentication
	if caller == nil {
		return nil, utils.Unauthenticated(MsgAddBookLogin)
	}

	// 2. Validate input
	if err := utils.ValidateRequest(req); err != nil {
		s.log.Warn("Add book validation failed", zap.Error(err))
		return nil, err
	}

	// 3. Save book
	book := &entity.Book{
		BaseSimple:  entity.NewBaseSimple(time.Now()),
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		AddedBy:     caller.ID,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, utils.Internal(msgAddBookFailed, err)
	}

	// 4. Reload with the owner expanded
	detail, err := s.bookRepo.FindDetail(ctx, book.ID)
	if err != nil {
		return nil, utils.Internal(msgAddBookFailed, err)
	}

	s.log.Info("Book added",
		zap.String("book_id", book.ID.String()),
		zap.String("user_id", caller.ID.String()),
	)

	return response.BookToResponse(detail), nil
}
