package adaptor

import (
	"context"

	"book-review/internal/dto/request"
	"book-review/internal/usecase"
	"book-review/pkg/utils"

	graphql "github.com/graph-gophers/graphql-go"
)

type BookHandler struct {
	service usecase.BookService
	obs     *observer
}

func NewBookHandler(service usecase.BookService, obs *observer) *BookHandler {
	return &BookHandler{
		service: service,
		obs:     obs,
	}
}

// GetBooks resolves Query.getBooks
func (h *BookHandler) GetBooks(ctx context.Context) ([]*bookResolver, error) {
	books, err := h.service.GetBooks(ctx)
	if err := h.obs.done("getBooks", err); err != nil {
		return nil, err
	}
	return wrapBooks(books), nil
}

// GetBook resolves Query.getBook; unknown ids resolve to null.
func (h *BookHandler) GetBook(ctx context.Context, args struct{ ID graphql.ID }) (*bookResolver, error) {
	book, err := h.service.GetBook(ctx, string(args.ID))
	if err := h.obs.done("getBook", err); err != nil {
		return nil, err
	}
	if book == nil {
		return nil, nil
	}
	return &bookResolver{b: book}, nil
}

type addBookArgs struct {
	Title       string
	Author      string
	Description string
}

// AddBook resolves Mutation.addBook
func (h *BookHandler) AddBook(ctx context.Context, args addBookArgs) (*bookResolver, error) {
	book, err := h.service.AddBook(ctx, utils.GetPrincipal(ctx), &request.AddBookRequest{
		Title:       args.Title,
		Author:      args.Author,
		Description: args.Description,
	})
	if err := h.obs.done("addBook", err); err != nil {
		return nil, err
	}
	return &bookResolver{b: book}, nil
}
