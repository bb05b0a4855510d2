package response

import (
	"book-review/internal/data/entity"
)

type BookResponse struct {
	ID          string
	Title       string
	Author      string
	Description string
	AddedBy     UserResponse
	Reviews     []*ReviewResponse
}

// BookToResponse shapes an expanded book. Each review points back at the
// returned book so Review.book needs no further loading.
func BookToResponse(d *entity.BookDetail) *BookResponse {
	book := &BookResponse{
		ID:          d.ID.String(),
		Title:       d.Title,
		Author:      d.Author,
		Description: d.Description,
		AddedBy:     UserToResponse(&d.Owner),
		Reviews:     make([]*ReviewResponse, 0, len(d.Reviews)),
	}
	for i := range d.Reviews {
		book.Reviews = append(book.Reviews, reviewToResponse(&d.Reviews[i], book))
	}
	return book
}

func BooksToResponse(details []*entity.BookDetail) []*BookResponse {
	books := make([]*BookResponse, 0, len(details))
	for _, d := range details {
		books = append(books, BookToResponse(d))
	}
	return books
}

// FindReview returns the shaped review with the given id, or nil.
func (b *BookResponse) FindReview(id string) *ReviewResponse {
	for _, r := range b.Reviews {
		if r.ID == id {
			return r
		}
	}
	return nil
}
