package response

import (
	"time"

	"book-review/internal/data/entity"
)

type ReviewResponse struct {
	ID        string
	Rating    int
	Comment   string
	User      UserResponse
	Book      *BookResponse
	CreatedAt time.Time
}

func reviewToResponse(r *entity.ReviewDetail, book *BookResponse) *ReviewResponse {
	return &ReviewResponse{
		ID:        r.ID.String(),
		Rating:    r.Rating,
		Comment:   r.Comment,
		User:      UserToResponse(&r.Author),
		Book:      book,
		CreatedAt: r.CreatedAt.UTC(),
	}
}
