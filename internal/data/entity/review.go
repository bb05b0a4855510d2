package entity

import (
	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	BaseSimple
	BookID  uuid.UUID `db:"book_id"`
	UserID  uuid.UUID `db:"user_id"`
	Rating  int       `db:"rating"` // 1-5
	Comment string    `db:"comment"`
}

// ReviewDetail is a review with its author loaded.
type ReviewDetail struct {
	Review
	Author User
}
