package entity

import (
	"github.com/google/uuid"
)

type Book struct {
	BaseSimple
	Title       string    `db:"title"`
	Author      string    `db:"author"`
	Description string    `db:"description"`
	AddedBy     uuid.UUID `db:"added_by"`
}

// BookDetail is a book with its owner and reviews already loaded.
// Repositories are the only producers of this type.
type BookDetail struct {
	Book
	Owner   User
	Reviews []ReviewDetail
}
