package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"book-review/internal/data/entity"
	"book-review/pkg/database"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Documents store ids as canonical UUID strings.

type userDoc struct {
	ID        string    `bson:"_id"`
	Username  string    `bson:"username"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password,omitempty"`
	Role      string    `bson:"role"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type bookDoc struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title"`
	Author      string    `bson:"author"`
	Description string    `bson:"description"`
	AddedBy     string    `bson:"addedBy"`
	CreatedAt   time.Time `bson:"createdAt"`
}

type reviewDoc struct {
	ID        string    `bson:"_id"`
	BookID    string    `bson:"bookId"`
	UserID    string    `bson:"userId"`
	Rating    int       `bson:"rating"`
	Comment   string    `bson:"comment"`
	CreatedAt time.Time `bson:"createdAt"`
}

type reviewDetailDoc struct {
	Review reviewDoc `bson:",inline"`
	Author userDoc   `bson:"author"`
}

type bookDetailDoc struct {
	Book    bookDoc           `bson:",inline"`
	Owner   userDoc           `bson:"owner"`
	Reviews []reviewDetailDoc `bson:"reviews"`
}

func NewMongoRepository(db *mongo.Database, log *zap.Logger) *Repository {
	return &Repository{
		User:   &userMongo{coll: db.Collection(database.UsersCollection), log: log.With(zap.String("repository", "user"))},
		Book:   &bookMongo{coll: db.Collection(database.BooksCollection), log: log.With(zap.String("repository", "book"))},
		Review: &reviewMongo{coll: db.Collection(database.ReviewsCollection), log: log.With(zap.String("repository", "review"))},
		ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, readpref.Primary())
		},
	}
}

// mongoError maps a driver failure onto the store error kinds.
func mongoError(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
}

func parseDocID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed document id %q", ErrUnavailable, raw)
	}
	return id, nil
}

func userToDoc(u *entity.User) userDoc {
	return userDoc{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (d userDoc) toEntity() (*entity.User, error) {
	id, err := parseDocID(d.ID)
	if err != nil {
		return nil, err
	}
	return &entity.User{
		Base: entity.Base{
			ID:        id,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         entity.UserRole(d.Role),
	}, nil
}

func bookToDoc(b *entity.Book) bookDoc {
	return bookDoc{
		ID:          b.ID.String(),
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		AddedBy:     b.AddedBy.String(),
		CreatedAt:   b.CreatedAt,
	}
}

func (d bookDoc) toEntity() (*entity.Book, error) {
	id, err := parseDocID(d.ID)
	if err != nil {
		return nil, err
	}
	addedBy, err := parseDocID(d.AddedBy)
	if err != nil {
		return nil, err
	}
	return &entity.Book{
		BaseSimple: entity.BaseSimple{
			ID:        id,
			CreatedAt: d.CreatedAt,
		},
		Title:       d.Title,
		Author:      d.Author,
		Description: d.Description,
		AddedBy:     addedBy,
	}, nil
}

func reviewToDoc(r *entity.Review) reviewDoc {
	return reviewDoc{
		ID:        r.ID.String(),
		BookID:    r.BookID.String(),
		UserID:    r.UserID.String(),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func (d reviewDoc) toEntity() (*entity.Review, error) {
	id, err := parseDocID(d.ID)
	if err != nil {
		return nil, err
	}
	bookID, err := parseDocID(d.BookID)
	if err != nil {
		return nil, err
	}
	userID, err := parseDocID(d.UserID)
	if err != nil {
		return nil, err
	}
	return &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        id,
			CreatedAt: d.CreatedAt,
		},
		BookID:  bookID,
		UserID:  userID,
		Rating:  d.Rating,
		Comment: d.Comment,
	}, nil
}

func (d bookDetailDoc) toEntity() (*entity.BookDetail, error) {
	book, err := d.Book.toEntity()
	if err != nil {
		return nil, err
	}
	if d.Owner.ID == "" {
		return nil, fmt.Errorf("%w: owner %s of book %s missing", ErrUnavailable, d.Book.AddedBy, d.Book.ID)
	}
	owner, err := d.Owner.toEntity()
	if err != nil {
		return nil, err
	}

	detail := &entity.BookDetail{
		Book:    *book,
		Owner:   *owner,
		Reviews: make([]entity.ReviewDetail, 0, len(d.Reviews)),
	}
	for _, rd := range d.Reviews {
		review, err := rd.Review.toEntity()
		if err != nil {
			return nil, err
		}
		if rd.Author.ID == "" {
			return nil, fmt.Errorf("%w: author %s of review %s missing", ErrUnavailable, rd.Review.UserID, rd.Review.ID)
		}
		author, err := rd.Author.toEntity()
		if err != nil {
			return nil, err
		}
		detail.Reviews = append(detail.Reviews, entity.ReviewDetail{Review: *review, Author: *author})
	}
	return detail, nil
}
