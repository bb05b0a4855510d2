package repository

import (
	"context"
	"errors"

	"book-review/internal/data/entity"
	"book-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	const query = `
		INSERT INTO reviews (id, book_id, user_id, rating, comment, created_at)
		VALUES (@id, @book_id, @user_id, @rating, @comment, @created_at)
	`

	_, err := r.db.Exec(ctx, query, pgx.NamedArgs{
		"id":         review.ID,
		"book_id":    review.BookID,
		"user_id":    review.UserID,
		"rating":     review.Rating,
		"comment":    review.Comment,
		"created_at": review.CreatedAt,
	})
	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.Stringer("book_id", review.BookID),
			zap.Stringer("user_id", review.UserID),
		)
		return pgError("create review for book "+review.BookID.String(), err)
	}
	return nil
}

// FindByID scans by column name; the selected columns must match the db tags
// of entity.Review exactly.
func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	const query = `
		SELECT id, created_at, book_id, user_id, rating, comment
		FROM reviews
		WHERE id = $1
	`

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, r.failed("find review", id, err)
	}

	review, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[entity.Review])
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, ErrNotFound
	case err != nil:
		return nil, r.failed("find review", id, err)
	}
	return review, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return r.failed("delete review", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Review deleted", zap.Stringer("review_id", id))
	return nil
}

func (r *reviewRepository) failed(op string, id uuid.UUID, err error) error {
	r.log.Error("Failed to "+op, zap.Error(err), zap.Stringer("review_id", id))
	return pgError(op+" "+id.String(), err)
}
