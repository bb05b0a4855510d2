package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"book-review/internal/data/entity"
	"book-review/internal/data/repository"
	"book-review/internal/dto/request"
	"book-review/internal/dto/response"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

const (
	MsgAddReviewLogin     = "You must be logged in to add a review"
	MsgDeleteReviewLogin  = "You must be logged in to delete a review"
	MsgBookNotFound       = "Book not found"
	MsgInvalidRating      = "Rating must be between 1 and 5"
	MsgReviewNotFound     = "Review not found"
	MsgDeleteForbidden    = "You are not authorized to delete this review"
	msgAddReviewFailed    = "Error adding review"
	msgDeleteReviewFailed = "Error deleting review"
)

type ReviewService interface {
	AddReview(ctx context.Context, caller *utils.Principal, req *request.AddReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, caller *utils.Principal, reviewID string) (bool, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) AddReview(ctx context.Context, caller *utils.Principal, req *request.AddReviewRequest) (*response.ReviewResponse, error) {
	// 1. Authentication
	if caller == nil {
		return nil, utils.Unauthenticated(MsgAddReviewLogin)
	}

	// 2. Book must exist
	bookID, ok := utils.ParseID(req.BookID)
	if !ok {
		return nil, utils.BadUserInput(MsgBookNotFound)
	}
	if _, err := s.repo.Book.FindByID(ctx, bookID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.BadUserInput(MsgBookNotFound)
		}
		return nil, utils.Internal(msgAddReviewFailed, err)
	}

	// 3. Validate rating and comment
	if req.Rating < entity.MinRating || req.Rating > entity.MaxRating {
		s.log.Warn("Rating out of range", zap.Int("rating", req.Rating))
		return nil, utils.BadUserInput(MsgInvalidRating)
	}
	if err := utils.ValidateRequest(req); err != nil {
		return nil, err
	}

	// 4. Save review
	review := &entity.Review{
		BaseSimple: entity.NewBaseSimple(time.Now()),
		BookID:     bookID,
		UserID:     caller.ID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		return nil, utils.Internal(msgAddReviewFailed, err)
	}

	// 5. Reload the book so the review comes back with author and book expanded
	detail, err := s.repo.Book.FindDetail(ctx, bookID)
	if err != nil {
		return nil, utils.Internal(msgAddReviewFailed, err)
	}
	resp := response.BookToResponse(detail).FindReview(review.ID.String())
	if resp == nil {
		return nil, utils.Internal(msgAddReviewFailed, fmt.Errorf("review %s missing after insert", review.ID))
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", caller.ID.String()),
		zap.String("book_id", bookID.String()),
		zap.Int("rating", review.Rating),
	)

	return resp, nil
}

// DeleteReview lets the author or any admin remove a review.
func (s *reviewService) DeleteReview(ctx context.Context, caller *utils.Principal, reviewID string) (bool, error) {
	// 1. Authentication
	if caller == nil {
		return false, utils.Unauthenticated(MsgDeleteReviewLogin)
	}

	// 2. Review must exist
	id, ok := utils.ParseID(reviewID)
	if !ok {
		return false, utils.BadUserInput(MsgReviewNotFound)
	}
	review, err := s.repo.Review.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return false, utils.BadUserInput(MsgReviewNotFound)
	}
	if err != nil {
		return false, utils.Internal(msgDeleteReviewFailed, err)
	}

	// 3. Author or admin
	if !caller.IsAdmin() && review.UserID != caller.ID {
		s.log.Warn("Delete review forbidden",
			zap.String("review_id", reviewID),
			zap.String("user_id", caller.ID.String()),
		)
		return false, utils.Forbidden(MsgDeleteForbidden)
	}

	// 4. Delete
	if err := s.repo.Review.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, utils.BadUserInput(MsgReviewNotFound)
		}
		return false, utils.Internal(msgDeleteReviewFailed, err)
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("user_id", caller.ID.String()),
		zap.Bool("as_admin", review.UserID != caller.ID),
	)

	return true, nil
}
