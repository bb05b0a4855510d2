package adaptor

import (
	"context"

	"book-review/internal/dto/request"
	"book-review/internal/usecase"
	"book-review/pkg/utils"

	graphql "github.com/graph-gophers/graphql-go"
)

type ReviewHandler struct {
	service usecase.ReviewService
	obs     *observer
}

func NewReviewHandler(service usecase.ReviewService, obs *observer) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		obs:     obs,
	}
}

type addReviewArgs struct {
	BookID  graphql.ID
	Rating  int32
	Comment string
}

// AddReview resolves Mutation.addReview (protected)
func (h *ReviewHandler) AddReview(ctx context.Context, args addReviewArgs) (*reviewResolver, error) {
	review, err := h.service.AddReview(ctx, utils.GetPrincipal(ctx), &request.AddReviewRequest{
		BookID:  string(args.BookID),
		Rating:  int(args.Rating),
		Comment: args.Comment,
	})
	if err := h.obs.done("addReview", err); err != nil {
		return nil, err
	}
	return &reviewResolver{r: review}, nil
}

// DeleteReview resolves Mutation.deleteReview (protected)
func (h *ReviewHandler) DeleteReview(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	ok, err := h.service.DeleteReview(ctx, utils.GetPrincipal(ctx), string(args.ID))
	if err := h.obs.done("deleteReview", err); err != nil {
		return false, err
	}
	return ok, nil
}
