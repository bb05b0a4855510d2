package adaptor

import (
	"context"

	"book-review/internal/dto/request"
	"book-review/internal/usecase"
	"book-review/pkg/utils"

	graphql "github.com/graph-gophers/graphql-go"
)

type UserHandler struct {
	service usecase.UserService
	obs     *observer
}

func NewUserHandler(service usecase.UserService, obs *observer) *UserHandler {
	return &UserHandler{
		service: service,
		obs:     obs,
	}
}

type updateUserRoleArgs struct {
	UserID graphql.ID
	Role   string
}

// UpdateUserRole resolves Mutation.updateUserRole (admin only)
func (h *UserHandler) UpdateUserRole(ctx context.Context, args updateUserRoleArgs) (*userResolver, error) {
	user, err := h.service.UpdateUserRole(ctx, utils.GetPrincipal(ctx), &request.UpdateUserRoleRequest{
		UserID: string(args.UserID),
		Role:   args.Role,
	})
	if err := h.obs.done("updateUserRole", err); err != nil {
		return nil, err
	}
	return &userResolver{u: *user}, nil
}
