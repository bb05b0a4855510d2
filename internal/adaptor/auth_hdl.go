package adaptor

import (
	"context"

	"book-review/internal/dto/request"
	"book-review/internal/usecase"
)

type AuthHandler struct {
	service usecase.AuthService
	obs     *observer
}

func NewAuthHandler(service usecase.AuthService, obs *observer) *AuthHandler {
	return &AuthHandler{
		service: service,
		obs:     obs,
	}
}

type registerArgs struct {
	Username string
	Email    string
	Password string
}

// Register resolves Mutation.register
func (h *AuthHandler) Register(ctx context.Context, args registerArgs) (*authPayloadResolver, error) {
	res, err := h.service.Register(ctx, &request.RegisterRequest{
		Username: args.Username,
		Email:    args.Email,
		Password: args.Password,
	})
	if err := h.obs.done("register", err); err != nil {
		return nil, err
	}
	return &authPayloadResolver{a: res}, nil
}

type loginArgs struct {
	Email    string
	Password string
}

// Login resolves Mutation.login
func (h *AuthHandler) Login(ctx context.Context, args loginArgs) (*authPayloadResolver, error) {
	res, err := h.service.Login(ctx, &request.LoginRequest{
		Email:    args.Email,
		Password: args.Password,
	})
	if err := h.obs.done("login", err); err != nil {
		return nil, err
	}
	return &authPayloadResolver{a: res}, nil
}
