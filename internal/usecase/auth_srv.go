package usecase

import (
	"context"
	"errors"
	"time"

	"book-review/internal/data/entity"
	"book-review/internal/data/repository"
	"book-review/internal/dto/request"
	"book-review/internal/dto/response"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

const (
	MsgUserExists         = "User already exists with this email or username"
	MsgInvalidCredentials = "Invalid credentials"
	msgRegisterFailed     = "Error registering user"
	msgLoginFailed        = "Error logging in"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *utils.JWTManager
	log      *zap.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokens *utils.JWTManager,
	log *zap.Logger,
) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if err := utils.ValidateRequest(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	// 2. Reject a taken email or username
	_, err := s.userRepo.FindByEmailOrUsername(ctx, req.Email, req.Username)
	switch {
	case err == nil:
		s.log.Warn("Register rejected, user exists", zap.String("email", req.Email), zap.String("username", req.Username))
		return nil, utils.BadUserInput(MsgUserExists)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, utils.Internal(msgRegisterFailed, err)
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.Internal(msgRegisterFailed, err)
	}

	// 4. Save user
	user := &entity.User{
		Base:         entity.NewBase(time.Now()),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         entity.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// lost a race with a concurrent registration
			return nil, utils.BadUserInput(MsgUserExists)
		}
		return nil, utils.Internal(msgRegisterFailed, err)
	}

	// 5. Issue token
	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, utils.Internal(msgRegisterFailed, err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return response.AuthToResponse(user, token), nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, utils.Unauthenticated(MsgInvalidCredentials)
	}
	if err != nil {
		return nil, utils.Internal(msgLoginFailed, err)
	}

	// 2. Check password, same answer as an unknown email
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, utils.Unauthenticated(MsgInvalidCredentials)
	}

	// 3. Issue token
	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, utils.Internal(msgLoginFailed, err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return response.AuthToResponse(user, token), nil
}
