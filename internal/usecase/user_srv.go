package usecase

import (
	"context"
	"errors"

	"book-review/internal/data/entity"
	"book-review/internal/data/repository"
	"book-review/internal/dto/request"
	"book-review/internal/dto/response"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

const (
	MsgRoleForbidden    = "You are not authorized to update user roles"
	MsgInvalidRole      = "Invalid role"
	MsgUserNotFound     = "User not found"
	msgUpdateRoleFailed = "Error updating user role"
)

type UserService interface {
	UpdateUserRole(ctx context.Context, caller *utils.Principal, req *request.UpdateUserRoleRequest) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

// UpdateUserRole is admin only. Anonymous callers get FORBIDDEN as well.
func (us *userService) UpdateUserRole(ctx context.Context, caller *utils.Principal, req *request.UpdateUserRoleRequest) (*response.UserResponse, error) {
	if !caller.IsAdmin() {
		us.log.Warn("Role update by non-admin", zap.Bool("authenticated", caller != nil))
		return nil, utils.Forbidden(MsgRoleForbidden)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.BadUserInput(MsgInvalidRole)
	}

	id, ok := utils.ParseID(req.UserID)
	if !ok {
		return nil, utils.BadUserInput(MsgUserNotFound)
	}

	user, err := us.userRepo.UpdateRole(ctx, id, entity.UserRole(req.Role))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.BadUserInput(MsgUserNotFound)
	}
	if err != nil {
		return nil, utils.Internal(msgUpdateRoleFailed, err)
	}

	us.log.Info("User role updated",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		zap.String("by", caller.ID.String()),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}
