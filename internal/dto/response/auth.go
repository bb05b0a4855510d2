package response

import (
	"book-review/internal/data/entity"
)

// UserResponse is the public projection of a user. It has no password field.
type UserResponse struct {
	ID       string
	Username string
	Email    string
	Role     entity.UserRole
}

type AuthResponse struct {
	Token string
	User  UserResponse
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}

func AuthToResponse(user *entity.User, token string) *AuthResponse {
	return &AuthResponse{
		Token: token,
		User:  UserToResponse(user),
	}
}
