package request

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRoleRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role" validate:"oneof=user admin"`
}
