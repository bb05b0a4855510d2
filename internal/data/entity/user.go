package entity

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// Valid reports whether r is one of the persisted roles.
func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	Base
	Username     string   `db:"username"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
}
