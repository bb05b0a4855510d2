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

const userColumns = `id, username, email, password, role, created_at, updated_at`

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user record into the database
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		err = pgError("create user "+user.Email, err)
		if !errors.Is(err, ErrConflict) {
			ur.log.Error("Failed to create user",
				zap.Error(err),
				zap.String("email", user.Email),
				zap.String("username", user.Username),
			)
		}
		return err
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, pgError("find user by ID "+id.String(), err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, pgError("find user by email "+email, err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR username = $2 LIMIT 1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		ur.log.Error("Failed to find user by email or username",
			zap.Error(err),
			zap.String("email", email),
			zap.String("username", username),
		)
		return nil, pgError("find user by email or username", err)
	}

	return user, nil
}

// UpdateRole overwrites the role and returns the updated row
func (ur *userRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) (*entity.User, error) {
	query := `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := scanUser(ur.db.QueryRow(ctx, query, id, role))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		ur.log.Error("Failed to update user role",
			zap.Error(err),
			zap.String("user_id", id.String()),
			zap.String("role", string(role)),
		)
		return nil, pgError("update role of user "+id.String(), err)
	}

	return user, nil
}
