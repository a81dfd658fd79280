package repositories

import (
	"context"

	"nest/internal/models"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts user and fills in the generated id and created_at.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, email, hashed_password, is_active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		user.Username, user.Email, user.PasswordHash, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt)
	return mapError("create user", err)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, email, hashed_password, is_active, created_at, last_login
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.LastLogin)
	if err != nil {
		return nil, mapError("get user", err)
	}
	return &u, nil
}
