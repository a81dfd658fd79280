package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"nest/internal/models"
	"nest/internal/repositories"
)

type UserServiceInterface interface {
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
}

type UserService struct {
	repo repositories.UserRepositoryInterface
	cost int
}

func NewUserService(repo repositories.UserRepositoryInterface) *UserService {
	return &UserService{repo: repo, cost: bcrypt.DefaultCost}
}

func (s *UserService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}
