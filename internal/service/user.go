package service

import (
	"context"

	"userapi/internal/model"
	"userapi/internal/repository"
)

// UserService defines the use cases for handling users.
// Every call is forwarded to the repository unmodified, results and errors included.
type UserService interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	ListAll(ctx context.Context) ([]*model.User, error)
	// GetByID reports absence through the bool, never as an error.
	GetByID(ctx context.Context, id int) (*model.User, bool, error)
	UpdateByID(ctx context.Context, id int, user *model.User) error
	RemoveByID(ctx context.Context, id int) error
	RemoveByEntity(ctx context.Context, user *model.User) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService constructs a new UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Create(ctx context.Context, user *model.User) (*model.User, error) {
	return s.repo.Insert(ctx, user)
}

func (s *userService) ListAll(ctx context.Context) ([]*model.User, error) {
	return s.repo.GetAll(ctx)
}

func (s *userService) GetByID(ctx context.Context, id int) (*model.User, bool, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) UpdateByID(ctx context.Context, id int, user *model.User) error {
	return s.repo.UpdateByID(ctx, id, user)
}

func (s *userService) RemoveByID(ctx context.Context, id int) error {
	return s.repo.RemoveByID(ctx, id)
}

func (s *userService) RemoveByEntity(ctx context.Context, user *model.User) error {
	return s.repo.RemoveByEntity(ctx, user)
}
