package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"companyreg/internal/model"
	"companyreg/internal/repository"
)

// UserService defines the use cases for users.
type UserService interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService constructs a new UserService.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Create(ctx context.Context, u *model.User) (*model.User, error) {
	if strings.TrimSpace(u.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if u.UserType != model.UserInternal && u.UserType != model.UserExternal {
		return nil, fmt.Errorf("%w: user_type must be INTERNAL or EXTERNAL", ErrValidation)
	}
	stored, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("persist user: %w", err)
	}
	return stored, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	return u, nil
}
