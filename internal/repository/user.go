package repository

import (
	"context"

	"companyreg/internal/model"
)

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by id, or sql.ErrNoRows.
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// List returns users ordered by id descending.
	List(ctx context.Context) ([]model.User, error)
}

// ProfileRepository reads the fixed set of company profiles.
type ProfileRepository interface {
	// List returns profiles ordered by name ascending.
	List(ctx context.Context) ([]model.Profile, error)
}
