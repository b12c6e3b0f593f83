package service

import (
	"context"

	"companyreg/internal/model"
	"companyreg/internal/repository"
)

// ProfileService exposes the fixed set of company profiles.
type ProfileService interface {
	List(ctx context.Context) ([]model.Profile, error)
}

type profileService struct {
	profiles repository.ProfileRepository
}

// NewProfileService constructs a new ProfileService.
func NewProfileService(profiles repository.ProfileRepository) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) List(ctx context.Context) ([]model.Profile, error) {
	return s.profiles.List(ctx)
}
