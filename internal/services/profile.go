package services

import (
	"context"
	"errors"

	"codetrek/internal/common"
	"codetrek/internal/models"
	"codetrek/internal/repositories"
)

type ProfileService struct {
	profiles repositories.ProfileRepository
}

func NewProfileService(profiles repositories.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) Get(ctx context.Context, userID int64) (*models.UserProfile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NotFound("Profile not found")
	}
	return profile, err
}

func (s *ProfileService) Update(ctx context.Context, userID int64, update *models.ProfileUpdate) (*models.UserProfile, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	update.Apply(profile)
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
