package service

import (
	"context"

	"bloom/internal/models"
	"bloom/internal/repository"
)

// UserService implements profile reads.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile loads a user with their resonance membership set attached.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User not found")
	}

	given, err := s.userRepo.ResonanceGiven(ctx, userID)
	if err != nil {
		return nil, err
	}
	if given == nil {
		given = []uint{}
	}
	user.ResonanceGiven = given

	return user, nil
}
