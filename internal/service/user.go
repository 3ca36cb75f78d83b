package service

import (
	"context"
	"fmt"

	"borrowhood-backend/internal/domain"
	"borrowhood-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID int32, name, email, upi string, location *domain.Location) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	if upi != "" {
		if !domain.ValidUPI(upi) {
			return nil, fmt.Errorf("%w: invalid UPI id", domain.ErrValidation)
		}
		user.UPI = upi
	}
	if location != nil {
		user.Location = *location
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetStats(ctx context.Context, userID int32) (*UserStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserStats{
		Name:         user.Name,
		TrustScore:   user.TrustScore,
		TotalBorrows: user.TotalBorrows,
		TotalLends:   user.TotalLends,
		IsVerified:   user.IsVerified,
	}, nil
}

func (s *userService) ListNearbyUsers(ctx context.Context, userID int32, lat, lon, radiusKm float64) ([]domain.User, error) {
	if radiusKm <= 0 {
		radiusKm = 5
	}
	return s.userRepo.ListNearby(ctx, lat, lon, radiusKm, userID, 50)
}
