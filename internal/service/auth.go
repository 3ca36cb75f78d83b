package service

import (
	"context"
	"errors"
	"fmt"

	"borrowhood-backend/internal/domain"
	"borrowhood-backend/internal/logger"
	"borrowhood-backend/internal/repository"
	"borrowhood-backend/internal/security"
)

type authService struct {
	userRepo repository.UserRepository
	otpSvc   OTPService
	tokens   security.TokenManager
	demoMode bool
}

func NewAuthService(userRepo repository.UserRepository, otpSvc OTPService, tokens security.TokenManager, demoMode bool) AuthService {
	return &authService{
		userRepo: userRepo,
		otpSvc:   otpSvc,
		tokens:   tokens,
		demoMode: demoMode,
	}
}

func (s *authService) RequestOTP(ctx context.Context, phone string) (string, error) {
	code, err := s.otpSvc.Issue(ctx, phone)
	if err != nil {
		return "", err
	}
	if s.demoMode {
		return code, nil
	}
	return "", nil
}

func (s *authService) VerifyOTP(ctx context.Context, phone, code, name, upi string, location *domain.Location) (*domain.User, string, error) {
	if err := s.otpSvc.Verify(ctx, phone, code); err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.GetByPhone(ctx, phone)
	if errors.Is(err, domain.ErrNotFound) {
		user, err = s.register(ctx, phone, name, upi, location)
	}
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Phone)
	if err != nil {
		return nil, "", fmt.Errorf("signing access token: %w", err)
	}
	return user, token, nil
}

func (s *authService) register(ctx context.Context, phone, name, upi string, location *domain.Location) (*domain.User, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required for a new account", domain.ErrValidation)
	}
	if upi != "" && !domain.ValidUPI(upi) {
		return nil, fmt.Errorf("%w: invalid UPI id", domain.ErrValidation)
	}

	user := &domain.User{
		Phone:      phone,
		Name:       name,
		UPI:        upi,
		TrustScore: 50,
		IsVerified: true,
		Status:     domain.UserStatusActive,
	}
	if location != nil {
		user.Location = *location
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	logger.Info("registered new user", "user_id", user.ID)
	return user, nil
}
