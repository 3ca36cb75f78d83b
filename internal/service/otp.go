package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"borrowhood-backend/internal/domain"
	"borrowhood-backend/internal/logger"
	"borrowhood-backend/internal/repository"
)

// OTPStore holds live codes keyed by phone number. Exactly one code is
// live per phone; issuing a new one replaces the old.
type OTPStore interface {
	Put(phone, code string, expiresAt time.Time)
	Get(phone string) (code string, expiresAt time.Time, ok bool)
	Delete(phone string)
}

type memoryOTPStore struct {
	mu    sync.Mutex
	codes map[string]otpEntry
}

type otpEntry struct {
	code      string
	expiresAt time.Time
}

func NewMemoryOTPStore() OTPStore {
	return &memoryOTPStore{codes: make(map[string]otpEntry)}
}

func (s *memoryOTPStore) Put(phone, code string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[phone] = otpEntry{code: code, expiresAt: expiresAt}
}

func (s *memoryOTPStore) Get(phone string) (string, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.codes[phone]
	if !ok {
		return "", time.Time{}, false
	}
	return entry.code, entry.expiresAt, true
}

func (s *memoryOTPStore) Delete(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, phone)
}

// OTPSender delivers a code to a phone. The default sender only logs;
// an SMS provider slots in behind the same interface.
type OTPSender interface {
	Send(ctx context.Context, phone, code string) error
}

type logSender struct{}

func NewLogSender() OTPSender {
	return logSender{}
}

func (logSender) Send(_ context.Context, phone, code string) error {
	logger.Info("OTP issued", "phone", phone, "code", code)
	return nil
}

type otpService struct {
	store   OTPStore
	sender  OTPSender
	otpRepo repository.OtpRepository
	expiry  time.Duration
}

func NewOTPService(store OTPStore, sender OTPSender, otpRepo repository.OtpRepository, expiryMinutes int) OTPService {
	return &otpService{
		store:   store,
		sender:  sender,
		otpRepo: otpRepo,
		expiry:  time.Duration(expiryMinutes) * time.Minute,
	}
}

func (s *otpService) Issue(ctx context.Context, phone string) (string, error) {
	if !domain.ValidPhone(phone) {
		return "", fmt.Errorf("%w: invalid phone number", domain.ErrValidation)
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}
	expiresAt := time.Now().Add(s.expiry)
	s.store.Put(phone, code, expiresAt)

	// Keep a hashed audit trail; the plain code never hits the database.
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	record := &domain.Otp{
		Phone:     phone,
		CodeHash:  string(hash),
		ExpiresAt: expiresAt,
	}
	if err := s.otpRepo.Create(ctx, record); err != nil {
		logger.Warn("failed to record issued OTP", "phone", phone, "error", err)
	}

	if err := s.sender.Send(ctx, phone, code); err != nil {
		return "", fmt.Errorf("sending OTP: %w", err)
	}
	return code, nil
}

func (s *otpService) Verify(ctx context.Context, phone, code string) error {
	stored, expiresAt, ok := s.store.Get(phone)
	if !ok {
		return fmt.Errorf("%w: no code pending for this phone", domain.ErrValidation)
	}
	if time.Now().After(expiresAt) {
		s.store.Delete(phone)
		return fmt.Errorf("%w: code expired", domain.ErrValidation)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		// Leave the code live so a typo does not force a fresh issue.
		return fmt.Errorf("%w: incorrect code", domain.ErrValidation)
	}
	// Single use.
	s.store.Delete(phone)
	if err := s.otpRepo.MarkUsed(ctx, phone); err != nil {
		logger.Warn("failed to mark OTP used", "phone", phone, "error", err)
	}
	return nil
}

// generateCode draws a uniform 6-digit code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
