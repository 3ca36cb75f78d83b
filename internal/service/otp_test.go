package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"borrowhood-backend/internal/domain"
)

func newOTPFixture(expiryMinutes int) (*MockOtpRepo, OTPService) {
	otpRepo := new(MockOtpRepo)
	svc := NewOTPService(NewMemoryOTPStore(), NewLogSender(), otpRepo, expiryMinutes)
	return otpRepo, svc
}

func TestOTPService_IssueAndVerify(t *testing.T) {
	ctx := context.Background()
	phone := "9876543210"

	t.Run("Issued code verifies once", func(t *testing.T) {
		otpRepo, svc := newOTPFixture(10)
		otpRepo.On("Create", ctx, mock.AnythingOfType("*domain.Otp")).Return(nil)
		otpRepo.On("MarkUsed", ctx, phone).Return(nil)

		code, err := svc.Issue(ctx, phone)
		assert.NoError(t, err)
		assert.Len(t, code, 6)

		assert.NoError(t, svc.Verify(ctx, phone, code))

		// Second use fails.
		err = svc.Verify(ctx, phone, code)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Wrong code does not burn the live one", func(t *testing.T) {
		otpRepo, svc := newOTPFixture(10)
		otpRepo.On("Create", ctx, mock.AnythingOfType("*domain.Otp")).Return(nil)
		otpRepo.On("MarkUsed", ctx, phone).Return(nil)

		code, err := svc.Issue(ctx, phone)
		assert.NoError(t, err)

		assert.ErrorIs(t, svc.Verify(ctx, phone, "000000"), domain.ErrValidation)
		assert.NoError(t, svc.Verify(ctx, phone, code))
	})

	t.Run("Reissue replaces the previous code", func(t *testing.T) {
		otpRepo, svc := newOTPFixture(10)
		otpRepo.On("Create", ctx, mock.AnythingOfType("*domain.Otp")).Return(nil)
		otpRepo.On("MarkUsed", ctx, phone).Return(nil)

		first, err := svc.Issue(ctx, phone)
		assert.NoError(t, err)
		second, err := svc.Issue(ctx, phone)
		assert.NoError(t, err)

		if first != second {
			assert.ErrorIs(t, svc.Verify(ctx, phone, first), domain.ErrValidation)
		}
		assert.NoError(t, svc.Verify(ctx, phone, second))
	})

	t.Run("Expired code rejected", func(t *testing.T) {
		otpRepo, svc := newOTPFixture(-1)
		otpRepo.On("Create", ctx, mock.AnythingOfType("*domain.Otp")).Return(nil)

		code, err := svc.Issue(ctx, phone)
		assert.NoError(t, err)
		assert.ErrorIs(t, svc.Verify(ctx, phone, code), domain.ErrValidation)
	})

	t.Run("Invalid phone rejected", func(t *testing.T) {
		_, svc := newOTPFixture(10)
		_, err := svc.Issue(ctx, "not-a-phone")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Audit row is hashed", func(t *testing.T) {
		otpRepo, svc := newOTPFixture(10)
		var recorded *domain.Otp
		otpRepo.On("Create", ctx, mock.AnythingOfType("*domain.Otp")).Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*domain.Otp)
		}).Return(nil)

		code, err := svc.Issue(ctx, phone)
		assert.NoError(t, err)
		assert.NotNil(t, recorded)
		assert.NotEqual(t, code, recorded.CodeHash)
		assert.NotEmpty(t, recorded.CodeHash)
	})
}

func TestMemoryOTPStore(t *testing.T) {
	store := NewMemoryOTPStore()
	expires := time.Now().Add(time.Minute)

	store.Put("9876543210", "123456", expires)
	code, got, ok := store.Get("9876543210")
	assert.True(t, ok)
	assert.Equal(t, "123456", code)
	assert.Equal(t, expires, got)

	store.Delete("9876543210")
	_, _, ok = store.Get("9876543210")
	assert.False(t, ok)
}
