package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"borrowhood-backend/internal/config"
	"borrowhood-backend/internal/domain"
)

func newPaymentFixture(gateway PaymentGateway) (*MockPaymentRepo, *MockBorrowRepo, *MockNotificationRepo, PaymentService) {
	paymentRepo := new(MockPaymentRepo)
	borrowRepo := new(MockBorrowRepo)
	noteRepo := new(MockNotificationRepo)
	svc := NewPaymentService(paymentRepo, borrowRepo, noteRepo, gateway, "INR")
	return paymentRepo, borrowRepo, noteRepo, svc
}

func approvedBorrow() *domain.Borrow {
	return &domain.Borrow{
		ID:         5,
		ItemID:     2,
		BorrowerID: 1,
		LenderID:   10,
		Status:     domain.BorrowStatusApproved,
	}
}

func TestNewPaymentGateway(t *testing.T) {
	t.Run("Defaults to mock", func(t *testing.T) {
		gw, err := NewPaymentGateway(config.PaymentConfig{})
		assert.NoError(t, err)
		assert.Equal(t, "mock", gw.Name())
	})

	t.Run("Gateway provider", func(t *testing.T) {
		gw, err := NewPaymentGateway(config.PaymentConfig{Provider: "gateway", KeySecret: "s"})
		assert.NoError(t, err)
		assert.Equal(t, "gateway", gw.Name())
	})

	t.Run("Unknown provider", func(t *testing.T) {
		_, err := NewPaymentGateway(config.PaymentConfig{Provider: "stripe2"})
		assert.Error(t, err)
	})
}

func TestPaymentService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		paymentRepo, borrowRepo, _, svc := newPaymentFixture(NewMockGateway())
		borrowRepo.On("GetByID", ctx, int32(5)).Return(approvedBorrow(), nil)
		paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)

		payment, err := svc.CreateOrder(ctx, 1, 5, 1500)
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(payment.OrderID, "order_mock_"))
		assert.Equal(t, domain.PaymentStatusCreated, payment.Status)
		assert.Equal(t, int32(10), payment.PayeeID)
		assert.Equal(t, "INR", payment.Currency)
	})

	t.Run("Only the borrower pays", func(t *testing.T) {
		_, borrowRepo, _, svc := newPaymentFixture(NewMockGateway())
		borrowRepo.On("GetByID", ctx, int32(5)).Return(approvedBorrow(), nil)

		_, err := svc.CreateOrder(ctx, 10, 5, 1500)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Borrow not awaiting payment", func(t *testing.T) {
		_, borrowRepo, _, svc := newPaymentFixture(NewMockGateway())
		bw := approvedBorrow()
		bw.Status = domain.BorrowStatusPending
		borrowRepo.On("GetByID", ctx, int32(5)).Return(bw, nil)

		_, err := svc.CreateOrder(ctx, 1, 5, 1500)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("Non-positive amount", func(t *testing.T) {
		_, _, _, svc := newPaymentFixture(NewMockGateway())
		_, err := svc.CreateOrder(ctx, 1, 5, 0)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestPaymentService_ConfirmPayment(t *testing.T) {
	ctx := context.Background()

	createdPayment := func() *domain.Payment {
		return &domain.Payment{
			ID:          3,
			BorrowID:    5,
			OrderID:     "order_mock_x",
			Provider:    "mock",
			AmountCents: 1500,
			Currency:    "INR",
			Status:      domain.PaymentStatusCreated,
			PayerID:     1,
			PayeeID:     10,
		}
	}

	t.Run("Paid order activates the borrow", func(t *testing.T) {
		paymentRepo, borrowRepo, noteRepo, svc := newPaymentFixture(NewMockGateway())
		paymentRepo.On("GetByOrderID", ctx, "order_mock_x").Return(createdPayment(), nil)
		paymentRepo.On("Update", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)
		borrowRepo.On("UpdateStatusIf", ctx, int32(5), domain.BorrowStatusApproved, domain.BorrowStatusActive).Return(true, nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		payment, err := svc.ConfirmPayment(ctx, "order_mock_x", "pay_1", "sig")
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPaid, payment.Status)
		assert.Equal(t, "pay_1", payment.PaymentID)
		borrowRepo.AssertCalled(t, "UpdateStatusIf", ctx, int32(5), domain.BorrowStatusApproved, domain.BorrowStatusActive)
	})

	t.Run("Confirming a paid order is a no-op", func(t *testing.T) {
		paymentRepo, borrowRepo, _, svc := newPaymentFixture(NewMockGateway())
		paid := createdPayment()
		paid.Status = domain.PaymentStatusPaid
		paymentRepo.On("GetByOrderID", ctx, "order_mock_x").Return(paid, nil)

		payment, err := svc.ConfirmPayment(ctx, "order_mock_x", "pay_1", "sig")
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPaid, payment.Status)
		borrowRepo.AssertNotCalled(t, "UpdateStatusIf", ctx, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Bad signature marks the payment failed", func(t *testing.T) {
		gw := NewHTTPGateway(config.PaymentConfig{Provider: "gateway", KeySecret: "secret"})
		paymentRepo, borrowRepo, _, svc := newPaymentFixture(gw)
		paymentRepo.On("GetByOrderID", ctx, "order_mock_x").Return(createdPayment(), nil)
		paymentRepo.On("Update", ctx, mock.MatchedBy(func(p *domain.Payment) bool {
			return p.Status == domain.PaymentStatusFailed
		})).Return(nil)

		_, err := svc.ConfirmPayment(ctx, "order_mock_x", "pay_1", "forged")
		assert.ErrorIs(t, err, domain.ErrValidation)
		borrowRepo.AssertNotCalled(t, "UpdateStatusIf", ctx, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHTTPGateway_Signatures(t *testing.T) {
	gw := NewHTTPGateway(config.PaymentConfig{
		Provider:      "gateway",
		KeySecret:     "key-secret",
		WebhookSecret: "hook-secret",
	})

	sign := func(secret, payload string) string {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte(payload))
		return hex.EncodeToString(mac.Sum(nil))
	}

	t.Run("Valid payment signature", func(t *testing.T) {
		sig := sign("key-secret", "order_1|pay_1")
		assert.NoError(t, gw.VerifySignature("order_1", "pay_1", sig))
	})

	t.Run("Forged payment signature", func(t *testing.T) {
		assert.Error(t, gw.VerifySignature("order_1", "pay_1", "nope"))
	})

	t.Run("Valid webhook signature", func(t *testing.T) {
		body := []byte(`{"event":"payment.captured"}`)
		assert.NoError(t, gw.VerifyWebhookSignature(body, sign("hook-secret", string(body))))
	})

	t.Run("Forged webhook signature", func(t *testing.T) {
		assert.Error(t, gw.VerifyWebhookSignature([]byte("{}"), "nope"))
	})
}

func TestPaymentService_HandleWebhook(t *testing.T) {
	ctx := context.Background()

	t.Run("Captured event marks paid", func(t *testing.T) {
		paymentRepo, borrowRepo, noteRepo, svc := newPaymentFixture(NewMockGateway())
		payment := &domain.Payment{
			ID: 3, BorrowID: 5, OrderID: "order_1",
			Status: domain.PaymentStatusCreated, PayerID: 1, PayeeID: 10,
		}
		paymentRepo.On("GetByOrderID", ctx, "order_1").Return(payment, nil)
		paymentRepo.On("Update", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)
		borrowRepo.On("UpdateStatusIf", ctx, int32(5), domain.BorrowStatusApproved, domain.BorrowStatusActive).Return(true, nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_9","order_id":"order_1"}}}}`)
		assert.NoError(t, svc.HandleWebhook(ctx, "any", body))
		assert.Equal(t, domain.PaymentStatusPaid, payment.Status)
	})

	t.Run("Unknown events are ignored", func(t *testing.T) {
		paymentRepo, _, _, svc := newPaymentFixture(NewMockGateway())
		body := []byte(`{"event":"order.created"}`)
		assert.NoError(t, svc.HandleWebhook(ctx, "any", body))
		paymentRepo.AssertNotCalled(t, "GetByOrderID", ctx, mock.Anything)
	})

	t.Run("Malformed body", func(t *testing.T) {
		_, _, _, svc := newPaymentFixture(NewMockGateway())
		err := svc.HandleWebhook(ctx, "any", []byte("not-json"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
