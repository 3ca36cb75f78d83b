package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"borrowhood-backend/internal/config"
	"borrowhood-backend/internal/domain"
	"borrowhood-backend/internal/logger"
	"borrowhood-backend/internal/repository"
)

// PaymentGateway abstracts the payment provider. One implementation is
// selected at startup from configuration and injected everywhere; nothing
// downstream branches on the provider again.
type PaymentGateway interface {
	Name() string
	CreateOrder(ctx context.Context, amountCents int32, currency, receipt string) (orderID string, err error)
	VerifySignature(orderID, paymentID, signature string) error
	VerifyWebhookSignature(body []byte, signature string) error
}

// NewPaymentGateway builds the gateway named in configuration.
func NewPaymentGateway(cfg config.PaymentConfig) (PaymentGateway, error) {
	switch cfg.Provider {
	case "mock", "":
		return NewMockGateway(), nil
	case "gateway":
		return NewHTTPGateway(cfg), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.Provider)
	}
}

type mockGateway struct{}

// NewMockGateway returns a gateway that approves everything. Used in
// development and tests.
func NewMockGateway() PaymentGateway {
	return mockGateway{}
}

func (mockGateway) Name() string { return "mock" }

func (mockGateway) CreateOrder(_ context.Context, _ int32, _, _ string) (string, error) {
	return "order_mock_" + uuid.NewString(), nil
}

func (mockGateway) VerifySignature(_, _, _ string) error { return nil }

func (mockGateway) VerifyWebhookSignature(_ []byte, _ string) error { return nil }

type httpGateway struct {
	keyID         string
	keySecret     string
	baseURL       string
	webhookSecret string
	client        *http.Client
}

// NewHTTPGateway talks to a Razorpay-style REST provider. Signatures are
// HMAC-SHA256 of "orderID|paymentID" under the key secret; webhook bodies
// are signed under a separate webhook secret.
func NewHTTPGateway(cfg config.PaymentConfig) PaymentGateway {
	return &httpGateway{
		keyID:         cfg.KeyID,
		keySecret:     cfg.KeySecret,
		baseURL:       cfg.BaseURL,
		webhookSecret: cfg.WebhookSecret,
		client:        &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *httpGateway) Name() string { return "gateway" }

func (g *httpGateway) CreateOrder(ctx context.Context, amountCents int32, currency, receipt string) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"amount":   amountCents,
		"currency": currency,
		"receipt":  receipt,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("creating payment order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("payment provider returned %d: %s", resp.StatusCode, body)
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (g *httpGateway) VerifySignature(orderID, paymentID, signature string) error {
	expected := hmacHex(g.keySecret, []byte(orderID+"|"+paymentID))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("%w: payment signature mismatch", domain.ErrValidation)
	}
	return nil
}

func (g *httpGateway) VerifyWebhookSignature(body []byte, signature string) error {
	expected := hmacHex(g.webhookSecret, body)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("%w: webhook signature mismatch", domain.ErrValidation)
	}
	return nil
}

func hmacHex(secret string, data []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	borrowRepo  repository.BorrowRepository
	noteRepo    repository.NotificationRepository
	gateway     PaymentGateway
	currency    string
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	borrowRepo repository.BorrowRepository,
	noteRepo repository.NotificationRepository,
	gateway PaymentGateway,
	currency string,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		borrowRepo:  borrowRepo,
		noteRepo:    noteRepo,
		gateway:     gateway,
		currency:    currency,
	}
}

func (s *paymentService) CreateOrder(ctx context.Context, payerID, borrowID, amountCents int32) (*domain.Payment, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	bw, err := s.borrowRepo.GetByID(ctx, borrowID)
	if err != nil {
		return nil, err
	}
	if bw.BorrowerID != payerID {
		return nil, fmt.Errorf("%w: only the borrower pays for a borrow", domain.ErrForbidden)
	}
	if bw.Status != domain.BorrowStatusApproved {
		return nil, fmt.Errorf("%w: borrow is not awaiting payment", domain.ErrInvalidState)
	}

	receipt := fmt.Sprintf("borrow_%d", borrowID)
	orderID, err := s.gateway.CreateOrder(ctx, amountCents, s.currency, receipt)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		BorrowID:    borrowID,
		OrderID:     orderID,
		Provider:    s.gateway.Name(),
		AmountCents: amountCents,
		Currency:    s.currency,
		Status:      domain.PaymentStatusCreated,
		PayerID:     payerID,
		PayeeID:     bw.LenderID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) ConfirmPayment(ctx context.Context, orderID, paymentID, signature string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if payment.Status == domain.PaymentStatusPaid {
		// Confirmation retries are harmless.
		return payment, nil
	}
	if payment.Status != domain.PaymentStatusCreated {
		return nil, fmt.Errorf("%w: order is %s", domain.ErrInvalidState, payment.Status)
	}
	if err := s.gateway.VerifySignature(orderID, paymentID, signature); err != nil {
		payment.Status = domain.PaymentStatusFailed
		if updErr := s.paymentRepo.Update(ctx, payment); updErr != nil {
			logger.Error("failed to mark payment failed", "order_id", orderID, "error", updErr)
		}
		return nil, err
	}

	payment.PaymentID = paymentID
	payment.Status = domain.PaymentStatusPaid
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	// Payment is what puts the borrow in the borrower's hands.
	swapped, err := s.borrowRepo.UpdateStatusIf(ctx, payment.BorrowID, domain.BorrowStatusApproved, domain.BorrowStatusActive)
	if err != nil {
		return nil, err
	}
	if !swapped {
		logger.Warn("paid borrow was not in approved state", "borrow_id", payment.BorrowID, "order_id", orderID)
	}

	notif := &domain.Notification{
		UserID: payment.PayeeID,
		Type:   domain.NotificationPaymentReceived,
		Data: map[string]string{
			"borrow_id":    fmt.Sprintf("%d", payment.BorrowID),
			"order_id":     payment.OrderID,
			"amount_cents": fmt.Sprintf("%d", payment.AmountCents),
		},
	}
	_ = s.noteRepo.Create(ctx, notif)

	return payment, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, signature string, body []byte) error {
	if err := s.gateway.VerifyWebhookSignature(body, signature); err != nil {
		return err
	}
	var event struct {
		Event   string `json:"event"`
		Payload struct {
			Payment struct {
				Entity struct {
					ID      string `json:"id"`
					OrderID string `json:"order_id"`
				} `json:"entity"`
			} `json:"payment"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: malformed webhook body", domain.ErrValidation)
	}

	switch event.Event {
	case "payment.captured":
		payment, err := s.paymentRepo.GetByOrderID(ctx, event.Payload.Payment.Entity.OrderID)
		if err != nil {
			return err
		}
		if payment.Status == domain.PaymentStatusPaid {
			return nil
		}
		payment.PaymentID = event.Payload.Payment.Entity.ID
		payment.Status = domain.PaymentStatusPaid
		if err := s.paymentRepo.Update(ctx, payment); err != nil {
			return err
		}
		if _, err := s.borrowRepo.UpdateStatusIf(ctx, payment.BorrowID, domain.BorrowStatusApproved, domain.BorrowStatusActive); err != nil {
			return err
		}
		notif := &domain.Notification{
			UserID: payment.PayerID,
			Type:   domain.NotificationPaymentConfirmed,
			Data: map[string]string{
				"order_id": payment.OrderID,
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	case "payment.failed":
		payment, err := s.paymentRepo.GetByOrderID(ctx, event.Payload.Payment.Entity.OrderID)
		if err != nil {
			return err
		}
		if payment.Status == domain.PaymentStatusCreated {
			payment.Status = domain.PaymentStatusFailed
			return s.paymentRepo.Update(ctx, payment)
		}
	default:
		logger.Debug("ignoring webhook event", "event", event.Event)
	}
	return nil
}
