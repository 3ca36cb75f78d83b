package service

import (
	"context"

	"borrowhood-backend/internal/domain"
)

type AuthService interface {
	// RequestOTP issues a one-time code for the phone. The returned code is
	// only surfaced to clients when demo mode is enabled.
	RequestOTP(ctx context.Context, phone string) (string, error)
	// VerifyOTP consumes the code and signs the user in, creating the
	// account on first login. Returns the user and a signed access token.
	VerifyOTP(ctx context.Context, phone, code, name, upi string, location *domain.Location) (*domain.User, string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, name, email, upi string, location *domain.Location) (*domain.User, error)
	GetStats(ctx context.Context, userID int32) (*UserStats, error)
	ListNearbyUsers(ctx context.Context, userID int32, lat, lon, radiusKm float64) ([]domain.User, error)
}

// UserStats is the dashboard summary for a user.
type UserStats struct {
	Name         string  `json:"name"`
	TrustScore   float64 `json:"trust_score"`
	TotalBorrows int32   `json:"total_borrows"`
	TotalLends   int32   `json:"total_lends"`
	IsVerified   bool    `json:"is_verified"`
}

type ItemService interface {
	AddItem(ctx context.Context, item *domain.Item) error
	GetItem(ctx context.Context, id int32) (*domain.Item, error)
	UpdateItem(ctx context.Context, ownerID, itemID int32, description string, condition domain.ItemCondition, status domain.ItemStatus, maxBorrowDays int32) (*domain.Item, error)
	DeleteItem(ctx context.Context, ownerID, itemID int32) error
	SearchItems(ctx context.Context, category, query string, limit int32) ([]domain.Item, error)
	NearbyItems(ctx context.Context, lat, lon, radiusKm float64, category string, limit int32) ([]domain.Item, error)
}

// CreateBorrowInput carries the borrower's request parameters. Zero values
// fall back to defaults derived from the item (return date from
// max_borrow_days, payment method cash).
type CreateBorrowInput struct {
	ItemID                int32
	BorrowDate            *int64 // unix seconds, optional
	ExpectedReturnDate    *int64 // unix seconds, optional
	RequestedDurationDays int32
	Notes                 string
	Payment               domain.PaymentTerms
}

// ApprovalInput carries the lender's decision, optionally overriding the
// requested duration or payment terms as a counter-proposal.
type ApprovalInput struct {
	Approved             bool
	Reason               string
	ApprovedDurationDays int32
	ApprovedPayment      *domain.PaymentTerms
}

type BorrowService interface {
	CreateBorrowRequest(ctx context.Context, borrowerID int32, in CreateBorrowInput) (*domain.Borrow, error)
	ApproveBorrowRequest(ctx context.Context, lenderID, borrowID int32, in ApprovalInput) (*domain.Borrow, error)
	CancelBorrowRequest(ctx context.Context, borrowerID, borrowID int32, reason string) (*domain.Borrow, error)
	MarkReturned(ctx context.Context, actorID, borrowID int32, comment string) (*domain.Borrow, error)
	GetBorrow(ctx context.Context, userID, borrowID int32) (*domain.Borrow, error)
	ListActiveBorrows(ctx context.Context, userID int32) ([]domain.Borrow, error)
	ListBorrowHistory(ctx context.Context, userID int32) ([]domain.Borrow, error)
	ListReceivedRequests(ctx context.Context, lenderID int32) ([]domain.Borrow, error)
}

type TrustScoreService interface {
	// Recalculate recomputes the user's trust score from scratch over
	// their returned borrows and received reviews, persists the result
	// and returns the new score. Idempotent.
	Recalculate(ctx context.Context, userID int32) (float64, error)
	GetByUser(ctx context.Context, userID int32) (*domain.TrustScore, error)
}

type ReviewService interface {
	CreateReview(ctx context.Context, reviewerID, borrowID, rating int32, comment string) (*domain.Review, error)
	ListUserReviews(ctx context.Context, userID int32) ([]domain.Review, float64, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

// OTPService is the verification sink. Codes are single use and expire
// after the configured window; a used or expired code never verifies twice.
type OTPService interface {
	Issue(ctx context.Context, phone string) (string, error)
	Verify(ctx context.Context, phone, code string) error
}

type PaymentService interface {
	CreateOrder(ctx context.Context, payerID, borrowID, amountCents int32) (*domain.Payment, error)
	// ConfirmPayment verifies the gateway signature, marks the order paid
	// and transitions the borrow to active.
	ConfirmPayment(ctx context.Context, orderID, paymentID, signature string) (*domain.Payment, error)
	HandleWebhook(ctx context.Context, signature string, body []byte) error
}
