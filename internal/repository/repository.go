package repository

import (
	"context"
	"time"

	"borrowhood-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// SetTrustScore writes the derived score and completion totals back to
	// the user row. Only the trust score calculator calls this.
	SetTrustScore(ctx context.Context, userID int32, score float64, totalBorrows, totalLends int32) error
	ListNearby(ctx context.Context, lat, lon, radiusKm float64, excludeID int32, limit int32) ([]domain.User, error)
}

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int32) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id int32) error
	Search(ctx context.Context, category, query string, limit int32) ([]domain.Item, error)
	ListNearby(ctx context.Context, lat, lon, radiusKm float64, category string, limit int32) ([]domain.Item, error)
	// UpdateStatusIf performs an atomic compare-and-swap on item.status.
	// It reports false when the item was not in the expected state, which
	// is how concurrent borrow attempts against the same item are serialized.
	UpdateStatusIf(ctx context.Context, id int32, from, to domain.ItemStatus) (bool, error)
	AppendBorrowRequest(ctx context.Context, itemID, borrowID int32) error
	SetRating(ctx context.Context, itemID int32, rating float64, reviewCount int32) error
}

type BorrowRepository interface {
	Create(ctx context.Context, borrow *domain.Borrow) error
	GetByID(ctx context.Context, id int32) (*domain.Borrow, error)
	Update(ctx context.Context, borrow *domain.Borrow) error
	// UpdateStatusIf is the compare-and-swap guard for borrow transitions.
	UpdateStatusIf(ctx context.Context, id int32, from, to domain.BorrowStatus) (bool, error)
	ListActiveByUser(ctx context.Context, userID int32) ([]domain.Borrow, error)
	ListHistoryByUser(ctx context.Context, userID int32) ([]domain.Borrow, error)
	ListReceivedByLender(ctx context.Context, lenderID int32) ([]domain.Borrow, error)
	// CountReturnedByBorrower returns (completed, onTime) counts over the
	// user's returned borrows. On time means actual <= expected return date.
	CountReturnedByBorrower(ctx context.Context, borrowerID int32) (int32, int32, error)
	CountReturnedByLender(ctx context.Context, lenderID int32) (int32, error)
	MarkOverdue(ctx context.Context, asOf time.Time) ([]domain.Borrow, error)
	ListByStatus(ctx context.Context, status domain.BorrowStatus) ([]domain.Borrow, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ExistsForBorrowByReviewer(ctx context.Context, borrowID, reviewerID int32) (bool, error)
	ListByReviewee(ctx context.Context, revieweeID int32) ([]domain.Review, error)
	// AverageForItem recomputes the mean rating over all reviews of an item.
	AverageForItem(ctx context.Context, itemID int32) (float64, int32, error)
	AverageForReviewee(ctx context.Context, revieweeID int32) (float64, int32, error)
}

type TrustScoreRepository interface {
	GetByUser(ctx context.Context, userID int32) (*domain.TrustScore, error)
	// Upsert creates the row lazily on first recalculation, otherwise
	// overwrites the derived fields.
	Upsert(ctx context.Context, ts *domain.TrustScore) error
	// AppendHistory adds one score log entry and prunes entries beyond
	// the retention limit per user.
	AppendHistory(ctx context.Context, userID int32, entry domain.ScoreHistoryEntry, keep int32) error
	ListHistory(ctx context.Context, userID int32, limit int32) ([]domain.ScoreHistoryEntry, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
}

type OtpRepository interface {
	Create(ctx context.Context, otp *domain.Otp) error
	// MarkUsed flags the newest unused audit row for the phone.
	MarkUsed(ctx context.Context, phone string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
