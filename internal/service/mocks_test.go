package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"borrowhood-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) SetTrustScore(ctx context.Context, userID int32, score float64, totalBorrows, totalLends int32) error {
	args := m.Called(ctx, userID, score, totalBorrows, totalLends)
	return args.Error(0)
}
func (m *MockUserRepo) ListNearby(ctx context.Context, lat, lon, radiusKm float64, excludeID int32, limit int32) ([]domain.User, error) {
	args := m.Called(ctx, lat, lon, radiusKm, excludeID, limit)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepo) Update(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockItemRepo) Search(ctx context.Context, category, query string, limit int32) ([]domain.Item, error) {
	args := m.Called(ctx, category, query, limit)
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockItemRepo) ListNearby(ctx context.Context, lat, lon, radiusKm float64, category string, limit int32) ([]domain.Item, error) {
	args := m.Called(ctx, lat, lon, radiusKm, category, limit)
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockItemRepo) UpdateStatusIf(ctx context.Context, id int32, from, to domain.ItemStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockItemRepo) AppendBorrowRequest(ctx context.Context, itemID, borrowID int32) error {
	args := m.Called(ctx, itemID, borrowID)
	return args.Error(0)
}
func (m *MockItemRepo) SetRating(ctx context.Context, itemID int32, rating float64, reviewCount int32) error {
	args := m.Called(ctx, itemID, rating, reviewCount)
	return args.Error(0)
}

// MockBorrowRepo
type MockBorrowRepo struct {
	mock.Mock
}

func (m *MockBorrowRepo) Create(ctx context.Context, borrow *domain.Borrow) error {
	args := m.Called(ctx, borrow)
	return args.Error(0)
}
func (m *MockBorrowRepo) GetByID(ctx context.Context, id int32) (*domain.Borrow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrow), args.Error(1)
}
func (m *MockBorrowRepo) Update(ctx context.Context, borrow *domain.Borrow) error {
	args := m.Called(ctx, borrow)
	return args.Error(0)
}
func (m *MockBorrowRepo) UpdateStatusIf(ctx context.Context, id int32, from, to domain.BorrowStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockBorrowRepo) ListActiveByUser(ctx context.Context, userID int32) ([]domain.Borrow, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Borrow), args.Error(1)
}
func (m *MockBorrowRepo) ListHistoryByUser(ctx context.Context, userID int32) ([]domain.Borrow, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Borrow), args.Error(1)
}
func (m *MockBorrowRepo) ListReceivedByLender(ctx context.Context, lenderID int32) ([]domain.Borrow, error) {
	args := m.Called(ctx, lenderID)
	return args.Get(0).([]domain.Borrow), args.Error(1)
}
func (m *MockBorrowRepo) CountReturnedByBorrower(ctx context.Context, borrowerID int32) (int32, int32, error) {
	args := m.Called(ctx, borrowerID)
	return args.Get(0).(int32), args.Get(1).(int32), args.Error(2)
}
func (m *MockBorrowRepo) CountReturnedByLender(ctx context.Context, lenderID int32) (int32, error) {
	args := m.Called(ctx, lenderID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockBorrowRepo) MarkOverdue(ctx context.Context, asOf time.Time) ([]domain.Borrow, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Borrow), args.Error(1)
}
func (m *MockBorrowRepo) ListByStatus(ctx context.Context, status domain.BorrowStatus) ([]domain.Borrow, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Borrow), args.Error(1)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}
func (m *MockReviewRepo) ExistsForBorrowByReviewer(ctx context.Context, borrowID, reviewerID int32) (bool, error) {
	args := m.Called(ctx, borrowID, reviewerID)
	return args.Bool(0), args.Error(1)
}
func (m *MockReviewRepo) ListByReviewee(ctx context.Context, revieweeID int32) ([]domain.Review, error) {
	args := m.Called(ctx, revieweeID)
	return args.Get(0).([]domain.Review), args.Error(1)
}
func (m *MockReviewRepo) AverageForItem(ctx context.Context, itemID int32) (float64, int32, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(float64), args.Get(1).(int32), args.Error(2)
}
func (m *MockReviewRepo) AverageForReviewee(ctx context.Context, revieweeID int32) (float64, int32, error) {
	args := m.Called(ctx, revieweeID)
	return args.Get(0).(float64), args.Get(1).(int32), args.Error(2)
}

// MockTrustScoreRepo
type MockTrustScoreRepo struct {
	mock.Mock
}

func (m *MockTrustScoreRepo) GetByUser(ctx context.Context, userID int32) (*domain.TrustScore, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrustScore), args.Error(1)
}
func (m *MockTrustScoreRepo) Upsert(ctx context.Context, ts *domain.TrustScore) error {
	args := m.Called(ctx, ts)
	return args.Error(0)
}
func (m *MockTrustScoreRepo) AppendHistory(ctx context.Context, userID int32, entry domain.ScoreHistoryEntry, keep int32) error {
	args := m.Called(ctx, userID, entry, keep)
	return args.Error(0)
}
func (m *MockTrustScoreRepo) ListHistory(ctx context.Context, userID int32, limit int32) ([]domain.ScoreHistoryEntry, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]domain.ScoreHistoryEntry), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) Update(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// MockOtpRepo
type MockOtpRepo struct {
	mock.Mock
}

func (m *MockOtpRepo) Create(ctx context.Context, otp *domain.Otp) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}
func (m *MockOtpRepo) MarkUsed(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}
func (m *MockOtpRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockTrustScoreService
type MockTrustScoreService struct {
	mock.Mock
}

func (m *MockTrustScoreService) Recalculate(ctx context.Context, userID int32) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}
func (m *MockTrustScoreService) GetByUser(ctx context.Context, userID int32) (*domain.TrustScore, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrustScore), args.Error(1)
}

// MockOTPService
type MockOTPService struct {
	mock.Mock
}

func (m *MockOTPService) Issue(ctx context.Context, phone string) (string, error) {
	args := m.Called(ctx, phone)
	return args.String(0), args.Error(1)
}
func (m *MockOTPService) Verify(ctx context.Context, phone, code string) error {
	args := m.Called(ctx, phone, code)
	return args.Error(0)
}
