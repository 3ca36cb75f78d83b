package postgres

import (
	"database/sql"

	"borrowhood-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ItemRepository
	repository.BorrowRepository
	repository.ReviewRepository
	repository.TrustScoreRepository
	repository.NotificationRepository
	repository.PaymentRepository
	repository.OtpRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		ItemRepository:         NewItemRepository(db),
		BorrowRepository:       NewBorrowRepository(db),
		ReviewRepository:       NewReviewRepository(db),
		TrustScoreRepository:   NewTrustScoreRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		OtpRepository:          NewOtpRepository(db),
	}
}
