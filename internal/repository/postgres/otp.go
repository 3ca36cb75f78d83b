package postgres

import (
	"context"
	"database/sql"
	"time"

	"borrowhood-backend/internal/domain"
	"borrowhood-backend/internal/repository"
)

type otpRepository struct {
	db *sql.DB
}

func NewOtpRepository(db *sql.DB) repository.OtpRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Create(ctx context.Context, o *domain.Otp) error {
	query := `INSERT INTO otps (phone, code_hash, user_id, used, expires_at, created_on) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var userID sql.NullInt32
	if o.UserID != nil {
		userID = sql.NullInt32{Int32: *o.UserID, Valid: true}
	}
	return r.db.QueryRowContext(ctx, query, o.Phone, o.CodeHash, userID, o.Used, o.ExpiresAt, time.Now()).Scan(&o.ID)
}

func (r *otpRepository) MarkUsed(ctx context.Context, phone string) error {
	query := `UPDATE otps SET used = true
		WHERE id = (SELECT id FROM otps WHERE phone = $1 AND NOT used ORDER BY created_on DESC LIMIT 1)`
	_, err := r.db.ExecContext(ctx, query, phone)
	return err
}

func (r *otpRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM otps WHERE expires_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
