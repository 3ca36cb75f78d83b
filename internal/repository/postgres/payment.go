package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"borrowhood-backend/internal/domain"
	"borrowhood-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (borrow_id, order_id, payment_id, provider, amount_cents, currency, status, payer_id, payee_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		p.BorrowID, p.OrderID, nullString(p.PaymentID), p.Provider, p.AmountCents, p.Currency,
		p.Status, p.PayerID, p.PayeeID, now, now,
	).Scan(&p.ID)
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	p := &domain.Payment{}
	var paymentID sql.NullString
	query := `SELECT id, borrow_id, order_id, payment_id, provider, amount_cents, currency, status, payer_id, payee_id, created_on, updated_on
	          FROM payments WHERE order_id = $1`
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(&p.ID, &p.BorrowID, &p.OrderID, &paymentID,
		&p.Provider, &p.AmountCents, &p.Currency, &p.Status, &p.PayerID, &p.PayeeID, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.PaymentID = paymentID.String
	return p, nil
}

func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	query := `UPDATE payments SET payment_id=$1, status=$2, updated_on=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, nullString(p.PaymentID), p.Status, time.Now(), p.ID)
	return err
}
