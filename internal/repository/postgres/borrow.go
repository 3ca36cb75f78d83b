package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"borrowhood-backend/internal/domain"
	"borrowhood-backend/internal/repository"
)

type borrowRepository struct {
	db *sql.DB
}

func NewBorrowRepository(db *sql.DB) repository.BorrowRepository {
	return &borrowRepository{db: db}
}

const borrowColumns = `id, item_id, borrower_id, lender_id, status, request_date, borrow_date, expected_return_date, actual_return_date,
	approval_status, approved_at, approval_reason, penalty_cents, penalty_reason,
	payment_method, payment_amount_cents, payment_upi, requested_duration_days, notes, return_comment, created_on, updated_on`

func scanBorrow(row interface{ Scan(...any) error }) (*domain.Borrow, error) {
	b := &domain.Borrow{}
	var actualReturn, approvedAt sql.NullTime
	var approvalReason, penaltyReason, paymentUPI, notes, returnComment sql.NullString
	err := row.Scan(&b.ID, &b.ItemID, &b.BorrowerID, &b.LenderID, &b.Status,
		&b.RequestDate, &b.BorrowDate, &b.ExpectedReturnDate, &actualReturn,
		&b.LenderApproval.Status, &approvedAt, &approvalReason,
		&b.Penalty.AmountCents, &penaltyReason,
		&b.Payment.Method, &b.Payment.AmountCents, &paymentUPI,
		&b.RequestedDurationDays, &notes, &returnComment, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if actualReturn.Valid {
		b.ActualReturnDate = &actualReturn.Time
	}
	if approvedAt.Valid {
		b.LenderApproval.ApprovedAt = &approvedAt.Time
	}
	b.LenderApproval.Reason = approvalReason.String
	b.Penalty.Reason = penaltyReason.String
	b.Payment.UPI = paymentUPI.String
	b.Notes = notes.String
	b.ReturnComment = returnComment.String
	return b, nil
}

func (r *borrowRepository) Create(ctx context.Context, b *domain.Borrow) error {
	query := `INSERT INTO borrows (item_id, borrower_id, lender_id, status, request_date, borrow_date, expected_return_date,
	            approval_status, payment_method, payment_amount_cents, payment_upi, requested_duration_days, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		b.ItemID, b.BorrowerID, b.LenderID, b.Status, b.RequestDate, b.BorrowDate, b.ExpectedReturnDate,
		b.LenderApproval.Status, b.Payment.Method, b.Payment.AmountCents, nullString(b.Payment.UPI),
		b.RequestedDurationDays, nullString(b.Notes), now, now,
	).Scan(&b.ID)
}

func (r *borrowRepository) GetByID(ctx context.Context, id int32) (*domain.Borrow, error) {
	query := `SELECT ` + borrowColumns + ` FROM borrows WHERE id = $1`
	b, err := scanBorrow(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

func (r *borrowRepository) Update(ctx context.Context, b *domain.Borrow) error {
	query := `UPDATE borrows SET status=$1, actual_return_date=$2, approval_status=$3, approved_at=$4, approval_reason=$5,
	            penalty_cents=$6, penalty_reason=$7, payment_method=$8, payment_amount_cents=$9, payment_upi=$10,
	            requested_duration_days=$11, return_comment=$12, updated_on=$13
	          WHERE id=$14`
	var actualReturn sql.NullTime
	if b.ActualReturnDate != nil {
		actualReturn = sql.NullTime{Time: *b.ActualReturnDate, Valid: true}
	}
	var approvedAt sql.NullTime
	if b.LenderApproval.ApprovedAt != nil {
		approvedAt = sql.NullTime{Time: *b.LenderApproval.ApprovedAt, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query,
		b.Status, actualReturn, b.LenderApproval.Status, approvedAt, nullString(b.LenderApproval.Reason),
		b.Penalty.AmountCents, nullString(b.Penalty.Reason),
		b.Payment.Method, b.Payment.AmountCents, nullString(b.Payment.UPI),
		b.RequestedDurationDays, nullString(b.ReturnComment), time.Now(), b.ID)
	return err
}

func (r *borrowRepository) UpdateStatusIf(ctx context.Context, id int32, from, to domain.BorrowStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE borrows SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`,
		to, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *borrowRepository) ListActiveByUser(ctx context.Context, userID int32) ([]domain.Borrow, error) {
	query := `SELECT ` + borrowColumns + ` FROM borrows
	          WHERE (borrower_id = $1 OR lender_id = $1) AND status IN ('pending', 'approved', 'active', 'overdue')
	          ORDER BY created_on DESC`
	return r.queryBorrows(ctx, query, userID)
}

func (r *borrowRepository) ListHistoryByUser(ctx context.Context, userID int32) ([]domain.Borrow, error) {
	query := `SELECT ` + borrowColumns + ` FROM borrows
	          WHERE (borrower_id = $1 OR lender_id = $1) AND status IN ('returned', 'rejected', 'cancelled')
	          ORDER BY created_on DESC`
	return r.queryBorrows(ctx, query, userID)
}

func (r *borrowRepository) ListReceivedByLender(ctx context.Context, lenderID int32) ([]domain.Borrow, error) {
	query := `SELECT ` + borrowColumns + ` FROM borrows
	          WHERE lender_id = $1 AND status IN ('pending', 'approved', 'active', 'overdue')
	          ORDER BY created_on DESC`
	return r.queryBorrows(ctx, query, lenderID)
}

func (r *borrowRepository) CountReturnedByBorrower(ctx context.Context, borrowerID int32) (int32, int32, error) {
	query := `SELECT count(*), count(*) FILTER (WHERE actual_return_date <= expected_return_date)
	          FROM borrows WHERE borrower_id = $1 AND status = 'returned'`
	var completed, onTime int32
	err := r.db.QueryRowContext(ctx, query, borrowerID).Scan(&completed, &onTime)
	return completed, onTime, err
}

func (r *borrowRepository) CountReturnedByLender(ctx context.Context, lenderID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM borrows WHERE lender_id = $1 AND status = 'returned'`,
		lenderID).Scan(&count)
	return count, err
}

// MarkOverdue flips active borrows past their expected return date to
// overdue and returns the affected rows so the caller can notify borrowers.
func (r *borrowRepository) MarkOverdue(ctx context.Context, asOf time.Time) ([]domain.Borrow, error) {
	query := `UPDATE borrows SET status='overdue', updated_on=$1
	          WHERE status='active' AND expected_return_date < $2
	          RETURNING ` + borrowColumns
	return r.queryBorrows(ctx, query, time.Now(), asOf)
}

func (r *borrowRepository) ListByStatus(ctx context.Context, status domain.BorrowStatus) ([]domain.Borrow, error) {
	query := `SELECT ` + borrowColumns + ` FROM borrows WHERE status = $1 ORDER BY created_on DESC`
	return r.queryBorrows(ctx, query, status)
}

func (r *borrowRepository) queryBorrows(ctx context.Context, query string, args ...interface{}) ([]domain.Borrow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var borrows []domain.Borrow
	for rows.Next() {
		b, err := scanBorrow(rows)
		if err != nil {
			return nil, err
		}
		borrows = append(borrows, *b)
	}
	return borrows, rows.Err()
}
