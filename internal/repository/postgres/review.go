package postgres

import (
	"context"
	"database/sql"
	"time"

	"borrowhood-backend/internal/domain"
	"borrowhood-backend/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `INSERT INTO reviews (borrow_id, item_id, reviewer_id, reviewee_id, rating, comment, review_type, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		rv.BorrowID, rv.ItemID, rv.ReviewerID, rv.RevieweeID, rv.Rating, nullString(rv.Comment), rv.ReviewType, time.Now(),
	).Scan(&rv.ID)
}

func (r *reviewRepository) ExistsForBorrowByReviewer(ctx context.Context, borrowID, reviewerID int32) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM reviews WHERE borrow_id = $1 AND reviewer_id = $2)`,
		borrowID, reviewerID).Scan(&exists)
	return exists, err
}

func (r *reviewRepository) ListByReviewee(ctx context.Context, revieweeID int32) ([]domain.Review, error) {
	query := `SELECT id, borrow_id, item_id, reviewer_id, reviewee_id, rating, comment, review_type, created_on
	          FROM reviews WHERE reviewee_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, revieweeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		var comment sql.NullString
		if err := rows.Scan(&rv.ID, &rv.BorrowID, &rv.ItemID, &rv.ReviewerID, &rv.RevieweeID,
			&rv.Rating, &comment, &rv.ReviewType, &rv.CreatedOn); err != nil {
			return nil, err
		}
		rv.Comment = comment.String
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) AverageForItem(ctx context.Context, itemID int32) (float64, int32, error) {
	var avg float64
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(rating), 0), count(*) FROM reviews WHERE item_id = $1`,
		itemID).Scan(&avg, &count)
	return avg, count, err
}

func (r *reviewRepository) AverageForReviewee(ctx context.Context, revieweeID int32) (float64, int32, error) {
	var avg float64
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(rating), 0), count(*) FROM reviews WHERE reviewee_id = $1`,
		revieweeID).Scan(&avg, &count)
	return avg, count, err
}
