package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"borrowhood-backend/internal/domain"
	"borrowhood-backend/internal/repository"
)

type trustScoreRepository struct {
	db *sql.DB
}

func NewTrustScoreRepository(db *sql.DB) repository.TrustScoreRepository {
	return &trustScoreRepository{db: db}
}

func (r *trustScoreRepository) GetByUser(ctx context.Context, userID int32) (*domain.TrustScore, error) {
	ts := &domain.TrustScore{}
	query := `SELECT id, user_id, base_score, completed_borrows, completed_lends, on_time_returns, late_returns, average_rating, last_updated
	          FROM trust_scores WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&ts.ID, &ts.UserID, &ts.BaseScore,
		&ts.CompletedBorrows, &ts.CompletedLends, &ts.OnTimeReturns, &ts.LateReturns, &ts.AverageRating, &ts.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ts, nil
}

func (r *trustScoreRepository) Upsert(ctx context.Context, ts *domain.TrustScore) error {
	query := `INSERT INTO trust_scores (user_id, base_score, completed_borrows, completed_lends, on_time_returns, late_returns, average_rating, last_updated)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (user_id) DO UPDATE SET
	            base_score=EXCLUDED.base_score, completed_borrows=EXCLUDED.completed_borrows,
	            completed_lends=EXCLUDED.completed_lends, on_time_returns=EXCLUDED.on_time_returns,
	            late_returns=EXCLUDED.late_returns, average_rating=EXCLUDED.average_rating,
	            last_updated=EXCLUDED.last_updated
	          RETURNING id`
	ts.LastUpdated = time.Now()
	return r.db.QueryRowContext(ctx, query, ts.UserID, ts.BaseScore, ts.CompletedBorrows, ts.CompletedLends,
		ts.OnTimeReturns, ts.LateReturns, ts.AverageRating, ts.LastUpdated).Scan(&ts.ID)
}

// AppendHistory inserts one score log entry and prunes everything older
// than the newest `keep` entries for that user.
func (r *trustScoreRepository) AppendHistory(ctx context.Context, userID int32, entry domain.ScoreHistoryEntry, keep int32) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO trust_score_history (user_id, score, reason, recorded_on) VALUES ($1, $2, $3, $4)`,
		userID, entry.Score, entry.Reason, entry.Date)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`DELETE FROM trust_score_history WHERE user_id = $1 AND id NOT IN (
		   SELECT id FROM trust_score_history WHERE user_id = $1 ORDER BY recorded_on DESC, id DESC LIMIT $2)`,
		userID, keep)
	return err
}

func (r *trustScoreRepository) ListHistory(ctx context.Context, userID int32, limit int32) ([]domain.ScoreHistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT score, reason, recorded_on FROM trust_score_history WHERE user_id = $1 ORDER BY recorded_on DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ScoreHistoryEntry
	for rows.Next() {
		var e domain.ScoreHistoryEntry
		if err := rows.Scan(&e.Score, &e.Reason, &e.Date); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
