package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"borrowhood-backend/internal/domain"
	"borrowhood-backend/internal/logger"
	"borrowhood-backend/internal/repository"
)

// Trust score weighting. Every score is recomputed from scratch, so
// tweaking these only requires a recalculation, not a migration.
const (
	trustBaseScore    = 50.0
	trustBorrowPoints = 5.0
	trustBorrowCap    = 20.0
	trustLendPoints   = 3.0
	trustLendCap      = 15.0
	trustOnTimePoints = 2.0
	trustLatePoints   = 3.0
	trustRatingWeight = 5.0
	trustScoreFloor   = 0.0
	trustScoreCeiling = 100.0
)

type trustScoreService struct {
	trustRepo   repository.TrustScoreRepository
	borrowRepo  repository.BorrowRepository
	reviewRepo  repository.ReviewRepository
	userRepo    repository.UserRepository
	historyKeep int32
}

func NewTrustScoreService(
	trustRepo repository.TrustScoreRepository,
	borrowRepo repository.BorrowRepository,
	reviewRepo repository.ReviewRepository,
	userRepo repository.UserRepository,
	historyKeep int32,
) TrustScoreService {
	return &trustScoreService{
		trustRepo:   trustRepo,
		borrowRepo:  borrowRepo,
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
		historyKeep: historyKeep,
	}
}

func (s *trustScoreService) Recalculate(ctx context.Context, userID int32) (float64, error) {
	borrows, onTime, err := s.borrowRepo.CountReturnedByBorrower(ctx, userID)
	if err != nil {
		return 0, err
	}
	lends, err := s.borrowRepo.CountReturnedByLender(ctx, userID)
	if err != nil {
		return 0, err
	}
	avgRating, _, err := s.reviewRepo.AverageForReviewee(ctx, userID)
	if err != nil {
		return 0, err
	}

	late := borrows - onTime
	score := computeTrustScore(borrows, lends, onTime, late, avgRating)

	ts := &domain.TrustScore{
		UserID:           userID,
		BaseScore:        trustBaseScore,
		CompletedBorrows: borrows,
		CompletedLends:   lends,
		OnTimeReturns:    onTime,
		LateReturns:      late,
		AverageRating:    avgRating,
		LastUpdated:      time.Now(),
	}
	if err := s.trustRepo.Upsert(ctx, ts); err != nil {
		return 0, err
	}
	entry := domain.ScoreHistoryEntry{
		Score:  score,
		Reason: "Automatic recalculation",
		Date:   ts.LastUpdated,
	}
	if err := s.trustRepo.AppendHistory(ctx, userID, entry, s.historyKeep); err != nil {
		logger.Warn("failed to record trust score history", "user_id", userID, "error", err)
	}

	// Mirror the aggregates onto the user row for cheap profile reads.
	if err := s.userRepo.SetTrustScore(ctx, userID, score, borrows, lends); err != nil {
		return 0, fmt.Errorf("updating user trust score: %w", err)
	}

	return score, nil
}

func (s *trustScoreService) GetByUser(ctx context.Context, userID int32) (*domain.TrustScore, error) {
	ts, err := s.trustRepo.GetByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		// A user with no activity sits at the base score.
		return &domain.TrustScore{
			UserID:      userID,
			BaseScore:   trustBaseScore,
			LastUpdated: time.Now(),
		}, nil
	}
	if err != nil {
		return nil, err
	}
	history, err := s.trustRepo.ListHistory(ctx, userID, s.historyKeep)
	if err != nil {
		return nil, err
	}
	ts.ScoreHistory = history
	return ts, nil
}

// computeTrustScore folds a user's lending history into a 0-100 score.
// Borrow and lend contributions are capped so no single habit can carry
// the score; late returns cost more than on-time returns earn.
func computeTrustScore(borrows, lends, onTime, late int32, avgRating float64) float64 {
	score := trustBaseScore
	score += min(float64(borrows)*trustBorrowPoints, trustBorrowCap)
	score += min(float64(lends)*trustLendPoints, trustLendCap)
	score += float64(onTime) * trustOnTimePoints
	score -= float64(late) * trustLatePoints
	score += avgRating * trustRatingWeight

	if score < trustScoreFloor {
		return trustScoreFloor
	}
	if score > trustScoreCeiling {
		return trustScoreCeiling
	}
	return score
}
