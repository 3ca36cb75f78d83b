package service

import (
	"context"
	"fmt"

	"borrowhood-backend/internal/domain"
	"borrowhood-backend/internal/logger"
	"borrowhood-backend/internal/repository"
)

type reviewService struct {
	reviewRepo repository.ReviewRepository
	borrowRepo repository.BorrowRepository
	itemRepo   repository.ItemRepository
	trustSvc   TrustScoreService
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	borrowRepo repository.BorrowRepository,
	itemRepo repository.ItemRepository,
	trustSvc TrustScoreService,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		borrowRepo: borrowRepo,
		itemRepo:   itemRepo,
		trustSvc:   trustSvc,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, reviewerID, borrowID, rating int32, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}

	bw, err := s.borrowRepo.GetByID(ctx, borrowID)
	if err != nil {
		return nil, err
	}
	if bw.BorrowerID != reviewerID && bw.LenderID != reviewerID {
		return nil, fmt.Errorf("%w: only the borrower or lender can review this borrow", domain.ErrForbidden)
	}
	if bw.Status != domain.BorrowStatusReturned {
		return nil, fmt.Errorf("%w: reviews are only allowed after the item is returned", domain.ErrInvalidState)
	}

	exists, err := s.reviewRepo.ExistsForBorrowByReviewer(ctx, borrowID, reviewerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: you already reviewed this borrow", domain.ErrConflict)
	}

	// The reviewer's role fixes who the review is about.
	review := &domain.Review{
		BorrowID:   borrowID,
		ItemID:     bw.ItemID,
		ReviewerID: reviewerID,
		Rating:     rating,
		Comment:    comment,
	}
	if reviewerID == bw.BorrowerID {
		review.ReviewType = domain.ReviewTypeLender
		review.RevieweeID = bw.LenderID
	} else {
		review.ReviewType = domain.ReviewTypeBorrower
		review.RevieweeID = bw.BorrowerID
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	// Every review counts toward the item's cached rating.
	avg, count, err := s.reviewRepo.AverageForItem(ctx, bw.ItemID)
	if err != nil {
		logger.Warn("failed to compute item rating", "item_id", bw.ItemID, "error", err)
	} else if err := s.itemRepo.SetRating(ctx, bw.ItemID, avg, count); err != nil {
		logger.Warn("failed to update item rating", "item_id", bw.ItemID, "error", err)
	}

	if _, err := s.trustSvc.Recalculate(ctx, review.RevieweeID); err != nil {
		return nil, fmt.Errorf("recalculating reviewee trust score: %w", err)
	}

	return review, nil
}

func (s *reviewService) ListUserReviews(ctx context.Context, userID int32) ([]domain.Review, float64, error) {
	reviews, err := s.reviewRepo.ListByReviewee(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	avg, _, err := s.reviewRepo.AverageForReviewee(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return reviews, avg, nil
}
