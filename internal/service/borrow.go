package service

import (
	"context"
	"fmt"
	"time"

	"borrowhood-backend/internal/config"
	"borrowhood-backend/internal/domain"
	"borrowhood-backend/internal/logger"
	"borrowhood-backend/internal/repository"
	"borrowhood-backend/internal/utils"
)

type borrowService struct {
	borrowRepo repository.BorrowRepository
	itemRepo   repository.ItemRepository
	userRepo   repository.UserRepository
	noteRepo   repository.NotificationRepository
	trustSvc   TrustScoreService
	otpSvc     OTPService
	penalty    config.PenaltyConfig
}

func NewBorrowService(
	borrowRepo repository.BorrowRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	trustSvc TrustScoreService,
	otpSvc OTPService,
	penalty config.PenaltyConfig,
) BorrowService {
	return &borrowService{
		borrowRepo: borrowRepo,
		itemRepo:   itemRepo,
		userRepo:   userRepo,
		noteRepo:   noteRepo,
		trustSvc:   trustSvc,
		otpSvc:     otpSvc,
		penalty:    penalty,
	}
}

func (s *borrowService) CreateBorrowRequest(ctx context.Context, borrowerID int32, in CreateBorrowInput) (*domain.Borrow, error) {
	item, err := s.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID == borrowerID {
		return nil, fmt.Errorf("%w: cannot borrow your own item", domain.ErrForbidden)
	}
	if item.Status != domain.ItemStatusAvailable {
		return nil, fmt.Errorf("%w: item is not available", domain.ErrInvalidState)
	}

	now := time.Now()
	borrowDate := now
	if in.BorrowDate != nil {
		borrowDate = time.Unix(*in.BorrowDate, 0)
	}

	durationDays := in.RequestedDurationDays
	if durationDays <= 0 {
		durationDays = item.MaxBorrowDays
	}
	if item.MaxBorrowDays > 0 && durationDays > item.MaxBorrowDays {
		return nil, fmt.Errorf("%w: requested duration exceeds the item limit of %d days", domain.ErrValidation, item.MaxBorrowDays)
	}

	expectedReturn := borrowDate.AddDate(0, 0, int(durationDays))
	if in.ExpectedReturnDate != nil {
		expectedReturn = time.Unix(*in.ExpectedReturnDate, 0)
	}
	if !expectedReturn.After(borrowDate) {
		return nil, fmt.Errorf("%w: expected return date must be after the borrow date", domain.ErrValidation)
	}

	payment := in.Payment
	if payment.Method == "" {
		payment.Method = domain.PaymentMethodCash
	}

	borrow := &domain.Borrow{
		ItemID:                item.ID,
		BorrowerID:            borrowerID,
		LenderID:              item.OwnerID,
		Status:                domain.BorrowStatusPending,
		RequestDate:           now,
		BorrowDate:            borrowDate,
		ExpectedReturnDate:    expectedReturn,
		LenderApproval:        domain.LenderApproval{Status: domain.ApprovalStatusPending},
		Payment:               payment,
		RequestedDurationDays: durationDays,
		Notes:                 in.Notes,
	}
	if err := s.borrowRepo.Create(ctx, borrow); err != nil {
		return nil, err
	}
	// The item stays available until the lender approves; only track the
	// open request against it.
	if err := s.itemRepo.AppendBorrowRequest(ctx, item.ID, borrow.ID); err != nil {
		logger.Warn("failed to link borrow request to item", "item_id", item.ID, "borrow_id", borrow.ID, "error", err)
	}

	borrower, _ := s.userRepo.GetByID(ctx, borrowerID)
	if borrower != nil {
		notif := &domain.Notification{
			UserID: item.OwnerID,
			Type:   domain.NotificationBorrowRequest,
			Data: map[string]string{
				"borrow_id":     fmt.Sprintf("%d", borrow.ID),
				"item_name":     item.Name,
				"borrower_name": borrower.Name,
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}

	return borrow, nil
}

func (s *borrowService) ApproveBorrowRequest(ctx context.Context, lenderID, borrowID int32, in ApprovalInput) (*domain.Borrow, error) {
	bw, err := s.borrowRepo.GetByID(ctx, borrowID)
	if err != nil {
		return nil, err
	}
	if bw.LenderID != lenderID {
		return nil, fmt.Errorf("%w: only the lender can decide this request", domain.ErrForbidden)
	}
	if bw.Status != domain.BorrowStatusPending {
		return nil, fmt.Errorf("%w: request is not pending", domain.ErrInvalidState)
	}

	now := time.Now()

	if !in.Approved {
		bw.Status = domain.BorrowStatusRejected
		bw.LenderApproval = domain.LenderApproval{
			Status:     domain.ApprovalStatusRejected,
			ApprovedAt: &now,
			Reason:     in.Reason,
		}
		if err := s.borrowRepo.Update(ctx, bw); err != nil {
			return nil, err
		}
		s.notifyDecision(ctx, bw, domain.NotificationBorrowRejected, in.Reason)
		return bw, nil
	}

	// Lock the item before committing the approval. A concurrent approval
	// of another pending request for the same item loses this swap and
	// fails with a state conflict.
	locked, err := s.itemRepo.UpdateStatusIf(ctx, bw.ItemID, domain.ItemStatusAvailable, domain.ItemStatusBorrowed)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, fmt.Errorf("%w: item is no longer available", domain.ErrInvalidState)
	}

	bw.Status = domain.BorrowStatusApproved
	bw.LenderApproval = domain.LenderApproval{
		Status:     domain.ApprovalStatusApproved,
		ApprovedAt: &now,
		Reason:     in.Reason,
	}
	if in.ApprovedDurationDays > 0 {
		bw.RequestedDurationDays = in.ApprovedDurationDays
		bw.ExpectedReturnDate = bw.BorrowDate.AddDate(0, 0, int(in.ApprovedDurationDays))
	}
	if in.ApprovedPayment != nil {
		bw.Payment = *in.ApprovedPayment
	}
	if err := s.borrowRepo.Update(ctx, bw); err != nil {
		// Hand the item back so it is not stranded in borrowed state.
		if _, relErr := s.itemRepo.UpdateStatusIf(ctx, bw.ItemID, domain.ItemStatusBorrowed, domain.ItemStatusAvailable); relErr != nil {
			logger.Error("failed to release item after approval error", "item_id", bw.ItemID, "error", relErr)
		}
		return nil, err
	}

	// Issue a pickup code so the borrower can prove the handoff.
	borrower, _ := s.userRepo.GetByID(ctx, bw.BorrowerID)
	if borrower != nil && s.otpSvc != nil {
		if _, otpErr := s.otpSvc.Issue(ctx, borrower.Phone); otpErr != nil {
			logger.Warn("failed to issue pickup code", "borrow_id", bw.ID, "error", otpErr)
		}
	}

	s.notifyDecision(ctx, bw, domain.NotificationBorrowApproved, in.Reason)
	return bw, nil
}

func (s *borrowService) CancelBorrowRequest(ctx context.Context, borrowerID, borrowID int32, reason string) (*domain.Borrow, error) {
	bw, err := s.borrowRepo.GetByID(ctx, borrowID)
	if err != nil {
		return nil, err
	}
	if bw.BorrowerID != borrowerID {
		return nil, fmt.Errorf("%w: only the borrower can cancel this request", domain.ErrForbidden)
	}
	if bw.Status != domain.BorrowStatusPending && bw.Status != domain.BorrowStatusApproved {
		return nil, fmt.Errorf("%w: only pending or approved requests can be cancelled", domain.ErrInvalidState)
	}

	wasApproved := bw.Status == domain.BorrowStatusApproved
	bw.Status = domain.BorrowStatusCancelled
	if reason != "" {
		bw.Notes = reason
	}
	if err := s.borrowRepo.Update(ctx, bw); err != nil {
		return nil, err
	}
	if wasApproved {
		if _, err := s.itemRepo.UpdateStatusIf(ctx, bw.ItemID, domain.ItemStatusBorrowed, domain.ItemStatusAvailable); err != nil {
			logger.Error("failed to release item after cancellation", "item_id", bw.ItemID, "error", err)
		}
	}

	s.notifyDecision(ctx, bw, domain.NotificationBorrowCancelled, reason)
	return bw, nil
}

func (s *borrowService) MarkReturned(ctx context.Context, actorID, borrowID int32, comment string) (*domain.Borrow, error) {
	bw, err := s.borrowRepo.GetByID(ctx, borrowID)
	if err != nil {
		return nil, err
	}
	if bw.BorrowerID != actorID && bw.LenderID != actorID {
		return nil, fmt.Errorf("%w: only the borrower or lender can record a return", domain.ErrForbidden)
	}
	switch bw.Status {
	case domain.BorrowStatusApproved, domain.BorrowStatusActive, domain.BorrowStatusOverdue:
	default:
		return nil, fmt.Errorf("%w: borrow is not out", domain.ErrInvalidState)
	}

	now := time.Now()
	bw.Status = domain.BorrowStatusReturned
	bw.ActualReturnDate = &now
	bw.ReturnComment = comment

	if pb := utils.CalculatePenalty(bw.ExpectedReturnDate, now, s.penalty.PerDayCents); pb.DaysLate > 0 {
		bw.Penalty = domain.Penalty{
			AmountCents: pb.TotalCents,
			Reason:      pb.Reason,
		}
	}

	if err := s.borrowRepo.Update(ctx, bw); err != nil {
		return nil, err
	}
	if _, err := s.itemRepo.UpdateStatusIf(ctx, bw.ItemID, domain.ItemStatusBorrowed, domain.ItemStatusAvailable); err != nil {
		logger.Error("failed to release item after return", "item_id", bw.ItemID, "error", err)
	}

	// Returns feed directly into both parties' standing.
	if _, err := s.trustSvc.Recalculate(ctx, bw.BorrowerID); err != nil {
		return nil, fmt.Errorf("recalculating borrower trust score: %w", err)
	}
	if _, err := s.trustSvc.Recalculate(ctx, bw.LenderID); err != nil {
		return nil, fmt.Errorf("recalculating lender trust score: %w", err)
	}

	return bw, nil
}

func (s *borrowService) GetBorrow(ctx context.Context, userID, borrowID int32) (*domain.Borrow, error) {
	bw, err := s.borrowRepo.GetByID(ctx, borrowID)
	if err != nil {
		return nil, err
	}
	if bw.BorrowerID != userID && bw.LenderID != userID {
		return nil, fmt.Errorf("%w: not a party to this borrow", domain.ErrForbidden)
	}
	return bw, nil
}

func (s *borrowService) ListActiveBorrows(ctx context.Context, userID int32) ([]domain.Borrow, error) {
	return s.borrowRepo.ListActiveByUser(ctx, userID)
}

func (s *borrowService) ListBorrowHistory(ctx context.Context, userID int32) ([]domain.Borrow, error) {
	return s.borrowRepo.ListHistoryByUser(ctx, userID)
}

func (s *borrowService) ListReceivedRequests(ctx context.Context, lenderID int32) ([]domain.Borrow, error) {
	return s.borrowRepo.ListReceivedByLender(ctx, lenderID)
}

// notifyDecision tells the borrower how the lender decided. Delivery
// failures never fail the decision itself.
func (s *borrowService) notifyDecision(ctx context.Context, bw *domain.Borrow, notifType string, reason string) {
	item, _ := s.itemRepo.GetByID(ctx, bw.ItemID)
	data := map[string]string{
		"borrow_id": fmt.Sprintf("%d", bw.ID),
	}
	if item != nil {
		data["item_name"] = item.Name
	}
	if reason != "" {
		data["reason"] = reason
	}
	target := bw.BorrowerID
	if notifType == domain.NotificationBorrowCancelled {
		target = bw.LenderID
	}
	notif := &domain.Notification{
		UserID: target,
		Type:   notifType,
		Data:   data,
	}
	_ = s.noteRepo.Create(ctx, notif)
}
