package jobs

import (
	"context"
	"fmt"
	"time"

	"borrowhood-backend/internal/domain"
	"borrowhood-backend/internal/logger"
)

// MarkOverdueBorrows flips active borrows past their expected return date
// to overdue and notifies both parties. Overdue borrows can still be
// returned; the late penalty is assessed at return time.
func (jr *JobRunner) MarkOverdueBorrows() {
	jr.runWithRecovery("MarkOverdueBorrows", func() {
		ctx := context.Background()

		overdue, err := jr.store.BorrowRepository.MarkOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to mark overdue borrows", "error", err)
			return
		}

		for _, bw := range overdue {
			daysLate := int32(time.Since(bw.ExpectedReturnDate).Hours() / 24)
			data := map[string]string{
				"borrow_id": fmt.Sprintf("%d", bw.ID),
				"days_late": fmt.Sprintf("%d", daysLate),
			}
			for _, userID := range []int32{bw.BorrowerID, bw.LenderID} {
				notif := &domain.Notification{
					UserID: userID,
					Type:   domain.NotificationBorrowOverdue,
					Data:   data,
				}
				if err := jr.store.NotificationRepository.Create(ctx, notif); err != nil {
					logger.Error("Failed to create overdue notification", "borrow_id", bw.ID, "user_id", userID, "error", err)
				}
			}

			// Going overdue dents the borrower's standing right away.
			if _, err := jr.services.TrustScore.Recalculate(ctx, bw.BorrowerID); err != nil {
				logger.Error("Failed to recalculate trust score for overdue borrower", "user_id", bw.BorrowerID, "error", err)
			}
		}

		logger.Info("Marked borrows as overdue", "count", len(overdue))
	})
}

// SendOverdueReminders re-notifies borrowers who still hold an overdue item.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		overdue, err := jr.store.BorrowRepository.ListByStatus(ctx, domain.BorrowStatusOverdue)
		if err != nil {
			logger.Error("Failed to list overdue borrows", "error", err)
			return
		}

		now := time.Now()
		count := 0
		for _, bw := range overdue {
			daysLate := int32(now.Sub(bw.ExpectedReturnDate).Hours() / 24)
			notif := &domain.Notification{
				UserID: bw.BorrowerID,
				Type:   domain.NotificationBorrowOverdue,
				Data: map[string]string{
					"borrow_id": fmt.Sprintf("%d", bw.ID),
					"days_late": fmt.Sprintf("%d", daysLate),
					"reminder":  "true",
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, notif); err != nil {
				logger.Error("Failed to create overdue reminder", "borrow_id", bw.ID, "error", err)
				continue
			}
			count++
		}

		logger.Info("Sent overdue reminders", "count", count)
	})
}
