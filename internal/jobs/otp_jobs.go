package jobs

import (
	"context"
	"time"

	"borrowhood-backend/internal/logger"
)

// PurgeExpiredOtps deletes audit rows for codes that can no longer verify.
func (jr *JobRunner) PurgeExpiredOtps() {
	jr.runWithRecovery("PurgeExpiredOtps", func() {
		ctx := context.Background()

		deleted, err := jr.store.OtpRepository.DeleteExpired(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to purge expired OTPs", "error", err)
			return
		}

		logger.Info("Purged expired OTPs", "count", deleted)
	})
}
