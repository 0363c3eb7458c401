package jobs

import (
	"context"
	"time"

	"marketplace-availability/internal/logger"
)

const completeElapsedTimeout = 5 * time.Minute

// CompleteElapsedReservations closes out accepted bookings whose last day is
// before today, so they stop blocking the calendar and cannot be extended.
func (jr *JobRunner) CompleteElapsedReservations() {
	jr.runWithRecovery("CompleteElapsedReservations", func() {
		ctx, cancel := context.WithTimeout(context.Background(), completeElapsedTimeout)
		defer cancel()

		today := jr.now().UTC()
		n, err := jr.reservations.CompleteEndedBefore(ctx, today)
		if err != nil {
			logger.Error("Failed to complete elapsed reservations", "error", err)
			return
		}

		logger.Info("Completed elapsed reservations", "count", n, "before", today.Format("2006-01-02"))
	})
}
