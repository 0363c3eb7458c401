package jobs

import (
	"time"

	"marketplace-availability/internal/config"
	"marketplace-availability/internal/logger"
	"marketplace-availability/internal/repository"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	reservations repository.ReservationRepository
	config       *config.Config
	now          func() time.Time
}

// NewJobRunner creates a job runner over the reservation store
func NewJobRunner(reservations repository.ReservationRepository, cfg *config.Config) *JobRunner {
	return &JobRunner{
		reservations: reservations,
		config:       cfg,
		now:          time.Now,
	}
}

// Config exposes the configuration the scheduler reads cron specs from.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.CompleteElapsedReservations()
}
