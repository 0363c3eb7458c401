package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-availability/internal/config"
	"marketplace-availability/internal/domain"
	"marketplace-availability/internal/repository"
	"marketplace-availability/internal/repository/memory"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestCompleteElapsedReservations(t *testing.T) {
	store := memory.NewReservationStore()
	ctx := context.Background()
	for _, p := range []domain.ReservationPeriod{
		{ID: "ended", ResourceID: "r1", StartDate: day("2025-06-01"), EndDate: day("2025-06-09"), Status: domain.ReservationStatusAccepted},
		{ID: "ends-today", ResourceID: "r1", StartDate: day("2025-06-10"), EndDate: day("2025-06-10"), Status: domain.ReservationStatusAccepted},
		{ID: "never-accepted", ResourceID: "r2", StartDate: day("2025-06-01"), EndDate: day("2025-06-02"), Status: domain.ReservationStatusPending},
	} {
		p := p
		require.NoError(t, store.Append(ctx, &p))
	}

	jr := NewJobRunner(store, &config.Config{})
	jr.now = func() time.Time { return time.Date(2025, 6, 10, 2, 0, 0, 0, time.UTC) }
	jr.RunAllNightlyJobs()

	status := func(resourceID, id string) domain.ReservationStatus {
		p, err := store.GetByID(ctx, resourceID, id)
		require.NoError(t, err)
		return p.Status
	}
	assert.Equal(t, domain.ReservationStatusCompleted, status("r1", "ended"))
	assert.Equal(t, domain.ReservationStatusAccepted, status("r1", "ends-today"))
	assert.Equal(t, domain.ReservationStatusPending, status("r2", "never-accepted"))
}

type panickingRepo struct {
	repository.ReservationRepository
}

func (panickingRepo) CompleteEndedBefore(ctx context.Context, day time.Time) (int64, error) {
	panic("connection pool exhausted")
}

func TestCompleteElapsedReservations_RecoversFromPanic(t *testing.T) {
	jr := NewJobRunner(panickingRepo{}, &config.Config{})
	assert.NotPanics(t, jr.CompleteElapsedReservations)
}
