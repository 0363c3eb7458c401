package repository

import (
	"context"
	"time"

	"marketplace-availability/internal/domain"
)

type ReservationRepository interface {
	ListByResource(ctx context.Context, resourceID string) ([]domain.ReservationPeriod, error)
	GetByID(ctx context.Context, resourceID, id string) (*domain.ReservationPeriod, error)
	Append(ctx context.Context, period *domain.ReservationPeriod) error
	UpdateStatus(ctx context.Context, resourceID, id string, status domain.ReservationStatus) error

	// WithResourceLock runs fn while holding the resource's write lock. Reads
	// and writes made through the repository passed to fn see a consistent
	// snapshot, so check-then-append cannot race another writer.
	WithResourceLock(ctx context.Context, resourceID string, fn func(ctx context.Context, repo ReservationRepository) error) error

	// CompleteEndedBefore moves accepted periods whose end date is before day
	// to completed and returns how many changed.
	CompleteEndedBefore(ctx context.Context, day time.Time) (int64, error)
}

type ListingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
}
