package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"marketplace-availability/internal/domain"
	"marketplace-availability/internal/repository"
)

type MockListingRepo struct {
	mock.Mock
}

func (m *MockListingRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) ListByResource(ctx context.Context, resourceID string) ([]domain.ReservationPeriod, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReservationPeriod), args.Error(1)
}

func (m *MockReservationRepo) GetByID(ctx context.Context, resourceID, id string) (*domain.ReservationPeriod, error) {
	args := m.Called(ctx, resourceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationPeriod), args.Error(1)
}

func (m *MockReservationRepo) Append(ctx context.Context, period *domain.ReservationPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockReservationRepo) UpdateStatus(ctx context.Context, resourceID, id string, status domain.ReservationStatus) error {
	args := m.Called(ctx, resourceID, id, status)
	return args.Error(0)
}

func (m *MockReservationRepo) WithResourceLock(ctx context.Context, resourceID string, fn func(ctx context.Context, repo repository.ReservationRepository) error) error {
	args := m.Called(ctx, resourceID)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

func (m *MockReservationRepo) CompleteEndedBefore(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}
