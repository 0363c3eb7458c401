package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"marketplace-availability/internal/availability"
	"marketplace-availability/internal/domain"
	"marketplace-availability/internal/geo"
	"marketplace-availability/internal/logger"
	"marketplace-availability/internal/repository"
)

type bookingService struct {
	reservations repository.ReservationRepository
	listings     repository.ListingRepository
	clock        Clock
	validator    *availability.Validator
	maxSpanDays  int
}

// BookingOption customizes a booking service.
type BookingOption func(*bookingService)

// WithMaxSpanDays caps the inclusive length of any range the service books,
// checks, extends or quotes. Zero or less removes the cap.
func WithMaxSpanDays(days int) BookingOption {
	return func(s *bookingService) {
		s.maxSpanDays = days
	}
}

func NewBookingService(reservations repository.ReservationRepository, listings repository.ListingRepository, clock Clock, opts ...BookingOption) BookingService {
	if clock == nil {
		clock = time.Now
	}
	s := &bookingService{
		reservations: reservations,
		listings:     listings,
		clock:        clock,
		validator:    availability.NewValidator(clock),
		maxSpanDays:  DefaultMaxSpanDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// checkSpan rejects ranges longer than the configured cap.
func (s *bookingService) checkSpan(r availability.DateRange) error {
	if s.maxSpanDays > 0 && r.Days() > s.maxSpanDays {
		return fmt.Errorf("%w: %s spans %d days, limit is %d", availability.ErrInvalidRange, r, r.Days(), s.maxSpanDays)
	}
	return nil
}

func (s *bookingService) ListReservations(ctx context.Context, resourceID string) ([]domain.ReservationPeriod, error) {
	return s.reservations.ListByResource(ctx, resourceID)
}

func (s *bookingService) OccupiedDates(ctx context.Context, resourceID string, statuses []domain.ReservationStatus) ([]availability.Date, error) {
	periods, err := s.reservations.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	return availability.OccupiedDates(periods, statuses...).Sorted(), nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, resourceID string, r availability.DateRange, blockPast bool, maxDate *availability.Date) (bool, error) {
	if err := s.checkSpan(r); err != nil {
		return false, err
	}
	periods, err := s.reservations.ListByResource(ctx, resourceID)
	if err != nil {
		return false, err
	}
	bounds := &availability.Bounds{}
	if blockPast {
		bounds = availability.BlockPast(s.clock())
	}
	bounds.Max = maxDate
	return availability.IsRangeAvailable(r, availability.OccupiedDatesWithin(periods, r), bounds), nil
}

func (s *bookingService) AppendReservation(ctx context.Context, period *domain.ReservationPeriod) (*domain.ReservationPeriod, error) {
	logger.EnterMethod("bookingService.AppendReservation", "resourceID", period.ResourceID)

	created, err := s.prepareReservation(period)
	if err == nil {
		err = s.reservations.WithResourceLock(ctx, period.ResourceID, func(ctx context.Context, repo repository.ReservationRepository) error {
			periods, err := repo.ListByResource(ctx, period.ResourceID)
			if err != nil {
				return err
			}
			r := availability.PeriodRange(*created)
			for _, other := range availability.BlockingRanges(periods, "") {
				if r.Overlaps(other) {
					return fmt.Errorf("%w: %s overlaps %s", domain.ErrReservationConflict, r, other)
				}
			}
			return repo.Append(ctx, created)
		})
	}
	if err != nil {
		logger.ExitMethodWithError("bookingService.AppendReservation", err, "resourceID", period.ResourceID)
		return nil, err
	}

	logger.ExitMethod("bookingService.AppendReservation", "resourceID", created.ResourceID, "reservationID", created.ID)
	return created, nil
}

// prepareReservation validates period and returns the row to store, with a
// fresh id, whole-day dates and timestamps.
func (s *bookingService) prepareReservation(period *domain.ReservationPeriod) (*domain.ReservationPeriod, error) {
	if period.ResourceID == "" {
		return nil, fmt.Errorf("%w: resource id is required", domain.ErrInvalidInput)
	}
	if period.Status == "" {
		period.Status = domain.ReservationStatusPending
	}
	if !period.Status.Blocks() {
		return nil, fmt.Errorf("%w: new reservations must be pending or accepted", domain.ErrInvalidInput)
	}

	r := availability.PeriodRange(*period)
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %s", availability.ErrInvalidRange, r)
	}
	now := s.clock()
	today := availability.DateOf(now)
	if r.Start.Before(today) {
		return nil, fmt.Errorf("%w: %s starts before %s", availability.ErrInvalidRange, r, today)
	}
	if err := s.checkSpan(r); err != nil {
		return nil, err
	}

	created := *period
	created.ID = uuid.NewString()
	created.StartDate = r.Start.Time(time.UTC)
	created.EndDate = r.End.Time(time.UTC)
	created.CreatedOn = now
	created.UpdatedOn = now
	return &created, nil
}

func (s *bookingService) UpdateReservationStatus(ctx context.Context, resourceID, reservationID string, next domain.ReservationStatus) (*domain.ReservationPeriod, error) {
	logger.EnterMethod("bookingService.UpdateReservationStatus", "reservationID", reservationID, "next", next)

	var updated *domain.ReservationPeriod
	err := s.reservations.WithResourceLock(ctx, resourceID, func(ctx context.Context, repo repository.ReservationRepository) error {
		p, err := repo.GetByID(ctx, resourceID, reservationID)
		if err != nil {
			return err
		}
		if !p.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatusTransition, p.Status, next)
		}

		if next == domain.ReservationStatusAccepted {
			periods, err := repo.ListByResource(ctx, resourceID)
			if err != nil {
				return err
			}
			r := availability.PeriodRange(*p)
			for _, other := range availability.BlockingRanges(periods, p.ID) {
				if r.Overlaps(other) {
					return fmt.Errorf("%w: %s overlaps %s", domain.ErrReservationConflict, r, other)
				}
			}
		}

		if err := repo.UpdateStatus(ctx, resourceID, reservationID, next); err != nil {
			return err
		}
		p.Status = next
		p.UpdatedOn = s.clock()
		updated = p
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("bookingService.UpdateReservationStatus", err, "reservationID", reservationID)
		return nil, err
	}

	logger.ExitMethod("bookingService.UpdateReservationStatus", "reservationID", reservationID, "status", updated.Status)
	return updated, nil
}

// RequestExtension checks proposed against the accepted booking it extends and
// every other blocking booking on the resource. A rejected extension is not an
// error; the reason travels in the returned quote.
func (s *bookingService) RequestExtension(ctx context.Context, resourceID, reservationID string, proposed availability.DateRange) (*ExtensionQuote, error) {
	logger.EnterMethod("bookingService.RequestExtension", "reservationID", reservationID, "range", proposed.String())

	quote, err := s.quoteExtension(ctx, resourceID, reservationID, proposed)
	if err != nil {
		logger.ExitMethodWithError("bookingService.RequestExtension", err, "reservationID", reservationID)
		return nil, err
	}
	if !quote.Result.Valid {
		logger.ExitMethod("bookingService.RequestExtension", "reservationID", reservationID, "reason", quote.Result.Reason)
		return quote, nil
	}

	logger.ExitMethod("bookingService.RequestExtension", "reservationID", reservationID, "totalCents", quote.TotalCents)
	return quote, nil
}

func (s *bookingService) quoteExtension(ctx context.Context, resourceID, reservationID string, proposed availability.DateRange) (*ExtensionQuote, error) {
	if err := s.checkSpan(proposed); err != nil {
		return nil, err
	}
	base, err := s.reservations.GetByID(ctx, resourceID, reservationID)
	if err != nil {
		return nil, err
	}
	if base.Status != domain.ReservationStatusAccepted {
		return nil, fmt.Errorf("reservation %s is %s: %w", reservationID, base.Status, domain.ErrBookingNotConfirmed)
	}

	periods, err := s.reservations.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	conflicts := availability.BlockingRanges(periods, base.ID)
	result := s.validator.ValidateExtension(proposed, availability.DateOf(base.EndDate), conflicts)

	quote := &ExtensionQuote{ReservationID: reservationID, Range: proposed, Result: result}
	if !result.Valid {
		return quote, nil
	}

	listing, err := s.listings.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	total, err := availability.ExtensionTotal(listing.DailyPriceCents, proposed)
	if err != nil {
		return nil, err
	}
	quote.Days = proposed.Days()
	quote.TotalCents = total
	return quote, nil
}

func (s *bookingService) QuoteBooking(ctx context.Context, resourceID string, r availability.DateRange) (*availability.Quote, error) {
	if err := s.checkSpan(r); err != nil {
		return nil, err
	}
	listing, err := s.listings.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	q, err := availability.QuoteRental(availability.PriceSnapshot{
		DailyPriceCents:   listing.DailyPriceCents,
		WeeklyPriceCents:  listing.WeeklyPriceCents,
		MonthlyPriceCents: listing.MonthlyPriceCents,
	}, r)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListingDistance measures from origin to the listing's coordinates. A listing
// without usable coordinates yields a nil distance, not an error.
func (s *bookingService) ListingDistance(ctx context.Context, listingID string, origin geo.Coordinates) (*float64, string, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, "", err
	}
	miles := geo.DistanceMiles(&origin, geo.ExtractCoordinates(listing.Attributes))
	return miles, geo.DistanceLabel(miles), nil
}
