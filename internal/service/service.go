package service

import (
	"context"
	"time"

	"marketplace-availability/internal/availability"
	"marketplace-availability/internal/domain"
	"marketplace-availability/internal/geo"
)

// DefaultMaxSpanDays caps request ranges unless WithMaxSpanDays says otherwise.
const DefaultMaxSpanDays = 730

// Clock supplies the current time. Tests pin it; production uses time.Now.
type Clock func() time.Time

type BookingService interface {
	ListReservations(ctx context.Context, resourceID string) ([]domain.ReservationPeriod, error)
	OccupiedDates(ctx context.Context, resourceID string, statuses []domain.ReservationStatus) ([]availability.Date, error)
	CheckAvailability(ctx context.Context, resourceID string, r availability.DateRange, blockPast bool, maxDate *availability.Date) (bool, error)
	AppendReservation(ctx context.Context, period *domain.ReservationPeriod) (*domain.ReservationPeriod, error)
	UpdateReservationStatus(ctx context.Context, resourceID, reservationID string, next domain.ReservationStatus) (*domain.ReservationPeriod, error)
	RequestExtension(ctx context.Context, resourceID, reservationID string, proposed availability.DateRange) (*ExtensionQuote, error)
	QuoteBooking(ctx context.Context, resourceID string, r availability.DateRange) (*availability.Quote, error)
	ListingDistance(ctx context.Context, listingID string, origin geo.Coordinates) (*float64, string, error)
}

// ExtensionQuote is the verdict on an extension request. TotalCents and Days
// are only set when the extension is valid.
type ExtensionQuote struct {
	ReservationID string                       `json:"reservation_id"`
	Range         availability.DateRange       `json:"range"`
	Result        availability.ExtensionResult `json:"result"`
	Days          int                          `json:"days,omitempty"`
	TotalCents    int64                        `json:"total_cents,omitempty"`
}
