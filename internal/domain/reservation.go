package domain

import (
	"fmt"
	"strings"
	"time"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusAccepted  ReservationStatus = "accepted"
	ReservationStatusCompleted ReservationStatus = "completed"
)

// ParseReservationStatus maps a raw status string onto the closed set of
// reservation statuses. Matching is case-insensitive.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch ReservationStatus(strings.ToLower(strings.TrimSpace(s))) {
	case ReservationStatusPending:
		return ReservationStatusPending, nil
	case ReservationStatusAccepted:
		return ReservationStatusAccepted, nil
	case ReservationStatusCompleted:
		return ReservationStatusCompleted, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// Blocks reports whether a period in this status occupies calendar days.
// Completed periods are historical and never block.
func (s ReservationStatus) Blocks() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusAccepted:
		return true
	case ReservationStatusCompleted:
		return false
	default:
		return false
	}
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle step.
// pending -> accepted, pending|accepted -> completed.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case ReservationStatusPending:
		return next == ReservationStatusAccepted || next == ReservationStatusCompleted
	case ReservationStatusAccepted:
		return next == ReservationStatusCompleted
	default:
		return false
	}
}

// ReservationPeriod is one booking interval against a resource. StartDate and
// EndDate are whole days; EndDate is inclusive.
type ReservationPeriod struct {
	ID         string            `json:"id"`
	ResourceID string            `json:"resource_id"`
	StartDate  time.Time         `json:"start_date"`
	EndDate    time.Time         `json:"end_date"`
	Status     ReservationStatus `json:"status"`
	RenterName string            `json:"renter_name,omitempty"`
	CreatedOn  time.Time         `json:"created_on"`
	UpdatedOn  time.Time         `json:"updated_on"`
}
