package domain

import "errors"

var (
	ErrNotFound                = errors.New("not found")
	ErrUnknownStatus           = errors.New("unknown reservation status")
	ErrInvalidStatusTransition = errors.New("invalid reservation status transition")
	ErrReservationConflict     = errors.New("reservation overlaps an existing booking")
	ErrBookingNotConfirmed     = errors.New("booking is not accepted")
	ErrInvalidInput            = errors.New("invalid input")
)
