package availability

import (
	"sort"

	"marketplace-availability/internal/domain"
)

// DateSet is a set of calendar days.
type DateSet map[Date]struct{}

func (s DateSet) Add(d Date) { s[d] = struct{}{} }

func (s DateSet) Contains(d Date) bool {
	_, ok := s[d]
	return ok
}

func (s DateSet) Len() int { return len(s) }

// Sorted returns the members of s in calendar order.
func (s DateSet) Sorted() []Date {
	out := make([]Date, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// DefaultBlockingStatuses are the statuses whose periods occupy the calendar.
var DefaultBlockingStatuses = []domain.ReservationStatus{
	domain.ReservationStatusPending,
	domain.ReservationStatusAccepted,
}

// OccupiedDates expands the periods whose status is in statuses (pending and
// accepted when none are given) into the set of days they cover, start and
// end inclusive. Overlapping periods collapse into the same days.
func OccupiedDates(periods []domain.ReservationPeriod, statuses ...domain.ReservationStatus) DateSet {
	if len(statuses) == 0 {
		statuses = DefaultBlockingStatuses
	}
	var f statusFilter
	for _, s := range statuses {
		f.add(s)
	}

	occupied := make(DateSet)
	for _, p := range periods {
		if f.includes(p.Status) {
			occupied.addRange(PeriodRange(p))
		}
	}
	return occupied
}

// OccupiedDatesWithin is OccupiedDates clipped to window. Only the days of
// window are ever materialized, however long the stored periods are.
func OccupiedDatesWithin(periods []domain.ReservationPeriod, window DateRange, statuses ...domain.ReservationStatus) DateSet {
	if len(statuses) == 0 {
		statuses = DefaultBlockingStatuses
	}
	var f statusFilter
	for _, s := range statuses {
		f.add(s)
	}

	occupied := make(DateSet)
	if !window.Valid() {
		return occupied
	}
	for _, p := range periods {
		if !f.includes(p.Status) {
			continue
		}
		r := PeriodRange(p)
		if !r.Overlaps(window) {
			continue
		}
		if r.Start.Before(window.Start) {
			r.Start = window.Start
		}
		if r.End.After(window.End) {
			r.End = window.End
		}
		occupied.addRange(r)
	}
	return occupied
}

func (s DateSet) addRange(r DateRange) {
	// Stop one day past the end so the end day itself is included.
	stop := r.End.AddDays(1)
	for d := r.Start; d.Before(stop); d = d.AddDays(1) {
		s.Add(d)
	}
}

// statusFilter selects periods by status. A status outside the enumeration
// never matches.
type statusFilter struct {
	pending, accepted, completed bool
}

func (f *statusFilter) add(s domain.ReservationStatus) {
	switch s {
	case domain.ReservationStatusPending:
		f.pending = true
	case domain.ReservationStatusAccepted:
		f.accepted = true
	case domain.ReservationStatusCompleted:
		f.completed = true
	}
}

func (f statusFilter) includes(s domain.ReservationStatus) bool {
	switch s {
	case domain.ReservationStatusPending:
		return f.pending
	case domain.ReservationStatusAccepted:
		return f.accepted
	case domain.ReservationStatusCompleted:
		return f.completed
	default:
		return false
	}
}

// BlockingRanges returns the day spans of the periods that block availability,
// skipping the period with the given id.
func BlockingRanges(periods []domain.ReservationPeriod, excludeID string) []DateRange {
	var ranges []DateRange
	for _, p := range periods {
		if p.ID == excludeID || !p.Status.Blocks() {
			continue
		}
		ranges = append(ranges, PeriodRange(p))
	}
	return ranges
}
