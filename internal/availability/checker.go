package availability

import "time"

// Bounds limits the days a new booking may cover. A nil Min or Max is open.
type Bounds struct {
	Min *Date
	Max *Date
}

// BlockPast returns bounds whose minimum is the calendar day of now, which
// rejects any range that starts in the past.
func BlockPast(now time.Time) *Bounds {
	today := DateOf(now)
	return &Bounds{Min: &today}
}

// IsRangeAvailable walks every day of r and reports false on the first day
// that is outside bounds or already occupied. It answers only yes or no; it
// does not report which days conflict. An inverted range is never available.
func IsRangeAvailable(r DateRange, occupied DateSet, bounds *Bounds) bool {
	if !r.Valid() {
		return false
	}
	if bounds != nil {
		if bounds.Min != nil && r.Start.Before(*bounds.Min) {
			return false
		}
		if bounds.Max != nil && r.End.After(*bounds.Max) {
			return false
		}
	}
	// Walk whichever side is smaller; the answer is the same.
	if occupied.Len() < r.Days() {
		for d := range occupied {
			if !d.Before(r.Start) && !d.After(r.End) {
				return false
			}
		}
		return true
	}
	stop := r.End.AddDays(1)
	for d := r.Start; d.Before(stop); d = d.AddDays(1) {
		if occupied.Contains(d) {
			return false
		}
	}
	return true
}
