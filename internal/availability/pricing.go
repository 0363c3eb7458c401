package availability

import "fmt"

const daysPerWeek = 7

// ExtensionTotal prices an extension at dailyPriceCents for every day of r,
// counting both ends. It uses the same inclusive day count as the overlap
// rules, so a range priced for N days blocks exactly N days.
func ExtensionTotal(dailyPriceCents int64, r DateRange) (int64, error) {
	if !r.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrInvalidRange, r)
	}
	return dailyPriceCents * int64(r.Days()), nil
}

// PriceSnapshot holds a listing's prices at quote time. Zero tiers are
// treated as not offered.
type PriceSnapshot struct {
	DailyPriceCents   int64
	WeeklyPriceCents  int64
	MonthlyPriceCents int64
}

// Quote is a tiered cost breakdown for a new booking.
type Quote struct {
	Range      DateRange `json:"range"`
	TotalDays  int       `json:"total_days"`
	Months     int       `json:"months"`
	Weeks      int       `json:"weeks"`
	Days       int       `json:"days"`
	MonthsCost int64     `json:"months_cost_cents"`
	WeeksCost  int64     `json:"weeks_cost_cents"`
	DaysCost   int64     `json:"days_cost_cents"`
	TotalCost  int64     `json:"total_cost_cents"`
}

// DateDifference is the span between two dates in whole months plus leftover
// days, both ends included.
type DateDifference struct {
	Months int
	Days   int
}

// CalculateDateDifference splits r into whole calendar months plus leftover
// days, both ends included. Jan 15..Mar 14 is two months and zero days;
// Jan 25..Feb 5 is twelve days.
func CalculateDateDifference(r DateRange) (DateDifference, error) {
	if !r.Valid() {
		return DateDifference{}, fmt.Errorf("%w: %s", ErrInvalidRange, r)
	}
	start := r.Start
	next := r.End.AddDays(1)

	months := (next.Year-start.Year)*12 + int(next.Month) - int(start.Month)
	if next.Day < start.Day {
		months--
	}
	// Month-end starts (Jan 31 + 1 month) normalize past the target; back off.
	for months > 0 && start.addMonths(months).After(next) {
		months--
	}

	return DateDifference{Months: months, Days: start.addMonths(months).DaysUntil(next)}, nil
}

// QuoteRental prices r using month, week and day tiers. A tier that is not
// offered is priced through the next smaller one, so the quote never depends
// on a zero price.
func QuoteRental(prices PriceSnapshot, r DateRange) (Quote, error) {
	diff, err := CalculateDateDifference(r)
	if err != nil {
		return Quote{}, err
	}

	q := Quote{Range: r, TotalDays: r.Days()}

	if prices.MonthlyPriceCents > 0 {
		q.Months = diff.Months
		q.MonthsCost = int64(q.Months) * prices.MonthlyPriceCents
	}
	remaining := q.TotalDays
	if q.Months > 0 {
		// Month tier covered the whole months; only the leftover days remain.
		remaining = diff.Days
	}

	if prices.WeeklyPriceCents > 0 {
		q.Weeks = remaining / daysPerWeek
		q.WeeksCost = int64(q.Weeks) * prices.WeeklyPriceCents
		remaining -= q.Weeks * daysPerWeek
	}

	q.Days = remaining
	q.DaysCost = int64(q.Days) * prices.DailyPriceCents
	q.TotalCost = q.MonthsCost + q.WeeksCost + q.DaysCost
	return q, nil
}
