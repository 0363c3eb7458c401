package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"marketplace-availability/internal/domain"
)

var (
	ErrMalformedDate = errors.New("malformed date")
	ErrInvalidRange  = errors.New("start date must not be after end date")
)

const dateLayout = "2006-01-02"

// Date represents a calendar date. It carries no time-of-day or location, so
// two Dates are equal exactly when they name the same calendar day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf strips the time-of-day from t, keeping the calendar day t falls on
// in its own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate converts a yyyy-mm-dd string (or an RFC3339 timestamp, whose
// time-of-day is dropped) into a Date.
func ParseDate(dateStr string) (Date, error) {
	dateStr = strings.TrimSpace(dateStr)
	if len(dateStr) > len(dateLayout) {
		t, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrMalformedDate, dateStr)
		}
		return DateOf(t), nil
	}

	parts := strings.Split(dateStr, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: expected yyyy-mm-dd, got %q", ErrMalformedDate, dateStr)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("%w: invalid year: %v", ErrMalformedDate, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("%w: invalid month: %v", ErrMalformedDate, err)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("%w: invalid day: %v", ErrMalformedDate, err)
	}

	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("%w: month must be between 1 and 12", ErrMalformedDate)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("%w: day %d out of range for %04d-%02d", ErrMalformedDate, day, year, month)
	}

	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DaysInMonth returns the number of days in a given month
func DaysInMonth(year, month int) int {
	if month == 2 {
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}
	return 31
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays moves d by n calendar days. Arithmetic is done in UTC so daylight
// saving shifts can never skip or repeat a day.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n))
}

func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }
func (d Date) IsZero() bool       { return d == Date{} }

// DaysUntil returns the number of calendar days from d to o (negative when o
// is earlier).
func (d Date) DaysUntil(o Date) int {
	return int(o.unixDay() - d.unixDay())
}

// unixDay counts days since 1970-01-01. Unix seconds do not saturate the way
// time.Duration does past ~292 years.
func (d Date) unixDay() int64 {
	return d.Time(time.UTC).Unix() / secondsPerDay
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

const secondsPerDay = 24 * 60 * 60

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// NewDateRange normalizes two date-or-datetime values to whole days.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: DateOf(start), End: DateOf(end)}
}

// ParseDateRange parses both ends with ParseDate.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date: %w", err)
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date: %w", err)
	}
	return DateRange{Start: s, End: e}, nil
}

// PeriodRange returns the day-granularity span of a reservation period.
func PeriodRange(p domain.ReservationPeriod) DateRange {
	return NewDateRange(p.StartDate, p.EndDate)
}

// Valid reports whether Start <= End.
func (r DateRange) Valid() bool {
	return !r.Start.After(r.End)
}

// Days is the inclusive number of days in r, or 0 when r is inverted.
func (r DateRange) Days() int {
	if !r.Valid() {
		return 0
	}
	return r.Start.DaysUntil(r.End) + 1
}

// Overlaps reports whether r and o share at least one day. Both ends are inclusive.
func (r DateRange) Overlaps(o DateRange) bool {
	return !r.Start.After(o.End) && !r.End.Before(o.Start)
}

func (r DateRange) String() string {
	return r.Start.String() + ".." + r.End.String()
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (d Date) addMonths(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, n, 0))
}
