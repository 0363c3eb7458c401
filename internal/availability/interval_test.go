package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-availability/internal/domain"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		date, err := ParseDate("2024-01-15")
		require.NoError(t, err)
		assert.Equal(t, Date{Year: 2024, Month: time.January, Day: 15}, date)
	})

	t.Run("RFC3339 timestamp drops time of day", func(t *testing.T) {
		date, err := ParseDate("2024-01-15T23:59:59-05:00")
		require.NoError(t, err)
		assert.Equal(t, "2024-01-15", date.String())
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseDate("2024/01/15")
		assert.ErrorIs(t, err, ErrMalformedDate)
	})

	t.Run("Invalid month", func(t *testing.T) {
		_, err := ParseDate("2024-13-15")
		assert.ErrorIs(t, err, ErrMalformedDate)
		assert.Contains(t, err.Error(), "month must be between 1 and 12")
	})

	t.Run("Day past end of month", func(t *testing.T) {
		_, err := ParseDate("2023-02-29")
		assert.ErrorIs(t, err, ErrMalformedDate)
	})

	t.Run("Leap day", func(t *testing.T) {
		_, err := ParseDate("2024-02-29")
		assert.NoError(t, err)
	})
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year     int
		month    int
		expected int
	}{
		{2024, 1, 31},
		{2024, 2, 29},
		{2023, 2, 28},
		{2024, 4, 30},
		{2024, 11, 30},
		{2000, 2, 29}, // divisible by 400
		{1900, 2, 28}, // divisible by 100 but not 400
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DaysInMonth(tt.year, tt.month), "%d-%02d", tt.year, tt.month)
	}
}

func TestDateOf_StripsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	morning := time.Date(2025, 3, 9, 0, 0, 1, 0, loc)
	night := time.Date(2025, 3, 9, 23, 59, 59, 0, loc)

	assert.Equal(t, DateOf(morning), DateOf(night))
	assert.Equal(t, "2025-03-09", DateOf(night).String())
}

func TestDate_AddDays(t *testing.T) {
	d := MustParseDate("2024-12-30")
	assert.Equal(t, "2025-01-01", d.AddDays(2).String())
	assert.Equal(t, "2024-02-29", MustParseDate("2024-03-01").AddDays(-1).String())
	assert.Equal(t, 3, MustParseDate("2025-01-01").DaysUntil(MustParseDate("2025-01-04")))
}

func TestDateRange(t *testing.T) {
	r := DateRange{Start: MustParseDate("2025-01-01"), End: MustParseDate("2025-01-03")}
	assert.True(t, r.Valid())
	assert.Equal(t, 3, r.Days())

	inverted := DateRange{Start: r.End, End: r.Start}
	assert.False(t, inverted.Valid())
	assert.Equal(t, 0, inverted.Days())

	t.Run("Overlap is inclusive on both ends", func(t *testing.T) {
		touching := DateRange{Start: MustParseDate("2025-01-03"), End: MustParseDate("2025-01-05")}
		adjacent := DateRange{Start: MustParseDate("2025-01-04"), End: MustParseDate("2025-01-05")}
		assert.True(t, r.Overlaps(touching))
		assert.True(t, touching.Overlaps(r))
		assert.False(t, r.Overlaps(adjacent))
	})
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2025-01-01", "2025-01-03")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01..2025-01-03", r.String())

	_, err = ParseDateRange("2025-01-01", "tomorrow")
	assert.ErrorIs(t, err, ErrMalformedDate)
	assert.Contains(t, err.Error(), "invalid end date")
}

func TestDateRange_DaysLongSpan(t *testing.T) {
	r := rng("2025-01-01", "2400-01-01")
	walked := OccupiedDates([]domain.ReservationPeriod{
		period("long", "2025-01-01", "2400-01-01", domain.ReservationStatusPending),
	}).Len()

	assert.Equal(t, 136966, walked)
	assert.Equal(t, walked, r.Days())
	assert.Equal(t, 3652059, rng("0001-01-01", "9999-12-31").Days())
	assert.Equal(t, -136965, r.End.DaysUntil(r.Start))
}
