package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedValidator(now time.Time) *Validator {
	v := NewValidator(func() time.Time { return now })
	v.Location = time.UTC
	return v
}

func TestValidateExtension(t *testing.T) {
	now := time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)
	v := fixedValidator(now)
	orderEnd := MustParseDate("2025-06-10")

	t.Run("Valid contiguous extension", func(t *testing.T) {
		res := v.ValidateExtension(rng("2025-06-11", "2025-06-13"), orderEnd, nil)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Reason)
	})

	t.Run("Starts on the last booked day", func(t *testing.T) {
		res := v.ValidateExtension(rng("2025-06-10", "2025-06-13"), orderEnd, nil)
		assert.False(t, res.Valid)
		assert.Equal(t, ReasonSequencing, res.Reason)
	})

	t.Run("End before start", func(t *testing.T) {
		res := v.ValidateExtension(rng("2025-06-11", "2025-06-09"), orderEnd, nil)
		assert.False(t, res.Valid)
		assert.Equal(t, ReasonRange, res.Reason)
	})

	t.Run("Overlaps a later booking", func(t *testing.T) {
		conflicts := []DateRange{rng("2025-06-13", "2025-06-15")}
		res := v.ValidateExtension(rng("2025-06-11", "2025-06-13"), orderEnd, conflicts)
		assert.False(t, res.Valid)
		assert.Equal(t, ReasonConflict, res.Reason)
	})

	t.Run("Adjacent booking is not a conflict", func(t *testing.T) {
		conflicts := []DateRange{rng("2025-06-14", "2025-06-15")}
		res := v.ValidateExtension(rng("2025-06-11", "2025-06-13"), orderEnd, conflicts)
		assert.True(t, res.Valid)
	})
}

func TestValidateExtension_LeadTimeWinsOverSequencing(t *testing.T) {
	// Start is one hour away and also before the day after the booking ends.
	now := time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC)
	v := fixedValidator(now)

	res := v.ValidateExtension(rng("2025-06-11", "2025-06-12"), MustParseDate("2025-06-12"), nil)
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonLeadTime, res.Reason)
}

func TestValidateExtension_LeadTimeIsWallClock(t *testing.T) {
	orderEnd := MustParseDate("2025-06-10")
	r := rng("2025-06-12", "2025-06-13")

	// Exactly 24 hours before midnight of the start day passes.
	atLimit := fixedValidator(time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC))
	assert.True(t, atLimit.ValidateExtension(r, orderEnd, nil).Valid)

	// One minute later fails even though the calendar day is unchanged.
	late := fixedValidator(time.Date(2025, 6, 11, 0, 1, 0, 0, time.UTC))
	assert.Equal(t, ReasonLeadTime, late.ValidateExtension(r, orderEnd, nil).Reason)
}

func TestValidateExtension_RangeBeforeConflict(t *testing.T) {
	v := fixedValidator(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	conflicts := []DateRange{rng("2025-06-01", "2025-06-30")}

	res := v.ValidateExtension(rng("2025-06-15", "2025-06-12"), MustParseDate("2025-06-10"), conflicts)
	assert.Equal(t, ReasonRange, res.Reason)
}
