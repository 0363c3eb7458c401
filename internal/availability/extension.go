package availability

import "time"

// Rejection reasons reported by ValidateExtension, one per rule.
const (
	ReasonLeadTime   = "Extension must start at least 24 hours from now"
	ReasonSequencing = "Extension must start after the current booking ends"
	ReasonRange      = "Start date must be before end date"
	ReasonConflict   = "Selected dates conflict with an existing booking"
)

const DefaultLeadTime = 24 * time.Hour

// ExtensionResult is the outcome of an extension check. Reason is empty when
// Valid is true.
type ExtensionResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// Validator checks extension requests against the wall clock.
type Validator struct {
	Now      func() time.Time
	LeadTime time.Duration
	// Location is where proposed start days begin at midnight.
	Location *time.Location
}

// NewValidator returns a validator using the default 24 hour lead time and
// the local time zone. A nil clock means time.Now.
func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{Now: now, LeadTime: DefaultLeadTime, Location: time.Local}
}

// ValidateExtension decides whether proposed may extend a confirmed booking
// that ends on orderEnd. Rules run in a fixed order and the first failure is
// reported:
//  1. the extension starts at least LeadTime after now
//  2. it starts no earlier than the day after orderEnd
//  3. its start is not after its end
//  4. it shares no day with any of conflicts
func (v *Validator) ValidateExtension(proposed DateRange, orderEnd Date, conflicts []DateRange) ExtensionResult {
	now := v.Now()
	loc := v.Location
	if loc == nil {
		loc = now.Location()
	}

	if proposed.Start.Time(loc).Before(now.Add(v.LeadTime)) {
		return ExtensionResult{Reason: ReasonLeadTime}
	}
	if proposed.Start.Before(orderEnd.AddDays(1)) {
		return ExtensionResult{Reason: ReasonSequencing}
	}
	if proposed.Start.After(proposed.End) {
		return ExtensionResult{Reason: ReasonRange}
	}
	for _, c := range conflicts {
		if proposed.Overlaps(c) {
			return ExtensionResult{Reason: ReasonConflict}
		}
	}
	return ExtensionResult{Valid: true}
}
