package domain

import "time"

// Listing is the rentable resource whose calendar is tracked. Attributes holds
// the loosely-typed record the listing was ingested from; coordinates are
// extracted from it by the geo package.
type Listing struct {
	ID                string         `json:"id"`
	OwnerID           string         `json:"owner_id"`
	Title             string         `json:"title"`
	DailyPriceCents   int64          `json:"daily_price_cents"`
	WeeklyPriceCents  int64          `json:"weekly_price_cents"`
	MonthlyPriceCents int64          `json:"monthly_price_cents"`
	Attributes        map[string]any `json:"attributes,omitempty"`
	CreatedOn         time.Time      `json:"created_on"`
}
