package postgres

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS listings (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		title TEXT NOT NULL,
		daily_price_cents BIGINT NOT NULL DEFAULT 0,
		weekly_price_cents BIGINT,
		monthly_price_cents BIGINT,
		attributes JSONB,
		created_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id TEXT PRIMARY KEY,
		resource_id TEXT NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('pending', 'accepted', 'completed')),
		renter_name TEXT,
		created_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (start_date <= end_date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_resource ON reservations(resource_id, start_date)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_status_end ON reservations(status, end_date)`,
}

// Migrate creates the tables the repositories expect. Every statement is
// idempotent so it runs on each start.
func (s *Store) Migrate(ctx context.Context) error {
	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}
