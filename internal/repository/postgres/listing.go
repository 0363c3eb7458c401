package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"marketplace-availability/internal/domain"
	"marketplace-availability/internal/repository"
)

type listingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	l := &domain.Listing{}
	var attrs []byte
	query := `SELECT id, owner_id, title, daily_price_cents, COALESCE(weekly_price_cents, 0), COALESCE(monthly_price_cents, 0), attributes, created_on FROM listings WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&l.ID, &l.OwnerID, &l.Title, &l.DailyPriceCents, &l.WeeklyPriceCents, &l.MonthlyPriceCents, &attrs, &l.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &l.Attributes); err != nil {
			return nil, fmt.Errorf("listing %s: failed to decode attributes: %w", id, err)
		}
	}
	return l, nil
}
