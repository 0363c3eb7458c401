package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"marketplace-availability/internal/domain"
	"marketplace-availability/internal/logger"
	"marketplace-availability/internal/repository"
)

const reservationColumns = `id, resource_id, start_date, end_date, status, COALESCE(renter_name, ''), created_on, updated_on`

type reservationRepository struct {
	db *sql.DB
	q  querier
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db, q: db}
}

func (r *reservationRepository) ListByResource(ctx context.Context, resourceID string) ([]domain.ReservationPeriod, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE resource_id = $1 ORDER BY start_date`
	rows, err := r.q.QueryContext(ctx, query, resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []domain.ReservationPeriod
	for rows.Next() {
		var p domain.ReservationPeriod
		if err := scanReservation(rows, &p); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (r *reservationRepository) GetByID(ctx context.Context, resourceID, id string) (*domain.ReservationPeriod, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE resource_id = $1 AND id = $2`
	p := &domain.ReservationPeriod{}
	err := scanReservation(r.q.QueryRowContext(ctx, query, resourceID, id), p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reservation %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *reservationRepository) Append(ctx context.Context, p *domain.ReservationPeriod) error {
	query := `INSERT INTO reservations (id, resource_id, start_date, end_date, status, renter_name, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.ExecContext(ctx, query, p.ID, p.ResourceID, p.StartDate, p.EndDate, p.Status, p.RenterName, p.CreatedOn, p.UpdatedOn)
	return err
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, resourceID, id string, status domain.ReservationStatus) error {
	query := `UPDATE reservations SET status = $1, updated_on = $2 WHERE resource_id = $3 AND id = $4`
	res, err := r.q.ExecContext(ctx, query, status, time.Now(), resourceID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("reservation %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// WithResourceLock opens a transaction and takes a transaction-scoped advisory
// lock keyed by the resource, so concurrent writers for the same resource queue
// behind each other while other resources proceed.
func (r *reservationRepository) WithResourceLock(ctx context.Context, resourceID string, fn func(ctx context.Context, repo repository.ReservationRepository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	logger.DatabaseCall("advisory_lock", "pg_advisory_xact_lock", "resource_id", resourceID)
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, resourceID); err != nil {
		logger.DatabaseResult("advisory_lock", 0, err, "resource_id", resourceID)
		return fmt.Errorf("failed to lock resource %s: %w", resourceID, err)
	}

	if err := fn(ctx, &reservationRepository{db: r.db, q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *reservationRepository) CompleteEndedBefore(ctx context.Context, day time.Time) (int64, error) {
	query := `UPDATE reservations SET status = $1, updated_on = NOW() WHERE status = $2 AND end_date < $3`
	logger.DatabaseCall("complete_ended", query, "before", day.Format("2006-01-02"))
	res, err := r.q.ExecContext(ctx, query, domain.ReservationStatusCompleted, domain.ReservationStatusAccepted, day.Format("2006-01-02"))
	if err != nil {
		logger.DatabaseResult("complete_ended", 0, err)
		return 0, err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("complete_ended", n, err)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner, p *domain.ReservationPeriod) error {
	var status string
	if err := row.Scan(&p.ID, &p.ResourceID, &p.StartDate, &p.EndDate, &status, &p.RenterName, &p.CreatedOn, &p.UpdatedOn); err != nil {
		return err
	}
	s, err := domain.ParseReservationStatus(status)
	if err != nil {
		return fmt.Errorf("reservation %s: %w", p.ID, err)
	}
	p.Status = s
	return nil
}
