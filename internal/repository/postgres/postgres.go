package postgres

import (
	"context"
	"database/sql"

	"marketplace-availability/internal/repository"

	_ "github.com/lib/pq"
)

// querier is satisfied by both *sql.DB and *sql.Tx so repositories can run
// inside or outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.ReservationRepository
	repository.ListingRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		ReservationRepository: NewReservationRepository(db),
		ListingRepository:     NewListingRepository(db),
	}
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
