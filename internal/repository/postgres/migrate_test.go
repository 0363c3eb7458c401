package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-availability/internal/repository/postgres"
)

func TestStore_Migrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := postgres.NewStore(db)

	t.Run("Runs every statement", func(t *testing.T) {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS listings").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS reservations").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_reservations_resource").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_reservations_status_end").WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, store.Migrate(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Stops on first failure", func(t *testing.T) {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS listings").WillReturnError(errors.New("permission denied"))

		err := store.Migrate(context.Background())
		assert.ErrorContains(t, err, "permission denied")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
