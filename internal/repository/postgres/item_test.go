package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"borrowhood-backend/internal/domain"
)

func TestItemRepository_UpdateStatusIf(t *testing.T) {
	ctx := context.Background()

	t.Run("Swap succeeds when state matches", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE items SET status=\$1, updated_on=\$2 WHERE id=\$3 AND status=\$4`).
			WithArgs(domain.ItemStatusBorrowed, sqlmock.AnyArg(), int32(2), domain.ItemStatusAvailable).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewItemRepository(db)
		ok, err := repo.UpdateStatusIf(ctx, 2, domain.ItemStatusAvailable, domain.ItemStatusBorrowed)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Swap loses when another writer got there first", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE items SET status=\$1, updated_on=\$2 WHERE id=\$3 AND status=\$4`).
			WithArgs(domain.ItemStatusBorrowed, sqlmock.AnyArg(), int32(2), domain.ItemStatusAvailable).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewItemRepository(db)
		ok, err := repo.UpdateStatusIf(ctx, 2, domain.ItemStatusAvailable, domain.ItemStatusBorrowed)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestItemRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM items WHERE id = \$1`).
		WithArgs(int32(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewItemRepository(db)
	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemRepository_AppendBorrowRequest(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE items SET borrow_requests = array_append`).
		WithArgs(int32(5), sqlmock.AnyArg(), int32(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewItemRepository(db)
	assert.NoError(t, repo.AppendBorrowRequest(context.Background(), 2, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}
