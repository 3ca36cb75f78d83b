package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"borrowhood-backend/internal/domain"
	"borrowhood-backend/internal/repository"

	"github.com/lib/pq"
)

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, owner_id, name, description, category, condition, longitude, latitude, address, max_borrow_days, status, borrow_requests, rating, review_count, created_on, updated_on`

func scanItem(row interface{ Scan(...any) error }) (*domain.Item, error) {
	it := &domain.Item{}
	var address sql.NullString
	var requests pq.Int32Array
	err := row.Scan(&it.ID, &it.OwnerID, &it.Name, &it.Description, &it.Category, &it.Condition,
		&it.Location.Longitude, &it.Location.Latitude, &address,
		&it.MaxBorrowDays, &it.Status, &requests, &it.Rating, &it.ReviewCount, &it.CreatedOn, &it.UpdatedOn)
	if err != nil {
		return nil, err
	}
	it.Location.Address = address.String
	it.BorrowRequests = []int32(requests)
	return it, nil
}

func (r *itemRepository) Create(ctx context.Context, it *domain.Item) error {
	query := `INSERT INTO items (owner_id, name, description, category, condition, longitude, latitude, address, max_borrow_days, status, borrow_requests, rating, review_count, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		it.OwnerID, it.Name, it.Description, it.Category, it.Condition,
		it.Location.Longitude, it.Location.Latitude, nullString(it.Location.Address),
		it.MaxBorrowDays, it.Status, pq.Array(it.BorrowRequests), it.Rating, it.ReviewCount, now, now,
	).Scan(&it.ID)
}

func (r *itemRepository) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	it, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return it, err
}

func (r *itemRepository) Update(ctx context.Context, it *domain.Item) error {
	query := `UPDATE items SET description=$1, condition=$2, status=$3, max_borrow_days=$4, updated_on=$5 WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query, it.Description, it.Condition, it.Status, it.MaxBorrowDays, time.Now(), it.ID)
	return err
}

func (r *itemRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	return err
}

func (r *itemRepository) Search(ctx context.Context, category, query string, limit int32) ([]domain.Item, error) {
	sqlQuery := `SELECT ` + itemColumns + ` FROM items WHERE status = 'available'`
	args := []interface{}{}
	argIdx := 1
	if category != "" && category != "All" {
		sqlQuery += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, category)
		argIdx++
	}
	if query != "" {
		sqlQuery += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+query+"%")
		argIdx++
	}
	sqlQuery += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d", argIdx)
	args = append(args, limit)

	return r.queryItems(ctx, sqlQuery, args...)
}

func (r *itemRepository) ListNearby(ctx context.Context, lat, lon, radiusKm float64, category string, limit int32) ([]domain.Item, error) {
	sqlQuery := `SELECT ` + itemColumns + ` FROM items
	             WHERE status = 'available'
	               AND 6371 * acos(least(1.0, cos(radians($1)) * cos(radians(latitude)) * cos(radians(longitude) - radians($2)) + sin(radians($1)) * sin(radians(latitude)))) <= $3`
	args := []interface{}{lat, lon, radiusKm}
	if category != "" && category != "All" {
		sqlQuery += " AND category = $4"
		args = append(args, category)
	}
	sqlQuery += fmt.Sprintf(` ORDER BY 6371 * acos(least(1.0, cos(radians($1)) * cos(radians(latitude)) * cos(radians(longitude) - radians($2)) + sin(radians($1)) * sin(radians(latitude)))) LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	return r.queryItems(ctx, sqlQuery, args...)
}

// UpdateStatusIf flips item.status only when the row is still in the
// expected state. RowsAffected == 0 means a concurrent writer got there
// first and the caller must treat the transition as failed.
func (r *itemRepository) UpdateStatusIf(ctx context.Context, id int32, from, to domain.ItemStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE items SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`,
		to, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *itemRepository) AppendBorrowRequest(ctx context.Context, itemID, borrowID int32) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE items SET borrow_requests = array_append(borrow_requests, $1), updated_on=$2 WHERE id=$3`,
		borrowID, time.Now(), itemID)
	return err
}

func (r *itemRepository) SetRating(ctx context.Context, itemID int32, rating float64, reviewCount int32) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE items SET rating=$1, review_count=$2, updated_on=$3 WHERE id=$4`,
		rating, reviewCount, time.Now(), itemID)
	return err
}

func (r *itemRepository) queryItems(ctx context.Context, query string, args ...interface{}) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}
