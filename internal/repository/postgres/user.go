package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"borrowhood-backend/internal/domain"
	"borrowhood-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, phone, name, email, upi, longitude, latitude, address, trust_score, total_borrows, total_lends, is_verified, status, created_on, updated_on`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	var email, upi, address sql.NullString
	err := row.Scan(&u.ID, &u.Phone, &u.Name, &email, &upi, &u.Location.Longitude, &u.Location.Latitude, &address,
		&u.TrustScore, &u.TotalBorrows, &u.TotalLends, &u.IsVerified, &u.Status, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, err
	}
	u.Email = email.String
	u.UPI = upi.String
	u.Location.Address = address.String
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (phone, name, email, upi, longitude, latitude, address, trust_score, total_borrows, total_lends, is_verified, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		u.Phone, u.Name, nullString(u.Email), nullString(u.UPI),
		u.Location.Longitude, u.Location.Latitude, nullString(u.Location.Address),
		u.TrustScore, u.TotalBorrows, u.TotalLends, u.IsVerified, u.Status, now, now,
	).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, phone))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name=$1, email=$2, upi=$3, longitude=$4, latitude=$5, address=$6, is_verified=$7, status=$8, updated_on=$9 WHERE id=$10`
	_, err := r.db.ExecContext(ctx, query,
		u.Name, nullString(u.Email), nullString(u.UPI),
		u.Location.Longitude, u.Location.Latitude, nullString(u.Location.Address),
		u.IsVerified, u.Status, time.Now(), u.ID)
	return err
}

func (r *userRepository) SetTrustScore(ctx context.Context, userID int32, score float64, totalBorrows, totalLends int32) error {
	query := `UPDATE users SET trust_score=$1, total_borrows=$2, total_lends=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, score, totalBorrows, totalLends, time.Now(), userID)
	return err
}

func (r *userRepository) ListNearby(ctx context.Context, lat, lon, radiusKm float64, excludeID int32, limit int32) ([]domain.User, error) {
	// Haversine distance in kilometers; earth radius 6371km.
	query := `SELECT ` + userColumns + ` FROM users
	          WHERE id <> $1 AND status = 'active'
	            AND 6371 * acos(least(1.0, cos(radians($2)) * cos(radians(latitude)) * cos(radians(longitude) - radians($3)) + sin(radians($2)) * sin(radians(latitude)))) <= $4
	          ORDER BY 6371 * acos(least(1.0, cos(radians($2)) * cos(radians(latitude)) * cos(radians(longitude) - radians($3)) + sin(radians($2)) * sin(radians(latitude))))
	          LIMIT $5`
	rows, err := r.db.QueryContext(ctx, query, excludeID, lat, lon, radiusKm, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
