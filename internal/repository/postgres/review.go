package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lendahand-backend/internal/domain"
	"lendahand-backend/internal/repository"
)

const reviewColumns = `id, user_id, user_name, equipment_id, equipment_name, vendor_email, rating, title, comment, booking_id, status, created_on`

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `INSERT INTO reviews (user_id, user_name, equipment_id, equipment_name, vendor_email, rating, title, comment, booking_id, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query, rv.UserID, rv.UserName, rv.EquipmentID, rv.EquipmentName, rv.VendorEmail, rv.Rating, rv.Title, rv.Comment, rv.BookingID, domain.ReviewStatusActive, time.Now()).Scan(&rv.ID)
}

func (r *reviewRepository) GetByID(ctx context.Context, id int32) (*domain.Review, error) {
	rv := &domain.Review{}
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rv.ID, &rv.UserID, &rv.UserName, &rv.EquipmentID, &rv.EquipmentName, &rv.VendorEmail, &rv.Rating, &rv.Title, &rv.Comment, &rv.BookingID, &rv.Status, &rv.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *reviewRepository) SoftDelete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reviews SET status = 'deleted' WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reviewRepository) HasActiveForBooking(ctx context.Context, userID, bookingID int32) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM reviews WHERE user_id = $1 AND booking_id = $2 AND status = 'active')`,
		userID, bookingID).Scan(&exists)
	return exists, err
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE user_id = $1 AND status = 'active' ORDER BY created_on DESC`
	return r.list(ctx, query, userID)
}

func (r *reviewRepository) ListByVendor(ctx context.Context, vendorEmail string) ([]domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE vendor_email = $1 AND status = 'active' ORDER BY created_on DESC`
	return r.list(ctx, query, vendorEmail)
}

func (r *reviewRepository) AggregateForEquipment(ctx context.Context, equipmentID int32) (float64, int32, error) {
	var avg sql.NullFloat64
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT AVG(rating), COUNT(*) FROM reviews WHERE equipment_id = $1 AND status = 'active'`,
		equipmentID).Scan(&avg, &count)
	if err != nil {
		return 0, 0, err
	}
	return avg.Float64, count, nil
}

func (r *reviewRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.UserName, &rv.EquipmentID, &rv.EquipmentName, &rv.VendorEmail, &rv.Rating, &rv.Title, &rv.Comment, &rv.BookingID, &rv.Status, &rv.CreatedOn); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
