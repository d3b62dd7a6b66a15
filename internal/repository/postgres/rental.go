package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lendahand-backend/internal/domain"
	"lendahand-backend/internal/repository"

	"github.com/lib/pq"
)

const rentalColumns = `id, kind, user_id, user_name, user_phone, user_email, equipment_id, equipment_name, vendor_email, start_date, end_date, duration, COALESCE(purpose, ''), COALESCE(notes, ''), daily_rate, base_amount, service_fee, total_amount, status, submitted_date, processed_date, last_reminder_sent, COALESCE(reminder_type, '')`

// reserveStockQuery decrements one unit only while stock remains, so two
// concurrent submissions against the last unit cannot both succeed.
const reserveStockQuery = `UPDATE equipment
	SET stock_quantity = stock_quantity - 1,
	    status = CASE WHEN stock_quantity - 1 <= 0 THEN 'unavailable' ELSE 'available' END
	WHERE id = $1 AND stock_quantity > 0
	RETURNING stock_quantity`

// releaseStockQuery returns the reserved unit when a rental reaches a
// terminal status. A vendor-set status is left alone unless the restock
// makes the item available again.
const releaseStockQuery = `UPDATE equipment
	SET stock_quantity = stock_quantity + 1,
	    status = CASE WHEN stock_quantity + 1 > 0 THEN 'available' ELSE status END
	WHERE id = (SELECT equipment_id FROM rentals WHERE id = $1)`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Submit(ctx context.Context, rt *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var remaining int32
	err = tx.QueryRowContext(ctx, reserveStockQuery, rt.EquipmentID).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrOutOfStock
	}
	if err != nil {
		return err
	}

	insert := `INSERT INTO rentals (kind, user_id, user_name, user_phone, user_email, equipment_id, equipment_name, vendor_email, start_date, end_date, duration, purpose, notes, daily_rate, base_amount, service_fee, total_amount, status, submitted_date)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19) RETURNING id`
	err = tx.QueryRowContext(ctx, insert, rt.Kind, rt.UserID, rt.UserName, rt.UserPhone, rt.UserEmail, rt.EquipmentID, rt.EquipmentName, rt.VendorEmail, rt.StartDate, rt.EndDate, rt.Duration, rt.Purpose, rt.Notes, rt.DailyRate, rt.BaseAmount, rt.ServiceFee, rt.TotalAmount, rt.Status, time.Now()).Scan(&rt.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rt.ID, &rt.Kind, &rt.UserID, &rt.UserName, &rt.UserPhone, &rt.UserEmail, &rt.EquipmentID, &rt.EquipmentName, &rt.VendorEmail, &rt.StartDate, &rt.EndDate, &rt.Duration, &rt.Purpose, &rt.Notes, &rt.DailyRate, &rt.BaseAmount, &rt.ServiceFee, &rt.TotalAmount, &rt.Status, &rt.SubmittedDate, &rt.ProcessedDate, &rt.LastReminderSent, &rt.ReminderType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// Transition serializes racing callers on the same rental id: the status
// guard means exactly one of two concurrent terminal calls matches a row,
// so the reserved unit is released at most once.
func (r *rentalRepository) Transition(ctx context.Context, id int32, from []domain.RentalStatus, to domain.RentalStatus, restock bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	allowed := make([]string, len(from))
	for i, s := range from {
		allowed[i] = string(s)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE rentals SET status = $1, processed_date = $2 WHERE id = $3 AND status = ANY($4)`,
		to, time.Now(), id, pq.Array(allowed))
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM rentals WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInvalidTransition
	}

	if restock {
		if _, err := tx.ExecContext(ctx, releaseStockQuery, id); err != nil {
			return fmt.Errorf("restock equipment: %w", err)
		}
	}

	return tx.Commit()
}

func (r *rentalRepository) ListByUser(ctx context.Context, userID int32, kind domain.RentalKind, status string) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE user_id = $1 AND kind = $2`
	args := []interface{}{userID, kind}
	if status != "" {
		query += ` AND status = $3`
		args = append(args, status)
	}
	query += ` ORDER BY submitted_date DESC`
	return r.list(ctx, query, args...)
}

func (r *rentalRepository) ListByVendor(ctx context.Context, vendorEmail string, kind domain.RentalKind, status string) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE vendor_email = $1 AND kind = $2`
	args := []interface{}{vendorEmail, kind}
	if status != "" {
		query += ` AND status = $3`
		args = append(args, status)
	}
	query += ` ORDER BY submitted_date DESC`
	return r.list(ctx, query, args...)
}

func (r *rentalRepository) ListAll(ctx context.Context, kind domain.RentalKind, status, search string) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE kind = $1`
	args := []interface{}{kind}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argIdx)
		args = append(args, status)
		argIdx++
	}
	if search != "" {
		query += fmt.Sprintf(` AND (user_name ILIKE $%d OR equipment_name ILIKE $%d OR vendor_email ILIKE $%d)`, argIdx, argIdx, argIdx)
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY submitted_date DESC`
	return r.list(ctx, query, args...)
}

func (r *rentalRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
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

func (r *rentalRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(&rt.ID, &rt.Kind, &rt.UserID, &rt.UserName, &rt.UserPhone, &rt.UserEmail, &rt.EquipmentID, &rt.EquipmentName, &rt.VendorEmail, &rt.StartDate, &rt.EndDate, &rt.Duration, &rt.Purpose, &rt.Notes, &rt.DailyRate, &rt.BaseAmount, &rt.ServiceFee, &rt.TotalAmount, &rt.Status, &rt.SubmittedDate, &rt.ProcessedDate, &rt.LastReminderSent, &rt.ReminderType); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}
