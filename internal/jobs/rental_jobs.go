package jobs

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lendahand-backend/internal/domain"
	"lendahand-backend/internal/logger"
	"lendahand-backend/internal/service"
)

// SendReturnReminders texts every renter whose approved rental ends in two
// days. The last_reminder_sent guard keeps reruns on the same day from
// texting twice.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		sendReturnReminders(context.Background(), time.Now(), jr.db, jr.sms)
	})
}

// CompleteExpiredRentals moves approved rent requests past their end date
// into return_pending so vendors see them as awaiting a return, and closes
// out confirmed one-day bookings past their date, releasing their stock.
func (jr *JobRunner) CompleteExpiredRentals() {
	jr.runWithRecovery("CompleteExpiredRentals", func() {
		completeExpiredRentals(context.Background(), time.Now(), jr.db, jr.sms)
	})
}

func sendReturnReminders(ctx context.Context, now time.Time, db *sql.DB, sms service.SMSService) {
	dueDate := now.AddDate(0, 0, 2).Format("2006-01-02")
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	query := `
		SELECT id, user_name, user_phone, equipment_name, end_date
		FROM rentals
		WHERE kind = 'rent_request'
		  AND status = 'approved'
		  AND end_date = $1
		  AND (last_reminder_sent IS NULL OR last_reminder_sent < $2)
	`

	rows, err := db.QueryContext(ctx, query, dueDate, startOfDay)
	if err != nil {
		logger.Error("Failed to find rentals due for reminder", "error", err)
		return
	}
	defer rows.Close()

	type candidate struct {
		ID            int32
		UserName      string
		UserPhone     string
		EquipmentName string
		EndDate       string
	}

	var due []candidate
	for rows.Next() {
		var c candidate
		if err := rows.Scan(&c.ID, &c.UserName, &c.UserPhone, &c.EquipmentName, &c.EndDate); err != nil {
			logger.Error("Failed to scan reminder candidate", "error", err)
			continue
		}
		due = append(due, c)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Error iterating reminder candidates", "error", err)
		return
	}

	sent := 0
	for _, c := range due {
		message := fmt.Sprintf("Dear %s, reminder: your rental of %s ends on %s. Please arrange the return. - Lend A Hand",
			c.UserName, c.EquipmentName, c.EndDate)
		if res := sms.Send(ctx, c.UserPhone, message); !res.Success {
			logger.Warn("Return reminder SMS failed", "rental_id", c.ID, "error", res.Error)
			continue
		}

		// Stamp only after a successful send so a failed one retries on
		// the next run.
		_, err := db.ExecContext(ctx,
			`UPDATE rentals SET last_reminder_sent = $1, reminder_type = $2 WHERE id = $3`,
			now, domain.ReminderTypeAuto2Day, c.ID)
		if err != nil {
			logger.Error("Failed to stamp reminder", "rental_id", c.ID, "error", err)
			continue
		}
		sent++
	}

	logger.Info("Return reminders processed", "due", len(due), "sent", sent)
}

func completeExpiredRentals(ctx context.Context, now time.Time, db *sql.DB, sms service.SMSService) {
	today := now.Format("2006-01-02")
	expireRentRequests(ctx, today, db, sms)
	completeExpiredBookings(ctx, today, db, sms)
}

func expireRentRequests(ctx context.Context, today string, db *sql.DB, sms service.SMSService) {
	query := `
		UPDATE rentals
		SET status = 'return_pending',
		    processed_date = NOW()
		WHERE kind = 'rent_request'
		  AND status = 'approved'
		  AND end_date < $1
		RETURNING id, user_name, user_phone, equipment_name, end_date
	`

	rows, err := db.QueryContext(ctx, query, today)
	if err != nil {
		logger.Error("Failed to expire rentals", "error", err)
		return
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var (
			id            int32
			userName      string
			userPhone     string
			equipmentName string
			endDate       string
		)
		if err := rows.Scan(&id, &userName, &userPhone, &equipmentName, &endDate); err != nil {
			logger.Error("Failed to scan expired rental", "error", err)
			continue
		}
		count++

		message := fmt.Sprintf("Dear %s, your rental of %s ended on %s. Please return the equipment so the vendor can confirm. - Lend A Hand",
			userName, equipmentName, endDate)
		if res := sms.Send(ctx, userPhone, message); !res.Success {
			logger.Warn("Expiry SMS failed", "rental_id", id, "error", res.Error)
		}

		logger.Debug("Rental moved to return_pending",
			"rental_id", id,
			"end_date", endDate)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Error iterating expired rentals", "error", err)
		return
	}

	logger.Info("Expired rent requests processed", "count", count)
}

// completeExpiredBookings closes confirmed one-day bookings past their
// date. Completion is terminal, so the status flip and the stock release
// commit together.
func completeExpiredBookings(ctx context.Context, today string, db *sql.DB, sms service.SMSService) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("Failed to begin booking expiry transaction", "error", err)
		return
	}
	defer tx.Rollback()

	query := `
		UPDATE rentals
		SET status = 'completed',
		    processed_date = NOW()
		WHERE kind = 'booking'
		  AND status = 'confirmed'
		  AND end_date < $1
		RETURNING id, user_name, user_phone, equipment_name, equipment_id
	`

	rows, err := tx.QueryContext(ctx, query, today)
	if err != nil {
		logger.Error("Failed to expire bookings", "error", err)
		return
	}

	type completed struct {
		ID            int32
		UserName      string
		UserPhone     string
		EquipmentName string
		EquipmentID   int32
	}

	var done []completed
	for rows.Next() {
		var c completed
		if err := rows.Scan(&c.ID, &c.UserName, &c.UserPhone, &c.EquipmentName, &c.EquipmentID); err != nil {
			rows.Close()
			logger.Error("Failed to scan expired booking", "error", err)
			return
		}
		done = append(done, c)
	}
	if err := rows.Close(); err != nil {
		logger.Error("Error iterating expired bookings", "error", err)
		return
	}

	restock := `UPDATE equipment
		SET stock_quantity = stock_quantity + 1,
		    status = CASE WHEN stock_quantity + 1 > 0 THEN 'available' ELSE status END
		WHERE id = $1`
	for _, c := range done {
		if _, err := tx.ExecContext(ctx, restock, c.EquipmentID); err != nil {
			logger.Error("Failed to restock completed booking", "rental_id", c.ID, "error", err)
			return
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Failed to commit booking expiry", "error", err)
		return
	}

	for _, c := range done {
		message := fmt.Sprintf("Thank you %s! Your booking of %s is complete. We appreciate your business! - Lend A Hand",
			c.UserName, c.EquipmentName)
		if res := sms.Send(ctx, c.UserPhone, message); !res.Success {
			logger.Warn("Booking completion SMS failed", "rental_id", c.ID, "error", res.Error)
		}
	}

	logger.Info("Expired bookings completed", "count", len(done))
}
