package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RentalKind selects the workflow: an instant one-day booking or a
// multi-day rent request with an explicit returned step.
type RentalKind string

const (
	RentalKindBooking     RentalKind = "booking"
	RentalKindRentRequest RentalKind = "rent_request"
)

type RentalStatus string

const (
	RentalStatusPending       RentalStatus = "pending"
	RentalStatusApproved      RentalStatus = "approved"
	RentalStatusConfirmed     RentalStatus = "confirmed"
	RentalStatusReturned      RentalStatus = "returned"
	RentalStatusReturnPending RentalStatus = "return_pending"
	RentalStatusRejected      RentalStatus = "rejected"
	RentalStatusCompleted     RentalStatus = "completed"
)

// Terminal reports whether the status admits no further transitions. The
// reserved stock unit is released exactly once, on entering a terminal
// status.
func (s RentalStatus) Terminal() bool {
	return s == RentalStatusRejected || s == RentalStatusCompleted
}

// ServiceFeeRate is the platform fee charged on top of the base amount.
var ServiceFeeRate = decimal.NewFromFloat(0.10)

// ReminderTypeAuto2Day marks the automatic reminder sent two days before
// the end date.
const ReminderTypeAuto2Day = "auto_2day"

type Rental struct {
	ID   int32      `json:"id"`
	Kind RentalKind `json:"kind"`

	// Requester and equipment fields below are point-in-time snapshots
	// taken at submission; later profile or equipment edits never rewrite
	// them.
	UserID        int32  `json:"user_id"`
	UserName      string `json:"user_name"`
	UserPhone     string `json:"user_phone"`
	UserEmail     string `json:"user_email"`
	EquipmentID   int32  `json:"equipment_id"`
	EquipmentName string `json:"equipment_name"`
	VendorEmail   string `json:"vendor_email"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Duration  int32  `json:"duration"`
	Purpose   string `json:"purpose,omitempty"`
	Notes     string `json:"notes,omitempty"`

	DailyRate   decimal.Decimal `json:"daily_rate"`
	BaseAmount  decimal.Decimal `json:"base_amount"`
	ServiceFee  decimal.Decimal `json:"service_fee"`
	TotalAmount decimal.Decimal `json:"total_amount"`

	Status           RentalStatus `json:"status"`
	SubmittedDate    time.Time    `json:"submitted_date"`
	ProcessedDate    *time.Time   `json:"processed_date,omitempty"`
	LastReminderSent *time.Time   `json:"last_reminder_sent,omitempty"`
	ReminderType     string       `json:"reminder_type,omitempty"`
}
