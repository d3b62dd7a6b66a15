package domain

import "time"

type ReviewStatus string

const (
	ReviewStatusActive  ReviewStatus = "active"
	ReviewStatusDeleted ReviewStatus = "deleted"
)

type Review struct {
	ID            int32        `json:"id"`
	UserID        int32        `json:"user_id"`
	UserName      string       `json:"user_name"`
	EquipmentID   int32        `json:"equipment_id"`
	EquipmentName string       `json:"equipment_name"`
	VendorEmail   string       `json:"vendor_email"`
	Rating        int32        `json:"rating"`
	Title         string       `json:"title"`
	Comment       string       `json:"comment"`
	BookingID     *int32       `json:"booking_id,omitempty"`
	Status        ReviewStatus `json:"status"`
	CreatedOn     time.Time    `json:"created_on"`
}
