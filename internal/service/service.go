package service

import (
	"context"

	"lendahand-backend/internal/domain"
)

// EquipmentInput carries the vendor-supplied fields for add/update.
type EquipmentInput struct {
	Name              string
	Category          string
	Description       string
	Price             string
	PriceUnit         string
	Location          string
	ImageURL          string
	StockQuantity     *int32
	MinStockThreshold *int32
}

type EquipmentService interface {
	AddEquipment(ctx context.Context, caller *domain.Caller, in *EquipmentInput) (*domain.Equipment, error)
	UpdateEquipment(ctx context.Context, caller *domain.Caller, id int32, in *EquipmentInput) (*domain.Equipment, error)
	DeleteEquipment(ctx context.Context, caller *domain.Caller, id int32) error
	AdjustStock(ctx context.Context, caller *domain.Caller, id int32, delta int32) (int32, error)
	ListAvailable(ctx context.Context) ([]domain.Equipment, error)
	ListMyEquipment(ctx context.Context, caller *domain.Caller) ([]domain.Equipment, error)
	ListAllEquipment(ctx context.Context, status, search string) ([]domain.Equipment, error)
}

// SubmitRentalInput describes a new booking or rent request. Bookings
// ignore the dates and run for a single day starting now.
type SubmitRentalInput struct {
	Kind        domain.RentalKind
	EquipmentID int32
	StartDate   string
	EndDate     string
	Purpose     string
	Notes       string
}

type RentalService interface {
	Submit(ctx context.Context, caller *domain.Caller, in *SubmitRentalInput) (*domain.Rental, error)
	Approve(ctx context.Context, caller *domain.Caller, id int32) (*domain.Rental, error)
	Reject(ctx context.Context, caller *domain.Caller, id int32) (*domain.Rental, error)
	MarkReturned(ctx context.Context, caller *domain.Caller, id int32) (*domain.Rental, error)
	Complete(ctx context.Context, caller *domain.Caller, id int32) (*domain.Rental, error)
	ListMine(ctx context.Context, caller *domain.Caller, kind domain.RentalKind, status string) ([]domain.Rental, error)
	ListForVendor(ctx context.Context, caller *domain.Caller, kind domain.RentalKind, status string) ([]domain.Rental, error)
	ListAll(ctx context.Context, kind domain.RentalKind, status, search string) ([]domain.Rental, error)
	DeleteBooking(ctx context.Context, id int32) error
}

type SubmitReviewInput struct {
	EquipmentID int32
	BookingID   *int32
	Rating      int32
	Title       string
	Comment     string
}

type ReviewService interface {
	Submit(ctx context.Context, caller *domain.Caller, in *SubmitReviewInput) (*domain.Review, error)
	Delete(ctx context.Context, caller *domain.Caller, id int32) error
	ListMine(ctx context.Context, caller *domain.Caller) ([]domain.Review, error)
	ListForVendor(ctx context.Context, caller *domain.Caller) ([]domain.Review, error)
}

// SMSResult is what the notification sink reports back. Send never fails
// with an error value; callers inspect Success and log.
type SMSResult struct {
	Success   bool
	MessageID string
	Error     string
}

type SMSService interface {
	Send(ctx context.Context, phone, message string) SMSResult
}
