package repository

import (
	"context"

	"lendahand-backend/internal/domain"
)

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	// GetOwned returns the equipment only when it belongs to the vendor.
	GetOwned(ctx context.Context, id int32, vendorEmail string) (*domain.Equipment, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	Delete(ctx context.Context, id int32, vendorEmail string) error
	// AdjustStock atomically adds delta to the stock quantity, clamped at
	// zero, re-deriving the availability status in the same statement.
	// Returns the new stock value.
	AdjustStock(ctx context.Context, id int32, vendorEmail string, delta int32) (int32, error)
	ListAvailable(ctx context.Context) ([]domain.Equipment, error)
	ListByVendor(ctx context.Context, vendorEmail string) ([]domain.Equipment, error)
	ListAll(ctx context.Context, status, search string) ([]domain.Equipment, error)
	SetRating(ctx context.Context, id int32, rating float64, count int32) error
}

type RentalRepository interface {
	// Submit inserts the rental row and reserves one stock unit in a
	// single transaction. Returns domain.ErrOutOfStock when no unit is
	// left to reserve.
	Submit(ctx context.Context, rt *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	// Transition moves the rental into `to` only when its current status
	// is one of `from`, stamping processed_date. When restock is true the
	// reserved unit is released in the same transaction. A rental already
	// out of the allowed set yields domain.ErrInvalidTransition with no
	// stock change.
	Transition(ctx context.Context, id int32, from []domain.RentalStatus, to domain.RentalStatus, restock bool) error
	ListByUser(ctx context.Context, userID int32, kind domain.RentalKind, status string) ([]domain.Rental, error)
	ListByVendor(ctx context.Context, vendorEmail string, kind domain.RentalKind, status string) ([]domain.Rental, error)
	ListAll(ctx context.Context, kind domain.RentalKind, status, search string) ([]domain.Rental, error)
	Delete(ctx context.Context, id int32) error
}

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int32) (*domain.Review, error)
	SoftDelete(ctx context.Context, id int32) error
	HasActiveForBooking(ctx context.Context, userID, bookingID int32) (bool, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Review, error)
	ListByVendor(ctx context.Context, vendorEmail string) ([]domain.Review, error)
	// AggregateForEquipment returns the mean rating and count of active
	// reviews for the equipment.
	AggregateForEquipment(ctx context.Context, equipmentID int32) (float64, int32, error)
}
