package service

import (
	"context"

	"lendahand-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) GetOwned(ctx context.Context, id int32, vendorEmail string) (*domain.Equipment, error) {
	args := m.Called(ctx, id, vendorEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Update(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) Delete(ctx context.Context, id int32, vendorEmail string) error {
	args := m.Called(ctx, id, vendorEmail)
	return args.Error(0)
}
func (m *MockEquipmentRepo) AdjustStock(ctx context.Context, id int32, vendorEmail string, delta int32) (int32, error) {
	args := m.Called(ctx, id, vendorEmail, delta)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockEquipmentRepo) ListAvailable(ctx context.Context) ([]domain.Equipment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) ListByVendor(ctx context.Context, vendorEmail string) ([]domain.Equipment, error) {
	args := m.Called(ctx, vendorEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) ListAll(ctx context.Context, status, search string) ([]domain.Equipment, error) {
	args := m.Called(ctx, status, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) SetRating(ctx context.Context, id int32, rating float64, count int32) error {
	args := m.Called(ctx, id, rating, count)
	return args.Error(0)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Submit(ctx context.Context, rt *domain.Rental) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Transition(ctx context.Context, id int32, from []domain.RentalStatus, to domain.RentalStatus, restock bool) error {
	args := m.Called(ctx, id, from, to, restock)
	return args.Error(0)
}
func (m *MockRentalRepo) ListByUser(ctx context.Context, userID int32, kind domain.RentalKind, status string) ([]domain.Rental, error) {
	args := m.Called(ctx, userID, kind, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByVendor(ctx context.Context, vendorEmail string, kind domain.RentalKind, status string) ([]domain.Rental, error) {
	args := m.Called(ctx, vendorEmail, kind, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListAll(ctx context.Context, kind domain.RentalKind, status, search string) ([]domain.Rental, error) {
	args := m.Called(ctx, kind, status, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}
func (m *MockReviewRepo) GetByID(ctx context.Context, id int32) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}
func (m *MockReviewRepo) SoftDelete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockReviewRepo) HasActiveForBooking(ctx context.Context, userID, bookingID int32) (bool, error) {
	args := m.Called(ctx, userID, bookingID)
	return args.Bool(0), args.Error(1)
}
func (m *MockReviewRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Review, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}
func (m *MockReviewRepo) ListByVendor(ctx context.Context, vendorEmail string) ([]domain.Review, error) {
	args := m.Called(ctx, vendorEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}
func (m *MockReviewRepo) AggregateForEquipment(ctx context.Context, equipmentID int32) (float64, int32, error) {
	args := m.Called(ctx, equipmentID)
	return args.Get(0).(float64), args.Get(1).(int32), args.Error(2)
}

// MockSMSService records every send and always reports success unless
// told otherwise.
type MockSMSService struct {
	mock.Mock
}

func (m *MockSMSService) Send(ctx context.Context, phone, message string) SMSResult {
	args := m.Called(ctx, phone, message)
	return args.Get(0).(SMSResult)
}
