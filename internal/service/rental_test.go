package service

import (
	"context"
	"strings"
	"testing"

	"lendahand-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testFarmer() *domain.Caller {
	return &domain.Caller{UserID: 7, Name: "Ravi", Phone: "98765 43210", Email: "ravi@farm.test", Role: domain.RoleFarmer}
}

func testVendor() *domain.Caller {
	return &domain.Caller{UserID: 3, Name: "AgriRent", Phone: "9000090000", Email: "vendor@agrirent.test", Role: domain.RoleVendor}
}

func testTractor() *domain.Equipment {
	return &domain.Equipment{
		ID:            42,
		VendorEmail:   "vendor@agrirent.test",
		VendorPhone:   "9000090000",
		Name:          "Tractor",
		Category:      "tractor",
		Price:         decimal.NewFromInt(500),
		PriceUnit:     "day",
		Location:      "Pune",
		Status:        domain.EquipmentStatusAvailable,
		StockQuantity: 3,
	}
}

func TestRentalService_SubmitRentRequest(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	equipmentRepo := new(MockEquipmentRepo)
	sms := new(MockSMSService)
	svc := NewRentalService(rentalRepo, equipmentRepo, sms)
	ctx := context.Background()

	equipmentRepo.On("GetByID", ctx, int32(42)).Return(testTractor(), nil)
	rentalRepo.On("Submit", ctx, mock.MatchedBy(func(rt *domain.Rental) bool {
		return rt.Kind == domain.RentalKindRentRequest &&
			rt.Duration == 4 &&
			rt.BaseAmount.Equal(decimal.NewFromInt(2000)) &&
			rt.ServiceFee.Equal(decimal.NewFromInt(200)) &&
			rt.TotalAmount.Equal(decimal.NewFromInt(2200)) &&
			rt.Status == domain.RentalStatusPending &&
			rt.UserID == 7 &&
			rt.VendorEmail == "vendor@agrirent.test"
	})).Return(nil).Once()
	sms.On("Send", ctx, "9000090000", mock.MatchedBy(func(msg string) bool {
		return strings.Contains(msg, "Tractor")
	})).Return(SMSResult{Success: true}).Once()

	rt, err := svc.Submit(ctx, testFarmer(), &SubmitRentalInput{
		Kind:        domain.RentalKindRentRequest,
		EquipmentID: 42,
		StartDate:   "2026-05-01",
		EndDate:     "2026-05-04",
		Purpose:     "ploughing",
	})
	assert.NoError(t, err)
	// Duration is inclusive of both end days.
	assert.Equal(t, int32(4), rt.Duration)
	assert.Equal(t, "Tractor", rt.EquipmentName)
	rentalRepo.AssertExpectations(t)
	sms.AssertExpectations(t)
}

func TestRentalService_SubmitOutOfStock(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	equipmentRepo := new(MockEquipmentRepo)
	sms := new(MockSMSService)
	svc := NewRentalService(rentalRepo, equipmentRepo, sms)
	ctx := context.Background()

	t.Run("PreCheck", func(t *testing.T) {
		empty := testTractor()
		empty.StockQuantity = 0
		equipmentRepo.On("GetByID", ctx, int32(42)).Return(empty, nil).Once()

		_, err := svc.Submit(ctx, testFarmer(), &SubmitRentalInput{
			Kind: domain.RentalKindRentRequest, EquipmentID: 42, StartDate: "2026-05-01", EndDate: "2026-05-02",
		})
		assert.ErrorIs(t, err, domain.ErrOutOfStock)
		rentalRepo.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("LostRace", func(t *testing.T) {
		// Stock looked fine at read time but another submission grabbed
		// the last unit before the insert.
		equipmentRepo.On("GetByID", ctx, int32(42)).Return(testTractor(), nil).Once()
		rentalRepo.On("Submit", ctx, mock.Anything).Return(domain.ErrOutOfStock).Once()

		_, err := svc.Submit(ctx, testFarmer(), &SubmitRentalInput{
			Kind: domain.RentalKindRentRequest, EquipmentID: 42, StartDate: "2026-05-01", EndDate: "2026-05-02",
		})
		assert.ErrorIs(t, err, domain.ErrOutOfStock)
	})
}

func TestRentalService_SubmitBadDates(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	equipmentRepo := new(MockEquipmentRepo)
	sms := new(MockSMSService)
	svc := NewRentalService(rentalRepo, equipmentRepo, sms)
	ctx := context.Background()

	equipmentRepo.On("GetByID", ctx, int32(42)).Return(testTractor(), nil)

	cases := []struct {
		name  string
		start string
		end   string
	}{
		{"MissingEnd", "2026-05-01", ""},
		{"Garbage", "not-a-date", "2026-05-04"},
		{"EndBeforeStart", "2026-05-04", "2026-05-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, testFarmer(), &SubmitRentalInput{
				Kind: domain.RentalKindRentRequest, EquipmentID: 42, StartDate: tc.start, EndDate: tc.end,
			})
			assert.True(t, domain.IsValidation(err))
		})
	}
	rentalRepo.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestRentalService_SubmitBooking(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	equipmentRepo := new(MockEquipmentRepo)
	sms := new(MockSMSService)
	svc := NewRentalService(rentalRepo, equipmentRepo, sms)
	ctx := context.Background()

	equipmentRepo.On("GetByID", ctx, int32(42)).Return(testTractor(), nil)
	rentalRepo.On("Submit", ctx, mock.MatchedBy(func(rt *domain.Rental) bool {
		return rt.Kind == domain.RentalKindBooking &&
			rt.Duration == 1 &&
			rt.StartDate == rt.EndDate &&
			rt.TotalAmount.Equal(decimal.NewFromInt(550))
	})).Return(nil).Once()
	sms.On("Send", ctx, "9000090000", mock.Anything).Return(SMSResult{Success: true}).Once()

	rt, err := svc.Submit(ctx, testFarmer(), &SubmitRentalInput{
		Kind:        domain.RentalKindBooking,
		EquipmentID: 42,
	})
	assert.NoError(t, err)
	assert.Equal(t, int32(1), rt.Duration)
	rentalRepo.AssertExpectations(t)
}

func TestRentalService_Approve(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	equipmentRepo := new(MockEquipmentRepo)
	sms := new(MockSMSService)
	svc := NewRentalService(rentalRepo, equipmentRepo, sms)
	ctx := context.Background()

	pending := &domain.Rental{
		ID: 9, Kind: domain.RentalKindRentRequest, UserID: 7, UserName: "Ravi", UserPhone: "9876543210",
		EquipmentID: 42, EquipmentName: "Tractor", VendorEmail: "vendor@agrirent.test",
		Status: domain.RentalStatusPending, TotalAmount: decimal.NewFromInt(2200),
	}

	t.Run("RentRequest", func(t *testing.T) {
		rentalRepo.On("GetByID", ctx, int32(9)).Return(pending, nil).Once()
		rentalRepo.On("Transition", ctx, int32(9),
			[]domain.RentalStatus{domain.RentalStatusPending}, domain.RentalStatusApproved, false).Return(nil).Once()
		sms.On("Send", ctx, "9876543210", mock.MatchedBy(func(msg string) bool {
			return strings.Contains(msg, "approved") && strings.Contains(msg, "2200")
		})).Return(SMSResult{Success: true}).Once()

		rt, err := svc.Approve(ctx, testVendor(), 9)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusApproved, rt.Status)
	})

	t.Run("BookingGoesToConfirmed", func(t *testing.T) {
		booking := *pending
		booking.Kind = domain.RentalKindBooking
		rentalRepo.On("GetByID", ctx, int32(9)).Return(&booking, nil).Once()
		rentalRepo.On("Transition", ctx, int32(9),
			[]domain.RentalStatus{domain.RentalStatusPending}, domain.RentalStatusConfirmed, false).Return(nil).Once()
		sms.On("Send", ctx, "9876543210", mock.Anything).Return(SMSResult{Success: true}).Once()

		rt, err := svc.Approve(ctx, testVendor(), 9)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusConfirmed, rt.Status)
	})

	t.Run("WrongVendor", func(t *testing.T) {
		rentalRepo.On("GetByID", ctx, int32(9)).Return(pending, nil).Once()

		_, err := svc.Approve(ctx, &domain.Caller{Email: "other@vendor.test", Role: domain.RoleVendor}, 9)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	rentalRepo.AssertExpectations(t)
}

func TestRentalService_RejectReleasesStock(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	equipmentRepo := new(MockEquipmentRepo)
	sms := new(MockSMSService)
	svc := NewRentalService(rentalRepo, equipmentRepo, sms)
	ctx := context.Background()

	rentalRepo.On("GetByID", ctx, int32(9)).Return(&domain.Rental{
		ID: 9, Kind: domain.RentalKindRentRequest, UserPhone: "9876543210",
		VendorEmail: "vendor@agrirent.test", Status: domain.RentalStatusApproved,
	}, nil).Once()
	rentalRepo.On("Transition", ctx, int32(9),
		[]domain.RentalStatus{domain.RentalStatusPending, domain.RentalStatusApproved, domain.RentalStatusConfirmed},
		domain.RentalStatusRejected, true).Return(nil).Once()
	sms.On("Send", ctx, "9876543210", mock.Anything).Return(SMSResult{Success: true}).Once()

	rt, err := svc.Reject(ctx, testVendor(), 9)
	assert.NoError(t, err)
	assert.Equal(t, domain.RentalStatusRejected, rt.Status)
	rentalRepo.AssertExpectations(t)
}

func TestRentalService_MarkReturned(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	equipmentRepo := new(MockEquipmentRepo)
	sms := new(MockSMSService)
	svc := NewRentalService(rentalRepo, equipmentRepo, sms)
	ctx := context.Background()

	approved := &domain.Rental{
		ID: 9, Kind: domain.RentalKindRentRequest, UserID: 7, UserName: "Ravi", UserPhone: "9876543210",
		EquipmentID: 42, EquipmentName: "Tractor", VendorEmail: "vendor@agrirent.test",
		Status: domain.RentalStatusApproved,
	}

	t.Run("Success", func(t *testing.T) {
		rentalRepo.On("GetByID", ctx, int32(9)).Return(approved, nil).Once()
		rentalRepo.On("Transition", ctx, int32(9),
			[]domain.RentalStatus{domain.RentalStatusApproved, domain.RentalStatusReturnPending},
			domain.RentalStatusReturned, false).Return(nil).Once()
		equipmentRepo.On("GetByID", ctx, int32(42)).Return(testTractor(), nil).Once()
		sms.On("Send", ctx, "9876543210", mock.Anything).Return(SMSResult{Success: true}).Once()
		sms.On("Send", ctx, "9000090000", mock.Anything).Return(SMSResult{Success: true}).Once()

		rt, err := svc.MarkReturned(ctx, testFarmer(), 9)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusReturned, rt.Status)
	})

	t.Run("NotTheRenter", func(t *testing.T) {
		rentalRepo.On("GetByID", ctx, int32(9)).Return(approved, nil).Once()

		_, err := svc.MarkReturned(ctx, &domain.Caller{UserID: 99, Role: domain.RoleFarmer}, 9)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("BookingHasNoReturnStep", func(t *testing.T) {
		booking := *approved
		booking.Kind = domain.RentalKindBooking
		rentalRepo.On("GetByID", ctx, int32(9)).Return(&booking, nil).Once()

		_, err := svc.MarkReturned(ctx, testFarmer(), 9)
		assert.True(t, domain.IsValidation(err))
	})

	rentalRepo.AssertExpectations(t)
}

func TestRentalService_Complete(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	equipmentRepo := new(MockEquipmentRepo)
	sms := new(MockSMSService)
	svc := NewRentalService(rentalRepo, equipmentRepo, sms)
	ctx := context.Background()

	t.Run("RentRequest", func(t *testing.T) {
		rentalRepo.On("GetByID", ctx, int32(9)).Return(&domain.Rental{
			ID: 9, Kind: domain.RentalKindRentRequest, UserPhone: "9876543210",
			VendorEmail: "vendor@agrirent.test", Status: domain.RentalStatusReturned,
		}, nil).Once()
		rentalRepo.On("Transition", ctx, int32(9),
			[]domain.RentalStatus{domain.RentalStatusReturned, domain.RentalStatusReturnPending},
			domain.RentalStatusCompleted, true).Return(nil).Once()
		sms.On("Send", ctx, "9876543210", mock.Anything).Return(SMSResult{Success: true}).Once()

		rt, err := svc.Complete(ctx, testVendor(), 9)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCompleted, rt.Status)
	})

	t.Run("BookingFromConfirmed", func(t *testing.T) {
		rentalRepo.On("GetByID", ctx, int32(10)).Return(&domain.Rental{
			ID: 10, Kind: domain.RentalKindBooking, UserPhone: "9876543210",
			VendorEmail: "vendor@agrirent.test", Status: domain.RentalStatusConfirmed,
		}, nil).Once()
		rentalRepo.On("Transition", ctx, int32(10),
			[]domain.RentalStatus{domain.RentalStatusConfirmed},
			domain.RentalStatusCompleted, true).Return(nil).Once()
		sms.On("Send", ctx, "9876543210", mock.Anything).Return(SMSResult{Success: true}).Once()

		rt, err := svc.Complete(ctx, testVendor(), 10)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCompleted, rt.Status)
	})

	t.Run("AlreadyCompleted", func(t *testing.T) {
		// Second completion hits the status guard; no second restock.
		rentalRepo.On("GetByID", ctx, int32(9)).Return(&domain.Rental{
			ID: 9, Kind: domain.RentalKindRentRequest,
			VendorEmail: "vendor@agrirent.test", Status: domain.RentalStatusCompleted,
		}, nil).Once()
		rentalRepo.On("Transition", ctx, int32(9), mock.Anything,
			domain.RentalStatusCompleted, true).Return(domain.ErrInvalidTransition).Once()

		_, err := svc.Complete(ctx, testVendor(), 9)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	rentalRepo.AssertExpectations(t)
}

func TestRentalService_SMSFailureDoesNotFailTransition(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	equipmentRepo := new(MockEquipmentRepo)
	sms := new(MockSMSService)
	svc := NewRentalService(rentalRepo, equipmentRepo, sms)
	ctx := context.Background()

	rentalRepo.On("GetByID", ctx, int32(9)).Return(&domain.Rental{
		ID: 9, Kind: domain.RentalKindRentRequest, UserPhone: "9876543210",
		VendorEmail: "vendor@agrirent.test", Status: domain.RentalStatusPending,
	}, nil).Once()
	rentalRepo.On("Transition", ctx, int32(9), mock.Anything, domain.RentalStatusApproved, false).Return(nil).Once()
	sms.On("Send", ctx, "9876543210", mock.Anything).Return(SMSResult{Success: false, Error: "gateway down"}).Once()

	rt, err := svc.Approve(ctx, testVendor(), 9)
	assert.NoError(t, err)
	assert.Equal(t, domain.RentalStatusApproved, rt.Status)
}
