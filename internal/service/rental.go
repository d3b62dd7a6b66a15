package service

import (
	"context"
	"fmt"
	"time"

	"lendahand-backend/internal/domain"
	"lendahand-backend/internal/logger"
	"lendahand-backend/internal/repository"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type rentalService struct {
	rentalRepo    repository.RentalRepository
	equipmentRepo repository.EquipmentRepository
	sms           SMSService
}

func NewRentalService(rentalRepo repository.RentalRepository, equipmentRepo repository.EquipmentRepository, sms SMSService) RentalService {
	return &rentalService{
		rentalRepo:    rentalRepo,
		equipmentRepo: equipmentRepo,
		sms:           sms,
	}
}

// Submit prices the rental from the equipment's current price, inserts it
// as pending and reserves one stock unit. The insert and the decrement
// happen in one store transaction, so a concurrent submission against the
// last unit loses with ErrOutOfStock instead of driving stock negative.
func (s *rentalService) Submit(ctx context.Context, caller *domain.Caller, in *SubmitRentalInput) (*domain.Rental, error) {
	eq, err := s.equipmentRepo.GetByID(ctx, in.EquipmentID)
	if err != nil {
		return nil, err
	}
	if eq.StockQuantity <= 0 {
		return nil, domain.ErrOutOfStock
	}

	startDate, endDate, duration, err := resolveDates(in)
	if err != nil {
		return nil, err
	}

	baseAmount := eq.Price.Mul(decimal.NewFromInt(int64(duration)))
	serviceFee := baseAmount.Mul(domain.ServiceFeeRate)
	totalAmount := baseAmount.Add(serviceFee)

	rt := &domain.Rental{
		Kind:          in.Kind,
		UserID:        caller.UserID,
		UserName:      caller.Name,
		UserPhone:     caller.Phone,
		UserEmail:     caller.Email,
		EquipmentID:   eq.ID,
		EquipmentName: eq.Name,
		VendorEmail:   eq.VendorEmail,
		StartDate:     startDate,
		EndDate:       endDate,
		Duration:      duration,
		Purpose:       in.Purpose,
		Notes:         in.Notes,
		DailyRate:     eq.Price,
		BaseAmount:    baseAmount,
		ServiceFee:    serviceFee,
		TotalAmount:   totalAmount,
		Status:        domain.RentalStatusPending,
		SubmittedDate: time.Now(),
	}

	if err := s.rentalRepo.Submit(ctx, rt); err != nil {
		return nil, err
	}

	s.notify(ctx, eq.VendorPhone,
		fmt.Sprintf("New rental request: %s wants %s from %s to %s. Please review it in your dashboard. - Lend A Hand",
			caller.Name, eq.Name, startDate, endDate))

	return rt, nil
}

// Approve moves a pending rent request to approved, or a pending booking
// to confirmed. Stock is untouched: the unit was reserved at submission.
func (s *rentalService) Approve(ctx context.Context, caller *domain.Caller, id int32) (*domain.Rental, error) {
	rt, err := s.vendorRental(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	target := domain.RentalStatusApproved
	if rt.Kind == domain.RentalKindBooking {
		target = domain.RentalStatusConfirmed
	}
	if err := s.rentalRepo.Transition(ctx, id, []domain.RentalStatus{domain.RentalStatusPending}, target, false); err != nil {
		return nil, err
	}
	rt.Status = target

	verb := "approved"
	if rt.Kind == domain.RentalKindBooking {
		verb = "confirmed"
	}
	s.notify(ctx, rt.UserPhone,
		fmt.Sprintf("Dear %s, your %s for %s has been %s! Total amount: ₹%s.",
			rt.UserName, kindLabel(rt.Kind), rt.EquipmentName, verb, rt.TotalAmount.StringFixed(2)))

	return rt, nil
}

// Reject releases the reserved unit. The status guard in Transition makes
// the release happen at most once even when racing a Complete call.
func (s *rentalService) Reject(ctx context.Context, caller *domain.Caller, id int32) (*domain.Rental, error) {
	rt, err := s.vendorRental(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	from := []domain.RentalStatus{domain.RentalStatusPending, domain.RentalStatusApproved, domain.RentalStatusConfirmed}
	if err := s.rentalRepo.Transition(ctx, id, from, domain.RentalStatusRejected, true); err != nil {
		return nil, err
	}
	rt.Status = domain.RentalStatusRejected

	s.notify(ctx, rt.UserPhone,
		fmt.Sprintf("Dear %s, your %s for %s has been rejected.", rt.UserName, kindLabel(rt.Kind), rt.EquipmentName))

	return rt, nil
}

// MarkReturned is the farmer's half of the return handshake; the unit
// stays reserved until the vendor completes.
func (s *rentalService) MarkReturned(ctx context.Context, caller *domain.Caller, id int32) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rt.UserID != caller.UserID {
		return nil, domain.ErrForbidden
	}
	if rt.Kind != domain.RentalKindRentRequest {
		return nil, domain.Validationf("only rent requests have a return step")
	}

	from := []domain.RentalStatus{domain.RentalStatusApproved, domain.RentalStatusReturnPending}
	if err := s.rentalRepo.Transition(ctx, id, from, domain.RentalStatusReturned, false); err != nil {
		return nil, err
	}
	rt.Status = domain.RentalStatusReturned

	s.notify(ctx, rt.UserPhone,
		fmt.Sprintf("Dear %s, your return request for %s has been submitted. Waiting for vendor approval.", rt.UserName, rt.EquipmentName))
	if eq, err := s.equipmentRepo.GetByID(ctx, rt.EquipmentID); err == nil {
		s.notify(ctx, eq.VendorPhone,
			fmt.Sprintf("%s reported %s as returned. Please confirm the return in your dashboard. - Lend A Hand", rt.UserName, rt.EquipmentName))
	}

	return rt, nil
}

// Complete is the only stock-releasing transition besides Reject.
func (s *rentalService) Complete(ctx context.Context, caller *domain.Caller, id int32) (*domain.Rental, error) {
	rt, err := s.vendorRental(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	var from []domain.RentalStatus
	if rt.Kind == domain.RentalKindBooking {
		from = []domain.RentalStatus{domain.RentalStatusConfirmed}
	} else {
		from = []domain.RentalStatus{domain.RentalStatusReturned, domain.RentalStatusReturnPending}
	}
	if err := s.rentalRepo.Transition(ctx, id, from, domain.RentalStatusCompleted, true); err != nil {
		return nil, err
	}
	rt.Status = domain.RentalStatusCompleted

	s.notify(ctx, rt.UserPhone,
		fmt.Sprintf("Thank you %s! Your equipment %s has been successfully returned and approved. We appreciate your business! - Lend A Hand",
			rt.UserName, rt.EquipmentName))

	return rt, nil
}

func (s *rentalService) ListMine(ctx context.Context, caller *domain.Caller, kind domain.RentalKind, status string) ([]domain.Rental, error) {
	return s.rentalRepo.ListByUser(ctx, caller.UserID, kind, status)
}

func (s *rentalService) ListForVendor(ctx context.Context, caller *domain.Caller, kind domain.RentalKind, status string) ([]domain.Rental, error) {
	return s.rentalRepo.ListByVendor(ctx, caller.Email, kind, status)
}

func (s *rentalService) ListAll(ctx context.Context, kind domain.RentalKind, status, search string) ([]domain.Rental, error) {
	return s.rentalRepo.ListAll(ctx, kind, status, search)
}

func (s *rentalService) DeleteBooking(ctx context.Context, id int32) error {
	return s.rentalRepo.Delete(ctx, id)
}

// vendorRental loads the rental and enforces vendor ownership.
func (s *rentalService) vendorRental(ctx context.Context, caller *domain.Caller, id int32) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rt.VendorEmail != caller.Email {
		return nil, domain.ErrForbidden
	}
	return rt, nil
}

// notify is fire and forget: failures are logged, never propagated, and
// never roll back the already-committed transition.
func (s *rentalService) notify(ctx context.Context, phone, message string) {
	if phone == "" {
		return
	}
	if res := s.sms.Send(ctx, phone, message); !res.Success {
		logger.Warn("rental notification failed", "error", res.Error)
	}
}

func resolveDates(in *SubmitRentalInput) (string, string, int32, error) {
	if in.Kind == domain.RentalKindBooking {
		// Instant bookings run for a single day starting today unless a
		// start date was given.
		start := in.StartDate
		if start == "" {
			start = time.Now().Format(dateLayout)
		}
		if _, err := time.Parse(dateLayout, start); err != nil {
			return "", "", 0, domain.Validationf("invalid start date: %s", in.StartDate)
		}
		return start, start, 1, nil
	}

	if in.StartDate == "" || in.EndDate == "" {
		return "", "", 0, domain.Validationf("start_date and end_date are required")
	}
	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return "", "", 0, domain.Validationf("invalid start date: %s", in.StartDate)
	}
	end, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		return "", "", 0, domain.Validationf("invalid end date: %s", in.EndDate)
	}

	// Duration counts both the start and the end day.
	duration := int32(end.Sub(start).Hours()/24) + 1
	if duration <= 0 {
		return "", "", 0, domain.Validationf("end date must not be before start date")
	}
	return in.StartDate, in.EndDate, duration, nil
}

func kindLabel(kind domain.RentalKind) string {
	if kind == domain.RentalKindBooking {
		return "booking"
	}
	return "rent request"
}
