package service

import (
	"context"
	"math"

	"lendahand-backend/internal/domain"
	"lendahand-backend/internal/logger"
	"lendahand-backend/internal/repository"
)

type reviewService struct {
	reviewRepo    repository.ReviewRepository
	equipmentRepo repository.EquipmentRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, equipmentRepo repository.EquipmentRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, equipmentRepo: equipmentRepo}
}

func (s *reviewService) Submit(ctx context.Context, caller *domain.Caller, in *SubmitReviewInput) (*domain.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domain.Validationf("rating must be between 1 and 5")
	}

	eq, err := s.equipmentRepo.GetByID(ctx, in.EquipmentID)
	if err != nil {
		return nil, err
	}

	if in.BookingID != nil {
		exists, err := s.reviewRepo.HasActiveForBooking(ctx, caller.UserID, *in.BookingID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.Validationf("you have already reviewed this booking")
		}
	}

	rv := &domain.Review{
		UserID:        caller.UserID,
		UserName:      caller.Name,
		EquipmentID:   eq.ID,
		EquipmentName: eq.Name,
		VendorEmail:   eq.VendorEmail,
		Rating:        in.Rating,
		Title:         in.Title,
		Comment:       in.Comment,
		BookingID:     in.BookingID,
		Status:        domain.ReviewStatusActive,
	}
	if err := s.reviewRepo.Create(ctx, rv); err != nil {
		return nil, err
	}

	s.refreshRating(ctx, eq.ID)
	return rv, nil
}

// Delete soft-deletes the caller's own review and folds it out of the
// equipment aggregate.
func (s *reviewService) Delete(ctx context.Context, caller *domain.Caller, id int32) error {
	rv, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rv.UserID != caller.UserID && caller.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if err := s.reviewRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.refreshRating(ctx, rv.EquipmentID)
	return nil
}

func (s *reviewService) ListMine(ctx context.Context, caller *domain.Caller) ([]domain.Review, error) {
	return s.reviewRepo.ListByUser(ctx, caller.UserID)
}

func (s *reviewService) ListForVendor(ctx context.Context, caller *domain.Caller) ([]domain.Review, error) {
	return s.reviewRepo.ListByVendor(ctx, caller.Email)
}

// refreshRating recomputes the denormalized rating columns from the active
// reviews. The average is kept to one decimal place. A failure here leaves
// the cached numbers stale until the next review touches the equipment, so
// it is logged rather than surfaced.
func (s *reviewService) refreshRating(ctx context.Context, equipmentID int32) {
	avg, count, err := s.reviewRepo.AggregateForEquipment(ctx, equipmentID)
	if err != nil {
		logger.Warn("review aggregation failed", "equipment_id", equipmentID, "error", err)
		return
	}
	rounded := math.Round(avg*10) / 10
	if err := s.equipmentRepo.SetRating(ctx, equipmentID, rounded, count); err != nil {
		logger.Warn("rating update failed", "equipment_id", equipmentID, "error", err)
	}
}
