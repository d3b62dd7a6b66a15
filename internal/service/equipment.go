package service

import (
	"context"

	"lendahand-backend/internal/domain"
	"lendahand-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepository) EquipmentService {
	return &equipmentService{equipmentRepo: equipmentRepo}
}

func (s *equipmentService) AddEquipment(ctx context.Context, caller *domain.Caller, in *EquipmentInput) (*domain.Equipment, error) {
	price, err := validateEquipmentInput(in, true)
	if err != nil {
		return nil, err
	}

	eq := &domain.Equipment{
		VendorEmail:       caller.Email,
		VendorPhone:       caller.Phone,
		Name:              in.Name,
		Category:          in.Category,
		Description:       in.Description,
		Price:             price,
		PriceUnit:         in.PriceUnit,
		Location:          in.Location,
		ImageURL:          in.ImageURL,
		StockQuantity:     *in.StockQuantity,
		MinStockThreshold: *in.MinStockThreshold,
		Status:            deriveStatus(*in.StockQuantity),
	}
	if eq.PriceUnit == "" {
		eq.PriceUnit = "day"
	}

	if err := s.equipmentRepo.Create(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

func (s *equipmentService) UpdateEquipment(ctx context.Context, caller *domain.Caller, id int32, in *EquipmentInput) (*domain.Equipment, error) {
	eq, err := s.equipmentRepo.GetOwned(ctx, id, caller.Email)
	if err != nil {
		return nil, err
	}

	price, err := validateEquipmentInput(in, true)
	if err != nil {
		return nil, err
	}

	eq.Name = in.Name
	eq.Category = in.Category
	eq.Description = in.Description
	eq.Price = price
	eq.Location = in.Location
	if in.PriceUnit != "" {
		eq.PriceUnit = in.PriceUnit
	}
	// Keep the existing image when the vendor did not upload a new one.
	if in.ImageURL != "" {
		eq.ImageURL = in.ImageURL
	}
	eq.StockQuantity = *in.StockQuantity
	eq.MinStockThreshold = *in.MinStockThreshold
	eq.Status = deriveStatus(eq.StockQuantity)

	if err := s.equipmentRepo.Update(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

func (s *equipmentService) DeleteEquipment(ctx context.Context, caller *domain.Caller, id int32) error {
	return s.equipmentRepo.Delete(ctx, id, caller.Email)
}

func (s *equipmentService) AdjustStock(ctx context.Context, caller *domain.Caller, id int32, delta int32) (int32, error) {
	return s.equipmentRepo.AdjustStock(ctx, id, caller.Email, delta)
}

func (s *equipmentService) ListAvailable(ctx context.Context) ([]domain.Equipment, error) {
	items, err := s.equipmentRepo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	annotateStockStatus(items)
	return items, nil
}

func (s *equipmentService) ListMyEquipment(ctx context.Context, caller *domain.Caller) ([]domain.Equipment, error) {
	items, err := s.equipmentRepo.ListByVendor(ctx, caller.Email)
	if err != nil {
		return nil, err
	}
	annotateStockStatus(items)
	return items, nil
}

func (s *equipmentService) ListAllEquipment(ctx context.Context, status, search string) ([]domain.Equipment, error) {
	items, err := s.equipmentRepo.ListAll(ctx, status, search)
	if err != nil {
		return nil, err
	}
	annotateStockStatus(items)
	return items, nil
}

func annotateStockStatus(items []domain.Equipment) {
	for i := range items {
		items[i].StockStatus = items[i].ComputeStockStatus()
	}
}

func deriveStatus(stock int32) domain.EquipmentStatus {
	if stock <= 0 {
		return domain.EquipmentStatusUnavailable
	}
	return domain.EquipmentStatusAvailable
}

func validateEquipmentInput(in *EquipmentInput, requireStock bool) (decimal.Decimal, error) {
	if in.Name == "" || in.Category == "" || in.Location == "" {
		return decimal.Zero, domain.Validationf("name, category and location are required")
	}
	if in.Price == "" {
		return decimal.Zero, domain.Validationf("price is required")
	}
	price, err := decimal.NewFromString(in.Price)
	if err != nil || price.IsNegative() {
		return decimal.Zero, domain.Validationf("price must be a non-negative number")
	}
	if requireStock {
		if in.StockQuantity == nil || in.MinStockThreshold == nil {
			return decimal.Zero, domain.Validationf("stock_quantity and min_stock_threshold are required")
		}
		if *in.StockQuantity < 0 || *in.MinStockThreshold < 0 {
			return decimal.Zero, domain.Validationf("stock values must not be negative")
		}
	}
	return price, nil
}
