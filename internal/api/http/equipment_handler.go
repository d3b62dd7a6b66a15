package http

import (
	"net/http"

	"lendahand-backend/internal/service"

	"github.com/go-playground/validator/v10"
)

type EquipmentHandler struct {
	svc      service.EquipmentService
	validate *validator.Validate
}

func NewEquipmentHandler(svc service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

type equipmentRequest struct {
	Name              string `json:"name" validate:"required"`
	Category          string `json:"category" validate:"required"`
	Description       string `json:"description"`
	Price             string `json:"price" validate:"required"`
	PriceUnit         string `json:"price_unit"`
	Location          string `json:"location" validate:"required"`
	ImageURL          string `json:"image_url"`
	StockQuantity     *int32 `json:"stock_quantity" validate:"required"`
	MinStockThreshold *int32 `json:"min_stock_threshold" validate:"required"`
}

func (h *EquipmentHandler) toInput(req *equipmentRequest) *service.EquipmentInput {
	return &service.EquipmentInput{
		Name:              req.Name,
		Category:          req.Category,
		Description:       req.Description,
		Price:             req.Price,
		PriceUnit:         req.PriceUnit,
		Location:          req.Location,
		ImageURL:          req.ImageURL,
		StockQuantity:     req.StockQuantity,
		MinStockThreshold: req.MinStockThreshold,
	}
}

// ListAvailable serves the public marketplace listing.
func (h *EquipmentHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListAvailable(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req equipmentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, err)
		return
	}

	eq, err := h.svc.AddEquipment(r.Context(), CallerFrom(r), h.toInput(&req))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, eq)
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req equipmentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, err)
		return
	}

	eq, err := h.svc.UpdateEquipment(r.Context(), CallerFrom(r), id, h.toInput(&req))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.svc.DeleteEquipment(r.Context(), CallerFrom(r), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type adjustStockRequest struct {
	Delta int32 `json:"delta" validate:"required"`
}

// AdjustStock applies a relative stock correction for the vendor's own
// listing and returns the clamped quantity.
func (h *EquipmentHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req adjustStockRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, err)
		return
	}

	remaining, err := h.svc.AdjustStock(r.Context(), CallerFrom(r), id, req.Delta)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int32{"stock_quantity": remaining})
}

func (h *EquipmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListMyEquipment(r.Context(), CallerFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *EquipmentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.svc.ListAllEquipment(r.Context(), q.Get("status"), q.Get("search"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}
