package http

import (
	"net/http"

	"lendahand-backend/internal/service"

	"github.com/go-playground/validator/v10"
)

type ReviewHandler struct {
	svc      service.ReviewService
	validate *validator.Validate
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

type submitReviewRequest struct {
	EquipmentID int32  `json:"equipment_id" validate:"required"`
	BookingID   *int32 `json:"booking_id"`
	Rating      int32  `json:"rating" validate:"required,min=1,max=5"`
	Title       string `json:"title"`
	Comment     string `json:"comment"`
}

func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitReviewRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, err)
		return
	}

	rv, err := h.svc.Submit(r.Context(), CallerFrom(r), &service.SubmitReviewInput{
		EquipmentID: req.EquipmentID,
		BookingID:   req.BookingID,
		Rating:      req.Rating,
		Title:       req.Title,
		Comment:     req.Comment,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rv)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.svc.Delete(r.Context(), CallerFrom(r), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ReviewHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.svc.ListMine(r.Context(), CallerFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) ListForVendor(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.svc.ListForVendor(r.Context(), CallerFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}
