package http

import (
	"net/http"

	"lendahand-backend/internal/domain"
	"lendahand-backend/internal/service"

	"github.com/go-playground/validator/v10"
)

type RentalHandler struct {
	svc      service.RentalService
	validate *validator.Validate
}

func NewRentalHandler(svc service.RentalService) *RentalHandler {
	return &RentalHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

type submitRentalRequest struct {
	EquipmentID int32  `json:"equipment_id" validate:"required"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Purpose     string `json:"purpose"`
	Notes       string `json:"notes"`
}

// submit is shared by the bookings and rent-requests routes; the kind is
// fixed by the route, never by the payload.
func (h *RentalHandler) submit(kind domain.RentalKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRentalRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, err)
			return
		}
		if err := h.validate.Struct(&req); err != nil {
			respondError(w, err)
			return
		}

		rt, err := h.svc.Submit(r.Context(), CallerFrom(r), &service.SubmitRentalInput{
			Kind:        kind,
			EquipmentID: req.EquipmentID,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Purpose:     req.Purpose,
			Notes:       req.Notes,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, rt)
	}
}

func (h *RentalHandler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	h.submit(domain.RentalKindBooking)(w, r)
}

func (h *RentalHandler) SubmitRentRequest(w http.ResponseWriter, r *http.Request) {
	h.submit(domain.RentalKindRentRequest)(w, r)
}

func (h *RentalHandler) action(fn func(r *http.Request, id int32) (*domain.Rental, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		rt, err := fn(r, id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, rt)
	}
}

func (h *RentalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.action(func(r *http.Request, id int32) (*domain.Rental, error) {
		return h.svc.Approve(r.Context(), CallerFrom(r), id)
	})(w, r)
}

func (h *RentalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.action(func(r *http.Request, id int32) (*domain.Rental, error) {
		return h.svc.Reject(r.Context(), CallerFrom(r), id)
	})(w, r)
}

func (h *RentalHandler) MarkReturned(w http.ResponseWriter, r *http.Request) {
	h.action(func(r *http.Request, id int32) (*domain.Rental, error) {
		return h.svc.MarkReturned(r.Context(), CallerFrom(r), id)
	})(w, r)
}

func (h *RentalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.action(func(r *http.Request, id int32) (*domain.Rental, error) {
		return h.svc.Complete(r.Context(), CallerFrom(r), id)
	})(w, r)
}

func (h *RentalHandler) listMine(kind domain.RentalKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rentals, err := h.svc.ListMine(r.Context(), CallerFrom(r), kind, r.URL.Query().Get("status"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, rentals)
	}
}

func (h *RentalHandler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	h.listMine(domain.RentalKindBooking)(w, r)
}

func (h *RentalHandler) ListMyRentRequests(w http.ResponseWriter, r *http.Request) {
	h.listMine(domain.RentalKindRentRequest)(w, r)
}

func (h *RentalHandler) listForVendor(kind domain.RentalKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rentals, err := h.svc.ListForVendor(r.Context(), CallerFrom(r), kind, r.URL.Query().Get("status"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, rentals)
	}
}

func (h *RentalHandler) ListVendorBookings(w http.ResponseWriter, r *http.Request) {
	h.listForVendor(domain.RentalKindBooking)(w, r)
}

func (h *RentalHandler) ListVendorRentRequests(w http.ResponseWriter, r *http.Request) {
	h.listForVendor(domain.RentalKindRentRequest)(w, r)
}

func (h *RentalHandler) listAll(kind domain.RentalKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		rentals, err := h.svc.ListAll(r.Context(), kind, q.Get("status"), q.Get("search"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, rentals)
	}
}

func (h *RentalHandler) ListAllBookings(w http.ResponseWriter, r *http.Request) {
	h.listAll(domain.RentalKindBooking)(w, r)
}

func (h *RentalHandler) ListAllRentRequests(w http.ResponseWriter, r *http.Request) {
	h.listAll(domain.RentalKindRentRequest)(w, r)
}

// DeleteBooking is an admin cleanup endpoint; it removes the row without
// touching stock.
func (h *RentalHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.svc.DeleteBooking(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
