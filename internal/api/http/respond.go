package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"lendahand-backend/internal/domain"
	"lendahand-backend/internal/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// respondError maps domain errors onto HTTP statuses. Anything unmapped
// is a 500 with a generic body; the detail goes to the log only.
func respondError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	var fieldErrs validator.ValidationErrors
	switch {
	case errors.As(err, &ve):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Reason})
	case errors.As(err, &fieldErrs):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: fieldErrs.Error()})
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "access denied"})
	case errors.Is(err, domain.ErrOutOfStock):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "equipment out of stock"})
	case errors.Is(err, domain.ErrInvalidTransition):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "invalid status transition"})
	default:
		logger.Error("Request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Validationf("invalid request body")
	}
	return nil
}

func pathID(r *http.Request) (int32, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.Validationf("invalid id: %s", raw)
	}
	return int32(id), nil
}
