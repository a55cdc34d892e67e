package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/taletique/tailor-portal/internal/domain"
	"github.com/taletique/tailor-portal/internal/service"
	"github.com/taletique/tailor-portal/internal/validation"
)

type MeasurementHandler struct {
	measurementService *service.MeasurementService
	userService        *service.UserService
}

func NewMeasurementHandler(measurementService *service.MeasurementService, userService *service.UserService) *MeasurementHandler {
	return &MeasurementHandler{measurementService: measurementService, userService: userService}
}

// Get returns the target customer's current measurements, or null when the
// customer has never saved any. The target defaults to the caller; only
// admins may name someone else.
func (h *MeasurementHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r, h.userService)
	if !ok {
		return
	}

	customerID := r.URL.Query().Get("customerId")
	if customerID == "" {
		customerID = user.ID
	}

	m, err := h.measurementService.GetMeasurements(r.Context(), user, customerID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			respondError(w, http.StatusForbidden, "Forbidden")
		case errors.Is(err, domain.ErrMeasurementNotFound):
			respondJSON(w, http.StatusOK, nil)
		default:
			log.Printf("ERROR [measurements.Get] failed to fetch measurements: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to fetch measurements")
		}
		return
	}

	respondJSON(w, http.StatusOK, m)
}

func (h *MeasurementHandler) Save(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r, h.userService)
	if !ok {
		return
	}

	var input domain.InsertMeasurement
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !user.IsAdmin() {
		input.CustomerID = user.ID
	}

	if err := validation.Struct(&input); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			respondValidationError(w, "Invalid measurement data", verrs)
			return
		}
		respondError(w, http.StatusBadRequest, "Invalid measurement data")
		return
	}

	m, err := h.measurementService.SaveMeasurements(r.Context(), user, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			respondError(w, http.StatusForbidden, "Forbidden")
		case errors.Is(err, domain.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "Customer not found")
		default:
			log.Printf("ERROR [measurements.Save] failed to save measurements: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to save measurements")
		}
		return
	}

	respondJSON(w, http.StatusOK, m)
}
