package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taletique/tailor-portal/internal/domain"
	"github.com/taletique/tailor-portal/internal/service"
	"github.com/taletique/tailor-portal/internal/validation"
)

type OrderHandler struct {
	orderService *service.OrderService
	userService  *service.UserService
}

func NewOrderHandler(orderService *service.OrderService, userService *service.UserService) *OrderHandler {
	return &OrderHandler{orderService: orderService, userService: userService}
}

// List returns the caller's orders, or every order for admins, newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r, h.userService)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	orders, err := h.orderService.ListOrders(r.Context(), user, limit, offset)
	if err != nil {
		log.Printf("ERROR [orders.List] failed to fetch orders: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r, h.userService)
	if !ok {
		return
	}

	var input domain.InsertOrder
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Customers only ever file orders for themselves, whatever the body
	// says. The body is validated as sent first, so an empty submission
	// reports every missing field the same for every caller; the caller's
	// id is only filled in when customerId is the sole complaint.
	if !user.IsAdmin() {
		if err := validation.Struct(&input); err != nil {
			var verrs validation.Errors
			if errors.As(err, &verrs) && !onlyCustomerIDMissing(verrs) {
				respondValidationError(w, "Invalid order data", verrs)
				return
			}
		}
		input.CustomerID = user.ID
	}

	if err := validation.Struct(&input); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			respondValidationError(w, "Invalid order data", verrs)
			return
		}
		respondError(w, http.StatusBadRequest, "Invalid order data")
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), user, &input)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "Customer not found")
			return
		}
		log.Printf("ERROR [orders.Create] failed to create order: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r, h.userService)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var patch domain.UpdateOrder
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validation.Struct(&patch); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			respondValidationError(w, "Invalid order data", verrs)
			return
		}
		respondError(w, http.StatusBadRequest, "Invalid order data")
		return
	}

	order, err := h.orderService.UpdateOrder(r.Context(), user, id, &patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			respondError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, domain.ErrForbidden):
			respondError(w, http.StatusForbidden, "Forbidden")
		default:
			log.Printf("ERROR [orders.Update] failed to update order: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to update order")
		}
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// onlyCustomerIDMissing reports whether every complaint is about customerId,
// the one field the server fills in for non-admin callers.
func onlyCustomerIDMissing(verrs validation.Errors) bool {
	for _, fe := range verrs {
		if fe.Field != "customerId" {
			return false
		}
	}
	return true
}

// Delete removes an order. Admin only; deleting an absent id succeeds.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r, h.userService)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.orderService.DeleteOrder(r.Context(), user, id); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			respondError(w, http.StatusForbidden, "Admin access required")
			return
		}
		log.Printf("ERROR [orders.Delete] failed to delete order: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
