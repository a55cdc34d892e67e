package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/taletique/tailor-portal/internal/domain"
	"github.com/taletique/tailor-portal/internal/service"
)

type AdminHandler struct {
	adminService *service.AdminService
	userService  *service.UserService
}

func NewAdminHandler(adminService *service.AdminService, userService *service.UserService) *AdminHandler {
	return &AdminHandler{adminService: adminService, userService: userService}
}

func (h *AdminHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r, h.userService)
	if !ok {
		return
	}

	customers, err := h.adminService.ListCustomers(r.Context(), user)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			respondError(w, http.StatusForbidden, "Admin access required")
			return
		}
		log.Printf("ERROR [admin.ListCustomers] failed to fetch customers: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}

	respondJSON(w, http.StatusOK, customers)
}

func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r, h.userService)
	if !ok {
		return
	}

	stats, err := h.adminService.GetOrderStats(r.Context(), user)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			respondError(w, http.StatusForbidden, "Admin access required")
			return
		}
		log.Printf("ERROR [admin.GetStats] failed to fetch stats: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r, h.userService)
	if !ok {
		return
	}

	contacts, err := h.adminService.ListContacts(r.Context(), user)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			respondError(w, http.StatusForbidden, "Admin access required")
			return
		}
		log.Printf("ERROR [admin.ListContacts] failed to fetch contacts: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch contacts")
		return
	}

	respondJSON(w, http.StatusOK, contacts)
}
