package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/taletique/tailor-portal/internal/api/middleware"
	"github.com/taletique/tailor-portal/internal/domain"
	"github.com/taletique/tailor-portal/internal/service"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// GetAuthUser returns the caller's own user row.
func (h *AuthHandler) GetAuthUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.GetUser(r.Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("ERROR [auth.GetAuthUser] failed to fetch user: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
