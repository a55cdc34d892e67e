package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/taletique/tailor-portal/internal/api/middleware"
	"github.com/taletique/tailor-portal/internal/domain"
	"github.com/taletique/tailor-portal/internal/service"
)

// caller resolves the request principal to its User row. The row carries the
// role, which the principal's claims do not. Writes the error response and
// returns false on failure.
func caller(w http.ResponseWriter, r *http.Request, users *service.UserService) (*domain.User, bool) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	user, err := users.GetUser(r.Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return nil, false
		}
		log.Printf("ERROR [handlers.caller] failed to fetch user: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch user")
		return nil, false
	}
	return user, true
}
