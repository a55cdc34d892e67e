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

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit records a contact inquiry. This is the one unauthenticated write in
// the API; prospective customers use it before they have an account.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input domain.InsertContact
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validation.Struct(&input); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			respondValidationError(w, "Invalid contact data", verrs)
			return
		}
		respondError(w, http.StatusBadRequest, "Invalid contact data")
		return
	}

	contact, err := h.contactService.SubmitContact(r.Context(), &input)
	if err != nil {
		log.Printf("ERROR [contact.Submit] failed to save contact: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to save contact")
		return
	}

	respondJSON(w, http.StatusCreated, contact)
}
