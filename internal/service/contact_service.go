package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/taletique/tailor-portal/internal/domain"
	"github.com/taletique/tailor-portal/internal/repository"
)

type ContactService struct {
	contactRepo repository.ContactRepository
}

func NewContactService(contactRepo repository.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

// SubmitContact records a public contact inquiry.
func (s *ContactService) SubmitContact(ctx context.Context, input *domain.InsertContact) (*domain.Contact, error) {
	contact := &domain.Contact{
		ID:      uuid.NewString(),
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Service: input.Service,
		Message: input.Message,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}
