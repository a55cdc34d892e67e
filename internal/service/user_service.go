package service

import (
	"context"
	"errors"
	"time"

	"github.com/taletique/tailor-portal/internal/auth"
	"github.com/taletique/tailor-portal/internal/domain"
	"github.com/taletique/tailor-portal/internal/repository"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpsertFromIdentity persists the profile returned by the identity provider
// on every successful callback. New accounts default to the customer role;
// the upsert never touches role on existing rows.
func (s *UserService) UpsertFromIdentity(ctx context.Context, ident *auth.Identity) (*domain.User, error) {
	now := time.Now()
	return s.userRepo.Upsert(ctx, &domain.User{
		ID:              ident.Subject,
		Email:           ident.Email,
		FirstName:       ident.FirstName,
		LastName:        ident.LastName,
		ProfileImageURL: ident.ProfileImageURL,
		Role:            domain.RoleCustomer,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
}
