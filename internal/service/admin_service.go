package service

import (
	"context"

	"github.com/taletique/tailor-portal/internal/authz"
	"github.com/taletique/tailor-portal/internal/domain"
	"github.com/taletique/tailor-portal/internal/repository"
)

type AdminService struct {
	userRepo    repository.UserRepository
	orderRepo   repository.OrderRepository
	contactRepo repository.ContactRepository
}

func NewAdminService(userRepo repository.UserRepository, orderRepo repository.OrderRepository, contactRepo repository.ContactRepository) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		orderRepo:   orderRepo,
		contactRepo: contactRepo,
	}
}

func (s *AdminService) ListCustomers(ctx context.Context, caller *domain.User) ([]*domain.User, error) {
	if err := authz.Check(caller, authz.Role(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	return s.userRepo.ListCustomers(ctx)
}

func (s *AdminService) GetOrderStats(ctx context.Context, caller *domain.User) (*domain.OrderStats, error) {
	if err := authz.Check(caller, authz.Role(domain.RoleAdmin)); err != nil {
		return nil, err
	}

	totalOrders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	activeCustomers, err := s.userRepo.CountCustomers(ctx)
	if err != nil {
		return nil, err
	}
	pendingFittings, err := s.orderRepo.CountByStatus(ctx, domain.StatusFittingScheduled)
	if err != nil {
		return nil, err
	}

	return &domain.OrderStats{
		TotalOrders:     totalOrders,
		ActiveCustomers: activeCustomers,
		PendingFittings: pendingFittings,
	}, nil
}

func (s *AdminService) ListContacts(ctx context.Context, caller *domain.User) ([]*domain.Contact, error) {
	if err := authz.Check(caller, authz.Role(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	return s.contactRepo.List(ctx)
}
