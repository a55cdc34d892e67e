package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/taletique/tailor-portal/internal/authz"
	"github.com/taletique/tailor-portal/internal/domain"
	"github.com/taletique/tailor-portal/internal/repository"
	"gorm.io/gorm"
)

// Listing bounds for GET /api/orders.
const (
	DefaultListLimit = 100
	MaxListLimit     = 200
)

type OrderService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
}

func NewOrderService(orderRepo repository.OrderRepository, userRepo repository.UserRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, userRepo: userRepo}
}

// ListOrders returns all orders for admins and the caller's own orders
// otherwise, newest first.
func (s *OrderService) ListOrders(ctx context.Context, caller *domain.User, limit, offset int) ([]*domain.Order, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	filter := repository.OrderFilter{Limit: limit, Offset: offset}
	if !caller.IsAdmin() {
		filter.CustomerID = caller.ID
	}
	return s.orderRepo.List(ctx, filter)
}

func (s *OrderService) CreateOrder(ctx context.Context, caller *domain.User, input *domain.InsertOrder) (*domain.Order, error) {
	// An admin may file an order on a customer's behalf; make sure that
	// customer exists before the insert hits the foreign key.
	if input.CustomerID != caller.ID {
		if _, err := s.userRepo.GetByID(ctx, input.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrUserNotFound
			}
			return nil, err
		}
	}

	order := &domain.Order{
		ID:          uuid.NewString(),
		CustomerID:  input.CustomerID,
		Title:       input.Title,
		Description: input.Description,
		ServiceType: input.ServiceType,
		Status:      input.Status,
		Priority:    input.Priority,
		Price:       input.Price.Ptr(),
		DueDate:     input.DueDate.Ptr(),
	}
	if order.Status == "" {
		order.Status = domain.StatusPending
	}
	if order.Priority == "" {
		order.Priority = domain.PriorityMedium
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrder applies a partial patch. Absence is checked before ownership
// so a missing order is always 404, never 403.
func (s *OrderService) UpdateOrder(ctx context.Context, caller *domain.User, id string, patch *domain.UpdateOrder) (*domain.Order, error) {
	existing, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	if err := authz.Check(caller, authz.Owner(existing.CustomerID)); err != nil {
		return nil, err
	}

	updated, err := s.orderRepo.Update(ctx, id, orderUpdates(patch))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteOrder removes an order. Admin only; deleting an absent id is a no-op.
func (s *OrderService) DeleteOrder(ctx context.Context, caller *domain.User, id string) error {
	if err := authz.Check(caller, authz.Role(domain.RoleAdmin)); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, id)
}

func orderUpdates(patch *domain.UpdateOrder) map[string]any {
	updates := make(map[string]any)
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.ServiceType != nil {
		updates["service_type"] = *patch.ServiceType
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.Price.Valid {
		updates["price"] = patch.Price.Ptr()
	}
	if patch.DueDate.Valid {
		updates["due_date"] = patch.DueDate.Ptr()
	}
	// An empty patch still bumps updated_at (gorm adds it alongside any
	// other column, but needs at least one to build the statement).
	if len(updates) == 0 {
		updates["updated_at"] = time.Now()
	}
	return updates
}
