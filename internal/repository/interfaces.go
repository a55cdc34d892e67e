package repository

import (
	"context"
	"time"

	"github.com/taletique/tailor-portal/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// Upsert inserts the user or, on id collision, overwrites the profile
	// columns while preserving role and created_at.
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
	ListCustomers(ctx context.Context) ([]*domain.User, error)
	CountCustomers(ctx context.Context) (int64, error)
}

// OrderFilter narrows and pages an order listing.
type OrderFilter struct {
	CustomerID string // empty means all customers
	Limit      int
	Offset     int
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, error)
	Update(ctx context.Context, id string, updates map[string]any) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.OrderStatus) (int64, error)
}

type MeasurementRepository interface {
	GetByCustomerID(ctx context.Context, customerID string) (*domain.Measurement, error)
	// Upsert writes the customer's single measurement row, overwriting every
	// dimension column (absent dimensions become NULL) and preserving the
	// row's id and created_at on conflict.
	Upsert(ctx context.Context, m *domain.Measurement) error
}

type SessionRepository interface {
	Get(ctx context.Context, sid string) (*domain.Session, error)
	Put(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, sid string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	List(ctx context.Context) ([]*domain.Contact, error)
}

type Repositories struct {
	User        UserRepository
	Order       OrderRepository
	Measurement MeasurementRepository
	Session     SessionRepository
	Contact     ContactRepository
}
