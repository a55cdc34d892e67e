package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus tracks where an order sits in the tailoring workflow
type OrderStatus string

const (
	StatusPending          OrderStatus = "pending"
	StatusConfirmed        OrderStatus = "confirmed"
	StatusInProgress       OrderStatus = "in_progress"
	StatusFittingScheduled OrderStatus = "fitting_scheduled"
	StatusCompleted        OrderStatus = "completed"
	StatusCancelled        OrderStatus = "cancelled"
)

// AllOrderStatuses contains all valid order statuses in workflow order
var AllOrderStatuses = []OrderStatus{
	StatusPending, StatusConfirmed, StatusInProgress,
	StatusFittingScheduled, StatusCompleted, StatusCancelled,
}

// IsValid checks if an order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress,
		StatusFittingScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// ServiceType is the kind of tailoring work an order asks for
type ServiceType string

const (
	ServiceFormal       ServiceType = "formal"
	ServiceWedding      ServiceType = "wedding"
	ServiceCasual       ServiceType = "casual"
	ServiceAlterations  ServiceType = "alterations"
	ServiceConsultation ServiceType = "consultation"
)

// AllServiceTypes contains all valid service types
var AllServiceTypes = []ServiceType{
	ServiceFormal, ServiceWedding, ServiceCasual,
	ServiceAlterations, ServiceConsultation,
}

// IsValid checks if a service type is valid
func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceFormal, ServiceWedding, ServiceCasual,
		ServiceAlterations, ServiceConsultation:
		return true
	}
	return false
}

func (s ServiceType) String() string {
	return string(s)
}

// Priority is the urgency of an order
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// AllPriorities contains all valid priorities in ascending urgency
var AllPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// IsValid checks if a priority is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func (p Priority) String() string {
	return string(p)
}

// Order is a tailoring order placed by (or on behalf of) a customer.
type Order struct {
	ID          string           `json:"id" gorm:"type:varchar(64);primaryKey"`
	CustomerID  string           `json:"customerId" gorm:"type:varchar(64);not null;index"`
	Customer    *User            `json:"-" gorm:"foreignKey:CustomerID"`
	Title       string           `json:"title" gorm:"not null"`
	Description string           `json:"description" gorm:"type:text"`
	ServiceType ServiceType      `json:"serviceType" gorm:"type:varchar(32);not null"`
	Status      OrderStatus      `json:"status" gorm:"type:varchar(32);default:'pending'"`
	Priority    Priority         `json:"priority" gorm:"type:varchar(16);default:'medium'"`
	Price       *decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	DueDate     *time.Time       `json:"dueDate"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// InsertOrder is the validated input shape for creating an order.
// Server-managed fields (id, timestamps) have no place here; unknown JSON
// keys are dropped by the decoder.
type InsertOrder struct {
	CustomerID  string      `json:"customerId" validate:"required"`
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description"`
	ServiceType ServiceType `json:"serviceType" validate:"required,service_type"`
	Status      OrderStatus `json:"status" validate:"omitempty,order_status"`
	Priority    Priority    `json:"priority" validate:"omitempty,priority"`
	Price       Decimal     `json:"price"`
	DueDate     Timestamp   `json:"dueDate"`
}

// UpdateOrder is a partial patch over an order's mutable fields. Absent
// fields leave the stored value untouched.
type UpdateOrder struct {
	Title       *string      `json:"title" validate:"omitempty,min=1"`
	Description *string      `json:"description"`
	ServiceType *ServiceType `json:"serviceType" validate:"omitempty,service_type"`
	Status      *OrderStatus `json:"status" validate:"omitempty,order_status"`
	Priority    *Priority    `json:"priority" validate:"omitempty,priority"`
	Price       Decimal      `json:"price"`
	DueDate     Timestamp    `json:"dueDate"`
}

// OrderStats is the aggregate surfaced on the admin dashboard.
type OrderStats struct {
	TotalOrders     int64 `json:"totalOrders"`
	ActiveCustomers int64 `json:"activeCustomers"`
	PendingFittings int64 `json:"pendingFittings"`
}
