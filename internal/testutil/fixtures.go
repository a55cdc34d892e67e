package testutil

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/taletique/tailor-portal/internal/auth"
	"github.com/taletique/tailor-portal/internal/domain"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	id        string
	email     string
	firstName string
	lastName  string
	role      domain.Role
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		id:        "user_" + suffix,
		email:     "test_" + suffix + "@example.com",
		firstName: "Test",
		lastName:  "User",
		role:      domain.RoleCustomer,
	}
}

// WithID sets the user id
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.id = id
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithName sets the first and last name
func (b *UserBuilder) WithName(first, last string) *UserBuilder {
	b.firstName = first
	b.lastName = last
	return b
}

// WithRole sets the role
func (b *UserBuilder) WithRole(role domain.Role) *UserBuilder {
	b.role = role
	return b
}

// AsAdmin marks the user as an admin
func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.role = domain.RoleAdmin
	return b
}

// Build creates the user in the database
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()

	email := b.email
	user := &domain.User{
		ID:        b.id,
		Email:     &email,
		FirstName: b.firstName,
		LastName:  b.lastName,
		Role:      b.role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// OrderBuilder creates test orders with a builder pattern
type OrderBuilder struct {
	customerID  string
	title       string
	serviceType domain.ServiceType
	status      domain.OrderStatus
	priority    domain.Priority
	price       *decimal.Decimal
}

// NewOrderBuilder creates a new OrderBuilder with default values
func NewOrderBuilder(customerID string) *OrderBuilder {
	return &OrderBuilder{
		customerID:  customerID,
		title:       "Test Order",
		serviceType: domain.ServiceFormal,
		status:      domain.StatusPending,
		priority:    domain.PriorityMedium,
	}
}

// WithTitle sets the title
func (b *OrderBuilder) WithTitle(title string) *OrderBuilder {
	b.title = title
	return b
}

// WithServiceType sets the service type
func (b *OrderBuilder) WithServiceType(st domain.ServiceType) *OrderBuilder {
	b.serviceType = st
	return b
}

// WithStatus sets the status
func (b *OrderBuilder) WithStatus(status domain.OrderStatus) *OrderBuilder {
	b.status = status
	return b
}

// WithPriority sets the priority
func (b *OrderBuilder) WithPriority(priority domain.Priority) *OrderBuilder {
	b.priority = priority
	return b
}

// WithPrice sets the price
func (b *OrderBuilder) WithPrice(price string) *OrderBuilder {
	d := decimal.RequireFromString(price)
	b.price = &d
	return b
}

// Build creates the order in the database
func (b *OrderBuilder) Build(t *testing.T, db *gorm.DB) *domain.Order {
	t.Helper()

	order := &domain.Order{
		ID:          uuid.NewString(),
		CustomerID:  b.customerID,
		Title:       b.title,
		ServiceType: b.serviceType,
		Status:      b.status,
		Priority:    b.priority,
		Price:       b.price,
	}

	if err := db.Create(order).Error; err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	return order
}

// NewRedirectlessClient returns a cookie-carrying client that does not
// follow redirects, for driving the provider handshake step by step.
func NewRedirectlessClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Login mints a server-side session for the user and returns an HTTP client
// carrying the session cookie, exactly as a browser would after the
// provider handshake.
func (ts *TestServer) Login(t *testing.T, user *domain.User) *http.Client {
	t.Helper()

	return ts.LoginSession(t, auth.SessionData{
		UserID: user.ID,
		Claims: map[string]any{"sub": user.ID},
	})
}

// LoginSession mints a session with an explicit payload, for tests that need
// control over the stored provider tokens and their expiry.
func (ts *TestServer) LoginSession(t *testing.T, data auth.SessionData) *http.Client {
	t.Helper()

	rr := httptest.NewRecorder()
	_, err := ts.Sessions.Issue(context.Background(), rr, data)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	serverURL, err := url.Parse(ts.Server.URL)
	if err != nil {
		t.Fatalf("failed to parse server URL: %v", err)
	}
	jar.SetCookies(serverURL, rr.Result().Cookies())

	return &http.Client{Jar: jar}
}
