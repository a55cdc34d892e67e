package domain

import (
	"time"
)

// User is a portal account. The id is the identity provider's subject claim,
// so it is an opaque string rather than a parsed UUID.
type User struct {
	ID              string    `json:"id" gorm:"type:varchar(64);primaryKey"`
	Email           *string   `json:"email" gorm:"uniqueIndex"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	ProfileImageURL string    `json:"profileImageUrl"`
	Role            Role      `json:"role" gorm:"type:varchar(16);default:'customer'"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
