package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Session is a server-side session row. The browser only ever holds the
// opaque sid (wrapped in a signed cookie token); the verified claims and
// provider tokens live in the sess payload.
type Session struct {
	SID    string         `json:"sid" gorm:"column:sid;type:varchar(64);primaryKey"`
	Sess   datatypes.JSON `json:"sess" gorm:"not null"`
	Expire time.Time      `json:"expire" gorm:"not null;index"`
}

// TableName keeps the canonical sessions table name.
func (Session) TableName() string {
	return "sessions"
}
