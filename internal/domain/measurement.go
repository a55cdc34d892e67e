package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Measurement is a customer's current set of body measurements, in inches.
// The unique index on customer_id keeps exactly one row per customer; saves
// are a true upsert so concurrent submissions cannot fork the row.
type Measurement struct {
	ID         string `json:"id" gorm:"type:varchar(64);primaryKey"`
	CustomerID string `json:"customerId" gorm:"type:varchar(64);not null;uniqueIndex"`
	Customer   *User  `json:"-" gorm:"foreignKey:CustomerID"`

	// Upper body
	Chest        *decimal.Decimal `json:"chest" gorm:"type:decimal(5,2)"`
	Waist        *decimal.Decimal `json:"waist" gorm:"type:decimal(5,2)"`
	Shoulder     *decimal.Decimal `json:"shoulder" gorm:"type:decimal(5,2)"`
	SleeveLength *decimal.Decimal `json:"sleeveLength" gorm:"type:decimal(5,2)"`
	Neck         *decimal.Decimal `json:"neck" gorm:"type:decimal(5,2)"`
	Bicep        *decimal.Decimal `json:"bicep" gorm:"type:decimal(5,2)"`

	// Lower body
	Inseam  *decimal.Decimal `json:"inseam" gorm:"type:decimal(5,2)"`
	Outseam *decimal.Decimal `json:"outseam" gorm:"type:decimal(5,2)"`
	Hip     *decimal.Decimal `json:"hip" gorm:"type:decimal(5,2)"`
	Thigh   *decimal.Decimal `json:"thigh" gorm:"type:decimal(5,2)"`
	Calf    *decimal.Decimal `json:"calf" gorm:"type:decimal(5,2)"`
	Ankle   *decimal.Decimal `json:"ankle" gorm:"type:decimal(5,2)"`

	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InsertMeasurement is the validated input shape for saving measurements.
// Every dimension is optional; an absent dimension clears the stored column.
type InsertMeasurement struct {
	CustomerID   string  `json:"customerId" validate:"required"`
	Chest        Decimal `json:"chest"`
	Waist        Decimal `json:"waist"`
	Shoulder     Decimal `json:"shoulder"`
	SleeveLength Decimal `json:"sleeveLength"`
	Neck         Decimal `json:"neck"`
	Bicep        Decimal `json:"bicep"`
	Inseam       Decimal `json:"inseam"`
	Outseam      Decimal `json:"outseam"`
	Hip          Decimal `json:"hip"`
	Thigh        Decimal `json:"thigh"`
	Calf         Decimal `json:"calf"`
	Ankle        Decimal `json:"ankle"`
	Notes        string  `json:"notes"`
}
