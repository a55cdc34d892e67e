package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Decimal is an optional decimal value in a request body. The browser form
// layer sends numbers, numeric strings, empty strings, or nothing at all;
// empty string and null both normalize to absent.
type Decimal struct {
	decimal.NullDecimal
}

// UnmarshalJSON accepts a JSON number, a numeric string, an empty string, or null.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		d.Valid = false
		return nil
	}
	return d.NullDecimal.UnmarshalJSON(data)
}

// Ptr returns the value rounded to two places, or nil when absent.
func (d Decimal) Ptr() *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal.Round(2)
	return &v
}

// NewDecimal wraps a decimal value as a present Decimal.
func NewDecimal(v decimal.Decimal) Decimal {
	return Decimal{decimal.NullDecimal{Decimal: v, Valid: true}}
}

// Timestamp is an optional point in time in a request body, accepted as an
// RFC 3339 timestamp or a bare yyyy-mm-dd date.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

var timestampLayouts = []string{time.RFC3339, "2006-01-02"}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == nil || *s == "" {
		ts.Valid = false
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			ts.Time = t
			ts.Valid = true
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", *s)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if !ts.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ts.Time)
}

// Ptr returns the time, or nil when absent.
func (ts Timestamp) Ptr() *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}
