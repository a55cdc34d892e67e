package domain

import "errors"

// Authorization errors
var (
	ErrForbidden = errors.New("forbidden")
)

// Lookup errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrMeasurementNotFound = errors.New("measurements not found")
	ErrSessionNotFound     = errors.New("session not found")
)
