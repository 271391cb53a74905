package services

import "errors"

// Domain outcomes surfaced to the route layer, which maps them onto HTTP
// status codes. Store failures pass through untouched.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("access denied")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidTransition  = errors.New("invalid status transition")
)
