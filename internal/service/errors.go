package service

import "errors"

// The error taxonomy every operation reports through. Handlers map these to
// HTTP statuses; Forbidden and NotFound are never conflated, so callers can
// always tell "doesn't exist" from "exists but you can't touch it".
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
