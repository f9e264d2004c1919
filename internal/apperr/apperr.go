// Package apperr holds the error taxonomy shared by handlers and services.
// Services wrap these sentinels with fmt.Errorf("...: %w", ...) and the HTTP
// layer maps them to status codes with errors.Is.
package apperr

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrQuotaExceeded   = errors.New("post quota exceeded")
	ErrConflict        = errors.New("conflict")
)
