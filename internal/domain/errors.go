package domain

import "errors"

var (
	ErrNotFound        = errors.New("record not found")
	ErrForbidden       = errors.New("caller is not allowed to act on this record")
	ErrUnauthenticated = errors.New("authentication credentials were not provided")
	ErrInvalidIdentity = errors.New("invalid public address")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnavailable     = errors.New("service unavailable")
)
