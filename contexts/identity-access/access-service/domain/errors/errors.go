package errors

import "errors"

var (
	ErrForbidden           = errors.New("forbidden")
	ErrIdentityRequired    = errors.New("authenticated identity required")
	ErrInvalidRole         = errors.New("invalid role")
	ErrInvalidProfile      = errors.New("invalid profile")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrInvalidToken        = errors.New("invalid bootstrap token")
	ErrAlreadyBootstrapped = errors.New("initial admin already granted")
)
