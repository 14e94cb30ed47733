package common

import "errors"

var (
	// ErrInvalidToken is returned when a stored credential or bundle cannot be parsed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when a stored credential is past its expiry.
	ErrTokenExpired = errors.New("token expired")
)
