package domain

import (
	"errors"
	"time"
)

// Principal is the caller identity recovered from a verified token. It lives
// for a single request and is never persisted.
type Principal struct {
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Gate failures. All three credential errors render as 401; ErrForbidden as 403.
var (
	ErrMissingToken   = errors.New("missing credentials")
	ErrMalformedToken = errors.New("malformed token")
	ErrInvalidToken   = errors.New("invalid token")
	ErrForbidden      = errors.New("access forbidden")
)

// IsAuthError reports whether err is one of the credential failures above
// (not ErrForbidden).
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrInvalidToken)
}
