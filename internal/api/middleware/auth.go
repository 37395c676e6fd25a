package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/summercamp/camp-api/internal/api/metrics"
	"github.com/summercamp/camp-api/internal/core/domain"
)

const principalKey = "camp.principal"

// TokenVerifier turns a bearer token into the principal it was issued for.
type TokenVerifier interface {
	Verify(token string) (*domain.Principal, error)
}

// Auth validates the bearer token and binds the principal to the request.
// Any failure stops the chain before the handler runs.
func Auth(tokens TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return reject(c, log, "missing_token", domain.ErrMissingToken)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return reject(c, log, "missing_token", domain.ErrMissingToken)
			}

			principal, err := tokens.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, domain.ErrMalformedToken) {
					reason = "malformed_token"
				}
				return reject(c, log, reason, domain.ErrInvalidToken)
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal bound by Auth, or nil when the request
// did not pass through it.
func PrincipalFrom(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalKey).(*domain.Principal)
	return p
}

func reject(c echo.Context, log zerolog.Logger, reason string, err error) error {
	metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
	log.Warn().
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("reason", reason).
		Msg("request rejected by auth gate")
	return err
}
