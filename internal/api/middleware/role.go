package middleware

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/summercamp/camp-api/internal/core/domain"
)

// RoleChecker answers whether the stored record for email carries role.
type RoleChecker interface {
	HasRole(ctx context.Context, email string, role domain.Role) (bool, error)
}

// RequireRole admits the request only when the principal's stored role is
// role. The store is consulted on every request so promotions apply
// immediately. Must run after Auth.
func RequireRole(roles RoleChecker, role domain.Role, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := PrincipalFrom(c)
			if principal == nil {
				return reject(c, log, "missing_token", domain.ErrMissingToken)
			}

			ok, err := roles.HasRole(c.Request().Context(), principal.Email, role)
			if err != nil {
				return fmt.Errorf("role lookup: %w", err)
			}
			if !ok {
				return reject(c, log, "forbidden", domain.ErrForbidden)
			}
			return next(c)
		}
	}
}
