package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/summercamp/camp-api/internal/api/middleware"
	"github.com/summercamp/camp-api/internal/core/domain"
)

// callerFrom returns the principal bound by the Auth middleware. A nil
// principal means the route was mounted without the gate, which is treated
// as unauthenticated rather than trusted.
func callerFrom(c echo.Context) (*domain.Principal, error) {
	p := middleware.PrincipalFrom(c)
	if p == nil || p.Email == "" {
		return nil, domain.ErrMissingToken
	}
	return p, nil
}

// emailParam is the decoded email path parameter of owner-scoped routes.
func emailParam(c echo.Context) (string, error) {
	email, err := middleware.PathEmail(c, "email")
	if err != nil || email == "" {
		return "", domain.ErrInvalidEmail
	}
	return email, nil
}
