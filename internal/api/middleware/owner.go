package middleware

import (
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/summercamp/camp-api/internal/core/domain"
)

// EmailSource extracts the email a request claims to act on.
type EmailSource func(c echo.Context) string

// PathEmail returns the unescaped email in path parameter name. Echo matches
// on the raw path when one is present, so "u%40example.com" arrives encoded.
func PathEmail(c echo.Context, name string) (string, error) {
	return url.PathUnescape(c.Param(name))
}

// EmailParam reads the email from a path parameter. A malformed escape
// yields "".
func EmailParam(name string) EmailSource {
	return func(c echo.Context) string {
		email, err := PathEmail(c, name)
		if err != nil {
			return ""
		}
		return email
	}
}

// EmailQuery reads the email from a query parameter.
func EmailQuery(name string) EmailSource {
	return func(c echo.Context) string { return c.QueryParam(name) }
}

// RequireSelf admits the request only when the email named by src is the
// principal's own. A missing email is treated as a mismatch.
func RequireSelf(src EmailSource, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := PrincipalFrom(c)
			if principal == nil {
				return reject(c, log, "missing_token", domain.ErrMissingToken)
			}

			email := strings.TrimSpace(src(c))
			if email == "" || email != principal.Email {
				return reject(c, log, "forbidden", domain.ErrForbidden)
			}
			return next(c)
		}
	}
}
