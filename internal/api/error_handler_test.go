package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/summercamp/camp-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{domain.ErrMissingToken, http.StatusUnauthorized, "unauthorized access"},
		{domain.ErrMalformedToken, http.StatusUnauthorized, "unauthorized access"},
		{fmt.Errorf("%w: signature is invalid", domain.ErrInvalidToken), http.StatusUnauthorized, "unauthorized access"},
		{domain.ErrForbidden, http.StatusForbidden, "forbidden access"},
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{domain.ErrInvalidID, http.StatusBadRequest, "invalid id"},
		{domain.ErrInvalidAmount, http.StatusBadRequest, "price must be greater than zero"},
		{domain.ErrDuplicatePayment, http.StatusConflict, "payment already recorded"},
		{fmt.Errorf("%w: stripe down", domain.ErrPaymentProvider), http.StatusBadGateway, "payment provider unavailable"},
		{echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{errors.New("mongo: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	e := echo.New()
	h := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.wantMsg {
				t.Errorf("message = %q, want %q", body.Error, tc.wantMsg)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrForbidden, c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was overwritten: %d %q", rec.Code, rec.Body.String())
	}
}
