package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/summercamp/camp-api/internal/api/metrics"
	"github.com/summercamp/camp-api/internal/core/domain"
	"github.com/summercamp/camp-api/internal/core/ports"
)

type PaymentHandler struct {
	payments ports.PaymentService
}

func NewPaymentHandler(payments ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateIntent opens a card payment for price and returns the client secret
// the browser confirms with.
//
// @Summary      Create a payment intent
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      paymentIntentRequest  true  "Amount in currency units"
// @Success      200   {object}  paymentIntentResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req paymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	secret, err := h.payments.CreateIntent(c.Request().Context(), caller.Email, req.Price)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			metrics.PaymentIntentsTotal.WithLabelValues("invalid_amount").Inc()
		} else {
			metrics.PaymentIntentsTotal.WithLabelValues("provider_error").Inc()
		}
		return err
	}

	metrics.PaymentIntentsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusOK, paymentIntentResponse{ClientSecret: secret})
}

// Record stores a settled payment and clears the paid cart items.
//
// @Summary      Record a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordPaymentRequest  true  "Settled payment"
// @Success      200   {object}  ports.RecordPaymentResult
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /payments [post]
func (h *PaymentHandler) Record(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req recordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	p := domain.Payment{
		Email:         req.Email,
		TransactionID: req.TransactionID,
		Price:         req.Price,
		CartItems:     req.CartItems,
		ClassItems:    req.ClassItems,
		ItemNames:     req.ItemNames,
	}
	if req.Date != "" {
		d, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "date must be RFC 3339")
		}
		p.Date = d.UTC()
	}

	res, err := h.payments.Record(c.Request().Context(), caller, p)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicatePayment) {
			metrics.PaymentsRecordedTotal.WithLabelValues("duplicate").Inc()
		} else {
			metrics.PaymentsRecordedTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.PaymentsRecordedTotal.WithLabelValues("recorded").Inc()
	return c.JSON(http.StatusOK, res)
}

// List returns the caller's payment history, newest first.
//
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Owner email"
// @Success      200    {array}   domain.Payment
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /payments/{email} [get]
func (h *PaymentHandler) List(c echo.Context) error {
	email, err := emailParam(c)
	if err != nil {
		return err
	}
	payments, err := h.payments.ListByEmail(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}
