package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/summercamp/camp-api/internal/core/domain"
	"github.com/summercamp/camp-api/internal/core/ports"
)

var errNotConfigured = errors.New("stripe secret key not configured")

// StripeGateway creates card payment intents through the Stripe API.
type StripeGateway struct {
	client     *client.API
	configured bool
}

// NewStripeGateway builds a gateway for apiKey. backends may be nil, in which
// case the default Stripe endpoints are used.
func NewStripeGateway(apiKey string, backends *stripe.Backends) *StripeGateway {
	sc := &client.API{}
	sc.Init(apiKey, backends)
	return &StripeGateway{client: sc, configured: apiKey != ""}
}

// CreateIntent opens a card payment intent and returns its client secret. The
// charge itself is confirmed by the browser.
func (g *StripeGateway) CreateIntent(ctx context.Context, req ports.IntentRequest) (string, error) {
	if !g.configured {
		return "", fmt.Errorf("%w: %v", domain.ErrPaymentProvider, errNotConfigured)
	}
	if req.AmountCents <= 0 {
		return "", domain.ErrInvalidAmount
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.AmountCents),
		Currency:           stripe.String(req.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	if req.Email != "" {
		params.AddMetadata("email", req.Email)
	}
	params.Context = ctx

	pi, err := g.client.PaymentIntents.New(params)
	if err != nil {
		return "", mapStripeError(err)
	}
	if pi.ClientSecret == "" {
		return "", fmt.Errorf("%w: intent %s has no client secret", domain.ErrPaymentProvider, pi.ID)
	}
	return pi.ClientSecret, nil
}

// mapStripeError keeps stripe types out of the service layer.
func mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.Code == stripe.ErrorCodeAmountTooSmall || stripeErr.Code == stripe.ErrorCodeAmountTooLarge {
			return fmt.Errorf("%w: %s", domain.ErrInvalidAmount, stripeErr.Msg)
		}
		return fmt.Errorf("%w: %s (status %d)", domain.ErrPaymentProvider, stripeErr.Msg, stripeErr.HTTPStatusCode)
	}
	return fmt.Errorf("%w: %v", domain.ErrPaymentProvider, err)
}
