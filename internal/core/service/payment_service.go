package service

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/summercamp/camp-api/internal/core/domain"
	"github.com/summercamp/camp-api/internal/core/ports"
)

const defaultCurrency = "usd"

// PaymentService creates card payment intents and records settled payments.
type PaymentService struct {
	payments    ports.PaymentRepository
	carts       ports.CartRepository
	gateway     ports.PaymentGateway
	guard       ports.PaymentReplayGuard
	enrollments ports.EnrollmentQueue
	currency    string
	logger      zerolog.Logger
	now         func() time.Time
}

// PaymentDeps groups the collaborators of PaymentService.
type PaymentDeps struct {
	Payments    ports.PaymentRepository
	Carts       ports.CartRepository
	Gateway     ports.PaymentGateway
	Guard       ports.PaymentReplayGuard
	Enrollments ports.EnrollmentQueue
	Currency    string
}

func NewPaymentService(deps PaymentDeps, logger zerolog.Logger) *PaymentService {
	currency := deps.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	return &PaymentService{
		payments:    deps.Payments,
		carts:       deps.Carts,
		gateway:     deps.Gateway,
		guard:       deps.Guard,
		enrollments: deps.Enrollments,
		currency:    currency,
		logger:      logger,
		now:         time.Now,
	}
}

// amountCents converts a price to the smallest currency unit, rounding half
// away from zero on the shortest decimal form of price, so 1.005 is 101.
func amountCents(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	cents := decimal.NewFromFloat(price).Shift(2).Round(0).IntPart()
	if cents <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return cents, nil
}

// CreateIntent opens a card payment intent for price and returns its client
// secret.
func (s *PaymentService) CreateIntent(ctx context.Context, email string, price float64) (string, error) {
	cents, err := amountCents(price)
	if err != nil {
		return "", err
	}

	secret, err := s.gateway.CreateIntent(ctx, ports.IntentRequest{
		AmountCents: cents,
		Currency:    s.currency,
		Email:       email,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Int64("amount", cents).Msg("payment intent failed")
		return "", err
	}

	s.logger.Info().Str("email", email).Int64("amount", cents).Str("currency", s.currency).Msg("payment intent created")
	return secret, nil
}

// Record stores a settled payment, clears the cart items it paid for and
// queues one enrollment per class. The payment must belong to the caller.
func (s *PaymentService) Record(ctx context.Context, caller *domain.Principal, p domain.Payment) (*ports.RecordPaymentResult, error) {
	if caller == nil {
		return nil, domain.ErrMissingToken
	}
	if p.Email == "" {
		p.Email = caller.Email
	}
	if p.Email != caller.Email {
		return nil, domain.ErrForbidden
	}
	if p.TransactionID == "" {
		return nil, domain.ErrMissingTransaction
	}

	// 1. Replay guard; an unreachable guard must not block a settled payment.
	claimed, err := s.guard.Claim(ctx, p.TransactionID)
	if err != nil {
		s.logger.Warn().Err(err).Str("transaction_id", p.TransactionID).Msg("replay guard unavailable, recording anyway")
	} else if !claimed {
		return nil, domain.ErrDuplicatePayment
	}

	// 2. Normalise.
	p.ID = ""
	if p.Date.IsZero() {
		p.Date = s.now().UTC()
	}
	if p.Quantity == 0 {
		p.Quantity = len(p.ClassItems)
	}
	if p.Status == "" {
		p.Status = "paid"
	}

	// 3. Persist.
	ins, err := s.payments.Insert(ctx, &p)
	if err != nil {
		if claimed {
			if relErr := s.guard.Release(ctx, p.TransactionID); relErr != nil {
				s.logger.Warn().Err(relErr).Str("transaction_id", p.TransactionID).Msg("failed to release replay guard")
			}
		}
		return nil, err
	}

	// 4. Clear the paid cart items. The payment is already stored, so a
	// failure here is reported as an unacknowledged delete, not an error.
	var del domain.DeleteResult
	if len(p.CartItems) > 0 {
		del, err = s.carts.DeleteMany(ctx, p.CartItems, p.Email)
		if err != nil {
			s.logger.Error().Err(err).
				Str("email", p.Email).
				Str("transaction_id", p.TransactionID).
				Strs("cart_items", p.CartItems).
				Msg("failed to clear paid cart items")
			del = domain.DeleteResult{}
		}
	} else {
		del.Acknowledged = true
	}

	// 5. Seat accounting happens off the request path.
	if len(p.ClassItems) > 0 {
		batch := make([]ports.EnrollmentInput, 0, len(p.ClassItems))
		for _, classID := range p.ClassItems {
			batch = append(batch, ports.EnrollmentInput{
				ClassID:       classID,
				Email:         p.Email,
				TransactionID: p.TransactionID,
			})
		}
		if err := s.enrollments.EnqueueBatch(ctx, batch); err != nil {
			s.logger.Error().Err(err).
				Str("email", p.Email).
				Str("transaction_id", p.TransactionID).
				Msg("enrollments not queued for recorded payment")
		}
	}

	s.logger.Info().
		Str("email", p.Email).
		Str("transaction_id", p.TransactionID).
		Int("classes", len(p.ClassItems)).
		Int64("cart_cleared", del.DeletedCount).
		Msg("payment recorded")

	return &ports.RecordPaymentResult{InsertResult: ins, DeleteResult: del}, nil
}

func (s *PaymentService) ListByEmail(ctx context.Context, email string) ([]domain.Payment, error) {
	return s.payments.ListByEmail(ctx, email)
}
