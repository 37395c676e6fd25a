package ports

import (
	"context"

	"github.com/summercamp/camp-api/internal/core/domain"
)

// PaymentRepository persists completed payments.
type PaymentRepository interface {
	Insert(ctx context.Context, p *domain.Payment) (domain.InsertResult, error)
	// ListByEmail returns payments newest first.
	ListByEmail(ctx context.Context, email string) ([]domain.Payment, error)
}

// IntentRequest describes a card charge to be confirmed by the client.
type IntentRequest struct {
	AmountCents int64
	Currency    string
	Email       string
}

// PaymentGateway creates payment intents at the card processor.
type PaymentGateway interface {
	// CreateIntent returns the client secret of a new payment intent.
	CreateIntent(ctx context.Context, req IntentRequest) (string, error)
}

// PaymentReplayGuard rejects a transaction id that was already recorded.
type PaymentReplayGuard interface {
	// Claim returns true the first time a transaction id is seen.
	Claim(ctx context.Context, transactionID string) (bool, error)
	Release(ctx context.Context, transactionID string) error
}

// RecordPaymentResult mirrors the two store acknowledgements.
type RecordPaymentResult struct {
	InsertResult domain.InsertResult `json:"insertResult"`
	DeleteResult domain.DeleteResult `json:"deleteResult"`
}

type PaymentService interface {
	CreateIntent(ctx context.Context, email string, price float64) (string, error)
	Record(ctx context.Context, caller *domain.Principal, p domain.Payment) (*RecordPaymentResult, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Payment, error)
}
