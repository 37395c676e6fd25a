package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/summercamp/camp-api/internal/core/domain"
	"github.com/summercamp/camp-api/internal/core/ports"
)

type paymentFixture struct {
	payments *stubPaymentRepo
	carts    *stubCartRepo
	gateway  *stubGateway
	guard    *stubGuard
	queue    *stubQueue
	svc      *PaymentService
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		payments: &stubPaymentRepo{},
		carts:    newStubCartRepo(),
		gateway:  &stubGateway{secret: "pi_1_secret_abc"},
		guard:    newStubGuard(),
		queue:    &stubQueue{},
	}
	f.svc = NewPaymentService(PaymentDeps{
		Payments:    f.payments,
		Carts:       f.carts,
		Gateway:     f.gateway,
		Guard:       f.guard,
		Enrollments: f.queue,
	}, discardLogger)
	return f
}

var alice = &domain.Principal{Email: "alice@example.com"}

// ---------------------------------------------------------------------------
// CreateIntent
// ---------------------------------------------------------------------------

func TestAmountCents(t *testing.T) {
	cases := []struct {
		price float64
		want  int64
	}{
		{price: 10, want: 1000},
		{price: 19.99, want: 1999},
		{price: 0.1 + 0.2, want: 30},
		{price: 0.125, want: 13},
		{price: 1.005, want: 101},
	}
	for _, c := range cases {
		got, err := amountCents(c.price)
		if err != nil {
			t.Fatalf("amountCents(%v): %v", c.price, err)
		}
		if got != c.want {
			t.Errorf("amountCents(%v) = %d, want %d", c.price, got, c.want)
		}
	}

	for _, bad := range []float64{0, -5, 0.004, math.NaN(), math.Inf(1)} {
		if _, err := amountCents(bad); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("amountCents(%v): expected ErrInvalidAmount, got %v", bad, err)
		}
	}
}

func TestPaymentService_CreateIntent(t *testing.T) {
	f := newPaymentFixture()

	secret, err := f.svc.CreateIntent(context.Background(), "alice@example.com", 25.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "pi_1_secret_abc" {
		t.Fatalf("unexpected secret: %s", secret)
	}
	if len(f.gateway.calls) != 1 {
		t.Fatalf("expected one gateway call")
	}
	call := f.gateway.calls[0]
	if call.AmountCents != 2550 || call.Currency != "usd" || call.Email != "alice@example.com" {
		t.Fatalf("unexpected intent request: %+v", call)
	}
}

func TestPaymentService_CreateIntent_InvalidPriceSkipsGateway(t *testing.T) {
	f := newPaymentFixture()

	if _, err := f.svc.CreateIntent(context.Background(), "alice@example.com", 0); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if len(f.gateway.calls) != 0 {
		t.Fatalf("gateway must not be called for an invalid price")
	}
}

func TestPaymentService_CreateIntent_GatewayError(t *testing.T) {
	f := newPaymentFixture()
	f.gateway.err = domain.ErrPaymentProvider

	if _, err := f.svc.CreateIntent(context.Background(), "alice@example.com", 10); !errors.Is(err, domain.ErrPaymentProvider) {
		t.Fatalf("expected ErrPaymentProvider, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Record
// ---------------------------------------------------------------------------

func seedCart(f *paymentFixture, email, classID string) string {
	res, _ := f.carts.Add(context.Background(), &domain.CartItem{Email: email, ClassID: classID})
	return res.InsertedID
}

func TestPaymentService_Record_HappyPath(t *testing.T) {
	f := newPaymentFixture()
	cart1 := seedCart(f, "alice@example.com", "c1")
	cart2 := seedCart(f, "alice@example.com", "c2")
	other := seedCart(f, "bob@example.com", "c3")

	res, err := f.svc.Record(context.Background(), alice, domain.Payment{
		TransactionID: "pi_123",
		Price:         40,
		CartItems:     []string{cart1, cart2, other},
		ClassItems:    []string{"c1", "c2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.InsertResult.InsertedID == "" {
		t.Errorf("expected insert result")
	}
	if res.DeleteResult.DeletedCount != 2 {
		t.Errorf("expected 2 cart items cleared, got %d", res.DeleteResult.DeletedCount)
	}
	if _, ok := f.carts.items[other]; !ok {
		t.Errorf("another user's cart item must survive")
	}

	stored := f.payments.payments[0]
	if stored.Email != "alice@example.com" {
		t.Errorf("email must default to caller, got %q", stored.Email)
	}
	if stored.Quantity != 2 || stored.Status != "paid" || stored.Date.IsZero() {
		t.Errorf("payment not normalised: %+v", stored)
	}

	if len(f.queue.queued) != 2 {
		t.Fatalf("expected 2 enrollments queued, got %d", len(f.queue.queued))
	}
	if f.queue.queued[0].ClassID != "c1" || f.queue.queued[0].TransactionID != "pi_123" {
		t.Errorf("unexpected enrollment: %+v", f.queue.queued[0])
	}
}

func TestPaymentService_Record_KeepsClientDate(t *testing.T) {
	f := newPaymentFixture()
	date := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	_, err := f.svc.Record(context.Background(), alice, domain.Payment{TransactionID: "pi_1", Date: date})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.payments.payments[0].Date.Equal(date) {
		t.Fatalf("client date overwritten")
	}
}

func TestPaymentService_Record_Replay(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	p := domain.Payment{TransactionID: "pi_dup", Price: 10}

	if _, err := f.svc.Record(ctx, alice, p); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if _, err := f.svc.Record(ctx, alice, p); !errors.Is(err, domain.ErrDuplicatePayment) {
		t.Fatalf("expected ErrDuplicatePayment, got %v", err)
	}
	if len(f.payments.payments) != 1 {
		t.Fatalf("expected exactly one stored payment, got %d", len(f.payments.payments))
	}
}

func TestPaymentService_Record_GuardDownStillRecords(t *testing.T) {
	f := newPaymentFixture()
	f.guard.claimErr = errStore

	if _, err := f.svc.Record(context.Background(), alice, domain.Payment{TransactionID: "pi_1"}); err != nil {
		t.Fatalf("guard failure must not block recording: %v", err)
	}
	if len(f.payments.payments) != 1 {
		t.Fatalf("payment not stored")
	}
}

func TestPaymentService_Record_InsertFailureReleasesGuard(t *testing.T) {
	f := newPaymentFixture()
	f.payments.insertErr = errStore

	if _, err := f.svc.Record(context.Background(), alice, domain.Payment{TransactionID: "pi_1"}); !errors.Is(err, errStore) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(f.guard.released) != 1 || f.guard.released[0] != "pi_1" {
		t.Fatalf("guard claim must be released, got %v", f.guard.released)
	}
	if len(f.queue.queued) != 0 {
		t.Fatalf("no enrollment may be queued for a failed payment")
	}
}

func TestPaymentService_Record_CartClearFailure(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	cart := seedCart(f, "alice@example.com", "c1")
	f.carts.delErr = errStore
	p := domain.Payment{
		TransactionID: "pi_1",
		CartItems:     []string{cart},
		ClassItems:    []string{"c1"},
	}

	res, err := f.svc.Record(ctx, alice, p)
	if err != nil {
		t.Fatalf("a stored payment must be reported as recorded: %v", err)
	}
	if !res.InsertResult.Acknowledged || res.DeleteResult.Acknowledged {
		t.Errorf("unexpected result: %+v", res)
	}
	if len(f.payments.payments) != 1 {
		t.Fatalf("expected one stored payment, got %d", len(f.payments.payments))
	}
	if len(f.queue.queued) != 1 || f.queue.queued[0].ClassID != "c1" {
		t.Fatalf("enrollment must still be queued, got %+v", f.queue.queued)
	}
	if len(f.guard.released) != 0 {
		t.Fatalf("claim of a stored payment must be kept, released %v", f.guard.released)
	}

	if _, err := f.svc.Record(ctx, alice, p); !errors.Is(err, domain.ErrDuplicatePayment) {
		t.Fatalf("retry: expected ErrDuplicatePayment, got %v", err)
	}
	if len(f.queue.queued) != 1 {
		t.Fatalf("retry must not queue again, got %d", len(f.queue.queued))
	}
}

func TestPaymentService_Record_QueueFailureKeepsPayment(t *testing.T) {
	f := newPaymentFixture()
	f.queue.err = context.Canceled

	res, err := f.svc.Record(context.Background(), alice, domain.Payment{TransactionID: "pi_1", ClassItems: []string{"c1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.InsertResult.Acknowledged || len(f.payments.payments) != 1 {
		t.Fatalf("payment must stay recorded: %+v", res)
	}
}

func TestPaymentService_Record_Validation(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	if _, err := f.svc.Record(ctx, nil, domain.Payment{TransactionID: "pi_1"}); !errors.Is(err, domain.ErrMissingToken) {
		t.Errorf("nil caller: expected ErrMissingToken, got %v", err)
	}
	if _, err := f.svc.Record(ctx, alice, domain.Payment{}); !errors.Is(err, domain.ErrMissingTransaction) {
		t.Errorf("no transaction: expected ErrMissingTransaction, got %v", err)
	}
	if _, err := f.svc.Record(ctx, alice, domain.Payment{Email: "bob@example.com", TransactionID: "pi_1"}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("foreign email: expected ErrForbidden, got %v", err)
	}
	if len(f.payments.payments) != 0 {
		t.Fatalf("nothing may be stored for rejected payments")
	}
}

func TestPaymentService_ListByEmail(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	_, _ = f.svc.Record(ctx, alice, domain.Payment{TransactionID: "pi_1"})
	_, _ = f.svc.Record(ctx, &domain.Principal{Email: "bob@example.com"}, domain.Payment{TransactionID: "pi_2"})

	got, err := f.svc.ListByEmail(ctx, "alice@example.com")
	if err != nil || len(got) != 1 {
		t.Fatalf("unexpected result: %+v %v", got, err)
	}
}

var _ ports.PaymentService = (*PaymentService)(nil)
