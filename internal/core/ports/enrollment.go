package ports

import "context"

// EnrollmentInput is queued once per class settled by a payment.
type EnrollmentInput struct {
	ClassID       string
	Email         string
	TransactionID string
}

// EnrollmentService applies a single enrollment to the class seat counters.
type EnrollmentService interface {
	Process(ctx context.Context, in EnrollmentInput) error
}

// EnrollmentQueue accepts enrollments for asynchronous processing. Enqueue
// gives up when ctx ends before the enrollment is accepted.
type EnrollmentQueue interface {
	Enqueue(ctx context.Context, in EnrollmentInput) error
	EnqueueBatch(ctx context.Context, in []EnrollmentInput) error
}
