package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/summercamp/camp-api/internal/core/ports"
)

type enrollmentService struct {
	classes ports.ClassRepository
	log     zerolog.Logger
}

// NewEnrollmentService returns an EnrollmentService implementation.
func NewEnrollmentService(classes ports.ClassRepository, log zerolog.Logger) ports.EnrollmentService {
	return &enrollmentService{classes: classes, log: log}
}

// Process takes one seat in the class. Full or unknown classes are reported
// to the caller and not retried.
func (s *enrollmentService) Process(ctx context.Context, in ports.EnrollmentInput) error {
	if err := s.classes.Enroll(ctx, in.ClassID); err != nil {
		return fmt.Errorf("enroll %s in class %s: %w", in.Email, in.ClassID, err)
	}

	s.log.Info().
		Str("class_id", in.ClassID).
		Str("email", in.Email).
		Str("transaction_id", in.TransactionID).
		Msg("enrollment applied")
	return nil
}
