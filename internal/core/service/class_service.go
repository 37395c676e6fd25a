package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/summercamp/camp-api/internal/core/domain"
	"github.com/summercamp/camp-api/internal/core/ports"
)

// ClassService serves the class catalogue and the instructor directory.
type ClassService struct {
	classes     ports.ClassRepository
	instructors ports.InstructorRepository
	logger      zerolog.Logger
}

func NewClassService(classes ports.ClassRepository, instructors ports.InstructorRepository, logger zerolog.Logger) *ClassService {
	return &ClassService{classes: classes, instructors: instructors, logger: logger}
}

func (s *ClassService) ListClasses(ctx context.Context, filter ports.ClassFilter) ([]domain.Class, error) {
	return s.classes.List(ctx, filter)
}

// CreateClass stores a new class in pending status with no enrollments.
func (s *ClassService) CreateClass(ctx context.Context, in ports.CreateClassInput) (domain.InsertResult, error) {
	if strings.TrimSpace(in.Name) == "" {
		return domain.InsertResult{}, fmt.Errorf("%w: class name is required", domain.ErrInvalidClass)
	}
	if in.InstructorEmail == "" {
		return domain.InsertResult{}, domain.ErrForbidden
	}
	if in.Price < 0 || in.AvailableSeats < 0 {
		return domain.InsertResult{}, fmt.Errorf("%w: price and seats must not be negative", domain.ErrInvalidClass)
	}

	class := &domain.Class{
		Name:            strings.TrimSpace(in.Name),
		Image:           in.Image,
		InstructorName:  in.InstructorName,
		InstructorEmail: in.InstructorEmail,
		AvailableSeats:  in.AvailableSeats,
		Price:           in.Price,
		Status:          domain.ClassPending,
		CreatedAt:       time.Now().UTC(),
	}

	res, err := s.classes.Create(ctx, class)
	if err != nil {
		s.logger.Error().Err(err).Str("instructor", in.InstructorEmail).Msg("failed to create class")
		return domain.InsertResult{}, err
	}

	s.logger.Info().Str("class_id", res.InsertedID).Str("instructor", in.InstructorEmail).Msg("class created")
	return res, nil
}

func (s *ClassService) ListInstructors(ctx context.Context) ([]domain.Instructor, error) {
	return s.instructors.List(ctx)
}
